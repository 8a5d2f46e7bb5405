package storage

import (
	"context"
	"strings"

	"cardledger/internal/model"
)

// ExpenseUpdate carries the fields an edit may change. Nil fields are
// left untouched. Ids and dates are immutable by convention.
type ExpenseUpdate struct {
	Merchant       *string
	Amount         *int64
	Category       *string
	ManualCategory *bool
	Memo           *string
}

// Add prepends a fully-formed expense, newest first. The store trusts
// the caller's validation and does not re-check amount or merchant.
func (s *SQLiteStore) Add(ctx context.Context, expense model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = append([]model.Expense{expense}, s.expenses...)
	s.persist(ctx, docExpenses, s.expenses)
}

// Update merges the given fields into the expense matching id. An
// unknown id leaves the store unchanged.
func (s *SQLiteStore) Update(ctx context.Context, id string, update ExpenseUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID != id {
			continue
		}
		if update.Merchant != nil {
			s.expenses[i].Merchant = *update.Merchant
		}
		if update.Amount != nil {
			s.expenses[i].Amount = *update.Amount
		}
		if update.Category != nil {
			s.expenses[i].Category = *update.Category
		}
		if update.ManualCategory != nil {
			s.expenses[i].ManualCategory = *update.ManualCategory
		}
		if update.Memo != nil {
			s.expenses[i].Memo = *update.Memo
		}
		s.persist(ctx, docExpenses, s.expenses)
		return
	}
}

// Delete removes the expense matching id; absent ids are a no-op.
func (s *SQLiteStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			s.persist(ctx, docExpenses, s.expenses)
			return
		}
	}
}

// ReplaceAll swaps in a whole new expense collection. Used by import.
func (s *SQLiteStore) ReplaceAll(ctx context.Context, expenses []model.Expense) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = model.CloneExpenses(expenses)
	s.persist(ctx, docExpenses, s.expenses)
}

// Clear empties the expense collection.
func (s *SQLiteStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = []model.Expense{}
	s.persist(ctx, docExpenses, s.expenses)
}

// Get returns the expense with the given id.
func (s *SQLiteStore) Get(id string) (model.Expense, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return model.Expense{}, false
}

// Expenses returns a copy of the collection in store order (newest first).
func (s *SQLiteStore) Expenses() []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CloneExpenses(s.expenses)
}

// Query returns all expenses whose date starts with the given "YYYY-MM"
// prefix. This string-prefix test is the sole time-windowing predicate
// in the system.
func (s *SQLiteStore) Query(monthPrefix string) []model.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Expense
	for _, e := range s.expenses {
		if strings.HasPrefix(e.Date, monthPrefix) {
			out = append(out, e)
		}
	}
	return out
}
