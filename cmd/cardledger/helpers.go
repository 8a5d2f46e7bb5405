package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cardledger/internal/codec"
	"cardledger/internal/config"
	"cardledger/internal/model"
	"cardledger/internal/storage"
)

// initStorage opens the store, migrates the schema, and loads both
// documents into memory.
func initStorage(ctx context.Context) (*storage.SQLiteStore, error) {
	store, err := storage.NewSQLiteStore(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := store.Load(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	return store, nil
}

// resolveMonth validates a --month flag, defaulting to the current month.
func resolveMonth(month string) (string, error) {
	if month == "" {
		return model.CurrentMonth(), nil
	}
	if !model.ValidMonth(month) {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return month, nil
}

// sortByDateDesc orders expenses newest-date first for export targets.
// Ties keep store order, which is already newest-insertion first.
func sortByDateDesc(expenses []model.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date > expenses[j].Date
	})
}

// amountCell renders an amount for terminal tables.
func amountCell(amount int64) string {
	return codec.FormatAmount(amount)
}

// resolveExpenseID expands a unique id prefix to the full expense id.
// Zero matches returns the input unchanged so the store's silent no-op
// semantics still apply; multiple matches is an error.
func resolveExpenseID(store *storage.SQLiteStore, idOrPrefix string) (string, error) {
	if _, ok := store.Get(idOrPrefix); ok {
		return idOrPrefix, nil
	}

	var match string
	for _, e := range store.Expenses() {
		if strings.HasPrefix(e.ID, idOrPrefix) {
			if match != "" {
				return "", fmt.Errorf("id prefix %q is ambiguous", idOrPrefix)
			}
			match = e.ID
		}
	}
	if match == "" {
		return idOrPrefix, nil
	}
	return match, nil
}
