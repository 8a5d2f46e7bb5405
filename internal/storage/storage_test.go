package storage

import (
	"context"
	"path/filepath"
	"testing"

	"cardledger/internal/model"
	"cardledger/internal/rules"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return openTestStore(t, filepath.Join(t.TempDir(), "ledger.db"))
}

func openTestStore(t *testing.T, dbPath string) *SQLiteStore {
	t.Helper()

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := store.Load(ctx); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return store
}

func testExpense(id, date string, amount int64) model.Expense {
	return model.Expense{
		ID:       id,
		Merchant: "merchant-" + id,
		Amount:   amount,
		Date:     date,
		Category: "food",
	}
}

func TestLoadSeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	if got := store.Expenses(); len(got) != 0 {
		t.Errorf("Expenses() on a fresh store = %d entries, want 0", len(got))
	}

	categories := store.Categories()
	if len(categories) != len(rules.Defaults()) {
		t.Errorf("Categories() on a fresh store = %d entries, want %d", len(categories), len(rules.Defaults()))
	}
	if err := rules.Validate(categories); err != nil {
		t.Errorf("Validate(default categories) error = %v", err)
	}
}

func TestAddPrepends(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Add(ctx, testExpense("a", "2025-01-01", 100))
	store.Add(ctx, testExpense("b", "2025-01-02", 200))
	store.Add(ctx, testExpense("c", "2025-01-03", 300))

	expenses := store.Expenses()
	if len(expenses) != 3 {
		t.Fatalf("Expenses() = %d entries, want 3", len(expenses))
	}

	wantOrder := []string{"c", "b", "a"}
	for i, want := range wantOrder {
		if expenses[i].ID != want {
			t.Errorf("Expenses()[%d].ID = %q, want %q (newest first)", i, expenses[i].ID, want)
		}
	}
}

func TestUpdate(t *testing.T) {
	str := func(s string) *string { return &s }
	i64 := func(n int64) *int64 { return &n }
	boolPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name   string
		id     string
		update ExpenseUpdate
		want   model.Expense
	}{
		{
			name:   "merchant only",
			id:     "a",
			update: ExpenseUpdate{Merchant: str("새가게")},
			want: model.Expense{
				ID: "a", Merchant: "새가게", Amount: 100, Date: "2025-01-01", Category: "food",
			},
		},
		{
			name:   "amount only",
			id:     "a",
			update: ExpenseUpdate{Amount: i64(9999)},
			want: model.Expense{
				ID: "a", Merchant: "merchant-a", Amount: 9999, Date: "2025-01-01", Category: "food",
			},
		},
		{
			name: "category with manual flag",
			id:   "a",
			update: ExpenseUpdate{
				Category:       str("cafe"),
				ManualCategory: boolPtr(true),
			},
			want: model.Expense{
				ID: "a", Merchant: "merchant-a", Amount: 100, Date: "2025-01-01",
				Category: "cafe", ManualCategory: true,
			},
		},
		{
			name:   "clearing the memo",
			id:     "a",
			update: ExpenseUpdate{Memo: str("")},
			want: model.Expense{
				ID: "a", Merchant: "merchant-a", Amount: 100, Date: "2025-01-01", Category: "food",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()
			store.Add(ctx, testExpense("a", "2025-01-01", 100))

			store.Update(ctx, tt.id, tt.update)

			got, ok := store.Get("a")
			if !ok {
				t.Fatal("Get(a) = not found")
			}
			if got != tt.want {
				t.Errorf("Get(a) = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	store.Add(ctx, testExpense("a", "2025-01-01", 100))

	merchant := "changed"
	store.Update(ctx, "missing", ExpenseUpdate{Merchant: &merchant})

	got, _ := store.Get("a")
	if got.Merchant != "merchant-a" {
		t.Errorf("Update with unknown id changed another expense: merchant = %q", got.Merchant)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	store.Add(ctx, testExpense("a", "2025-01-01", 100))
	store.Add(ctx, testExpense("b", "2025-01-02", 200))

	store.Delete(ctx, "a")

	if _, ok := store.Get("a"); ok {
		t.Error("Get(a) found after Delete(a)")
	}
	if _, ok := store.Get("b"); !ok {
		t.Error("Get(b) missing after deleting a different id")
	}

	// Absent ids are a no-op.
	store.Delete(ctx, "missing")
	if got := store.Expenses(); len(got) != 1 {
		t.Errorf("Expenses() = %d entries after no-op delete, want 1", len(got))
	}
}

func TestQueryByMonthPrefix(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	store.Add(ctx, testExpense("a", "2025-01-31", 100))
	store.Add(ctx, testExpense("b", "2025-02-01", 200))
	store.Add(ctx, testExpense("c", "2025-01-05", 300))

	tests := []struct {
		month   string
		wantIDs []string
	}{
		{month: "2025-01", wantIDs: []string{"c", "a"}},
		{month: "2025-02", wantIDs: []string{"b"}},
		{month: "2024-12", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got := store.Query(tt.month)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Query(%q) = %d entries, want %d", tt.month, len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("Query(%q)[%d].ID = %q, want %q", tt.month, i, got[i].ID, want)
				}
			}
		})
	}
}

func TestReplaceAllAndClear(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	store.Add(ctx, testExpense("a", "2025-01-01", 100))

	replacement := []model.Expense{
		testExpense("x", "2025-03-01", 500),
		testExpense("y", "2025-03-02", 600),
	}
	store.ReplaceAll(ctx, replacement)

	if _, ok := store.Get("a"); ok {
		t.Error("Get(a) found after ReplaceAll")
	}
	if got := store.Expenses(); len(got) != 2 {
		t.Errorf("Expenses() = %d entries after ReplaceAll, want 2", len(got))
	}

	// Mutating the caller's slice must not leak into the store.
	replacement[0].Merchant = "mutated"
	if got, _ := store.Get("x"); got.Merchant == "mutated" {
		t.Error("ReplaceAll kept a reference to the caller's slice")
	}

	store.Clear(ctx)
	if got := store.Expenses(); len(got) != 0 {
		t.Errorf("Expenses() = %d entries after Clear, want 0", len(got))
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store := openTestStore(t, dbPath)
	store.Add(ctx, testExpense("a", "2025-01-01", 100))

	custom, err := rules.AddKeyword(store.Categories(), "cafe", "테스트키워드")
	if err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}
	store.SetCategories(ctx, custom)
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened := openTestStore(t, dbPath)

	if _, ok := reopened.Get("a"); !ok {
		t.Error("Get(a) missing after reopen")
	}

	cafe, ok := rules.Find(reopened.Categories(), "cafe")
	if !ok {
		t.Fatal("Find(cafe) missing after reopen")
	}
	found := false
	for _, kw := range cafe.Keywords {
		if kw == "테스트키워드" {
			found = true
		}
	}
	if !found {
		t.Error("custom keyword missing after reopen")
	}
}

func TestResetCategories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	custom, err := rules.AddKeyword(store.Categories(), "cafe", "임시")
	if err != nil {
		t.Fatalf("AddKeyword() error = %v", err)
	}
	store.SetCategories(ctx, custom)

	store.ResetCategories(ctx)

	cafe, _ := rules.Find(store.Categories(), "cafe")
	for _, kw := range cafe.Keywords {
		if kw == "임시" {
			t.Error("ResetCategories kept a custom keyword")
		}
	}
}
