package model

// CatchAllKey is the key of the category assigned when no keyword matches.
// The catch-all always exists, is never keyword-matched, and keeps an
// empty keyword list.
const CatchAllKey = "other"

// Category represents a spending category with its keyword rules.
// Registry order is significant: classification walks categories in
// slice order and the first keyword hit wins.
type Category struct {
	Key      string   `json:"key"`
	Color    string   `json:"color"`
	Keywords []string `json:"keywords"`
}

// IsCatchAll reports whether this is the fallback category.
func (c Category) IsCatchAll() bool {
	return c.Key == CatchAllKey
}

// Clone returns a deep copy of the category.
func (c Category) Clone() Category {
	out := c
	out.Keywords = make([]string, len(c.Keywords))
	copy(out.Keywords, c.Keywords)
	return out
}

// CloneCategories deep-copies a registry slice.
func CloneCategories(categories []Category) []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		out[i] = c.Clone()
	}
	return out
}

// CloneExpenses copies an expense slice. Expenses hold no reference
// fields, so a shallow element copy is a deep copy.
func CloneExpenses(expenses []Expense) []Expense {
	out := make([]Expense, len(expenses))
	copy(out, expenses)
	return out
}
