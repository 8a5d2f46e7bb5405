// Package model defines the core data types shared across the application.
package model

import (
	"strings"

	"github.com/google/uuid"
)

// Expense represents a single card purchase.
type Expense struct {
	ID             string `json:"id"`
	Merchant       string `json:"merchant"`
	Amount         int64  `json:"amount"`
	Date           string `json:"date"` // "YYYY-MM-DD"
	Category       string `json:"category"`
	ManualCategory bool   `json:"manualCategory"`
	Memo           string `json:"memo,omitempty"`
}

// NewExpenseID returns a fresh globally-unique expense id.
func NewExpenseID() string {
	return uuid.NewString()
}

// Month returns the "YYYY-MM" prefix of the expense date.
func (e Expense) Month() string {
	return MonthOf(e.Date)
}

// Valid reports whether the expense satisfies the caller-side guards:
// a non-empty trimmed merchant name and a positive amount. The store
// itself never re-validates; every entry point does this first.
func (e Expense) Valid() bool {
	return strings.TrimSpace(e.Merchant) != "" && e.Amount > 0
}
