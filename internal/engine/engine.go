// Package engine derives monthly summaries and trend series from the
// expense collection and category registry. Nothing here is cached:
// expense volumes are small, so every call recomputes from the
// authoritative store state.
package engine

import (
	"fmt"
	"strings"
	"time"

	"cardledger/internal/model"
)

// TrendMonths is the length of the trend window.
const TrendMonths = 6

// TrendPoint is one month of the trend series.
type TrendPoint struct {
	Month      string
	ByCategory map[string]int64
	Total      int64
}

// ExpenseSource provides the state the engine aggregates over.
type ExpenseSource interface {
	Expenses() []model.Expense
	Categories() []model.Category
}

// Engine computes rollups over an expense source.
type Engine struct {
	src ExpenseSource
}

// New creates an aggregation engine over the given source.
func New(src ExpenseSource) *Engine {
	return &Engine{src: src}
}

// MonthlySummary returns per-category totals for the given "YYYY-MM" month.
func (e *Engine) MonthlySummary(month string) map[string]int64 {
	return MonthlySummary(month, e.src.Expenses(), e.src.Categories())
}

// TrendSeries returns the 6-month series ending at the given month.
func (e *Engine) TrendSeries(currentMonth string) ([]TrendPoint, error) {
	return TrendSeries(currentMonth, e.src.Expenses(), e.src.Categories())
}

// MonthlySummary computes per-category totals for one month. Every
// registry category appears, zero-valued when unspent. Expenses whose
// category key is no longer in the registry contribute nothing: the
// sum is dropped rather than raising an error or growing the mapping.
func MonthlySummary(month string, expenses []model.Expense, categories []model.Category) map[string]int64 {
	summary := make(map[string]int64, len(categories))
	for _, cat := range categories {
		summary[cat.Key] = 0
	}
	for _, e := range expenses {
		if !strings.HasPrefix(e.Date, month) {
			continue
		}
		if _, ok := summary[e.Category]; !ok {
			continue
		}
		summary[e.Category] += e.Amount
	}
	return summary
}

// TrendSeries computes the TrendMonths consecutive months ending at
// currentMonth inclusive, oldest first. Each point's Total is the sum
// of its per-category breakdown.
func TrendSeries(currentMonth string, expenses []model.Expense, categories []model.Category) ([]TrendPoint, error) {
	months, err := monthsEnding(currentMonth, TrendMonths)
	if err != nil {
		return nil, err
	}

	series := make([]TrendPoint, 0, len(months))
	for _, month := range months {
		breakdown := MonthlySummary(month, expenses, categories)
		var total int64
		for _, amount := range breakdown {
			total += amount
		}
		series = append(series, TrendPoint{
			Month:      month,
			ByCategory: breakdown,
			Total:      total,
		})
	}
	return series, nil
}

// monthsEnding returns the n consecutive "YYYY-MM" months ending at
// current inclusive, oldest first. time.Date normalizes out-of-range
// months, which handles the year rollback.
func monthsEnding(current string, n int) ([]string, error) {
	end, err := time.Parse(model.MonthLayout, current)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", current, err)
	}

	months := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		m := time.Date(end.Year(), end.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		months = append(months, m.Format(model.MonthLayout))
	}
	return months, nil
}
