package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardledger/internal/model"
)

var testRegistry = []model.Category{
	{Key: "food"},
	{Key: "cafe"},
	{Key: "transport"},
	{Key: model.CatchAllKey},
}

func TestMonthlySummary(t *testing.T) {
	expenses := []model.Expense{
		{ID: "1", Merchant: "김밥천국", Amount: 8000, Date: "2025-01-05", Category: "food"},
		{ID: "2", Merchant: "스타벅스", Amount: 5500, Date: "2025-01-12", Category: "cafe"},
		{ID: "3", Merchant: "식당", Amount: 12000, Date: "2025-01-20", Category: "food"},
		{ID: "4", Merchant: "식당", Amount: 9000, Date: "2025-02-01", Category: "food"},
	}

	summary := MonthlySummary("2025-01", expenses, testRegistry)

	assert.Equal(t, map[string]int64{
		"food":            20000,
		"cafe":            5500,
		"transport":       0,
		model.CatchAllKey: 0,
	}, summary)
}

func TestMonthlySummaryEveryCategoryPresent(t *testing.T) {
	summary := MonthlySummary("2025-01", nil, testRegistry)

	require.Len(t, summary, len(testRegistry))
	for _, cat := range testRegistry {
		assert.Contains(t, summary, cat.Key)
		assert.Zero(t, summary[cat.Key])
	}
}

func TestMonthlySummaryDropsDanglingCategories(t *testing.T) {
	expenses := []model.Expense{
		{ID: "1", Merchant: "식당", Amount: 8000, Date: "2025-01-05", Category: "food"},
		{ID: "2", Merchant: "옛가게", Amount: 3000, Date: "2025-01-06", Category: "removed"},
	}

	summary := MonthlySummary("2025-01", expenses, testRegistry)

	assert.NotContains(t, summary, "removed")

	var total int64
	for _, amount := range summary {
		total += amount
	}
	assert.Equal(t, int64(8000), total, "dangling sums are dropped, not reassigned")
}

func TestTrendSeriesWindow(t *testing.T) {
	series, err := TrendSeries("2025-02", nil, testRegistry)
	require.NoError(t, err)

	months := make([]string, 0, len(series))
	for _, point := range series {
		months = append(months, point.Month)
	}
	assert.Equal(t, []string{"2024-09", "2024-10", "2024-11", "2024-12", "2025-01", "2025-02"}, months,
		"window crosses the year boundary oldest first")
}

func TestTrendSeriesTotals(t *testing.T) {
	expenses := []model.Expense{
		{ID: "1", Amount: 8000, Date: "2025-01-05", Category: "food"},
		{ID: "2", Amount: 5500, Date: "2025-01-12", Category: "cafe"},
		{ID: "3", Amount: 4000, Date: "2024-12-25", Category: "transport"},
		{ID: "4", Amount: 9999, Date: "2024-08-31", Category: "food"}, // outside the window
	}

	series, err := TrendSeries("2025-02", expenses, testRegistry)
	require.NoError(t, err)
	require.Len(t, series, TrendMonths)

	for _, point := range series {
		var sum int64
		for _, amount := range point.ByCategory {
			sum += amount
		}
		assert.Equal(t, sum, point.Total, "total must equal the breakdown sum for %s", point.Month)
	}

	byMonth := make(map[string]int64, len(series))
	for _, point := range series {
		byMonth[point.Month] = point.Total
	}
	assert.Equal(t, int64(13500), byMonth["2025-01"])
	assert.Equal(t, int64(4000), byMonth["2024-12"])
	assert.Zero(t, byMonth["2024-09"])
}

func TestTrendSeriesInvalidMonth(t *testing.T) {
	_, err := TrendSeries("not-a-month", nil, testRegistry)
	assert.Error(t, err)
}

type staticSource struct {
	expenses   []model.Expense
	categories []model.Category
}

func (s staticSource) Expenses() []model.Expense    { return s.expenses }
func (s staticSource) Categories() []model.Category { return s.categories }

func TestEngineDelegates(t *testing.T) {
	src := staticSource{
		expenses: []model.Expense{
			{ID: "1", Amount: 1000, Date: "2025-03-10", Category: "food"},
		},
		categories: testRegistry,
	}
	eng := New(src)

	summary := eng.MonthlySummary("2025-03")
	assert.Equal(t, int64(1000), summary["food"])

	series, err := eng.TrendSeries("2025-03")
	require.NoError(t, err)
	assert.Len(t, series, TrendMonths)
}
