package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardledger/internal/model"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{ID: "1", Merchant: "스타벅스 강남점", Amount: 5500, Date: "2025-01-12", Category: "cafe"},
		{ID: "2", Merchant: "김밥천국", Amount: 8000, Date: "2025-01-05", Category: "food", Memo: "점심, 동료와"},
	}
}

func sampleCategories() []model.Category {
	return []model.Category{
		{Key: "food", Color: "#F87171", Keywords: []string{"김밥"}},
		{Key: "cafe", Color: "#60A5FA", Keywords: []string{"스타벅스"}},
		{Key: model.CatchAllKey, Color: "#9CA3AF", Keywords: []string{}},
	}
}

func TestRoundTrip(t *testing.T) {
	data := Serialize(sampleExpenses(), sampleCategories())
	assert.Equal(t, Version, data.Version)
	assert.False(t, data.ExportDate.IsZero())

	raw, err := Marshal(data)
	require.NoError(t, err)

	decoded, err := Deserialize(raw)
	require.NoError(t, err)

	assert.Equal(t, sampleExpenses(), decoded.Expenses)
	assert.Equal(t, sampleCategories(), decoded.Categories)
	assert.Equal(t, Version, decoded.Version)
}

func TestSerializeDeepCopies(t *testing.T) {
	expenses := sampleExpenses()
	categories := sampleCategories()

	data := Serialize(expenses, categories)
	data.Expenses[0].Merchant = "mutated"
	data.Categories[0].Keywords[0] = "mutated"

	assert.Equal(t, "스타벅스 강남점", expenses[0].Merchant)
	assert.Equal(t, "김밥", categories[0].Keywords[0])
}

func TestDeserializeRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not JSON", raw: "definitely not json"},
		{name: "top-level array", raw: `[1, 2, 3]`},
		{name: "expenses missing", raw: `{"categories": []}`},
		{name: "expenses is an object", raw: `{"expenses": {"a": 1}}`},
		{name: "expenses is a string", raw: `{"expenses": "nope"}`},
		{name: "expenses is null", raw: `{"expenses": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize([]byte(tt.raw))
			require.Error(t, err)

			var formatErr *FormatError
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestDeserializeTolerantOfRecordContents(t *testing.T) {
	// Only the top-level shape is checked; record fields pass through
	// unvalidated, matching old backups.
	raw := `{
		"expenses": [
			{"id": "", "merchant": "", "amount": -500, "date": "not-a-date", "category": "ghost"}
		]
	}`

	data, err := Deserialize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, data.Expenses, 1)
	assert.Equal(t, int64(-500), data.Expenses[0].Amount)
	assert.Equal(t, "ghost", data.Expenses[0].Category)
}

func TestDeserializeMistypedFieldKeepsRest(t *testing.T) {
	raw := `{
		"expenses": [
			{"id": "1", "merchant": "가게", "amount": "oops", "date": "2025-01-01", "category": "food"}
		],
		"categories": []
	}`

	data, err := Deserialize([]byte(raw))
	require.NoError(t, err)
	require.Len(t, data.Expenses, 1)
	assert.Equal(t, "가게", data.Expenses[0].Merchant)
	assert.Zero(t, data.Expenses[0].Amount, "mistyped amount decodes to the zero value")
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{amount: 0, want: "0"},
		{amount: 999, want: "999"},
		{amount: 1000, want: "1,000"},
		{amount: 45500, want: "45,500"},
		{amount: 1234567, want: "1,234,567"},
		{amount: -8000, want: "-8,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleExpenses())

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2025-01-12", "스타벅스 강남점", "5500", "cafe", ""}, rows[0])
	assert.Equal(t, []string{"2025-01-05", "김밥천국", "8000", "food", "점심, 동료와"}, rows[1])
}
