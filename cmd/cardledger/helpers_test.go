package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardledger/internal/engine"
	"cardledger/internal/model"
)

func TestResolveMonth(t *testing.T) {
	got, err := resolveMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "2025-03", got)

	got, err = resolveMonth("")
	require.NoError(t, err)
	assert.Equal(t, model.CurrentMonth(), got)

	_, err = resolveMonth("March 2025")
	assert.Error(t, err)
}

func TestSortByDateDesc(t *testing.T) {
	expenses := []model.Expense{
		{ID: "a", Date: "2025-01-05"},
		{ID: "b", Date: "2025-02-01"},
		{ID: "c", Date: "2025-01-05"},
		{ID: "d", Date: "2024-12-31"},
	}

	sortByDateDesc(expenses)

	gotIDs := make([]string, 0, len(expenses))
	for _, e := range expenses {
		gotIDs = append(gotIDs, e.ID)
	}
	assert.Equal(t, []string{"b", "a", "c", "d"}, gotIDs,
		"dates sort descending, equal dates keep their relative order")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "550e8400", shortID("550e8400-e29b-41d4-a716-446655440000"))
	assert.Equal(t, "abc", shortID("abc"))
}

func TestImageMediaType(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{path: "receipt.jpg", want: "image/jpeg"},
		{path: "receipt.JPEG", want: "image/jpeg"},
		{path: "receipt.png", want: "image/png"},
		{path: "receipt.webp", want: "image/webp"},
		{path: "receipt.pdf", wantErr: true},
		{path: "receipt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := imageMediaType(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTopCategory(t *testing.T) {
	categories := []model.Category{
		{Key: "food"},
		{Key: "cafe"},
		{Key: model.CatchAllKey},
	}

	point := engine.TrendPoint{
		Month:      "2025-01",
		ByCategory: map[string]int64{"food": 100, "cafe": 900},
	}
	assert.Equal(t, "cafe", topCategory(point, categories))

	empty := engine.TrendPoint{Month: "2025-02", ByCategory: map[string]int64{}}
	assert.Equal(t, "-", topCategory(empty, categories))
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{
		"add", "list", "edit", "delete", "summary", "trend",
		"categories", "export", "import", "scan", "reset", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "command %q not registered", name)
	}
}
