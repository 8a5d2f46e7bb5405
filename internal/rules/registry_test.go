package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardledger/internal/model"
)

func TestAddKeyword(t *testing.T) {
	original := testCategories()

	updated, err := AddKeyword(original, "cafe", "  투썸  ")
	require.NoError(t, err)

	cafe, ok := Find(updated, "cafe")
	require.True(t, ok)
	assert.Contains(t, cafe.Keywords, "투썸", "keyword should be trimmed before insert")

	// The input registry must not be mutated.
	originalCafe, _ := Find(original, "cafe")
	assert.NotContains(t, originalCafe.Keywords, "투썸")
}

func TestAddKeywordDuplicateSuppressed(t *testing.T) {
	updated, err := AddKeyword(testCategories(), "cafe", "CAFE")
	require.NoError(t, err)

	cafe, _ := Find(updated, "cafe")
	assert.Equal(t, []string{"스타벅스", "커피", "cafe"}, cafe.Keywords,
		"case-insensitive duplicate should leave the registry unchanged")
}

func TestAddKeywordErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		keyword string
		wantErr error
	}{
		{name: "empty keyword", key: "cafe", keyword: "   ", wantErr: ErrEmptyKeyword},
		{name: "unknown category", key: "missing", keyword: "kw", wantErr: ErrUnknownCategory},
		{name: "catch-all rejected", key: model.CatchAllKey, keyword: "kw", wantErr: ErrCatchAllKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddKeyword(testCategories(), tt.key, tt.keyword)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRemoveKeyword(t *testing.T) {
	updated, err := RemoveKeyword(testCategories(), "cafe", "커피")
	require.NoError(t, err)

	cafe, _ := Find(updated, "cafe")
	assert.Equal(t, []string{"스타벅스", "cafe"}, cafe.Keywords)
}

func TestRemoveKeywordMissingIsNoOp(t *testing.T) {
	updated, err := RemoveKeyword(testCategories(), "cafe", "없는키워드")
	require.NoError(t, err)

	cafe, _ := Find(updated, "cafe")
	assert.Equal(t, []string{"스타벅스", "커피", "cafe"}, cafe.Keywords)
}

func TestRemoveKeywordUnknownCategory(t *testing.T) {
	_, err := RemoveKeyword(testCategories(), "missing", "kw")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		categories []model.Category
		wantErr    bool
	}{
		{
			name:       "defaults are valid",
			categories: Defaults(),
		},
		{
			name: "duplicate key",
			categories: []model.Category{
				{Key: "food"},
				{Key: "food"},
				{Key: model.CatchAllKey},
			},
			wantErr: true,
		},
		{
			name: "missing catch-all",
			categories: []model.Category{
				{Key: "food", Keywords: []string{"식당"}},
			},
			wantErr: true,
		},
		{
			name: "keywords on the catch-all",
			categories: []model.Category{
				{Key: "food"},
				{Key: model.CatchAllKey, Keywords: []string{"kw"}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.categories)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultsEndWithCatchAll(t *testing.T) {
	defaults := Defaults()
	require.NotEmpty(t, defaults)
	assert.True(t, defaults[len(defaults)-1].IsCatchAll(),
		"catch-all must sit last so keyword matching checks every real category first")
}
