// Package rules implements keyword-based expense categorization and the
// ordered category registry the categorizer runs against.
package rules

import (
	"strings"

	"cardledger/internal/model"
)

// Classify maps a free-text merchant name to a category key.
//
// Categories are walked in registry order, skipping the catch-all, and
// each category's keywords in list order; the first case-insensitive
// substring hit wins. With no hit the catch-all key is returned. The
// function is pure: callers re-run it whenever the merchant text or the
// registry changes.
func Classify(merchant string, categories []model.Category) string {
	lower := strings.ToLower(merchant)
	for _, cat := range categories {
		if cat.IsCatchAll() {
			continue
		}
		for _, kw := range cat.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				return cat.Key
			}
		}
	}
	return model.CatchAllKey
}
