package rules

import (
	"errors"
	"fmt"
	"strings"

	"cardledger/internal/model"
)

var (
	// ErrUnknownCategory indicates a key not present in the registry.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrEmptyKeyword indicates a keyword that is empty after trimming.
	ErrEmptyKeyword = errors.New("keyword cannot be empty")
	// ErrCatchAllKeyword indicates an attempt to attach keywords to the
	// catch-all category.
	ErrCatchAllKeyword = errors.New("catch-all category cannot have keywords")
)

// AddKeyword returns a copy of the registry with keyword appended to the
// category matching key. Keywords are trimmed before insert; empty
// keywords are rejected since an empty string is a substring of every
// merchant name. Case-insensitive duplicates are suppressed silently.
func AddKeyword(categories []model.Category, key, keyword string) ([]model.Category, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrEmptyKeyword
	}

	out := model.CloneCategories(categories)
	for i := range out {
		if out[i].Key != key {
			continue
		}
		if out[i].IsCatchAll() {
			return nil, ErrCatchAllKeyword
		}
		for _, kw := range out[i].Keywords {
			if strings.EqualFold(kw, keyword) {
				return out, nil
			}
		}
		out[i].Keywords = append(out[i].Keywords, keyword)
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}

// RemoveKeyword returns a copy of the registry with keyword removed from
// the category matching key. A keyword that is not present is a no-op.
func RemoveKeyword(categories []model.Category, key, keyword string) ([]model.Category, error) {
	out := model.CloneCategories(categories)
	for i := range out {
		if out[i].Key != key {
			continue
		}
		kept := out[i].Keywords[:0]
		for _, kw := range out[i].Keywords {
			if !strings.EqualFold(kw, keyword) {
				kept = append(kept, kw)
			}
		}
		out[i].Keywords = kept
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}

// Find returns the category with the given key, if present.
func Find(categories []model.Category, key string) (model.Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return model.Category{}, false
}

// Validate checks the registry invariants: unique keys, exactly one
// catch-all category, and no keywords on the catch-all.
func Validate(categories []model.Category) error {
	seen := make(map[string]bool, len(categories))
	catchAlls := 0
	for _, c := range categories {
		if seen[c.Key] {
			return fmt.Errorf("duplicate category key %q", c.Key)
		}
		seen[c.Key] = true
		if c.IsCatchAll() {
			catchAlls++
			if len(c.Keywords) != 0 {
				return ErrCatchAllKeyword
			}
		}
	}
	if catchAlls != 1 {
		return fmt.Errorf("registry must contain exactly one %q category, found %d", model.CatchAllKey, catchAlls)
	}
	return nil
}
