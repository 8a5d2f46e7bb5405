package storage

import (
	"context"

	"cardledger/internal/model"
	"cardledger/internal/rules"
)

// Categories returns a copy of the registry in classification order.
func (s *SQLiteStore) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CloneCategories(s.categories)
}

// SetCategories replaces the registry wholesale.
func (s *SQLiteStore) SetCategories(ctx context.Context, categories []model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = model.CloneCategories(categories)
	s.persist(ctx, docCategories, s.categories)
}

// ResetCategories restores the default registry.
func (s *SQLiteStore) ResetCategories(ctx context.Context) {
	s.SetCategories(ctx, rules.Defaults())
}
