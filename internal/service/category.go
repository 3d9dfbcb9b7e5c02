package service

import (
	"context"
	"fmt"

	"github.com/sumarplus/backend/internal/models"
)

// ListCategories returns all categories ordered by name.
func (s *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.Categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
