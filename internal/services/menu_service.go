package services

import (
	"context"
	"fmt"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

type menuService struct {
	menuRepo repositories.MenuRepository
}

// NewMenuService creates a new menu service instance
func NewMenuService(menuRepo repositories.MenuRepository) MenuService {
	return &menuService{menuRepo: menuRepo}
}

// GetMenus returns category, tag and month facets. Not found when all are empty.
func (s *menuService) GetMenus(ctx context.Context) (*models.Menus, error) {
	categories, err := s.menuRepo.CountByTaxonomy(ctx, query.CategoryTaxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}

	tags, err := s.menuRepo.CountByTaxonomy(ctx, query.TagTaxonomy)
	if err != nil {
		return nil, fmt.Errorf("failed to count tags: %w", err)
	}

	dates, err := s.menuRepo.CountByMonth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count dates: %w", err)
	}

	menus := &models.Menus{Categories: categories, Tags: tags, Dates: dates}
	if menus.IsEmpty() {
		return nil, repositories.NotFoundError("menus", "all")
	}
	return menus, nil
}
