package service

import (
	"context"
	"fmt"

	"github.com/rl1809/food-order/internal/core/domain"
	"github.com/rl1809/food-order/internal/port"
)

type CatalogService struct {
	catalog port.CatalogRepository
}

func NewCatalogService(catalog port.CatalogRepository) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) ListRestaurants(ctx context.Context, filter domain.RestaurantFilter) ([]domain.Restaurant, error) {
	return s.catalog.ListRestaurants(ctx, filter)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, slug string) (*domain.Restaurant, error) {
	r, err := s.catalog.GetRestaurantBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("restaurant %q: %w", slug, domain.ErrNotFound)
	}
	return r, nil
}

// RestaurantMenu returns the restaurant and its available items.
func (s *CatalogService) RestaurantMenu(ctx context.Context, slug string) (*domain.Restaurant, []domain.MenuItem, error) {
	r, err := s.GetRestaurant(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.catalog.ListMenuItems(ctx, domain.MenuFilter{RestaurantID: r.ID})
	if err != nil {
		return nil, nil, fmt.Errorf("list menu items: %w", err)
	}
	return r, items, nil
}

func (s *CatalogService) SearchMenu(ctx context.Context, filter domain.MenuFilter) ([]domain.MenuItem, error) {
	return s.catalog.ListMenuItems(ctx, filter)
}
