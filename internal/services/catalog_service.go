package services

import (
	"context"
	"time"

	"golang-storefront-backend/internal/models"
	"golang-storefront-backend/internal/repositories"
	"golang-storefront-backend/pkg/cache"
)

// CatalogService serves the restaurant and menu snapshot kept in MongoDB by
// the menu sync worker, with menu reads cached in Redis.
type CatalogService struct {
	catalogRepo repositories.CatalogRepository
	cache       *cache.RedisCache
}

func NewCatalogService(catalogRepo repositories.CatalogRepository, cache *cache.RedisCache) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		cache:       cache,
	}
}

func (s *CatalogService) ListRestaurants(ctx context.Context, page, limit int) ([]models.Restaurant, error) {
	offset := (page - 1) * limit
	return s.catalogRepo.ListRestaurants(ctx, limit, offset)
}

func (s *CatalogService) GetRestaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	return s.catalogRepo.GetRestaurant(ctx, restaurantID)
}

func (s *CatalogService) GetMenu(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	cacheKey := "storefront:menu:" + restaurantID
	var cached []models.MenuItem
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	items, err := s.catalogRepo.GetMenu(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cacheKey, items, time.Minute*10)

	return items, nil
}

func (s *CatalogService) GetMenuItem(ctx context.Context, productID string) (*models.MenuItem, error) {
	return s.catalogRepo.GetMenuItem(ctx, productID)
}
