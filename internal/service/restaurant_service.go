package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/cache"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// RestaurantService manages restaurants and serves menus through the cache.
type RestaurantService struct {
	restaurants repository.RestaurantRepository
	dishes      repository.DishRepository
	menuCache   *cache.MenuCache
	logger      *zap.Logger
}

// NewRestaurantService builds the service.
func NewRestaurantService(restaurants repository.RestaurantRepository, dishes repository.DishRepository, menuCache *cache.MenuCache, logger *zap.Logger) *RestaurantService {
	return &RestaurantService{
		restaurants: restaurants,
		dishes:      dishes,
		menuCache:   menuCache,
		logger:      logger,
	}
}

// Create persists a new restaurant.
func (s *RestaurantService) Create(ctx context.Context, name, description, address string) (*domain.Restaurant, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	restaurant := &domain.Restaurant{Name: name, Description: description, Address: address}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, err
	}
	s.logger.Info("restaurant created", zap.String("restaurant_id", restaurant.ID))
	return restaurant, nil
}

// GetByID returns a single restaurant.
func (s *RestaurantService) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", map[string]any{"id": id})
		}
		return nil, err
	}
	return restaurant, nil
}

// List returns restaurants ordered by name.
func (s *RestaurantService) List(ctx context.Context, limit, offset int) ([]domain.Restaurant, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.restaurants.List(ctx, limit, offset)
}

// Update replaces the restaurant's editable fields.
func (s *RestaurantService) Update(ctx context.Context, id, name, description, address string) (*domain.Restaurant, error) {
	restaurant, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restaurant.Name = name
	restaurant.Description = description
	restaurant.Address = address
	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Remove deletes a restaurant and drops its cached menu.
func (s *RestaurantService) Remove(ctx context.Context, id string) error {
	if err := s.restaurants.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("restaurant", map[string]any{"id": id})
		}
		return err
	}
	s.menuCache.Invalidate(ctx, id)
	return nil
}

// Menu returns the restaurant's dishes, cache-first.
func (s *RestaurantService) Menu(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	if dishes, ok := s.menuCache.Get(ctx, restaurantID); ok {
		return dishes, nil
	}

	if _, err := s.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	dishes, err := s.dishes.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	s.menuCache.Set(ctx, restaurantID, dishes)
	return dishes, nil
}
