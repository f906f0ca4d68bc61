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

// DishCreate is the typed request for adding a menu item.
type DishCreate struct {
	Name         string
	Description  string
	Price        float64
	Category     domain.DishCategory
	RestaurantID string
}

// DishService manages menu items. Mutations invalidate the cached menu.
type DishService struct {
	dishes      repository.DishRepository
	restaurants repository.RestaurantRepository
	menuCache   *cache.MenuCache
	logger      *zap.Logger
}

// NewDishService builds the service.
func NewDishService(dishes repository.DishRepository, restaurants repository.RestaurantRepository, menuCache *cache.MenuCache, logger *zap.Logger) *DishService {
	return &DishService{
		dishes:      dishes,
		restaurants: restaurants,
		menuCache:   menuCache,
		logger:      logger,
	}
}

// Create validates the restaurant reference and persists the dish.
func (s *DishService) Create(ctx context.Context, req DishCreate) (*domain.Dish, error) {
	if req.Name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	if req.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}
	if _, err := s.restaurants.GetByID(ctx, req.RestaurantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("restaurant", map[string]any{"id": req.RestaurantID})
		}
		return nil, err
	}

	dish := &domain.Dish{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		RestaurantID: req.RestaurantID,
	}
	if err := s.dishes.Create(ctx, dish); err != nil {
		return nil, err
	}
	s.menuCache.Invalidate(ctx, dish.RestaurantID)
	s.logger.Info("dish created", zap.String("dish_id", dish.ID), zap.String("restaurant_id", dish.RestaurantID))
	return dish, nil
}

// GetByID returns a single dish.
func (s *DishService) GetByID(ctx context.Context, id string) (*domain.Dish, error) {
	dish, err := s.dishes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("dish", map[string]any{"id": id})
		}
		return nil, err
	}
	return dish, nil
}

// Update replaces the dish's editable fields.
func (s *DishService) Update(ctx context.Context, id string, req DishCreate) (*domain.Dish, error) {
	dish, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Price <= 0 {
		return nil, apperrors.NewValidationError("price must be positive", nil)
	}
	dish.Name = req.Name
	dish.Description = req.Description
	dish.Price = req.Price
	dish.Category = req.Category
	if err := s.dishes.Update(ctx, dish); err != nil {
		return nil, err
	}
	s.menuCache.Invalidate(ctx, dish.RestaurantID)
	return dish, nil
}

// Remove deletes a dish and invalidates its restaurant's menu.
func (s *DishService) Remove(ctx context.Context, id string) error {
	dish, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.dishes.Delete(ctx, id); err != nil {
		return err
	}
	s.menuCache.Invalidate(ctx, dish.RestaurantID)
	return nil
}
