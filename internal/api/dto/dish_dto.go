package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// DishRequest payload for creating or updating a dish.
type DishRequest struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Category     domain.DishCategory `json:"category"`
	RestaurantID string              `json:"restaurantId"`
}

// DishResponse is the wire shape of a dish.
type DishResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        float64             `json:"price"`
	Category     domain.DishCategory `json:"category"`
	RestaurantID string              `json:"restaurantId"`
	CreatedAt    time.Time           `json:"created_at"`
}

// NewDishResponse maps a domain dish.
func NewDishResponse(dish *domain.Dish) DishResponse {
	return DishResponse{
		ID:           dish.ID,
		Name:         dish.Name,
		Description:  dish.Description,
		Price:        dish.Price,
		Category:     dish.Category,
		RestaurantID: dish.RestaurantID,
		CreatedAt:    dish.CreatedAt,
	}
}

// NewDishListResponse maps a slice of domain dishes.
func NewDishListResponse(dishes []domain.Dish) []DishResponse {
	out := make([]DishResponse, 0, len(dishes))
	for i := range dishes {
		out = append(out, NewDishResponse(&dishes[i]))
	}
	return out
}
