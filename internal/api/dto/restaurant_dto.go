package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// RestaurantRequest payload for creating or updating a restaurant.
type RestaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// RestaurantResponse is the wire shape of a restaurant.
type RestaurantResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewRestaurantResponse maps a domain restaurant.
func NewRestaurantResponse(restaurant *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:          restaurant.ID,
		Name:        restaurant.Name,
		Description: restaurant.Description,
		Address:     restaurant.Address,
		CreatedAt:   restaurant.CreatedAt,
	}
}

// NewRestaurantListResponse maps a slice of domain restaurants.
func NewRestaurantListResponse(restaurants []domain.Restaurant) []RestaurantResponse {
	out := make([]RestaurantResponse, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, NewRestaurantResponse(&restaurants[i]))
	}
	return out
}
