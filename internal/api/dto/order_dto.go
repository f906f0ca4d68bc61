package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// OrderCreateRequest is the typed payload for placing an order.
type OrderCreateRequest struct {
	Price        float64 `json:"price"`
	RestaurantID string  `json:"restaurantId"`
}

// OrderResponse is the wire shape of an order.
type OrderResponse struct {
	ID           string             `json:"id"`
	Price        float64            `json:"price"`
	Status       domain.OrderStatus `json:"status"`
	UserID       string             `json:"userId"`
	RestaurantID string             `json:"restaurantId"`
	CreatedAt    time.Time          `json:"created_at"`
}

// NewOrderResponse maps a domain order.
func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		Price:        order.Price,
		Status:       order.Status,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		CreatedAt:    order.CreatedAt,
	}
}

// NewOrderListResponse maps a slice of domain orders.
func NewOrderListResponse(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}
