package domain

import "time"

// OrderStatus represents lifecycle states for an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a purchase placed by a user against a restaurant.
type Order struct {
	ID           string
	Price        float64
	Status       OrderStatus
	UserID       string
	RestaurantID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
