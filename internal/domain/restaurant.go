package domain

import "time"

// Restaurant is the domain model for a venue offering dishes.
type Restaurant struct {
	ID          string
	Name        string
	Description string
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
