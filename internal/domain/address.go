package domain

import "time"

// Address is a delivery address owned by a user.
type Address struct {
	ID        string
	Street    string
	City      string
	ZipCode   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
