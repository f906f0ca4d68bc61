package dto

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// AddressRequest payload for creating or updating an address.
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
}

// AddressResponse is the wire shape of an address.
type AddressResponse struct {
	ID        string    `json:"id"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	ZipCode   string    `json:"zipCode"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAddressResponse maps a domain address.
func NewAddressResponse(address *domain.Address) AddressResponse {
	return AddressResponse{
		ID:        address.ID,
		Street:    address.Street,
		City:      address.City,
		ZipCode:   address.ZipCode,
		UserID:    address.UserID,
		CreatedAt: address.CreatedAt,
	}
}

// NewAddressListResponse maps a slice of domain addresses.
func NewAddressListResponse(addresses []domain.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		out = append(out, NewAddressResponse(&addresses[i]))
	}
	return out
}
