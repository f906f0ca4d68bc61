package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AddressService manages delivery addresses.
type AddressService struct {
	addresses repository.AddressRepository
	users     repository.UserRepository
	logger    *zap.Logger
}

// NewAddressService builds the service.
func NewAddressService(addresses repository.AddressRepository, users repository.UserRepository, logger *zap.Logger) *AddressService {
	return &AddressService{addresses: addresses, users: users, logger: logger}
}

// Create validates the owner reference and persists the address.
func (s *AddressService) Create(ctx context.Context, street, city, zipCode, userID string) (*domain.Address, error) {
	if street == "" || city == "" {
		return nil, apperrors.NewValidationError("street and city required", nil)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return nil, err
	}

	address := &domain.Address{Street: street, City: city, ZipCode: zipCode, UserID: userID}
	if err := s.addresses.Create(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// GetByID returns a single address.
func (s *AddressService) GetByID(ctx context.Context, id string) (*domain.Address, error) {
	address, err := s.addresses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("address", map[string]any{"id": id})
		}
		return nil, err
	}
	return address, nil
}

// ListByUser returns a user's addresses.
func (s *AddressService) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	return s.addresses.ListByUser(ctx, userID)
}

// Update replaces the address's editable fields.
func (s *AddressService) Update(ctx context.Context, id, street, city, zipCode string) (*domain.Address, error) {
	address, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	address.Street = street
	address.City = city
	address.ZipCode = zipCode
	if err := s.addresses.Update(ctx, address); err != nil {
		return nil, err
	}
	return address, nil
}

// Remove deletes an address.
func (s *AddressService) Remove(ctx context.Context, id string) error {
	if err := s.addresses.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("address", map[string]any{"id": id})
		}
		return err
	}
	return nil
}
