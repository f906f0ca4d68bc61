package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// AddressesHandler exposes delivery address endpoints.
type AddressesHandler struct {
	addresses *service.AddressService
}

// NewAddressesHandler constructs handler.
func NewAddressesHandler(addressService *service.AddressService) *AddressesHandler {
	return &AddressesHandler{addresses: addressService}
}

// Create handles POST /api/addresses. The owner is the authenticated caller.
func (h *AddressesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	address, err := h.addresses.Create(c.UserContext(), req.Street, req.City, req.ZipCode, principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAddressResponse(address)})
}

// Get handles GET /api/addresses/:addressId.
func (h *AddressesHandler) Get(c *fiber.Ctx) error {
	address, err := h.addresses.GetByID(c.UserContext(), c.Params("addressId"))
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, address); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAddressResponse(address)})
}

// List handles GET /api/addresses, scoped to the caller.
func (h *AddressesHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	addresses, err := h.addresses.ListByUser(c.UserContext(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAddressListResponse(addresses)})
}

// Update handles PUT /api/addresses/:addressId.
func (h *AddressesHandler) Update(c *fiber.Ctx) error {
	address, err := h.addresses.GetByID(c.UserContext(), c.Params("addressId"))
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, address); err != nil {
		return err
	}

	var req dto.AddressRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	address, err = h.addresses.Update(c.UserContext(), address.ID, req.Street, req.City, req.ZipCode)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAddressResponse(address)})
}

// Delete handles DELETE /api/addresses/:addressId.
func (h *AddressesHandler) Delete(c *fiber.Ctx) error {
	address, err := h.addresses.GetByID(c.UserContext(), c.Params("addressId"))
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, address); err != nil {
		return err
	}

	if err := h.addresses.Remove(c.UserContext(), address.ID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AddressesHandler) authorizeOwner(c *fiber.Ctx, address *domain.Address) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Role != domain.RoleAdmin && address.UserID != principal.User.ID {
		return apperrors.NewForbidden("not your address")
	}
	return nil
}
