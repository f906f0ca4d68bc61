package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// OrdersHandler exposes order endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Create handles POST /api/orders. The owner is the authenticated caller.
func (h *OrdersHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.OrderCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.Create(c.UserContext(), service.OrderCreate{
		Price:        req.Price,
		UserID:       principal.User.ID,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Get handles GET /api/orders/:orderId.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, order); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// List handles GET /api/orders. Non-admins only see their own orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	filter := repository.OrderFilter{
		Status: domain.OrderStatus(c.Query("status")),
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}

	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Role != domain.RoleAdmin {
		filter.UserID = principal.User.ID
	}

	orders, err := h.orders.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderListResponse(orders)})
}

// Complete handles POST /api/orders/:orderId/complete.
func (h *OrdersHandler) Complete(c *fiber.Ctx) error {
	order, err := h.orders.Complete(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Cancel handles POST /api/orders/:orderId/cancel.
func (h *OrdersHandler) Cancel(c *fiber.Ctx) error {
	order, err := h.orders.GetByID(c.UserContext(), c.Params("orderId"))
	if err != nil {
		return err
	}
	if err := h.authorizeOwner(c, order); err != nil {
		return err
	}

	order, err = h.orders.Cancel(c.UserContext(), order.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewOrderResponse(order)})
}

// Delete handles DELETE /api/orders/:orderId.
func (h *OrdersHandler) Delete(c *fiber.Ctx) error {
	if err := h.orders.Remove(c.UserContext(), c.Params("orderId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrdersHandler) authorizeOwner(c *fiber.Ctx, order *domain.Order) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Role != domain.RoleAdmin && order.UserID != principal.User.ID {
		return apperrors.NewForbidden("not your order")
	}
	return nil
}
