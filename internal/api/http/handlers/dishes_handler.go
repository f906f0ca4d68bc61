package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// DishesHandler exposes dish endpoints.
type DishesHandler struct {
	dishes *service.DishService
}

// NewDishesHandler constructs handler.
func NewDishesHandler(dishService *service.DishService) *DishesHandler {
	return &DishesHandler{dishes: dishService}
}

// Create handles POST /api/dishes.
func (h *DishesHandler) Create(c *fiber.Ctx) error {
	var req dto.DishRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dish, err := h.dishes.Create(c.UserContext(), service.DishCreate{
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		RestaurantID: req.RestaurantID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDishResponse(dish)})
}

// Get handles GET /api/dishes/:dishId.
func (h *DishesHandler) Get(c *fiber.Ctx) error {
	dish, err := h.dishes.GetByID(c.UserContext(), c.Params("dishId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDishResponse(dish)})
}

// Update handles PUT /api/dishes/:dishId.
func (h *DishesHandler) Update(c *fiber.Ctx) error {
	var req dto.DishRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	dish, err := h.dishes.Update(c.UserContext(), c.Params("dishId"), service.DishCreate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDishResponse(dish)})
}

// Delete handles DELETE /api/dishes/:dishId.
func (h *DishesHandler) Delete(c *fiber.Ctx) error {
	if err := h.dishes.Remove(c.UserContext(), c.Params("dishId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
