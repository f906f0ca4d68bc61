package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

// RestaurantsHandler exposes restaurant endpoints.
type RestaurantsHandler struct {
	restaurants *service.RestaurantService
}

// NewRestaurantsHandler constructs handler.
func NewRestaurantsHandler(restaurantService *service.RestaurantService) *RestaurantsHandler {
	return &RestaurantsHandler{restaurants: restaurantService}
}

// Create handles POST /api/restaurants.
func (h *RestaurantsHandler) Create(c *fiber.Ctx) error {
	var req dto.RestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.restaurants.Create(c.UserContext(), req.Name, req.Description, req.Address)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewRestaurantResponse(restaurant)})
}

// Get handles GET /api/restaurants/:restaurantId.
func (h *RestaurantsHandler) Get(c *fiber.Ctx) error {
	restaurant, err := h.restaurants.GetByID(c.UserContext(), c.Params("restaurantId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantResponse(restaurant)})
}

// List handles GET /api/restaurants.
func (h *RestaurantsHandler) List(c *fiber.Ctx) error {
	restaurants, err := h.restaurants.List(c.UserContext(), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantListResponse(restaurants)})
}

// Menu handles GET /api/restaurants/:restaurantId/menu.
func (h *RestaurantsHandler) Menu(c *fiber.Ctx) error {
	dishes, err := h.restaurants.Menu(c.UserContext(), c.Params("restaurantId"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDishListResponse(dishes)})
}

// Update handles PUT /api/restaurants/:restaurantId.
func (h *RestaurantsHandler) Update(c *fiber.Ctx) error {
	var req dto.RestaurantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	restaurant, err := h.restaurants.Update(c.UserContext(), c.Params("restaurantId"), req.Name, req.Description, req.Address)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRestaurantResponse(restaurant)})
}

// Delete handles DELETE /api/restaurants/:restaurantId.
func (h *RestaurantsHandler) Delete(c *fiber.Ctx) error {
	if err := h.restaurants.Remove(c.UserContext(), c.Params("restaurantId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
