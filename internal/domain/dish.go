package domain

import "time"

// DishCategory groups dishes on a menu.
type DishCategory string

const (
	DishCategoryStarter DishCategory = "STARTER"
	DishCategoryMain    DishCategory = "MAIN"
	DishCategoryDessert DishCategory = "DESSERT"
	DishCategoryDrink   DishCategory = "DRINK"
)

// Dish is a single menu item belonging to a restaurant.
type Dish struct {
	ID           string
	Name         string
	Description  string
	Price        float64
	Category     DishCategory
	RestaurantID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
