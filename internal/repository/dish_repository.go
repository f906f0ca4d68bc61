package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// DishRepository defines persistence access for dishes.
type DishRepository interface {
	Create(ctx context.Context, dish *domain.Dish) error
	Update(ctx context.Context, dish *domain.Dish) error
	GetByID(ctx context.Context, id string) (*domain.Dish, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Dish, error)
	Delete(ctx context.Context, id string) error
}

type dishRepository struct {
	pool *pgxpool.Pool
}

// NewDishRepository returns a Postgres-backed implementation.
func NewDishRepository(pool *pgxpool.Pool) DishRepository {
	return &dishRepository{pool: pool}
}

func (r *dishRepository) Create(ctx context.Context, dish *domain.Dish) error {
	const query = `
        INSERT INTO dishes (name, description, price, category, restaurant_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		dish.Name,
		dish.Description,
		dish.Price,
		dish.Category,
		dish.RestaurantID,
	).Scan(&dish.ID, &dish.CreatedAt, &dish.UpdatedAt)
}

func (r *dishRepository) Update(ctx context.Context, dish *domain.Dish) error {
	const query = `
        UPDATE dishes SET name=$1, description=$2, price=$3, category=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		dish.Name,
		dish.Description,
		dish.Price,
		dish.Category,
		dish.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *dishRepository) GetByID(ctx context.Context, id string) (*domain.Dish, error) {
	const query = `
        SELECT id, name, description, price, category, restaurant_id, created_at, updated_at
        FROM dishes WHERE id=$1`

	var dish domain.Dish
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dish.ID,
		&dish.Name,
		&dish.Description,
		&dish.Price,
		&dish.Category,
		&dish.RestaurantID,
		&dish.CreatedAt,
		&dish.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]domain.Dish, error) {
	const query = `
        SELECT id, name, description, price, category, restaurant_id, created_at, updated_at
        FROM dishes WHERE restaurant_id=$1 ORDER BY category, name`

	rows, err := r.pool.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dishes := make([]domain.Dish, 0)
	for rows.Next() {
		var dish domain.Dish
		if err := rows.Scan(
			&dish.ID,
			&dish.Name,
			&dish.Description,
			&dish.Price,
			&dish.Category,
			&dish.RestaurantID,
			&dish.CreatedAt,
			&dish.UpdatedAt,
		); err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}
	return dishes, rows.Err()
}

func (r *dishRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM dishes WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
