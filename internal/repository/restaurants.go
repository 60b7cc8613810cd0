package repository

import (
	"context"

	"github.com/restaurant-ops/labor-compliance/backend/internal/domain"
)

func (r *Repository) GetRestaurantByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	query := `
		SELECT name, manager_name, manager_email, timezone, created_at
		FROM restaurants WHERE id = $1
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	restaurant := &domain.Restaurant{
		ID: id,
	}

	dst := []any{&restaurant.Name, &restaurant.ManagerName, &restaurant.ManagerEmail, &restaurant.Timezone, &restaurant.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return restaurant, nil
}

func (r *Repository) CreateRestaurant(ctx context.Context, restaurant *domain.Restaurant) error {
	query := `
		INSERT INTO restaurants (name, manager_name, manager_email, timezone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	args := []any{restaurant.Name, restaurant.ManagerName, restaurant.ManagerEmail, restaurant.Timezone}
	return r.dbpool.QueryRowContext(ctx, query, args...).Scan(&restaurant.ID, &restaurant.CreatedAt)
}
