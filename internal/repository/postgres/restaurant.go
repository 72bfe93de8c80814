package postgres

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"
)

type restaurantRepository struct {
	db dbtx
}

func (r *restaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	query := `INSERT INTO restaurants (id, name, created_on) VALUES ($1, $2, $3)`
	now := time.Now()
	if _, err := r.db.ExecContext(ctx, query, rest.ID, rest.Name, now); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: restaurant %s", domain.ErrDuplicateID, rest.ID)
		}
		return err
	}
	rest.CreatedOn = now
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error) {
	rest := &domain.Restaurant{}
	query := `SELECT id, name, created_on FROM restaurants WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&rest.ID, &rest.Name, &rest.CreatedOn); err != nil {
		return nil, notFound(err, "restaurant", id)
	}
	return rest, nil
}

func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_on FROM restaurants ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.CreatedOn); err != nil {
			return nil, err
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}
