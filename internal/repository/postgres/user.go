package postgres

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"
)

type userRepository struct {
	db   dbtx
	lock bool
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, name, points, created_on) VALUES ($1, $2, $3, $4)`
	now := time.Now()
	if _, err := r.db.ExecContext(ctx, query, u.ID, u.Name, u.Points, now); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s", domain.ErrDuplicateID, u.ID)
		}
		return err
	}
	u.CreatedOn = now
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, points, created_on FROM users WHERE id = $1` + lockClause(r.lock)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Points, &u.CreatedOn)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return u, nil
}

func (r *userRepository) UpdatePoints(ctx context.Context, id domain.UserID, points int32) error {
	query := `UPDATE users SET points = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, points, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
	}
	return nil
}
