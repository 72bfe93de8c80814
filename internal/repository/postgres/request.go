package postgres

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"

	"github.com/lib/pq"
)

const requestColumns = `id, restaurant_id, restaurant_name, num_requested, status, container_ids, created_at, fulfilled_at`

type requestRepository struct {
	db   dbtx
	lock bool
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	req := &domain.Request{}
	var ids []string
	if err := row.Scan(&req.ID, &req.RestaurantID, &req.RestaurantName, &req.NumRequested, &req.Status, pq.Array(&ids), &req.CreatedAt, &req.FulfilledAt); err != nil {
		return nil, err
	}
	req.ContainerIDs = toContainerIDs(ids)
	return req, nil
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	query := `INSERT INTO requests (restaurant_id, restaurant_name, num_requested, status, container_ids, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, req.RestaurantID, req.RestaurantName, req.NumRequested, req.Status, pq.Array(containerIDStrings(req.ContainerIDs)), now).Scan(&req.ID)
	if err != nil {
		return err
	}
	req.CreatedAt = now
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, id domain.RequestID) (*domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = $1` + lockClause(r.lock)
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "request", id)
	}
	return req, nil
}

func (r *requestRepository) Update(ctx context.Context, req *domain.Request) error {
	query := `UPDATE requests SET status=$1, container_ids=$2, fulfilled_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, req.Status, pq.Array(containerIDStrings(req.ContainerIDs)), req.FulfilledAt, req.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: request %d", domain.ErrNotFound, req.ID)
	}
	return nil
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE 1=1`
	args := []interface{}{}
	if filter.RestaurantID != "" {
		args = append(args, filter.RestaurantID)
		query += fmt.Sprintf(" AND restaurant_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}
