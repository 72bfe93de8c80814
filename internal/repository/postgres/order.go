package postgres

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"

	"github.com/lib/pq"
)

const orderColumns = `id, customer_id, restaurant_id, order_text, status, containers_used, container_ids, created_on, delivered_on`

type orderRepository struct {
	db   dbtx
	lock bool
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	o := &domain.Order{}
	var ids []string
	if err := row.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.OrderText, &o.Status, &o.ContainersUsed, pq.Array(&ids), &o.CreatedOn, &o.DeliveredOn); err != nil {
		return nil, err
	}
	o.ContainerIDs = toContainerIDs(ids)
	return o, nil
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `INSERT INTO orders (customer_id, restaurant_id, order_text, status, containers_used, container_ids, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now()
	err := r.db.QueryRowContext(ctx, query, o.CustomerID, o.RestaurantID, o.OrderText, o.Status, o.ContainersUsed, pq.Array(containerIDStrings(o.ContainerIDs)), now).Scan(&o.ID)
	if err != nil {
		return err
	}
	o.CreatedOn = now
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1` + lockClause(r.lock)
	o, err := scanOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "order", id)
	}
	return o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `UPDATE orders SET status=$1, containers_used=$2, container_ids=$3, delivered_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, o.Status, o.ContainersUsed, pq.Array(containerIDStrings(o.ContainerIDs)), o.DeliveredOn, o.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: order %d", domain.ErrNotFound, o.ID)
	}
	return nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []interface{}{}
	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		query += fmt.Sprintf(" AND customer_id = $%d", len(args))
	}
	if filter.RestaurantID != "" {
		args = append(args, filter.RestaurantID)
		query += fmt.Sprintf(" AND restaurant_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}
