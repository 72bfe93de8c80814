package postgres

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"

	"github.com/lib/pq"
)

const containerColumns = `id, status, hours_in_use, times_used, owner, deposit_cents, history, created_on, updated_on`

type containerRepository struct {
	db   dbtx
	lock bool
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContainer(row rowScanner) (*domain.Container, error) {
	c := &domain.Container{}
	var history []string
	if err := row.Scan(&c.ID, &c.Status, &c.HoursInUse, &c.TimesUsed, &c.Owner, &c.DepositCents, pq.Array(&history), &c.CreatedOn, &c.UpdatedOn); err != nil {
		return nil, err
	}
	c.History = make([]domain.HolderID, len(history))
	for i, h := range history {
		c.History[i] = domain.HolderID(h)
	}
	return c, nil
}

func historyStrings(history []domain.HolderID) []string {
	out := make([]string, len(history))
	for i, h := range history {
		out[i] = string(h)
	}
	return out
}

func (r *containerRepository) Create(ctx context.Context, c *domain.Container) error {
	logger.EnterMethod("containerRepository.Create", "containerID", c.ID)
	query := `INSERT INTO containers (id, status, hours_in_use, times_used, owner, deposit_cents, history, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Status, c.HoursInUse, c.TimesUsed, c.Owner, c.DepositCents, pq.Array(historyStrings(c.History)), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: container %s", domain.ErrDuplicateID, c.ID)
		}
		logger.ExitMethodWithError("containerRepository.Create", err, "containerID", c.ID)
		return err
	}
	c.CreatedOn = now
	c.UpdatedOn = now
	logger.ExitMethod("containerRepository.Create", "containerID", c.ID)
	return nil
}

func (r *containerRepository) GetByID(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = $1` + lockClause(r.lock)
	c, err := scanContainer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "container", id)
	}
	return c, nil
}

func (r *containerRepository) GetMany(ctx context.Context, ids []domain.ContainerID) ([]domain.Container, error) {
	// Every locking read orders by seq so concurrent transactions acquire
	// row locks in the same order.
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = ANY($1) ORDER BY seq` + lockClause(r.lock)
	return r.query(ctx, query, pq.Array(containerIDStrings(ids)))
}

func (r *containerRepository) Update(ctx context.Context, c *domain.Container) error {
	query := `UPDATE containers SET status=$1, hours_in_use=$2, times_used=$3, owner=$4, deposit_cents=$5, history=$6, updated_on=$7 WHERE id=$8`
	now := time.Now()
	logger.DatabaseCall("containers.update", query, "containerID", c.ID, "status", c.Status)
	res, err := r.db.ExecContext(ctx, query, c.Status, c.HoursInUse, c.TimesUsed, c.Owner, c.DepositCents, pq.Array(historyStrings(c.History)), now, c.ID)
	logResult("containers.update", res, err)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("%w: container %s", domain.ErrNotFound, c.ID)
	}
	c.UpdatedOn = now
	return nil
}

func (r *containerRepository) List(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE 1=1`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.IDContains != "" {
		args = append(args, "%"+filter.IDContains+"%")
		query += fmt.Sprintf(" AND id LIKE $%d", len(args))
	}
	if filter.Owner != "" {
		args = append(args, filter.Owner)
		query += fmt.Sprintf(" AND owner = $%d", len(args))
	}
	query += " ORDER BY seq" + lockClause(r.lock)
	return r.query(ctx, query, args...)
}

func (r *containerRepository) ListClean(ctx context.Context, limit int32) ([]domain.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE status = $1 ORDER BY seq LIMIT $2` + lockClause(r.lock)
	return r.query(ctx, query, domain.ContainerStatusClean, limit)
}

func (r *containerRepository) AccrueHours(ctx context.Context, hours int32) (int64, error) {
	query := `UPDATE containers SET hours_in_use = hours_in_use + $1, updated_on = $2 WHERE status IN ($3, $4)`
	logger.DatabaseCall("containers.accrue_hours", query, "hours", hours)
	res, err := r.db.ExecContext(ctx, query, hours, time.Now(), domain.ContainerStatusDistributed, domain.ContainerStatusInUse)
	logResult("containers.accrue_hours", res, err)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *containerRepository) query(ctx context.Context, query string, args ...any) ([]domain.Container, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var containers []domain.Container
	for rows.Next() {
		c, err := scanContainer(rows)
		if err != nil {
			return nil, err
		}
		containers = append(containers, *c)
	}
	return containers, rows.Err()
}
