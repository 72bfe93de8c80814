package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type repos struct {
	containers  repository.ContainerRepository
	users       repository.UserRepository
	restaurants repository.RestaurantRepository
	orders      repository.OrderRepository
	requests    repository.RequestRepository
	ledger      repository.LedgerRepository
}

func newRepos(db dbtx, lock bool) repos {
	return repos{
		containers:  &containerRepository{db: db, lock: lock},
		users:       &userRepository{db: db, lock: lock},
		restaurants: &restaurantRepository{db: db},
		orders:      &orderRepository{db: db, lock: lock},
		requests:    &requestRepository{db: db, lock: lock},
		ledger:      &ledgerRepository{db: db},
	}
}

func (r repos) Containers() repository.ContainerRepository   { return r.containers }
func (r repos) Users() repository.UserRepository             { return r.users }
func (r repos) Restaurants() repository.RestaurantRepository { return r.restaurants }
func (r repos) Orders() repository.OrderRepository           { return r.orders }
func (r repos) Requests() repository.RequestRepository       { return r.requests }
func (r repos) Ledger() repository.LedgerRepository          { return r.ledger }

type Store struct {
	db *sql.DB
	repos
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		repos: newRepos(db, false),
	}
}

// Open connects with either the lib/pq ("postgres") or pgx ("pgx") driver.
func Open(driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "postgres", "pgx":
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// WithinTx runs fn in a database transaction. Reads made through the repos
// passed to fn take row locks, so check-then-act sequences cannot interleave.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(ctx, newRepos(tx, true)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return false
}

func notFound(err error, what string, id any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s %v", domain.ErrNotFound, what, id)
	}
	return err
}

func lockClause(lock bool) string {
	if lock {
		return " FOR UPDATE"
	}
	return ""
}

func containerIDStrings(ids []domain.ContainerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

func toContainerIDs(ss []string) []domain.ContainerID {
	out := make([]domain.ContainerID, len(ss))
	for i, s := range ss {
		out[i] = domain.ContainerID(s)
	}
	return out
}

func logResult(operation string, res sql.Result, err error) {
	var n int64
	if err == nil {
		n, _ = res.RowsAffected()
	}
	logger.DatabaseResult(operation, n, err)
}
