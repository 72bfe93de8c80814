package repository

import (
	"context"

	"reuse-loop-backend/internal/domain"
)

// Lookups return domain.ErrNotFound for missing rows and creates return
// domain.ErrDuplicateID on key collisions. Inside a transaction, reads lock
// the rows they return until the transaction ends.

type ContainerRepository interface {
	Create(ctx context.Context, c *domain.Container) error
	GetByID(ctx context.Context, id domain.ContainerID) (*domain.Container, error)
	// GetMany returns the containers that exist among ids in creation order,
	// the same order ListClean locks in.
	GetMany(ctx context.Context, ids []domain.ContainerID) ([]domain.Container, error)
	Update(ctx context.Context, c *domain.Container) error
	List(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error)
	// ListClean returns up to limit CLEAN containers, oldest first.
	ListClean(ctx context.Context, limit int32) ([]domain.Container, error)
	// AccrueHours adds hours to every DISTRIBUTED or IN_USE container.
	AccrueHours(ctx context.Context, hours int32) (int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	UpdatePoints(ctx context.Context, id domain.UserID, points int32) error
}

type RestaurantRepository interface {
	Create(ctx context.Context, r *domain.Restaurant) error
	GetByID(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error)
	List(ctx context.Context) ([]domain.Restaurant, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) error
	GetByID(ctx context.Context, id domain.RequestID) (*domain.Request, error)
	Update(ctx context.Context, r *domain.Request) error
	List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error)
}

type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error
	ListTransactions(ctx context.Context, userID domain.UserID, page, pageSize int32) ([]domain.PointsTransaction, int32, error)
}

type Repositories interface {
	Containers() ContainerRepository
	Users() UserRepository
	Restaurants() RestaurantRepository
	Orders() OrderRepository
	Requests() RequestRepository
	Ledger() LedgerRepository
}

// Store is the persisted state shared by every actor. WithinTx runs fn as a
// single atomic unit: either every write made through repos is committed or
// none is.
type Store interface {
	Repositories
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Close() error
}
