// Package memory is an in-process repository.Store. All state sits behind a
// single lock; a transaction works on a private copy of the dataset that is
// swapped in only when the transaction succeeds.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/repository"
)

type dataset struct {
	containers     map[domain.ContainerID]*domain.Container
	containerOrder []domain.ContainerID
	users          map[domain.UserID]*domain.User
	restaurants    map[domain.RestaurantID]*domain.Restaurant
	orders         map[domain.OrderID]*domain.Order
	requests       map[domain.RequestID]*domain.Request
	transactions   []domain.PointsTransaction
	orderSeq       int64
	requestSeq     int64
	transactionSeq int64
}

func newDataset() *dataset {
	return &dataset{
		containers:  make(map[domain.ContainerID]*domain.Container),
		users:       make(map[domain.UserID]*domain.User),
		restaurants: make(map[domain.RestaurantID]*domain.Restaurant),
		orders:      make(map[domain.OrderID]*domain.Order),
		requests:    make(map[domain.RequestID]*domain.Request),
	}
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		containers:     make(map[domain.ContainerID]*domain.Container, len(d.containers)),
		containerOrder: slices.Clone(d.containerOrder),
		users:          make(map[domain.UserID]*domain.User, len(d.users)),
		restaurants:    maps.Clone(d.restaurants),
		orders:         make(map[domain.OrderID]*domain.Order, len(d.orders)),
		requests:       make(map[domain.RequestID]*domain.Request, len(d.requests)),
		transactions:   slices.Clone(d.transactions),
		orderSeq:       d.orderSeq,
		requestSeq:     d.requestSeq,
		transactionSeq: d.transactionSeq,
	}
	for id, c := range d.containers {
		out.containers[id] = c.Clone()
	}
	for id, u := range d.users {
		cp := *u
		out.users[id] = &cp
	}
	for id, o := range d.orders {
		out.orders[id] = cloneOrder(o)
	}
	for id, r := range d.requests {
		out.requests[id] = cloneRequest(r)
	}
	return out
}

type Store struct {
	mu   sync.RWMutex
	data *dataset
	repos
}

func NewStore() *Store {
	s := &Store{data: newDataset()}
	s.repos = newRepos(s, nil)
	return s
}

// WithinTx serialises fn against every other transaction and write.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, newRepos(s, work)); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) Close() error {
	return nil
}

// access routes a repository call either to the transaction's working copy
// or, outside a transaction, to the live dataset under the store lock.
type access struct {
	store *Store
	tx    *dataset
}

func (a access) read(fn func(d *dataset) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()
	return fn(a.store.data)
}

func (a access) write(fn func(d *dataset) error) error {
	if a.tx != nil {
		return fn(a.tx)
	}
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return fn(a.store.data)
}

type repos struct {
	containers  *containerRepository
	users       *userRepository
	restaurants *restaurantRepository
	orders      *orderRepository
	requests    *requestRepository
	ledger      *ledgerRepository
}

func newRepos(s *Store, tx *dataset) repos {
	a := access{store: s, tx: tx}
	return repos{
		containers:  &containerRepository{a},
		users:       &userRepository{a},
		restaurants: &restaurantRepository{a},
		orders:      &orderRepository{a},
		requests:    &requestRepository{a},
		ledger:      &ledgerRepository{a},
	}
}

func (r repos) Containers() repository.ContainerRepository   { return r.containers }
func (r repos) Users() repository.UserRepository             { return r.users }
func (r repos) Restaurants() repository.RestaurantRepository { return r.restaurants }
func (r repos) Orders() repository.OrderRepository           { return r.orders }
func (r repos) Requests() repository.RequestRepository       { return r.requests }
func (r repos) Ledger() repository.LedgerRepository          { return r.ledger }
