package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"reuse-loop-backend/internal/domain"
)

type userRepository struct {
	access
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.users[u.ID]; ok {
			return fmt.Errorf("%w: user %s", domain.ErrDuplicateID, u.ID)
		}
		u.CreatedOn = time.Now()
		cp := *u
		d.users[u.ID] = &cp
		return nil
	})
}

func (r *userRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	var out *domain.User
	err := r.read(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		cp := *u
		out = &cp
		return nil
	})
	return out, err
}

func (r *userRepository) UpdatePoints(ctx context.Context, id domain.UserID, points int32) error {
	return r.write(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
		}
		u.Points = points
		return nil
	})
}

type restaurantRepository struct {
	access
}

func (r *restaurantRepository) Create(ctx context.Context, rest *domain.Restaurant) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.restaurants[rest.ID]; ok {
			return fmt.Errorf("%w: restaurant %s", domain.ErrDuplicateID, rest.ID)
		}
		rest.CreatedOn = time.Now()
		cp := *rest
		d.restaurants[rest.ID] = &cp
		return nil
	})
}

func (r *restaurantRepository) GetByID(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error) {
	var out *domain.Restaurant
	err := r.read(func(d *dataset) error {
		rest, ok := d.restaurants[id]
		if !ok {
			return fmt.Errorf("%w: restaurant %s", domain.ErrNotFound, id)
		}
		cp := *rest
		out = &cp
		return nil
	})
	return out, err
}

func (r *restaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	var out []domain.Restaurant
	err := r.read(func(d *dataset) error {
		for _, rest := range d.restaurants {
			out = append(out, *rest)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func cloneOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.ContainerIDs = slices.Clone(o.ContainerIDs)
	return &cp
}

type orderRepository struct {
	access
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.write(func(d *dataset) error {
		d.orderSeq++
		o.ID = domain.OrderID(d.orderSeq)
		o.CreatedOn = time.Now()
		d.orders[o.ID] = cloneOrder(o)
		return nil
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	var out *domain.Order
	err := r.read(func(d *dataset) error {
		o, ok := d.orders[id]
		if !ok {
			return fmt.Errorf("%w: order %d", domain.ErrNotFound, id)
		}
		out = cloneOrder(o)
		return nil
	})
	return out, err
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.orders[o.ID]; !ok {
			return fmt.Errorf("%w: order %d", domain.ErrNotFound, o.ID)
		}
		d.orders[o.ID] = cloneOrder(o)
		return nil
	})
}

func (r *orderRepository) List(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	err := r.read(func(d *dataset) error {
		for _, o := range d.orders {
			if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
				continue
			}
			if filter.RestaurantID != "" && o.RestaurantID != filter.RestaurantID {
				continue
			}
			if filter.Status != "" && o.Status != filter.Status {
				continue
			}
			out = append(out, *cloneOrder(o))
		}
		return nil
	})
	// Latest first.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, err
}

func cloneRequest(req *domain.Request) *domain.Request {
	cp := *req
	cp.ContainerIDs = slices.Clone(req.ContainerIDs)
	return &cp
}

type requestRepository struct {
	access
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	return r.write(func(d *dataset) error {
		d.requestSeq++
		req.ID = domain.RequestID(d.requestSeq)
		req.CreatedAt = time.Now()
		d.requests[req.ID] = cloneRequest(req)
		return nil
	})
}

func (r *requestRepository) GetByID(ctx context.Context, id domain.RequestID) (*domain.Request, error) {
	var out *domain.Request
	err := r.read(func(d *dataset) error {
		req, ok := d.requests[id]
		if !ok {
			return fmt.Errorf("%w: request %d", domain.ErrNotFound, id)
		}
		out = cloneRequest(req)
		return nil
	})
	return out, err
}

func (r *requestRepository) Update(ctx context.Context, req *domain.Request) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.requests[req.ID]; !ok {
			return fmt.Errorf("%w: request %d", domain.ErrNotFound, req.ID)
		}
		d.requests[req.ID] = cloneRequest(req)
		return nil
	})
}

func (r *requestRepository) List(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	var out []domain.Request
	err := r.read(func(d *dataset) error {
		for _, req := range d.requests {
			if filter.RestaurantID != "" && req.RestaurantID != filter.RestaurantID {
				continue
			}
			if filter.Status != "" && req.Status != filter.Status {
				continue
			}
			out = append(out, *cloneRequest(req))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

type ledgerRepository struct {
	access
}

func (r *ledgerRepository) CreateTransaction(ctx context.Context, tx *domain.PointsTransaction) error {
	return r.write(func(d *dataset) error {
		d.transactionSeq++
		tx.ID = d.transactionSeq
		tx.CreatedOn = time.Now()
		d.transactions = append(d.transactions, *tx)
		return nil
	})
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID domain.UserID, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	var matched []domain.PointsTransaction
	err := r.read(func(d *dataset) error {
		// Newest first.
		for i := len(d.transactions) - 1; i >= 0; i-- {
			if d.transactions[i].UserID == userID {
				matched = append(matched, d.transactions[i])
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	total := int32(len(matched))
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return nil, total, nil
	}
	end := min(start+pageSize, total)
	return matched[start:end], total, nil
}
