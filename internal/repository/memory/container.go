package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"reuse-loop-backend/internal/domain"
)

type containerRepository struct {
	access
}

func (r *containerRepository) Create(ctx context.Context, c *domain.Container) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.containers[c.ID]; ok {
			return fmt.Errorf("%w: container %s", domain.ErrDuplicateID, c.ID)
		}
		now := time.Now()
		c.CreatedOn = now
		c.UpdatedOn = now
		d.containers[c.ID] = c.Clone()
		d.containerOrder = append(d.containerOrder, c.ID)
		return nil
	})
}

func (r *containerRepository) GetByID(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	var out *domain.Container
	err := r.read(func(d *dataset) error {
		c, ok := d.containers[id]
		if !ok {
			return fmt.Errorf("%w: container %s", domain.ErrNotFound, id)
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

func (r *containerRepository) GetMany(ctx context.Context, ids []domain.ContainerID) ([]domain.Container, error) {
	var out []domain.Container
	err := r.read(func(d *dataset) error {
		for _, id := range d.containerOrder {
			if slices.Contains(ids, id) {
				out = append(out, *d.containers[id].Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *containerRepository) Update(ctx context.Context, c *domain.Container) error {
	return r.write(func(d *dataset) error {
		if _, ok := d.containers[c.ID]; !ok {
			return fmt.Errorf("%w: container %s", domain.ErrNotFound, c.ID)
		}
		c.UpdatedOn = time.Now()
		d.containers[c.ID] = c.Clone()
		return nil
	})
}

func (r *containerRepository) List(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	var out []domain.Container
	err := r.read(func(d *dataset) error {
		for _, id := range d.containerOrder {
			c := d.containers[id]
			if filter.Status != "" && c.Status != filter.Status {
				continue
			}
			if filter.IDContains != "" && !strings.Contains(string(c.ID), filter.IDContains) {
				continue
			}
			if filter.Owner != "" && c.Owner != filter.Owner {
				continue
			}
			out = append(out, *c.Clone())
		}
		return nil
	})
	return out, err
}

func (r *containerRepository) ListClean(ctx context.Context, limit int32) ([]domain.Container, error) {
	var out []domain.Container
	err := r.read(func(d *dataset) error {
		for _, id := range d.containerOrder {
			if int32(len(out)) >= limit {
				break
			}
			if c := d.containers[id]; c.Status == domain.ContainerStatusClean {
				out = append(out, *c.Clone())
			}
		}
		return nil
	})
	return out, err
}

func (r *containerRepository) AccrueHours(ctx context.Context, hours int32) (int64, error) {
	var n int64
	err := r.write(func(d *dataset) error {
		now := time.Now()
		for _, c := range d.containers {
			if c.Held() {
				c.HoursInUse += hours
				c.UpdatedOn = now
				n++
			}
		}
		return nil
	})
	return n, err
}
