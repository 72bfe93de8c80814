package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/repository"
)

// requireHolder checks that holder is a registered customer or restaurant.
func requireHolder(ctx context.Context, repos repository.Repositories, holder domain.HolderID, kind domain.HolderKind) error {
	if holder == "" {
		return fmt.Errorf("%w: holder is required", domain.ErrInvalidArgument)
	}
	switch kind {
	case domain.HolderKindCustomer:
		_, err := repos.Users().GetByID(ctx, domain.UserID(holder))
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownUser, holder)
		}
		return err
	case domain.HolderKindRestaurant:
		_, err := repos.Restaurants().GetByID(ctx, domain.RestaurantID(holder))
		return err
	default:
		return fmt.Errorf("%w: unknown holder kind %q", domain.ErrInvalidArgument, kind)
	}
}

// assignContainers hands exactly the containers in ids to holder. Every
// container must pass eligible or nothing is changed. Must run inside a
// transaction so the eligibility check and the writes are one unit.
func assignContainers(
	ctx context.Context,
	repos repository.Repositories,
	ids []domain.ContainerID,
	holder domain.HolderID,
	kind domain.HolderKind,
	depositCents int32,
	eligible func(c *domain.Container) bool,
) ([]domain.Container, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one container is required", domain.ErrInvalidArgument)
	}
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(ids) {
		return nil, fmt.Errorf("%w: duplicate container ids", domain.ErrInvalidArgument)
	}

	found, err := repos.Containers().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		for _, id := range ids {
			if !slices.ContainsFunc(found, func(c domain.Container) bool { return c.ID == id }) {
				return nil, fmt.Errorf("%w: container %s", domain.ErrNotFound, id)
			}
		}
	}

	ready := 0
	for i := range found {
		if eligible(&found[i]) {
			ready++
		}
	}
	if ready < len(ids) {
		return nil, fmt.Errorf("%w: %d of %d requested containers are available", domain.ErrInsufficientStock, ready, len(ids))
	}

	for i := range found {
		if err := found[i].AssignTo(holder, kind, depositCents); err != nil {
			return nil, err
		}
		if err := repos.Containers().Update(ctx, &found[i]); err != nil {
			return nil, err
		}
	}
	return found, nil
}
