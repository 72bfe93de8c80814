package service

import (
	"context"
	"fmt"
	"strings"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/repository"
)

type restaurantService struct {
	store repository.Store
}

func NewRestaurantService(store repository.Store) RestaurantService {
	return &restaurantService{store: store}
}

func (s *restaurantService) RegisterRestaurant(ctx context.Context, r *domain.Restaurant) error {
	if strings.TrimSpace(string(r.ID)) == "" {
		return fmt.Errorf("%w: restaurant id is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: restaurant name is required", domain.ErrInvalidArgument)
	}
	return s.store.Restaurants().Create(ctx, r)
}

func (s *restaurantService) GetRestaurant(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error) {
	return s.store.Restaurants().GetByID(ctx, id)
}

func (s *restaurantService) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.store.Restaurants().List(ctx)
}

// GetStock lists the containers the restaurant holds and has not yet
// handed to a customer.
func (s *restaurantService) GetStock(ctx context.Context, id domain.RestaurantID) ([]domain.Container, error) {
	if _, err := s.store.Restaurants().GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Containers().List(ctx, domain.ContainerFilter{
		Status: domain.ContainerStatusDistributed,
		Owner:  domain.HolderID(id),
	})
}
