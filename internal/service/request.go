package service

import (
	"context"
	"fmt"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/repository"
)

type requestService struct {
	store repository.Store
}

func NewRequestService(store repository.Store) RequestService {
	return &requestService{store: store}
}

func (s *requestService) RequestReplenishment(ctx context.Context, restaurantID domain.RestaurantID, count int32) (*domain.Request, error) {
	logger.EnterMethod("requestService.RequestReplenishment", "restaurantID", restaurantID, "count", count)
	if count <= 0 {
		err := fmt.Errorf("%w: requested count must be positive", domain.ErrInvalidArgument)
		logger.ExitMethodWithError("requestService.RequestReplenishment", err, "restaurantID", restaurantID)
		return nil, err
	}

	var req *domain.Request
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		restaurant, err := repos.Restaurants().GetByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		req = &domain.Request{
			RestaurantID:   restaurant.ID,
			RestaurantName: restaurant.Name,
			NumRequested:   count,
			Status:         domain.RequestStatusOpen,
			ContainerIDs:   []domain.ContainerID{},
		}
		return repos.Requests().Create(ctx, req)
	})
	if err != nil {
		logger.ExitMethodWithError("requestService.RequestReplenishment", err, "restaurantID", restaurantID)
		return nil, err
	}
	logger.ExitMethod("requestService.RequestReplenishment", "requestID", req.ID)
	return req, nil
}

func (s *requestService) GetRequest(ctx context.Context, id domain.RequestID) (*domain.Request, error) {
	return s.store.Requests().GetByID(ctx, id)
}

func (s *requestService) ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error) {
	switch filter.Status {
	case "", domain.RequestStatusOpen, domain.RequestStatusFulfilled:
	default:
		return nil, fmt.Errorf("%w: unknown request status %q", domain.ErrInvalidArgument, filter.Status)
	}
	return s.store.Requests().List(ctx, filter)
}
