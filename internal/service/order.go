package service

import (
	"context"
	"fmt"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/repository"
)

type orderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) OrderService {
	return &orderService{store: store}
}

func (s *orderService) PlaceOrder(ctx context.Context, customerID domain.UserID, restaurantID domain.RestaurantID, text string) (*domain.Order, error) {
	logger.EnterMethod("orderService.PlaceOrder", "customerID", customerID, "restaurantID", restaurantID)
	order := &domain.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		OrderText:    text,
		Status:       domain.OrderStatusPending,
		ContainerIDs: []domain.ContainerID{},
	}
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := requireHolder(ctx, repos, domain.HolderID(customerID), domain.HolderKindCustomer); err != nil {
			return err
		}
		if err := requireHolder(ctx, repos, domain.HolderID(restaurantID), domain.HolderKindRestaurant); err != nil {
			return err
		}
		return repos.Orders().Create(ctx, order)
	})
	if err != nil {
		logger.ExitMethodWithError("orderService.PlaceOrder", err, "customerID", customerID)
		return nil, err
	}
	logger.ExitMethod("orderService.PlaceOrder", "orderID", order.ID)
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	return s.store.Orders().GetByID(ctx, id)
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	switch filter.Status {
	case "", domain.OrderStatusPending, domain.OrderStatusDelivered:
	default:
		return nil, fmt.Errorf("%w: unknown order status %q", domain.ErrInvalidArgument, filter.Status)
	}
	return s.store.Orders().List(ctx, filter)
}
