package service

import (
	"context"
	"fmt"
	"time"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/metrics"
	"reuse-loop-backend/internal/repository"
)

type fulfillmentService struct {
	store        repository.Store
	depositCents int32
}

func NewFulfillmentService(store repository.Store, depositCents int32) FulfillmentService {
	return &fulfillmentService{store: store, depositCents: depositCents}
}

// DeliverOrder hands the named containers to the order's customer and marks
// the order delivered. A container is eligible when it is CLEAN or sits in
// the ordering restaurant's stock. Either every container moves and the
// order is delivered, or nothing changes.
func (s *fulfillmentService) DeliverOrder(ctx context.Context, orderID domain.OrderID, containerIDs []domain.ContainerID) (*domain.Order, error) {
	logger.EnterMethod("fulfillmentService.DeliverOrder", "orderID", orderID, "containers", len(containerIDs))

	var order *domain.Order
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		order, err = repos.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusPending {
			return fmt.Errorf("%w: order %d is %s", domain.ErrInvalidTransition, order.ID, order.Status)
		}
		customer := domain.HolderID(order.CustomerID)
		if err := requireHolder(ctx, repos, customer, domain.HolderKindCustomer); err != nil {
			return err
		}

		restaurant := domain.HolderID(order.RestaurantID)
		assigned, err := assignContainers(ctx, repos, containerIDs, customer, domain.HolderKindCustomer, s.depositCents,
			func(c *domain.Container) bool {
				return c.Status == domain.ContainerStatusClean ||
					(c.Status == domain.ContainerStatusDistributed && c.Owner == restaurant)
			})
		if err != nil {
			return err
		}

		now := time.Now()
		order.Status = domain.OrderStatusDelivered
		order.ContainersUsed = int32(len(assigned))
		order.ContainerIDs = make([]domain.ContainerID, 0, len(assigned))
		for _, c := range assigned {
			order.ContainerIDs = append(order.ContainerIDs, c.ID)
		}
		order.DeliveredOn = &now
		return repos.Orders().Update(ctx, order)
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("deliver_order").Inc()
		logger.ExitMethodWithError("fulfillmentService.DeliverOrder", err, "orderID", orderID)
		return nil, err
	}

	metrics.OrdersDeliveredTotal.Inc()
	metrics.ContainerTransitionsTotal.WithLabelValues(string(domain.ContainerStatusInUse)).Add(float64(order.ContainersUsed))
	logger.ExitMethod("fulfillmentService.DeliverOrder", "orderID", orderID, "containersUsed", order.ContainersUsed)
	return order, nil
}

// Distribute fills an open request from the clean pool, oldest containers
// first. A shortage fails at once and leaves the request open.
func (s *fulfillmentService) Distribute(ctx context.Context, requestID domain.RequestID) (*domain.Request, error) {
	logger.EnterMethod("fulfillmentService.Distribute", "requestID", requestID)

	var req *domain.Request
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		req, err = repos.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != domain.RequestStatusOpen {
			return fmt.Errorf("%w: request %d is %s", domain.ErrInvalidTransition, req.ID, req.Status)
		}
		restaurant := domain.HolderID(req.RestaurantID)
		if err := requireHolder(ctx, repos, restaurant, domain.HolderKindRestaurant); err != nil {
			return err
		}

		pool, err := repos.Containers().ListClean(ctx, req.NumRequested)
		if err != nil {
			return err
		}
		if int32(len(pool)) < req.NumRequested {
			return fmt.Errorf("%w: request %d needs %d clean containers, %d available",
				domain.ErrInsufficientStock, req.ID, req.NumRequested, len(pool))
		}

		ids := make([]domain.ContainerID, 0, len(pool))
		for _, c := range pool {
			ids = append(ids, c.ID)
		}
		assigned, err := assignContainers(ctx, repos, ids, restaurant, domain.HolderKindRestaurant, 0,
			func(c *domain.Container) bool { return c.Status == domain.ContainerStatusClean })
		if err != nil {
			return err
		}

		now := time.Now()
		req.Status = domain.RequestStatusFulfilled
		req.ContainerIDs = make([]domain.ContainerID, 0, len(assigned))
		for _, c := range assigned {
			req.ContainerIDs = append(req.ContainerIDs, c.ID)
		}
		req.FulfilledAt = &now
		return repos.Requests().Update(ctx, req)
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("distribute").Inc()
		logger.ExitMethodWithError("fulfillmentService.Distribute", err, "requestID", requestID)
		return nil, err
	}

	metrics.RequestsFulfilledTotal.Inc()
	metrics.ContainerTransitionsTotal.WithLabelValues(string(domain.ContainerStatusDistributed)).Add(float64(len(req.ContainerIDs)))
	logger.ExitMethod("fulfillmentService.Distribute", "requestID", requestID, "containers", len(req.ContainerIDs))
	return req, nil
}
