package service

import (
	"context"

	"reuse-loop-backend/internal/domain"
)

// ContainerService is the container registry: it owns every container record
// and the status state machine.
type ContainerService interface {
	CreateContainers(ctx context.Context, count int32) ([]domain.Container, error)
	RegisterContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error)
	GetContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error)
	ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error)
	TransitionContainer(ctx context.Context, id domain.ContainerID, next domain.ContainerStatus, opts TransitionOptions) (*domain.Container, error)
	AssignContainers(ctx context.Context, ids []domain.ContainerID, holder domain.HolderID, kind domain.HolderKind) ([]domain.Container, error)
	AccrueHours(ctx context.Context, hours int32) (int64, error)
}

// TransitionOptions carries the inputs some moves need. Holder is required
// when moving into DISTRIBUTED or IN_USE; ReturnedClean is required when
// leaving IN_USE.
type TransitionOptions struct {
	Holder        domain.HolderID
	ReturnedClean *bool
}

type LedgerService interface {
	RegisterUser(ctx context.Context, user *domain.User) error
	GetBalance(ctx context.Context, userID domain.UserID) (int32, error)
	Credit(ctx context.Context, userID domain.UserID, amount int32, reference string) (int32, error)
	Debit(ctx context.Context, userID domain.UserID, amount int32, reference string) (int32, error)
	Redeem(ctx context.Context, userID domain.UserID, rewardName string) (domain.Reward, int32, error)
	Spin(ctx context.Context, userID domain.UserID) (*domain.SpinResult, error)
	ListRewards() []domain.Reward
	GetTransactions(ctx context.Context, userID domain.UserID, page, pageSize int32) ([]domain.PointsTransaction, int32, error)
	GetCustomerSummary(ctx context.Context, userID domain.UserID) (*domain.CustomerSummary, error)
}

type RestaurantService interface {
	RegisterRestaurant(ctx context.Context, r *domain.Restaurant) error
	GetRestaurant(ctx context.Context, id domain.RestaurantID) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	GetStock(ctx context.Context, id domain.RestaurantID) ([]domain.Container, error)
}

// OrderService is the customer order queue.
type OrderService interface {
	PlaceOrder(ctx context.Context, customerID domain.UserID, restaurantID domain.RestaurantID, text string) (*domain.Order, error)
	GetOrder(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

// RequestService is the restaurant replenishment queue.
type RequestService interface {
	RequestReplenishment(ctx context.Context, restaurantID domain.RestaurantID, count int32) (*domain.Request, error)
	GetRequest(ctx context.Context, id domain.RequestID) (*domain.Request, error)
	ListRequests(ctx context.Context, filter domain.RequestFilter) ([]domain.Request, error)
}

// FulfillmentService coordinates the workflows that move containers out of
// the registry on behalf of an order or a request. It owns no state.
type FulfillmentService interface {
	DeliverOrder(ctx context.Context, orderID domain.OrderID, containerIDs []domain.ContainerID) (*domain.Order, error)
	Distribute(ctx context.Context, requestID domain.RequestID) (*domain.Request, error)
}
