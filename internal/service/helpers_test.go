package service_test

import (
	"context"
	"fmt"
	"testing"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/repository/memory"
	"reuse-loop-backend/internal/service"

	"github.com/stretchr/testify/require"
)

const testDeposit = int32(500)

type fixture struct {
	store       *memory.Store
	containers  service.ContainerService
	ledger      service.LedgerService
	restaurants service.RestaurantService
	orders      service.OrderService
	requests    service.RequestService
	fulfillment service.FulfillmentService
}

type fixedRand struct{ n int }

func (f fixedRand) IntN(int) int { return f.n }

// sequentialIDs yields C001, C002, ...
func sequentialIDs() service.IDGenerator {
	n := 0
	return func() domain.ContainerID {
		n++
		return domain.ContainerID(fmt.Sprintf("C%03d", n))
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		store:       store,
		containers:  service.NewContainerService(store, sequentialIDs(), testDeposit),
		ledger:      service.NewLedgerService(store, 100, fixedRand{n: 0}),
		restaurants: service.NewRestaurantService(store),
		orders:      service.NewOrderService(store),
		requests:    service.NewRequestService(store),
		fulfillment: service.NewFulfillmentService(store, testDeposit),
	}
}

func (f *fixture) user(t *testing.T, id string, points int32) {
	t.Helper()
	require.NoError(t, f.ledger.RegisterUser(context.Background(), &domain.User{ID: domain.UserID(id), Name: id, Points: points}))
}

func (f *fixture) restaurant(t *testing.T, id, name string) {
	t.Helper()
	require.NoError(t, f.restaurants.RegisterRestaurant(context.Background(), &domain.Restaurant{ID: domain.RestaurantID(id), Name: name}))
}

func (f *fixture) pool(t *testing.T, n int32) []domain.Container {
	t.Helper()
	created, err := f.containers.CreateContainers(context.Background(), n)
	require.NoError(t, err)
	return created
}

func boolPtr(b bool) *bool { return &b }
