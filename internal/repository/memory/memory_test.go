package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContainers(t *testing.T, s *Store, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		require.NoError(t, s.Containers().Create(context.Background(), domain.NewContainer(domain.ContainerID(fmt.Sprintf("C%03d", i)))))
	}
}

func TestContainerRepository_CreateAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 2)

	c, err := s.Containers().GetByID(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusClean, c.Status)

	err = s.Containers().Create(ctx, domain.NewContainer("C001"))
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	_, err = s.Containers().GetByID(ctx, "C999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContainerRepository_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 1)

	c, err := s.Containers().GetByID(ctx, "C001")
	require.NoError(t, err)
	c.Status = domain.ContainerStatusInUse
	c.History = append(c.History, "U1")

	again, err := s.Containers().GetByID(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusClean, again.Status)
	assert.Empty(t, again.History)
}

func TestContainerRepository_ListAndListClean(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 12)

	c, _ := s.Containers().GetByID(ctx, "C002")
	require.NoError(t, c.AssignTo("R1", domain.HolderKindRestaurant, 0))
	require.NoError(t, s.Containers().Update(ctx, c))

	clean, err := s.Containers().ListClean(ctx, 3)
	require.NoError(t, err)
	require.Len(t, clean, 3)
	assert.Equal(t, []domain.ContainerID{"C001", "C003", "C004"}, []domain.ContainerID{clean[0].ID, clean[1].ID, clean[2].ID})

	matched, err := s.Containers().List(ctx, domain.ContainerFilter{IDContains: "C01"})
	require.NoError(t, err)
	assert.Len(t, matched, 3)

	stock, err := s.Containers().List(ctx, domain.ContainerFilter{Status: domain.ContainerStatusDistributed, Owner: "R1"})
	require.NoError(t, err)
	require.Len(t, stock, 1)
	assert.Equal(t, domain.ContainerID("C002"), stock[0].ID)
}

func TestContainerRepository_AccrueHours(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 3)

	c, _ := s.Containers().GetByID(ctx, "C001")
	require.NoError(t, c.AssignTo("U1", domain.HolderKindCustomer, 500))
	require.NoError(t, s.Containers().Update(ctx, c))

	n, err := s.Containers().AccrueHours(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	c, _ = s.Containers().GetByID(ctx, "C001")
	assert.Equal(t, int32(2), c.HoursInUse)
	idle, _ := s.Containers().GetByID(ctx, "C002")
	assert.Zero(t, idle.HoursInUse)
}

func TestStore_WithinTxRollsBack(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 1)
	require.NoError(t, s.Users().Create(ctx, &domain.User{ID: "U1"}))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := repos.Containers().GetByID(ctx, "C001")
		if err != nil {
			return err
		}
		if err := c.AssignTo("U1", domain.HolderKindCustomer, 500); err != nil {
			return err
		}
		if err := repos.Containers().Update(ctx, c); err != nil {
			return err
		}
		if err := repos.Users().UpdatePoints(ctx, "U1", 50); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	c, _ := s.Containers().GetByID(ctx, "C001")
	assert.Equal(t, domain.ContainerStatusClean, c.Status)
	assert.Empty(t, c.History)
	u, _ := s.Users().GetByID(ctx, "U1")
	assert.Zero(t, u.Points)
}

func TestStore_WithinTxCommits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		return repos.Requests().Create(ctx, &domain.Request{RestaurantID: "R1", NumRequested: 2, Status: domain.RequestStatusOpen})
	})
	require.NoError(t, err)

	req, err := s.Requests().GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), req.NumRequested)
}

func TestStore_ConcurrentTransactionsDoNotOverAllocate(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	seedContainers(t, s, 5)

	var wg sync.WaitGroup
	results := make([]error, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			holder := domain.HolderID(fmt.Sprintf("R%d", i))
			results[i] = s.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
				clean, err := repos.Containers().ListClean(ctx, 3)
				if err != nil {
					return err
				}
				if len(clean) < 3 {
					return domain.ErrInsufficientStock
				}
				for _, c := range clean {
					if err := c.AssignTo(holder, domain.HolderKindRestaurant, 0); err != nil {
						return err
					}
					if err := repos.Containers().Update(ctx, &c); err != nil {
						return err
					}
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)

	all, err := s.Containers().List(ctx, domain.ContainerFilter{})
	require.NoError(t, err)
	for _, c := range all {
		assert.LessOrEqual(t, len(c.History), 1, "container %s assigned twice", c.ID)
	}
}

func TestLedgerRepository_ListTransactionsPages(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Ledger().CreateTransaction(ctx, &domain.PointsTransaction{UserID: "U1", Amount: int32(i), Type: domain.TransactionTypeAdjustment}))
	}
	require.NoError(t, s.Ledger().CreateTransaction(ctx, &domain.PointsTransaction{UserID: "U2", Amount: 99}))

	page, total, err := s.Ledger().ListTransactions(ctx, "U1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(5), total)
	require.Len(t, page, 2)
	assert.Equal(t, int32(5), page[0].Amount)

	page, _, err = s.Ledger().ListTransactions(ctx, "U1", 3, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int32(1), page[0].Amount)

	page, _, _ = s.Ledger().ListTransactions(ctx, "U1", 4, 2)
	assert.Empty(t, page)
}

func TestContainerRepository_GetManyInCreationOrder(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for _, id := range []domain.ContainerID{"CF1", "CA2", "CC3"} {
		require.NoError(t, s.Containers().Create(ctx, domain.NewContainer(id)))
	}

	got, err := s.Containers().GetMany(ctx, []domain.ContainerID{"CC3", "CF1", "CX9"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.ContainerID("CF1"), got[0].ID)
	assert.Equal(t, domain.ContainerID("CC3"), got[1].ID)

	clean, err := s.Containers().ListClean(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []domain.ContainerID{"CF1", "CA2", "CC3"}, []domain.ContainerID{clean[0].ID, clean[1].ID, clean[2].ID})
}
