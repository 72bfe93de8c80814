package service_test

import (
	"context"
	"strings"
	"testing"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUIDGenerator(t *testing.T) {
	gen := service.NewUUIDGenerator("C")
	a, b := gen(), gen()
	assert.Len(t, string(a), 9)
	assert.True(t, strings.HasPrefix(string(a), "C"))
	assert.Equal(t, strings.ToUpper(string(a)), string(a))
	assert.NotEqual(t, a, b)
}

func TestContainerService_CreateContainers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		created, err := f.containers.CreateContainers(ctx, 3)
		require.NoError(t, err)
		require.Len(t, created, 3)
		for _, c := range created {
			assert.Equal(t, domain.ContainerStatusClean, c.Status)
			assert.Empty(t, c.Owner)
			assert.Zero(t, c.DepositCents)
			assert.Zero(t, c.TimesUsed)
		}
	})

	t.Run("CountOutOfRange", func(t *testing.T) {
		_, err := f.containers.CreateContainers(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		_, err = f.containers.CreateContainers(ctx, 101)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("CollisionRollsBackBatch", func(t *testing.T) {
		_, err := f.containers.RegisterContainer(ctx, "C005")
		require.NoError(t, err)

		// The generator's next IDs are C004, C005, C006; C005 collides.
		_, err = f.containers.CreateContainers(ctx, 3)
		assert.ErrorIs(t, err, domain.ErrDuplicateID)

		_, err = f.containers.GetContainer(ctx, "C004")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContainerService_RegisterContainer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.containers.RegisterContainer(ctx, "BOWL-1")
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusClean, c.Status)

	_, err = f.containers.RegisterContainer(ctx, "BOWL-1")
	assert.ErrorIs(t, err, domain.ErrDuplicateID)

	_, err = f.containers.RegisterContainer(ctx, " ")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

// A clean container handed to U1 and returned clean right away earns the
// full 1000 points and goes back to the pool with one recorded use.
func TestContainerService_ReturnScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.pool(t, 1)

	c, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusInUse, service.TransitionOptions{Holder: "U1"})
	require.NoError(t, err)
	assert.Equal(t, domain.HolderID("U1"), c.Owner)
	assert.Equal(t, testDeposit, c.DepositCents)
	assert.Equal(t, []domain.HolderID{"U1"}, c.History)

	c, err = f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusReturned, service.TransitionOptions{ReturnedClean: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusReturned, c.Status)
	assert.Zero(t, c.DepositCents)

	balance, err := f.ledger.GetBalance(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int32(1000), balance)

	c, err = f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusClean, service.TransitionOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusClean, c.Status)
	assert.Empty(t, c.Owner)
	assert.Equal(t, int32(1), c.TimesUsed)

	txs, total, err := f.ledger.GetTransactions(ctx, "U1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Equal(t, domain.TransactionTypeReturnCredit, txs[0].Type)
	assert.Equal(t, "C001", txs[0].Reference)
}

func TestContainerService_UncleanReturnEarnsNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.pool(t, 1)

	_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusInUse, service.TransitionOptions{Holder: "U1"})
	require.NoError(t, err)

	c, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusReturned, service.TransitionOptions{ReturnedClean: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, domain.ContainerStatusReturned, c.Status)
	assert.Zero(t, c.DepositCents)

	balance, err := f.ledger.GetBalance(ctx, "U1")
	require.NoError(t, err)
	assert.Zero(t, balance)

	_, total, err := f.ledger.GetTransactions(ctx, "U1", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestContainerService_CleanReturnAfterAccrual(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.pool(t, 1)

	_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusInUse, service.TransitionOptions{Holder: "U1"})
	require.NoError(t, err)

	n, err := f.containers.AccrueHours(ctx, 84)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusReturned, service.TransitionOptions{ReturnedClean: boolPtr(true)})
	require.NoError(t, err)

	balance, err := f.ledger.GetBalance(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int32(500), balance)
}

func TestContainerService_TransitionErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.pool(t, 1)

	t.Run("NotFound", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C999", domain.ContainerStatusClean, service.TransitionOptions{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatus("LOST"), service.TransitionOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("SkippedStep", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusReturned, service.TransitionOptions{ReturnedClean: boolPtr(true)})
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("UnknownHolder", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusInUse, service.TransitionOptions{Holder: "U9"})
		assert.ErrorIs(t, err, domain.ErrUnknownUser)
	})

	t.Run("MissingHolder", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusDistributed, service.TransitionOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("ReturnNeedsCleanFlag", func(t *testing.T) {
		_, err := f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusInUse, service.TransitionOptions{Holder: "U1"})
		require.NoError(t, err)
		_, err = f.containers.TransitionContainer(ctx, "C001", domain.ContainerStatusReturned, service.TransitionOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)

		c, err := f.containers.GetContainer(ctx, "C001")
		require.NoError(t, err)
		assert.Equal(t, domain.ContainerStatusInUse, c.Status)
	})

	// Failed transitions leave the record untouched.
	c, err := f.containers.GetContainer(ctx, "C001")
	require.NoError(t, err)
	assert.Equal(t, []domain.HolderID{"U1"}, c.History)
}

func TestContainerService_AssignContainers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.restaurant(t, "R1", "Green Bowl")
	f.pool(t, 3)

	t.Run("ToRestaurant", func(t *testing.T) {
		got, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C001", "C002"}, "R1", domain.HolderKindRestaurant)
		require.NoError(t, err)
		for _, c := range got {
			assert.Equal(t, domain.ContainerStatusDistributed, c.Status)
			assert.Zero(t, c.DepositCents)
		}
	})

	t.Run("AllOrNothing", func(t *testing.T) {
		// C001 is now DISTRIBUTED and cannot go to another restaurant.
		_, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C003", "C001"}, "R1", domain.HolderKindRestaurant)
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		c, err := f.containers.GetContainer(ctx, "C003")
		require.NoError(t, err)
		assert.Equal(t, domain.ContainerStatusClean, c.Status)
	})

	t.Run("Duplicates", func(t *testing.T) {
		_, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C003", "C003"}, "U1", domain.HolderKindCustomer)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C003", "C404"}, "U1", domain.HolderKindCustomer)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownRestaurant", func(t *testing.T) {
		_, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C003"}, "R9", domain.HolderKindRestaurant)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestContainerService_ListContainers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "U1", 0)
	f.pool(t, 3)
	_, err := f.containers.AssignContainers(ctx, []domain.ContainerID{"C002"}, "U1", domain.HolderKindCustomer)
	require.NoError(t, err)

	clean, err := f.containers.ListContainers(ctx, domain.ContainerFilter{Status: domain.ContainerStatusClean})
	require.NoError(t, err)
	assert.Len(t, clean, 2)

	matched, err := f.containers.ListContainers(ctx, domain.ContainerFilter{IDContains: "002"})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, domain.ContainerStatusInUse, matched[0].Status)

	_, err = f.containers.ListContainers(ctx, domain.ContainerFilter{Status: "BROKEN"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestContainerService_AccrueHoursRejectsNonPositive(t *testing.T) {
	f := newFixture(t)
	_, err := f.containers.AccrueHours(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
