package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/logger"
	"reuse-loop-backend/internal/metrics"
	"reuse-loop-backend/internal/repository"
	"reuse-loop-backend/internal/utils"
)

const maxCreateBatch = 100

// IDGenerator produces identifiers for new containers.
type IDGenerator func() domain.ContainerID

// NewUUIDGenerator returns IDs made of prefix and the first eight hex
// characters of a random UUID, e.g. "C1A2B3C4D".
func NewUUIDGenerator(prefix string) IDGenerator {
	return func() domain.ContainerID {
		raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
		return domain.ContainerID(prefix + raw[:8])
	}
}

type containerService struct {
	store        repository.Store
	newID        IDGenerator
	depositCents int32
}

func NewContainerService(store repository.Store, newID IDGenerator, depositCents int32) ContainerService {
	return &containerService{store: store, newID: newID, depositCents: depositCents}
}

func (s *containerService) CreateContainers(ctx context.Context, count int32) ([]domain.Container, error) {
	logger.EnterMethod("containerService.CreateContainers", "count", count)
	if count < 1 || count > maxCreateBatch {
		err := fmt.Errorf("%w: count must be between 1 and %d", domain.ErrInvalidArgument, maxCreateBatch)
		logger.ExitMethodWithError("containerService.CreateContainers", err, "count", count)
		return nil, err
	}

	created := make([]domain.Container, 0, count)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		for range count {
			c := domain.NewContainer(s.newID())
			if err := repos.Containers().Create(ctx, c); err != nil {
				return err
			}
			created = append(created, *c)
		}
		return nil
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("create_containers").Inc()
		logger.ExitMethodWithError("containerService.CreateContainers", err, "count", count)
		return nil, err
	}

	metrics.ContainersCreatedTotal.Add(float64(len(created)))
	logger.ExitMethod("containerService.CreateContainers", "count", len(created))
	return created, nil
}

func (s *containerService) RegisterContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, fmt.Errorf("%w: container id is required", domain.ErrInvalidArgument)
	}
	c := domain.NewContainer(id)
	if err := s.store.Containers().Create(ctx, c); err != nil {
		return nil, err
	}
	metrics.ContainersCreatedTotal.Inc()
	return c, nil
}

func (s *containerService) GetContainer(ctx context.Context, id domain.ContainerID) (*domain.Container, error) {
	return s.store.Containers().GetByID(ctx, id)
}

func (s *containerService) ListContainers(ctx context.Context, filter domain.ContainerFilter) ([]domain.Container, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown container status %q", domain.ErrInvalidArgument, filter.Status)
	}
	return s.store.Containers().List(ctx, filter)
}

// TransitionContainer moves a container one step through its lifecycle.
// A clean return credits the owner in the same transaction; if the credit
// fails the container keeps its status. An uncleaned return earns nothing.
func (s *containerService) TransitionContainer(ctx context.Context, id domain.ContainerID, next domain.ContainerStatus, opts TransitionOptions) (*domain.Container, error) {
	logger.EnterMethod("containerService.TransitionContainer", "containerID", id, "next", next)
	if !next.Valid() {
		err := fmt.Errorf("%w: unknown container status %q", domain.ErrInvalidArgument, next)
		logger.ExitMethodWithError("containerService.TransitionContainer", err, "containerID", id)
		return nil, err
	}

	var (
		out    *domain.Container
		credit int32
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		c, err := repos.Containers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !c.CanTransitionTo(next) {
			return fmt.Errorf("%w: container %s cannot move from %s to %s", domain.ErrInvalidTransition, c.ID, c.Status, next)
		}

		switch next {
		case domain.ContainerStatusDistributed, domain.ContainerStatusInUse:
			kind := domain.HolderKindCustomer
			if next == domain.ContainerStatusDistributed {
				kind = domain.HolderKindRestaurant
			}
			if err := requireHolder(ctx, repos, opts.Holder, kind); err != nil {
				return err
			}
			if err := c.AssignTo(opts.Holder, kind, s.depositCents); err != nil {
				return err
			}
		case domain.ContainerStatusReturned:
			if opts.ReturnedClean == nil {
				return fmt.Errorf("%w: returned_clean is required when returning a container", domain.ErrInvalidArgument)
			}
			if err := c.MarkReturned(); err != nil {
				return err
			}
			if *opts.ReturnedClean {
				credit = utils.CalculatePoints(c.HoursInUse, true)
			}
			if credit > 0 {
				_, err := applyPoints(ctx, repos, domain.PointsTransaction{
					UserID:      domain.UserID(c.Owner),
					Amount:      credit,
					Type:        domain.TransactionTypeReturnCredit,
					Reference:   string(c.ID),
					Description: fmt.Sprintf("Returned container %s after %d hours", c.ID, c.HoursInUse),
				})
				if err != nil {
					return err
				}
			}
		case domain.ContainerStatusClean:
			if err := c.MarkClean(); err != nil {
				return err
			}
		}

		if err := repos.Containers().Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("transition_container").Inc()
		logger.ExitMethodWithError("containerService.TransitionContainer", err, "containerID", id, "next", next)
		return nil, err
	}

	metrics.ContainerTransitionsTotal.WithLabelValues(string(next)).Inc()
	if credit > 0 {
		metrics.PointsCreditedTotal.WithLabelValues(string(domain.TransactionTypeReturnCredit)).Add(float64(credit))
	}
	logger.ExitMethod("containerService.TransitionContainer", "containerID", id, "status", out.Status, "credited", credit)
	return out, nil
}

func (s *containerService) AssignContainers(ctx context.Context, ids []domain.ContainerID, holder domain.HolderID, kind domain.HolderKind) ([]domain.Container, error) {
	logger.EnterMethod("containerService.AssignContainers", "holder", holder, "kind", kind, "count", len(ids))
	var assigned []domain.Container
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		if err := requireHolder(ctx, repos, holder, kind); err != nil {
			return err
		}
		var err error
		assigned, err = assignContainers(ctx, repos, ids, holder, kind, s.depositCents, func(c *domain.Container) bool {
			return c.AssignableTo(kind)
		})
		return err
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("assign_containers").Inc()
		logger.ExitMethodWithError("containerService.AssignContainers", err, "holder", holder)
		return nil, err
	}

	metrics.ContainerTransitionsTotal.WithLabelValues(string(kind.AssignedStatus())).Add(float64(len(assigned)))
	logger.ExitMethod("containerService.AssignContainers", "holder", holder, "count", len(assigned))
	return assigned, nil
}

func (s *containerService) AccrueHours(ctx context.Context, hours int32) (int64, error) {
	if hours <= 0 {
		return 0, fmt.Errorf("%w: hours must be positive", domain.ErrInvalidArgument)
	}
	n, err := s.store.Containers().AccrueHours(ctx, hours)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("accrue_hours").Inc()
		return 0, err
	}
	metrics.HoursAccruedContainers.Add(float64(n) * float64(hours))
	return n, nil
}
