package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"reuse-loop-backend/internal/domain"
	"reuse-loop-backend/internal/metrics"
	"reuse-loop-backend/internal/repository"
	"reuse-loop-backend/internal/utils"
)

type ledgerService struct {
	store    repository.Store
	spinCost int32
	rng      utils.IntN
}

type lockedRand struct{}

func (lockedRand) IntN(n int) int { return rand.IntN(n) }

// NewLedgerService builds the points ledger. A nil rng uses the shared
// math/rand/v2 source, which is safe for concurrent use.
func NewLedgerService(store repository.Store, spinCost int32, rng utils.IntN) LedgerService {
	if rng == nil {
		rng = lockedRand{}
	}
	return &ledgerService{store: store, spinCost: spinCost, rng: rng}
}

// applyPoints moves a user's balance by delta and records the transaction.
// A debit that would take the balance below zero fails with
// ErrInsufficientBalance and writes nothing.
func applyPoints(ctx context.Context, repos repository.Repositories, tx domain.PointsTransaction) (int32, error) {
	user, err := repos.Users().GetByID(ctx, tx.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownUser, tx.UserID)
	}
	if err != nil {
		return 0, err
	}

	next := int64(user.Points) + int64(tx.Amount)
	if next < 0 {
		return 0, fmt.Errorf("%w: balance %d, requested %d", domain.ErrInsufficientBalance, user.Points, -tx.Amount)
	}
	if next > math.MaxInt32 {
		return 0, fmt.Errorf("%w: balance overflow", domain.ErrInvalidArgument)
	}

	if err := repos.Users().UpdatePoints(ctx, tx.UserID, int32(next)); err != nil {
		return 0, err
	}
	if err := repos.Ledger().CreateTransaction(ctx, &tx); err != nil {
		return 0, err
	}
	return int32(next), nil
}

func (s *ledgerService) RegisterUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}
	if user.Points < 0 {
		return fmt.Errorf("%w: points must not be negative", domain.ErrInvalidArgument)
	}
	return s.store.Users().Create(ctx, user)
}

func (s *ledgerService) GetBalance(ctx context.Context, userID domain.UserID) (int32, error) {
	user, err := s.store.Users().GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownUser, userID)
	}
	if err != nil {
		return 0, err
	}
	return user.Points, nil
}

func (s *ledgerService) Credit(ctx context.Context, userID domain.UserID, amount int32, reference string) (int32, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: credit amount must not be negative", domain.ErrInvalidArgument)
	}
	var balance int32
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		balance, err = applyPoints(ctx, repos, domain.PointsTransaction{
			UserID:    userID,
			Amount:    amount,
			Type:      domain.TransactionTypeAdjustment,
			Reference: reference,
		})
		return err
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("credit").Inc()
		return 0, err
	}
	metrics.PointsCreditedTotal.WithLabelValues(string(domain.TransactionTypeAdjustment)).Add(float64(amount))
	return balance, nil
}

func (s *ledgerService) Debit(ctx context.Context, userID domain.UserID, amount int32, reference string) (int32, error) {
	if amount < 0 {
		return 0, fmt.Errorf("%w: debit amount must not be negative", domain.ErrInvalidArgument)
	}
	var balance int32
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		balance, err = applyPoints(ctx, repos, domain.PointsTransaction{
			UserID:    userID,
			Amount:    -amount,
			Type:      domain.TransactionTypeAdjustment,
			Reference: reference,
		})
		return err
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("debit").Inc()
		return 0, err
	}
	metrics.PointsDebitedTotal.WithLabelValues(string(domain.TransactionTypeAdjustment)).Add(float64(amount))
	return balance, nil
}

func (s *ledgerService) Redeem(ctx context.Context, userID domain.UserID, rewardName string) (domain.Reward, int32, error) {
	reward, err := utils.FindReward(rewardName)
	if err != nil {
		return domain.Reward{}, 0, err
	}

	var balance int32
	err = s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		var err error
		balance, err = applyPoints(ctx, repos, domain.PointsTransaction{
			UserID:      userID,
			Amount:      -reward.CostPoints,
			Type:        domain.TransactionTypeRedemption,
			Reference:   reward.Name,
			Description: "Redeemed " + reward.Name,
		})
		return err
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("redeem").Inc()
		return domain.Reward{}, 0, err
	}
	metrics.PointsDebitedTotal.WithLabelValues(string(domain.TransactionTypeRedemption)).Add(float64(reward.CostPoints))
	return reward, balance, nil
}

// Spin charges the entry cost, then draws one wheel segment. Point segments
// are credited straight back; voucher segments are only recorded.
func (s *ledgerService) Spin(ctx context.Context, userID domain.UserID) (*domain.SpinResult, error) {
	result := &domain.SpinResult{Cost: s.spinCost}
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		balance, err := applyPoints(ctx, repos, domain.PointsTransaction{
			UserID: userID,
			Amount: -s.spinCost,
			Type:   domain.TransactionTypeSpinCost,
		})
		if err != nil {
			return err
		}

		outcome := utils.SpinWheel(s.rng)
		prize := domain.PointsTransaction{
			UserID:      userID,
			Amount:      outcome.Points,
			Type:        domain.TransactionTypeSpinPrize,
			Description: outcome.Segment,
		}
		if outcome.Voucher {
			prize.Type = domain.TransactionTypeVoucher
		}
		if balance, err = applyPoints(ctx, repos, prize); err != nil {
			return err
		}

		result.Outcome = outcome
		result.Balance = balance
		return nil
	})
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("spin").Inc()
		return nil, err
	}
	metrics.PointsDebitedTotal.WithLabelValues(string(domain.TransactionTypeSpinCost)).Add(float64(s.spinCost))
	if result.Outcome.Points > 0 {
		metrics.PointsCreditedTotal.WithLabelValues(string(domain.TransactionTypeSpinPrize)).Add(float64(result.Outcome.Points))
	}
	return result, nil
}

func (s *ledgerService) ListRewards() []domain.Reward {
	return utils.RewardCatalog()
}

func (s *ledgerService) GetTransactions(ctx context.Context, userID domain.UserID, page, pageSize int32) ([]domain.PointsTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	return s.store.Ledger().ListTransactions(ctx, userID, page, pageSize)
}

// GetCustomerSummary reads the balance and the held containers in one
// transaction so both come from the same committed state.
func (s *ledgerService) GetCustomerSummary(ctx context.Context, userID domain.UserID) (*domain.CustomerSummary, error) {
	var summary *domain.CustomerSummary
	err := s.store.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
		user, err := repos.Users().GetByID(ctx, userID)
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrUnknownUser, userID)
		}
		if err != nil {
			return err
		}
		held, err := repos.Containers().List(ctx, domain.ContainerFilter{
			Status: domain.ContainerStatusInUse,
			Owner:  domain.HolderID(userID),
		})
		if err != nil {
			return err
		}

		summary = &domain.CustomerSummary{
			UserID:         userID,
			Points:         user.Points,
			HeldContainers: make([]domain.ContainerID, 0, len(held)),
		}
		for _, c := range held {
			summary.HeldContainers = append(summary.HeldContainers, c.ID)
			summary.ActiveDepositCents += c.DepositCents
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}
