package utils

import (
	"fmt"
	"strings"

	"reuse-loop-backend/internal/domain"
)

const (
	// FullCreditHours is the hold time after which a return earns nothing.
	FullCreditHours = 168
	// MaxReturnPoints is awarded for a clean return at zero hours.
	MaxReturnPoints = 1000
	// DefaultSpinCost is the entry cost of one wheel spin.
	DefaultSpinCost int32 = 100
)

// CalculatePoints returns the points earned for returning a container after
// hoursInUse hours. Credit decays linearly from MaxReturnPoints at zero hours
// to nothing at FullCreditHours, and an uncleaned return earns half.
func CalculatePoints(hoursInUse int32, clean bool) int32 {
	if hoursInUse < 0 {
		hoursInUse = 0
	}
	remaining := int64(FullCreditHours) - int64(hoursInUse)
	if remaining <= 0 {
		return 0
	}
	if clean {
		return int32(remaining * MaxReturnPoints / FullCreditHours)
	}
	return int32(remaining * MaxReturnPoints / (2 * FullCreditHours))
}

var rewardCatalog = []domain.Reward{
	{Name: "Free Snack", CostPoints: 500},
	{Name: "Free Coffee", CostPoints: 1000},
	{Name: "Discount $5", CostPoints: 2000},
}

// RewardCatalog lists the fixed-price rewards, cheapest first.
func RewardCatalog() []domain.Reward {
	out := make([]domain.Reward, len(rewardCatalog))
	copy(out, rewardCatalog)
	return out
}

// FindReward looks a reward up by name, ignoring case.
func FindReward(name string) (domain.Reward, error) {
	for _, r := range rewardCatalog {
		if strings.EqualFold(r.Name, strings.TrimSpace(name)) {
			return r, nil
		}
	}
	return domain.Reward{}, fmt.Errorf("%w: reward %q", domain.ErrNotFound, name)
}

const voucherSegment = "Restaurant Voucher"

var spinWheel = []domain.SpinOutcome{
	{Segment: "+10 Points", Points: 10},
	{Segment: voucherSegment, Voucher: true},
	{Segment: "+20 Points", Points: 20},
	{Segment: voucherSegment, Voucher: true},
	{Segment: "+50 Points", Points: 50},
	{Segment: voucherSegment, Voucher: true},
	{Segment: "+100 Points", Points: 100},
	{Segment: voucherSegment, Voucher: true},
	{Segment: "+200 Points", Points: 200},
	{Segment: voucherSegment, Voucher: true},
}

// IntN is satisfied by *math/rand/v2.Rand.
type IntN interface {
	IntN(n int) int
}

// SpinWheelSegments returns the wheel in display order.
func SpinWheelSegments() []domain.SpinOutcome {
	out := make([]domain.SpinOutcome, len(spinWheel))
	copy(out, spinWheel)
	return out
}

// SpinWheel picks one segment uniformly at random.
func SpinWheel(rng IntN) domain.SpinOutcome {
	return spinWheel[rng.IntN(len(spinWheel))]
}
