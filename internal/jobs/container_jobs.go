package jobs

import (
	"context"
	"time"

	"reuse-loop-backend/internal/logger"
)

const accrualTimeout = 5 * time.Minute

// AccrueHoursInUse adds one hour to every container currently held by a
// restaurant or a customer. It is scheduled hourly.
func (jr *JobRunner) AccrueHoursInUse() {
	jr.runWithRecovery("AccrueHoursInUse", func() {
		ctx, cancel := context.WithTimeout(context.Background(), accrualTimeout)
		defer cancel()

		n, err := jr.services.Containers.AccrueHours(ctx, 1)
		if err != nil {
			logger.Error("Failed to accrue hours in use", "error", err)
			return
		}
		logger.Info("Accrued hours in use", "containers", n)
	})
}
