package health

import (
	"context"
	"time"

	"github.com/gatehouse-io/gatehouse/internal/application/appcore"
)

// DefaultCheckTimeout bounds a single component check.
const DefaultCheckTimeout = 5 * time.Second

// InfraReport is the aggregated outcome of all component checks.
type InfraReport struct {
	Healthy    bool
	Components map[string]appcore.HealthStatus
	CheckedAt  time.Time
}

// CheckInfraHealthUseCase runs every registered checker and aggregates
// the verdicts. One unhealthy component makes the whole report
// unhealthy.
type CheckInfraHealthUseCase struct {
	checkers []appcore.HealthChecker
	timeout  time.Duration
}

// NewCheckInfraHealthUseCase creates a new CheckInfraHealthUseCase.
func NewCheckInfraHealthUseCase(checkers []appcore.HealthChecker, timeout time.Duration) *CheckInfraHealthUseCase {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &CheckInfraHealthUseCase{
		checkers: checkers,
		timeout:  timeout,
	}
}

// Execute checks every component under a shared deadline.
func (uc *CheckInfraHealthUseCase) Execute(ctx context.Context) InfraReport {
	checkCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	report := InfraReport{
		Healthy:    true,
		Components: make(map[string]appcore.HealthStatus, len(uc.checkers)),
		CheckedAt:  time.Now(),
	}
	for _, checker := range uc.checkers {
		status := checker.Check(checkCtx)
		report.Components[checker.Name()] = status
		if !status.Healthy {
			report.Healthy = false
		}
	}
	return report
}
