// Package health holds the readiness and liveness queries.
package health

import (
	"context"
	"log/slog"

	"github.com/gatehouse-io/gatehouse/internal/domain/user"
)

// UserProbe is the single bounded read the identity check performs.
// Declared on the consumer side.
type UserProbe interface {
	// List returns at most limit users.
	List(ctx context.Context, offset, limit int) ([]*user.User, error)
}

// CheckIdentityHealthUseCase probes the user store with a bounded read.
// Any fault, including a panic from a misbehaving driver, downgrades
// to an unhealthy verdict. The caller needs a signal, not a diagnosis.
type CheckIdentityHealthUseCase struct {
	probe  UserProbe
	logger *slog.Logger
}

// NewCheckIdentityHealthUseCase creates a new CheckIdentityHealthUseCase.
func NewCheckIdentityHealthUseCase(probe UserProbe, logger *slog.Logger) *CheckIdentityHealthUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckIdentityHealthUseCase{
		probe:  probe,
		logger: logger,
	}
}

// Execute reports whether the identity store answers a bounded probe.
// It never returns an error.
func (uc *CheckIdentityHealthUseCase) Execute(ctx context.Context) (healthy bool) {
	defer func() {
		if r := recover(); r != nil {
			uc.logger.ErrorContext(ctx, "identity health probe panicked", slog.Any("panic", r))
			healthy = false
		}
	}()

	if _, err := uc.probe.List(ctx, 0, 1); err != nil {
		uc.logger.WarnContext(ctx, "identity health probe failed", slog.Any("error", err))
		return false
	}
	return true
}
