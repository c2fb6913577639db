package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yigit/registrar/internal/pkg/apperrors"
)

// withAcquireTimeout bounds only the wait for a connection; queries run on
// the caller's context.
func withAcquireTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// acquireError turns an acquisition failure into ErrConnectionUnavailable
// unless the caller itself gave up.
func acquireError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("acquire connection: %w", ctxErr)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrConnectionUnavailable, err)
	}
	return fmt.Errorf("failed to acquire connection: %w", err)
}
