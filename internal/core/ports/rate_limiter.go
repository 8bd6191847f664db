package ports

import (
	"context"
	"time"
)

// LoginLimiter throttles login attempts per key.
type LoginLimiter interface {
	// Allow consumes one attempt for key. When the attempt is refused,
	// retryAfter tells the caller how long to wait.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
