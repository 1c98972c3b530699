package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/contentcraft/contentcraft-api/internal/platform/logger"
	"github.com/contentcraft/contentcraft-api/pkg/api"
	"go.uber.org/zap"
)

// Key is installation-scoped: one quota for the whole deployment, not
// per client or per provider.
const Key = "contentcraft:rate_limit"

// Window is the quota period.
const Window = time.Hour

// Limiter gates provider calls against an hourly ceiling. Allow is checked
// before dispatch; Record runs after every attempt, success or not. A
// ceiling of zero or less disables metering entirely.
type Limiter struct {
	counter Counter
	ceiling int
}

func NewLimiter(counter Counter, ceiling int) *Limiter {
	return &Limiter{counter: counter, ceiling: ceiling}
}

// Ceiling returns the configured hourly limit.
func (l *Limiter) Ceiling() int { return l.ceiling }

// Allow returns a rate limit error when the current window is exhausted.
// Counter backend failures fail open: a broken Redis must not take content
// generation down with it.
func (l *Limiter) Allow(ctx context.Context) error {
	if l.ceiling <= 0 {
		return nil
	}

	current, err := l.counter.Current(ctx, Key)
	if err != nil {
		logger.Warn("rate limit check failed, allowing request", zap.Error(err))
		return nil
	}

	if current >= int64(l.ceiling) {
		return api.RateLimitError(fmt.Sprintf(
			"Hourly limit of %d AI requests reached. Try again later.", l.ceiling))
	}
	return nil
}

// Record burns one unit of quota for an attempt.
func (l *Limiter) Record(ctx context.Context) {
	if l.ceiling <= 0 {
		return
	}
	if _, err := l.counter.Incr(ctx, Key, Window); err != nil {
		logger.Warn("rate limit increment failed", zap.Error(err))
	}
}

// Usage returns the attempt count for the active window.
func (l *Limiter) Usage(ctx context.Context) (int64, error) {
	return l.counter.Current(ctx, Key)
}
