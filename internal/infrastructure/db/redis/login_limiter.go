package redis

import (
	"context"
	"sync"
	"time"

	redis_rate "github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	loginKeyPrefix  = "ratelimit:login:"
	localEntryTTL   = 10 * time.Minute
	sweepEveryCalls = 1024
)

// PerMinute builds a GCRA limit of r attempts per minute with the given burst.
func PerMinute(r, burst int) redis_rate.Limit {
	return redis_rate.Limit{Rate: r, Burst: burst, Period: time.Minute}
}

// LoginLimiter throttles login attempts with a Redis GCRA limiter shared by
// every replica. When Redis is unreachable it falls back to an in-process
// token bucket so login keeps working with per-instance limits.
type LoginLimiter struct {
	limiter  *redis_rate.Limiter
	limit    redis_rate.Limit
	fallback *localLimiter
	log      zerolog.Logger
}

func NewLoginLimiter(client *redis.Client, limit redis_rate.Limit, log zerolog.Logger) *LoginLimiter {
	return &LoginLimiter{
		limiter:  redis_rate.NewLimiter(client),
		limit:    limit,
		fallback: newLocalLimiter(),
		log:      log,
	}
}

// Allow consumes one attempt for key.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	key = loginKeyPrefix + key

	res, err := l.limiter.Allow(ctx, key, l.limit)
	if err != nil {
		l.log.Warn().Err(err).Msg("redis rate limiter unavailable, using local limiter")
		allowed, retryAfter := l.fallback.allow(key, l.limit, time.Now())
		return allowed, retryAfter, nil
	}
	if res.Allowed == 0 {
		return false, res.RetryAfter, nil
	}
	return true, 0, nil
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

type localLimiter struct {
	mu      sync.Mutex
	entries map[string]*limiterEntry
	calls   int
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{entries: make(map[string]*limiterEntry)}
}

func (l *localLimiter) allow(key string, limit redis_rate.Limit, now time.Time) (bool, time.Duration) {
	perSec := float64(limit.Rate) / limit.Period.Seconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEveryCalls == 0 {
		l.sweep(now)
	}

	entry, ok := l.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(perSec), limit.Burst)}
		l.entries[key] = entry
	}
	entry.lastAccess = now

	if entry.limiter.AllowN(now, 1) {
		return true, 0
	}
	return false, time.Duration(float64(time.Second) / perSec)
}

// sweep drops entries idle for longer than localEntryTTL. Callers hold mu.
func (l *localLimiter) sweep(now time.Time) {
	cutoff := now.Add(-localEntryTTL)
	for k, e := range l.entries {
		if e.lastAccess.Before(cutoff) {
			delete(l.entries, k)
		}
	}
}
