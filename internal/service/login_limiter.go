package service

import (
	"context"
	"strconv"
	"time"

	"practicehub/internal/cache"
	pkgerrors "practicehub/pkg/errors"
	"practicehub/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	loginFailUserPrefix = "login:fail:username:"
	loginFailIPPrefix   = "login:fail:ip:"

	defaultLoginFailLimit  = 5
	defaultLoginFailWindow = 15 * time.Minute
)

// LoginLimiter counts failed logins per username and per client IP.
// A nil cache disables limiting entirely.
type LoginLimiter struct {
	cache  cache.BasicOps
	limit  int
	window time.Duration
}

// NewLoginLimiter creates a limiter backed by the given cache.
func NewLoginLimiter(cacheClient cache.BasicOps, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = defaultLoginFailLimit
	}
	if window <= 0 {
		window = defaultLoginFailWindow
	}
	return &LoginLimiter{cache: cacheClient, limit: limit, window: window}
}

// Check rejects the attempt when either counter has reached the limit.
func (l *LoginLimiter) Check(ctx context.Context, username, ip string) error {
	if l == nil || l.cache == nil {
		return nil
	}

	userCount := l.failCount(ctx, loginFailUserPrefix+username)
	ipCount := 0
	if ip != "" {
		ipCount = l.failCount(ctx, loginFailIPPrefix+ip)
	}

	if userCount >= l.limit || ipCount >= l.limit {
		return pkgerrors.New(pkgerrors.TooManyRequests)
	}
	return nil
}

// RecordFailure increments both counters. Counter errors are logged, not
// surfaced; limiting is advisory.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username, ip string) {
	if l == nil || l.cache == nil {
		return
	}

	l.incrementFailKey(ctx, loginFailUserPrefix+username)
	if ip != "" {
		l.incrementFailKey(ctx, loginFailIPPrefix+ip)
	}
}

// Clear resets both counters after a successful login.
func (l *LoginLimiter) Clear(ctx context.Context, username, ip string) {
	if l == nil || l.cache == nil {
		return
	}

	keys := []string{loginFailUserPrefix + username}
	if ip != "" {
		keys = append(keys, loginFailIPPrefix+ip)
	}
	if err := l.cache.Del(ctx, keys...); err != nil {
		logger.Warn(ctx, "clear login fail counters failed", zap.Error(err))
	}
}

func (l *LoginLimiter) failCount(ctx context.Context, key string) int {
	value, err := l.cache.Get(ctx, key)
	if err != nil {
		logger.Warn(ctx, "get login fail counter failed", zap.String("key", key), zap.Error(err))
		return 0
	}
	if value == "" {
		return 0
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn(ctx, "parse login fail counter failed", zap.String("key", key), zap.Error(err))
		return 0
	}
	return count
}

func (l *LoginLimiter) incrementFailKey(ctx context.Context, key string) {
	count, err := l.cache.Incr(ctx, key)
	if err != nil {
		logger.Warn(ctx, "increment login fail counter failed", zap.String("key", key), zap.Error(err))
		return
	}
	if count == 1 {
		if err := l.cache.Expire(ctx, key, l.window); err != nil {
			logger.Warn(ctx, "expire login fail counter failed", zap.String("key", key), zap.Error(err))
		}
	}
}
