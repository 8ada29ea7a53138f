package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-track/internal/config"
	"courier-track/internal/http/middleware/ratelimit"
	"courier-track/internal/logx"
)

const (
	loginBucketTTL  = 10 * time.Minute
	loginMaxBuckets = 10000
)

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

// newRateLimiter guards the login endpoint. A non-positive limit disables it.
func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	l := cfg.Login
	if l.RateLimit <= 0 {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketPerWindow(clock, l.RateLimit, l.RateWindow, loginBucketTTL, loginMaxBuckets)
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
