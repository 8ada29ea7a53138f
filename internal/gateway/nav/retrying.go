package nav

import (
	"context"
	"errors"
	"net/http"
	"time"

	"courier-track/internal/logx"
)

type counter interface {
	Inc()
}

// RetryConfig describes RetryingGateway behavior.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway wraps a Gateway with bounded retries and exponential backoff.
type RetryingGateway struct {
	next    Gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(time.Duration)
}

// NewRetryingGateway wraps next; returns nil if next is nil.
func NewRetryingGateway(next Gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: time.Sleep}
}

// TrackingLink retries transient route service failures.
func (g *RetryingGateway) TrackingLink(ctx context.Context, location string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		link, err := g.next.TrackingLink(ctx, location)
		if err == nil {
			return link, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("nav gateway retry",
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, g.sleep, delay) {
			break
		}
	}
	return "", lastErr
}

// isRetryable treats server-side and throttling statuses as transient.
func isRetryable(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		// network-level failures are worth one more try
		return true
	}
	switch {
	case se.status == http.StatusTooManyRequests:
		return true
	case se.status >= http.StatusInternalServerError:
		return true
	default:
		return false
	}
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, sleep func(time.Duration), d time.Duration) bool {
	if d <= 0 {
		return true
	}
	done := make(chan struct{})
	go func() {
		sleep(d)
		close(done)
	}()
	select {
	case <-ctx.Done():
		return false
	case <-done:
		return true
	}
}
