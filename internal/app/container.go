package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-track/internal/auth"
	"courier-track/internal/config"
	navgw "courier-track/internal/gateway/nav"
	"courier-track/internal/http/handlers"
	"courier-track/internal/http/middleware"
	"courier-track/internal/http/middleware/ratelimit"
	"courier-track/internal/http/pprofserver"
	"courier-track/internal/http/router"
	"courier-track/internal/logx"
	"courier-track/internal/metrics"
	"courier-track/internal/notify"
	"courier-track/internal/repository"
	authsvc "courier-track/internal/service/auth"
	"courier-track/internal/service/tracking"
	"courier-track/internal/transport/kafka"
)

const operationTimeout = 3 * time.Second

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error)
	logFatalf func(string, ...any)
}

// NewContainerBuilder returns a new dig container builder.
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function.
func (b *ContainerBuilder) WithDBConnect(
	fn func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function.
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...any)) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns a new dig container for the HTTP service.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns a new dig container for the HTTP service.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		provideMetrics,
	)
}

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	NotificationsSentTotal prometheus.Counter `name:"notifications_sent_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
}

func provideMetrics() (metricsOut, error) {
	rl, err := registerCounter("rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	sent, err := registerCounter("notifications_sent_total", metrics.NewNotificationsSentTotal())
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := registerCounter("gateway_retries_total", metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		NotificationsSentTotal: sent,
		GatewayRetriesTotal:    retries,
	}, nil
}

// registerCounter tolerates double registration so rebuilt containers reuse
// the collector already held by the default registry.
func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}

func registerDb(
	container *dig.Container,
	dbConnect func(context.Context, string, int, time.Duration) (*pgxpool.Pool, error),
) error {
	providerDB := func(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config) *redis.Client {
			if cfg.Redis.Addr == "" {
				return nil
			}
			return redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		},
		func(client *redis.Client) notify.SeenStore {
			if client == nil {
				return notify.NewMemorySeenStore()
			}
			return notify.NewRedisSeenStore(client)
		},
		func(logger logx.Logger) notify.Sink {
			return notify.NewLogSink(logger)
		},
		func(cfg *config.Config) (*kafka.Producer, error) {
			return kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		},
		newLocalNotifier,
		newNotifier,
	)
}

type localNotifierIn struct {
	dig.In

	Seen   notify.SeenStore
	Sink   notify.Sink
	Logger logx.Logger
	Sent   prometheus.Counter `name:"notifications_sent_total"`
}

func newLocalNotifier(in localNotifierIn) *notify.LocalNotifier {
	return notify.NewLocalNotifier(in.Seen, in.Sink, in.Logger, in.Sent)
}

// newNotifier prefers the Kafka producer; without brokers the status change
// is handled in-process by the local notifier.
func newNotifier(producer *kafka.Producer, local *notify.LocalNotifier) notify.Notifier {
	if producer != nil {
		return producer
	}
	return local
}

type navIn struct {
	dig.In

	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newNavGateway(in navIn) navgw.Gateway {
	client := navgw.NewClient(in.Cfg.Nav.RouteBaseURL, in.Cfg.Nav.Destination, 5*time.Second)
	if client == nil {
		return nil
	}
	return navgw.NewRetryingGateway(client, in.Logger, in.Retries, navgw.RetryConfig{
		MaxAttempts: in.Cfg.Nav.MaxAttempts,
		BaseDelay:   in.Cfg.Nav.BaseDelay,
		MaxDelay:    in.Cfg.Nav.MaxDelay,
	})
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		repository.NewUserRepo,
		repository.NewCourierRepo,
		func(cfg *config.Config) *auth.TokenManager {
			return auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		},
		newNavGateway,
		func(repo *repository.UserRepo, tokens *auth.TokenManager, logger logx.Logger) *authsvc.Service {
			return authsvc.NewService(repo, tokens, logger, operationTimeout)
		},
		func(repo *repository.CourierRepo, notifier notify.Notifier, gw navgw.Gateway, logger logx.Logger) *tracking.Service {
			return tracking.NewService(repo, notifier, gw, logger, operationTimeout)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewAuthUsecase,
		handlers.NewAuthHandler,
		handlers.NewCourierUsecase,
		handlers.NewCourierHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		func(tm *auth.TokenManager) middleware.TokenParser { return tm },
		newRouter,
		serverProvider,
		providePprof,
	)
}

func newRouter(
	base *handlers.Handlers,
	authHandler *handlers.AuthHandler,
	courierHandler *handlers.CourierHandler,
	tokens middleware.TokenParser,
	loginRL *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	return router.New(router.Deps{
		Base:    base,
		Auth:    authHandler,
		Courier: courierHandler,
		Tokens:  tokens,
		LoginRL: loginRL,
		Logger:  logger,
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func providePprof(cfg *config.Config) pprofOut {
	if cfg.PprofPort <= 0 {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.PprofPort),
		Handler:           pprofserver.Handler(pprofserver.Config{User: cfg.PprofUser, Pass: cfg.PprofPass}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}
