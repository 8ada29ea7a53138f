package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"courier-track/internal/config"
	"courier-track/internal/logx"
	authsvc "courier-track/internal/service/auth"
	"courier-track/internal/transport/kafka"
)

// Default admin credentials seeded with --seed-admin. Change the password
// after first login.
const (
	defaultAdminPassword = "admin123"
	defaultAdminPhone    = "1234567890"
)

type serversIn struct {
	dig.In

	Main  *http.Server
	Pprof *http.Server `name:"pprof_server" optional:"true"`
}

// MustRun starts the HTTP server using the provided DI container.
func MustRun(container *dig.Container) {
	if err := run(container); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			log.Println("shutdown requested, exiting")
			return
		case errors.Is(err, context.DeadlineExceeded):
			log.Println("startup aborted: startup timeout exceeded")
			return
		default:
			log.Fatalf("run error: %v", err)
		}
	}
}

func run(container *dig.Container) error {
	return container.Invoke(func(
		in serversIn,
		ctx context.Context,
		cfg *config.Config,
		pool *pgxpool.Pool,
		producer *kafka.Producer,
		accounts *authsvc.Service,
		logger logx.Logger,
	) error {
		if cfg.SeedAdmin {
			if err := accounts.SeedAdmin(ctx, defaultAdminPassword, defaultAdminPhone); err != nil {
				return fmt.Errorf("seed admin: %w", err)
			}
		}

		startServer(in.Main, "courier-track", logger)
		if in.Pprof != nil {
			startServer(in.Pprof, "pprof", logger)
		}

		<-ctx.Done()
		logger.Info("shutting down courier-track")

		gracefulShutdown(in.Main, logger, 15*time.Second)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, logger, 5*time.Second)
		}
		closeResources(pool, producer, in.Main, logger)
		return nil
	})
}

func startServer(server *http.Server, name string, logger logx.Logger) {
	go func() {
		logger.Info("server listening",
			logx.String("name", name),
			logx.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("%s listen error: %v", name, err)
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Any("err", err))
	}
}

func closeResources(pool *pgxpool.Pool, producer *kafka.Producer, server *http.Server, logger logx.Logger) {
	if err := server.Close(); err != nil {
		logger.Warn("server close error", logx.Any("err", err))
	}
	if err := producer.Close(); err != nil {
		logger.Warn("kafka producer close error", logx.Any("err", err))
	}
	pool.Close()
}
