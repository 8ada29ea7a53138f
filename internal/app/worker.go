package app

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.uber.org/dig"

	"courier-track/internal/config"
	"courier-track/internal/logx"
	"courier-track/internal/notify"
	"courier-track/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the container for the notification worker.
// The worker consumes status events and delivers notifications; it does not
// touch the database.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	container, err := buildWorker(ctx)
	if err != nil {
		log.Fatalf("failed to build worker container: %v", err)
	}
	return container
}

func buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := provideAll(container, makeStatusHandler, newStatusConsumer); err != nil {
		return nil, fmt.Errorf("consumer: %w", err)
	}
	return container, nil
}

func makeStatusHandler(local *notify.LocalNotifier) kafka.HandleFunc {
	return func(ctx context.Context, ev notify.StatusEvent) error {
		return local.StatusChanged(ctx, ev)
	}
}

func newStatusConsumer(cfg *config.Config, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
}

// WorkerRunner runs the notification worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes status events until the context is canceled.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(ctx context.Context, logger logx.Logger, consumer *kafka.Consumer) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: KAFKA_BROKERS not configured")
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Any("err", err))
		}
	}()

	logger.Info("courier-track-worker started")
	return consumer.Run(ctx)
}
