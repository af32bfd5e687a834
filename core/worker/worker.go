package worker

import (
	"context"
	"fmt"

	"time2gather/core/config"
	"time2gather/core/constants"
	"time2gather/core/logger"

	"github.com/hibiken/asynq"
)

// Registrar adds task handlers to the worker mux.
type Registrar interface {
	Register(mux *asynq.ServeMux)
}

func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewClient returns the producer side used by the HTTP process.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// Run processes tasks until ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, registrars ...Registrar) error {
	concurrency := cfg.Worker.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	srv := asynq.NewServer(RedisOpt(cfg.Redis), asynq.Config{
		Concurrency:     concurrency,
		Queues:          map[string]int{constants.QueueDefault: 1},
		Logger:          asynqLogger{},
		ShutdownTimeout: constants.ShutdownTimeout,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Error("Worker:Task:Failed", "type", task.Type(), "retry", retried, "maxRetry", maxRetry, "error", err)
		}),
	})

	mux := asynq.NewServeMux()
	for _, r := range registrars {
		r.Register(mux)
	}

	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	logger.Info("worker started", "concurrency", concurrency, "queue", constants.QueueDefault)

	<-ctx.Done()
	srv.Shutdown()
	logger.Info("worker stopped")
	return nil
}

// asynqLogger routes asynq's own logs through the package logger.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug(fmt.Sprint(args...)) }
func (asynqLogger) Info(args ...any) { logger.Info(fmt.Sprint(args...)) }
func (asynqLogger) Warn(args ...any) { logger.Warn(fmt.Sprint(args...)) }
func (asynqLogger) Error(args ...any) { logger.Error(fmt.Sprint(args...)) }
func (asynqLogger) Fatal(args ...any) { logger.Error(fmt.Sprint(args...)) }
