package modules

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AsynqServer обрабатывает задачи из Queues (очередь → приоритет) до отмены
// ctx. Логи самого asynq идут в zap.
type AsynqServer struct {
	Redis           asynq.RedisClientOpt
	Queues          map[string]int
	Concurrency     int
	ShutdownTimeout time.Duration
}

func (s AsynqServer) Run(ctx context.Context, g *errgroup.Group, handler asynq.Handler) error {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("zap.NewProduction: %w", err)
	}

	srv := asynq.NewServer(s.Redis, asynq.Config{
		BaseContext:     func() context.Context { return ctx },
		Queues:          s.Queues,
		Concurrency:     s.Concurrency,
		ShutdownTimeout: s.ShutdownTimeout,
		Logger:          zapLogger.Named("asynq").Sugar(),
	})

	if err := srv.Start(handler); err != nil {
		_ = zapLogger.Sync()
		return fmt.Errorf("asynqServer.Start: %w", err)
	}

	attrs := []any{slog.String("redis-address", s.Redis.Addr), slog.Int("redis-db", s.Redis.DB)}

	logger(ctx).Info("asynq server started", attrs...)

	g.Go(func() error {
		defer zapLogger.Sync() //nolint:errcheck

		<-ctx.Done()

		srv.Shutdown()

		logger(ctx).Info("asynq server stopped", attrs...)

		return nil
	})

	return nil
}
