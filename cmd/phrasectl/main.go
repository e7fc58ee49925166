package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fortune_cookie/internal/application"
	"fortune_cookie/internal/config"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Логи утилиты пишутся в stderr, чтобы не мешать выводу команд.
	slog.SetDefault(slog.New(logx.NewHandler(os.Stderr, "text", logx.ParseLevel(os.Getenv("LOG_LEVEL")))))

	if err := newRootCmd(openFromEnv).ExecuteContext(ctx); err != nil {
		os.Exit(1) //nolint:gocritic
	}
}

func openFromEnv(ctx context.Context) (*service.PhraseService, func(context.Context), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config.Load: %w", err)
	}

	return application.OpenPhraseService(ctx, cfg)
}
