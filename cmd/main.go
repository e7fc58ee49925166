package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fortune_cookie/internal/application"
	"fortune_cookie/internal/config"
	"fortune_cookie/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log := slog.New(logx.NewHandler(os.Stdout, cfg.App.LogFormat, logx.ParseLevel(cfg.App.LogLevel))).
		With(slog.String("app", cfg.App.Name), slog.String("version", cfg.App.Version))
	slog.SetDefault(log)

	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}

	log.Info("application stopped")
}
