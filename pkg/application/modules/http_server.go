package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"fortune_cookie/pkg/logx"
)

const defaultShutdownTimeout = 5 * time.Second

// HTTPServer биндит адрес сразу, а обслуживает запросы в g. После отмены
// ctx сервер дожидается текущих запросов не дольше ShutdownTimeout
// (0 значит 5 секунд).
type HTTPServer struct {
	ListenAddress     string
	Handler           http.Handler
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Run возвращает ошибку, если адрес занят. Контекст запросов наследует ctx.
func (h HTTPServer) Run(ctx context.Context, g *errgroup.Group) (net.Addr, error) {
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", h.ListenAddress)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", h.ListenAddress, err)
	}

	srv := &http.Server{
		//nolint:exhaustruct
		Handler:           h.Handler,
		ReadHeaderTimeout: h.ReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	addr := listener.Addr()

	shutdownTimeout := h.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger(ctx).Error("server.Shutdown", slog.String("address", addr.String()), logx.Error(err))
		}

		return nil
	})

	g.Go(func() error {
		logger(ctx).Info("http server started", slog.String("address", addr.String()))

		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.Serve: %w", err)
		}

		logger(ctx).Info("http server stopped", slog.String("address", addr.String()))

		return nil
	})

	return addr, nil
}
