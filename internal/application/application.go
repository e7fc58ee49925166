package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"fortune_cookie/internal/config"
	"fortune_cookie/internal/domain/service/fortune"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/server"
	"fortune_cookie/pkg/application/modules"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
	"fortune_cookie/pkg/middlewarex"
	"fortune_cookie/pkg/probe"
)

const metricsNamespace = "fortune_cookie"

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Run поднимает хранилище, сервисы, HTTP API, бота и служебные серверы
// и ждёт, пока ctx не будет отменён или один из модулей не упадёт.
func Run(ctx context.Context, cfg config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	// abort останавливает уже запущенные модули, если следующий не стартовал.
	abort := func(err error) error {
		cancel()
		_ = g.Wait()

		return err
	}

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("newStore: %w", err)
	}
	defer closeStore(context.WithoutCancel(ctx))

	logger(ctx).Info("phrase store ready", slog.String("driver", cfg.Store.Driver))

	notifications, err := newNotifications(ctx, g, cfg)
	if err != nil {
		return abort(fmt.Errorf("newNotifications: %w", err))
	}
	defer notifications.close()

	phraseService := service.NewPhraseService(store).
		WithTimeout(cfg.Store.RequestTimeout).
		WithPublisher(notifications.publisher)

	fortuneService := fortune.NewService(phraseService, fortune.WithSampleSize(cfg.Widget.SampleSize))

	err = runHTTP(ctx, g, cfg, server.NewServer(
		server.NewPhraseServer(phraseService),
		server.NewFortuneServer(fortuneService),
		cfg.Admin.APIToken,
	))
	if err != nil {
		return abort(fmt.Errorf("runHTTP: %w", err))
	}

	if err := runBot(ctx, g, cfg, notifications.bot, phraseService, fortuneService); err != nil {
		return abort(fmt.Errorf("runBot: %w", err))
	}

	_, err = modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks:        []probe.Check{storeReady(phraseService)},
	}.Run(ctx, g)
	if err != nil {
		return abort(fmt.Errorf("probe server: %w", err))
	}

	_, err = modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      prometheus.DefaultGatherer,
	}.Run(ctx, g)
	if err != nil {
		return abort(fmt.Errorf("metric server: %w", err))
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("g.Wait: %w", err)
	}

	return nil
}

// newRouter собирает цепочку middleware. Recovery стоит последним: ответ 500
// после паники должен попасть и в access log, и в метрики.
func newRouter(cfg config.HTTP, reg prometheus.Registerer) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middlewarex.RequestContext,
		middlewarex.Metrics(reg, metricsNamespace),
		middlewarex.AccessLog(logx.NewSensitiveDataMasker(), cfg.LogFieldMaxLen),
		middlewarex.Recovery,
	)

	return router
}

func runHTTP(ctx context.Context, g *errgroup.Group, cfg config.Config, srv server.Server) error {
	router := newRouter(cfg.HTTP, prometheus.DefaultRegisterer)
	srv.RegisterRoutes(router)

	if cfg.Admin.APIToken == "" {
		logger(ctx).Warn("ADMIN_API_TOKEN is empty, admin api is not protected")
	}

	_, err := modules.HTTPServer{
		ListenAddress:     cfg.HTTP.ListenAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g)

	return err
}

// storeReady считает хранилище готовым, если оно отдаёт первую страницу.
func storeReady(phraseService *service.PhraseService) probe.Check {
	return func(ctx context.Context) error {
		if _, err := phraseService.List(ctx, 1, 1); err != nil {
			return fmt.Errorf("phrase store: %w", err)
		}

		return nil
	}
}
