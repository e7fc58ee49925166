package application

import (
	"context"
	"fmt"
	"net/http"

	"fortune_cookie/internal/config"
	"fortune_cookie/internal/domain"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/internal/infrastructure/masterdata"
	"fortune_cookie/internal/infrastructure/persistence"
	"fortune_cookie/pkg/application/connectors"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx"
	"fortune_cookie/pkg/logx"
)

type closeFunc func(ctx context.Context)

func nopClose(context.Context) {}

// newStore выбирает хранилище фраз по STORE_DRIVER.
func newStore(ctx context.Context, cfg config.Config) (service.Store, closeFunc, error) {
	switch cfg.Store.Driver {
	case config.DriverMasterData:
		return newMasterDataClient(cfg), nopClose, nil

	case config.DriverPostgres:
		return newSQLStore(ctx, cfg, &connectors.SQL{
			Driver:          connectors.DriverPostgres,
			DSN:             cfg.Postgres.DSN,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		})

	case config.DriverSQLite:
		return newSQLStore(ctx, cfg, &connectors.SQL{
			Driver:       connectors.DriverSQLite,
			DSN:          cfg.SQLite.DSN,
			MaxIdleConns: 1,
			MaxOpenConns: 1,
		})

	case config.DriverRedis:
		conn := newRedisConnector(cfg.Redis)

		client, err := conn.Client(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}

		return persistence.NewRedisPhraseRepository(client), conn.Close, nil

	case config.DriverMemory:
		return persistence.NewMemoryPhraseRepository(), nopClose, nil

	default:
		return nil, nil, domain.NewError(errcodes.UnknownStoreDriver, fmt.Sprintf("unknown store driver %q", cfg.Store.Driver))
	}
}

func newMasterDataClient(cfg config.Config) *masterdata.Client {
	transport := httpx.NewLoggingRoundTripper(
		httpx.NewAppKeyRoundTripper(http.DefaultTransport, cfg.MasterData.AppKey, cfg.MasterData.AppToken),
		httpx.WithPeer(config.DriverMasterData),
		httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
		httpx.WithLogFieldMaxLen(cfg.HTTP.LogFieldMaxLen),
	)

	httpClient := &http.Client{
		//nolint:exhaustruct
		Transport: transport,
		Timeout:   cfg.Store.RequestTimeout,
	}

	return masterdata.NewClient(httpClient, cfg.MasterData.BaseURL, cfg.MasterData.Entity, value.FieldKeys{
		ID:   cfg.MasterData.IDField,
		Text: cfg.MasterData.TextField,
	})
}

func newSQLStore(ctx context.Context, cfg config.Config, conn *connectors.SQL) (service.Store, closeFunc, error) {
	db, err := conn.Client(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sql: %w", err)
	}

	if cfg.Store.Migrate {
		if err := persistence.Migrate(ctx, db, conn.Driver); err != nil {
			conn.Close(ctx)
			return nil, nil, fmt.Errorf("persistence.Migrate: %w", err)
		}
	}

	return persistence.NewPhraseRepository(db), conn.Close, nil
}

func newRedisConnector(cfg config.Redis) *connectors.Redis {
	return &connectors.Redis{
		Username:           cfg.Username,
		Password:           cfg.Password,
		Address:            cfg.Address,
		DatabaseNumber:     cfg.DatabaseNumber,
		PoolSize:           cfg.PoolSize,
		MinIdleConnections: cfg.MinIdleConnections,
		MaxIdleConnections: cfg.MaxIdleConnections,
	}
}

// OpenPhraseService открывает хранилище по конфигу без HTTP, бота и очередей.
// Нужен утилитам командной строки.
func OpenPhraseService(ctx context.Context, cfg config.Config) (*service.PhraseService, func(context.Context), error) {
	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	return service.NewPhraseService(store).WithTimeout(cfg.Store.RequestTimeout), closeStore, nil
}
