package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"fortune_cookie/internal/domain"
	"fortune_cookie/pkg/errcodes"
)

// Драйверы хранилища фраз (STORE_DRIVER).
const (
	DriverMasterData = "masterdata"
	DriverPostgres   = "postgres"
	DriverSQLite     = "sqlite"
	DriverRedis      = "redis"
	DriverMemory     = "memory"
)

type Config struct {
	App        App
	HTTP       HTTP
	Probe      Probe
	Metrics    Metrics
	Store      Store
	MasterData MasterData
	Postgres   Postgres
	SQLite     SQLite
	Redis      Redis
	Widget     Widget
	Admin      Admin
	Bot        Bot
}

// Load читает .env (если есть) и переменные окружения.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse(env.Options{})
}

func Parse(opts env.Options) (Config, error) {
	var config Config

	if err := env.ParseWithOptions(&config, opts); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Validate проверяет то, что зависит от выбранного драйвера.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMasterData:
		if c.MasterData.BaseURL == "" {
			return domain.NewError(errcodes.ValidationError, "MASTERDATA_BASE_URL is required for the masterdata driver")
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return domain.NewError(errcodes.ValidationError, "PG_DSN is required for the postgres driver")
		}
	case DriverRedis:
		if !c.Redis.Enabled() {
			return domain.NewError(errcodes.ValidationError, "REDIS_ADDRESS is required for the redis driver")
		}
	case DriverSQLite, DriverMemory:
	default:
		return domain.NewError(errcodes.UnknownStoreDriver, fmt.Sprintf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if c.Admin.PageSize < 1 || c.Admin.PageSize > MaxAdminPageSize {
		return domain.NewError(errcodes.ValidationError,
			fmt.Sprintf("ADMIN_PAGE_SIZE must be between 1 and %d", MaxAdminPageSize))
	}

	if c.Bot.NotifyChatID != 0 && c.Bot.Token == "" {
		return domain.NewError(errcodes.ValidationError, "BOT_TOKEN is required for notifications")
	}

	return nil
}
