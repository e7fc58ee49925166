package connectors

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"fortune_cookie/pkg/logx"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

const connectTimeout = 5 * time.Second

// SQL lazily opens a sqlx pool for either the pgx or the sqlite driver. The
// first Client call connects; later calls return the same pool or the same
// connect error.
type SQL struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	init  sync.Once
	value *sqlx.DB
	err   error
}

func (p *SQL) Client(ctx context.Context) (*sqlx.DB, error) {
	p.init.Do(func() {
		connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		db, err := sqlx.ConnectContext(connectCtx, p.Driver, p.DSN)
		if err != nil {
			p.err = fmt.Errorf("connect %s %s: %w", p.Driver, p.database(), err)
			return
		}

		db.SetMaxOpenConns(p.MaxOpenConns)
		db.SetMaxIdleConns(p.MaxIdleConns)
		db.SetConnMaxLifetime(p.ConnMaxLifetime)

		p.value = db

		logger(ctx).Info("database connected",
			slog.String("driver", p.Driver),
			slog.String("database", p.database()),
		)
	})

	return p.value, p.err
}

func (p *SQL) Close(ctx context.Context) {
	if p.value == nil {
		return
	}

	if err := p.value.Close(); err != nil {
		logger(ctx).Error("sqlClient.Close", slog.String("driver", p.Driver), logx.Error(err))
		return
	}

	logger(ctx).Info("database disconnected",
		slog.String("driver", p.Driver),
		slog.String("database", p.database()),
	)
}

// database is a loggable name for the DSN without credentials or options.
func (p *SQL) database() string {
	u, err := url.Parse(p.DSN)
	if err != nil || u.Scheme == "" {
		return "<dsn>"
	}

	if u.Opaque != "" {
		return u.Opaque
	}

	return u.Host + u.Path
}
