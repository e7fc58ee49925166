package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"fortune_cookie/internal/infrastructure/persistence/migrations"
	"fortune_cookie/pkg/application/connectors"
)

// Migrate накатывает встроенные миграции. driver: имя драйвера database/sql
// (connectors.DriverPostgres или connectors.DriverSQLite).
func Migrate(ctx context.Context, db *sqlx.DB, driver string) error {
	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose.SetDialect: %w", err)
	}

	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("goose.UpContext: %w", err)
	}

	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case connectors.DriverPostgres:
		return "postgres", nil
	case connectors.DriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("persistence.Migrate: unsupported driver %q", driver)
	}
}
