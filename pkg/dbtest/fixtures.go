package dbtest

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// LoadFixtures executes SQL fixture files in order inside one transaction.
// Either every file applies or none does.
func LoadFixtures(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx: %w", err)
	}

	for _, fileName := range fileNames {
		query, err := os.ReadFile(fileName)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = tx.ExecContext(ctx, string(query)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("tx.ExecContext(%s): %w", fileName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}
