package connectors_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fortune_cookie/pkg/application/connectors"
)

func TestSQLClientSQLite(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := &connectors.SQL{
		Driver:          connectors.DriverSQLite,
		DSN:             "file:connectors_test?mode=memory&cache=shared",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Minute,
	}
	defer db.Close(ctx)

	client, err := db.Client(ctx)
	rq.NoError(err)
	rq.NoError(client.PingContext(ctx))

	// Повторный вызов возвращает тот же пул.
	again, err := db.Client(ctx)
	rq.NoError(err)
	rq.Same(client, again)
}

func TestSQLClientUnknownDriver(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	db := &connectors.SQL{Driver: "mssql", DSN: "postgres://user:secret@db:5432/phrases"}
	defer db.Close(ctx)

	_, err := db.Client(ctx)
	rq.ErrorContains(err, "connect mssql db:5432/phrases")
	rq.NotContains(err.Error(), "secret")

	_, again := db.Client(ctx)
	rq.Equal(err, again)
}
