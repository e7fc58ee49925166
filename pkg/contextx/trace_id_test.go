package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"fortune_cookie/pkg/contextx"
)

func TestTraceIDFromContext(t *testing.T) {
	rq := require.New(t)

	_, err := contextx.TraceIDFromContext(context.Background())
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id")

	ctx := contextx.WithTraceID(context.Background(), "upstream-id")

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal(contextx.TraceID("upstream-id"), traceID)
}

func TestEnsureTraceID(t *testing.T) {
	rq := require.New(t)

	ctx, generated := contextx.EnsureTraceID(context.Background())
	rq.Len(generated.String(), 20)

	fromCtx, err := contextx.TraceIDFromContext(ctx)
	rq.NoError(err)
	rq.Equal(generated, fromCtx)

	again, kept := contextx.EnsureTraceID(ctx)
	rq.Equal(generated, kept)
	rq.Equal(ctx, again)

	rq.NotEqual(contextx.NewTraceID(), contextx.NewTraceID())
}
