package probe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fortune_cookie/pkg/probe"
)

var errStoreDown = errors.New("phrase store is down")

func TestHandler(t *testing.T) {
	const okBody = `{"name":"fortune-cookie","version":"v0.0.1"}`

	passing := func(context.Context) error { return nil }
	failing := func(context.Context) error { return errStoreDown }

	testCases := []struct {
		name       string
		endpoint   string
		checks     []probe.Check
		statusCode int
		body       string
	}{
		{name: "Health", endpoint: "/healthz", statusCode: http.StatusOK, body: okBody},
		{name: "Health ignores checks", endpoint: "/healthz", checks: []probe.Check{failing}, statusCode: http.StatusOK, body: okBody},
		{name: "Ready without checks", endpoint: "/ready", statusCode: http.StatusOK, body: okBody},
		{name: "Ready with passing checks", endpoint: "/ready", checks: []probe.Check{passing, passing}, statusCode: http.StatusOK, body: okBody},
		{
			name:       "Ready with failing check",
			endpoint:   "/ready",
			checks:     []probe.Check{passing, failing},
			statusCode: http.StatusServiceUnavailable,
			body:       `{"name":"fortune-cookie","version":"v0.0.1","error":"phrase store is down"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			h := probe.New(probe.Options{Name: "fortune-cookie", Version: "v0.0.1"}, tc.checks...).Handler()

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.endpoint, http.NoBody))

			rq.Equal(tc.statusCode, rec.Code)
			rq.JSONEq(tc.body, rec.Body.String())
			rq.Equal("application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestHandlerUnknownEndpoint(t *testing.T) {
	rq := require.New(t)

	rec := httptest.NewRecorder()
	probe.New(probe.Options{}).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", http.NoBody))

	rq.Equal(http.StatusNotFound, rec.Code)
}

func TestReadyCheckTimeout(t *testing.T) {
	rq := require.New(t)

	p := probe.New(probe.Options{CheckTimeout: 20 * time.Millisecond}, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", http.NoBody))

	rq.Equal(http.StatusServiceUnavailable, rec.Code)
	rq.Contains(rec.Body.String(), context.DeadlineExceeded.Error())
}
