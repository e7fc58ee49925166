package middlewarex_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
	"fortune_cookie/pkg/middlewarex"
)

func TestAccessLog(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		body     string
		maxLen   int
		level    string
		wantBody string
	}{
		{
			name:     "Implicit 200",
			body:     `{"text":"Hoy es tu día"}`,
			level:    "INFO",
			wantBody: `{"text":"Hoy es tu día"}`,
		},
		{
			name:     "Not found",
			status:   http.StatusNotFound,
			body:     `{"code":"PhraseNotFound"}`,
			level:    "WARN",
			wantBody: `{"code":"PhraseNotFound"}`,
		},
		{
			name:     "Store failure",
			status:   http.StatusBadGateway,
			level:    "ERROR",
			wantBody: "",
		},
		{
			name:     "Clipped",
			status:   http.StatusOK,
			body:     `{"text":"Hoy es tu día"}`,
			maxLen:   5,
			level:    "INFO",
			wantBody: `{"tex`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var buf bytes.Buffer

			ctx := contextx.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)))

			h := middlewarex.AccessLog(logx.NewSensitiveDataMasker(), tc.maxLen)(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					if tc.status != 0 {
						w.WriteHeader(tc.status)
					}
					_, _ = w.Write([]byte(tc.body))
				}),
			)

			req := httptest.NewRequest(http.MethodPost, "/v1/admin/phrases", strings.NewReader(`{"text":"x","appToken":"abc"}`))
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			rq.Equal(tc.body, rec.Body.String())

			var record map[string]any
			rq.NoError(jsoniter.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))

			rq.Equal(tc.level, record["level"])
			rq.Equal(tc.wantBody, record[logx.FieldResponseBody])
			rq.NotContains(record[logx.FieldRequestBody], "abc")
			rq.Contains(record, logx.FieldDurationMs)
		})
	}
}
