package httpx

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/rs/xid"

	"fortune_cookie/pkg/logx"
)

//go:generate moq -rm -out sensitive_data_masker_mock.gen.go . sensitiveDataMasker:SensitiveDataMaskerMock
type sensitiveDataMasker interface {
	Mask([]byte) []byte
}

// LoggingRoundTripper writes one log record per outgoing exchange: the dumped
// request, the dumped response and the elapsed time. Responses with status
// 400 and above are logged at Warn, transport failures at Error.
type LoggingRoundTripper struct {
	next                http.RoundTripper
	peer                string
	sensitiveDataMasker sensitiveDataMasker
	logFieldMaxLen      int
}

func NewLoggingRoundTripper(next http.RoundTripper, opts ...Option) LoggingRoundTripper {
	rt := LoggingRoundTripper{
		next:                next,
		sensitiveDataMasker: logx.NopMasker(),
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}

func (rt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	attrs := []any{
		slog.String(logx.FieldRequestID, xid.New().String()),
		slog.String(logx.FieldHTTPMethod, req.Method),
		slog.String(logx.FieldURL, req.URL.Redacted()),
	}

	if rt.peer != "" {
		attrs = append(attrs, slog.String(logx.FieldPeer, rt.peer))
	}

	if dump, err := httputil.DumpRequestOut(req, true); err == nil {
		attrs = append(attrs, slog.String(logx.FieldRequestBody, rt.field(dump)))
	} else {
		attrs = append(attrs, slog.String(logx.FieldRequestBody, "dump failed: "+err.Error()))
	}

	start := time.Now()

	resp, err := rt.next.RoundTrip(req)

	attrs = append(attrs, slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()))

	if err != nil {
		logger(ctx).Error(logx.FieldHTTPRequest, append(attrs, logx.Error(err))...)
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	attrs = append(attrs, slog.Int(logx.FieldResponseStatus, resp.StatusCode))

	if dump, dumpErr := httputil.DumpResponse(resp, true); dumpErr == nil {
		attrs = append(attrs, slog.String(logx.FieldResponseBody, rt.field(dump)))
	}

	level := slog.LevelInfo
	if resp.StatusCode >= http.StatusBadRequest {
		level = slog.LevelWarn
	}

	logger(ctx).Log(ctx, level, logx.FieldHTTPResponse, attrs...)

	return resp, nil
}

func (rt LoggingRoundTripper) field(dump []byte) string {
	dump = rt.sensitiveDataMasker.Mask(dump)

	if rt.logFieldMaxLen > 0 && len(dump) > rt.logFieldMaxLen {
		dump = dump[:rt.logFieldMaxLen]
	}

	return string(dump)
}
