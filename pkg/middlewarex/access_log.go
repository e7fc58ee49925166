package middlewarex

import (
	"bytes"
	"cmp"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"fortune_cookie/pkg/logx"
)

// AccessLog writes one record per request with the dumped request, the
// response status, headers and body. Dumps are masked and clipped to
// logFieldMaxLen (0 means no limit). 5xx is logged at Error, 4xx at Warn.
//
// mutil.WrapWriter keeps the optional interfaces (Flusher, Hijacker) of the
// original writer.
func AccessLog(masker logx.SensitiveDataMaskerInterface, logFieldMaxLen int) func(next http.Handler) http.Handler {
	clip := func(b []byte) string {
		b = masker.Mask(b)
		if logFieldMaxLen > 0 && len(b) > logFieldMaxLen {
			b = b[:logFieldMaxLen]
		}
		return string(b)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()

			withBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
			reqDump, dumpErr := httputil.DumpRequest(r, withBody)
			if dumpErr != nil {
				logger(ctx).Warn("httputil.DumpRequest", logx.Error(dumpErr))
			}

			lw := mutil.WrapWriter(w)

			var body bytes.Buffer
			lw.Tee(&body)

			next.ServeHTTP(lw, r)

			var headers bytes.Buffer
			_ = w.Header().WriteSubset(&headers, nil)

			// Status() is 0 when the handler never called WriteHeader.
			status := cmp.Or(lw.Status(), http.StatusOK)

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			logger(ctx).Log(ctx, level, logx.FieldHTTPResponse,
				slog.String(logx.FieldRequestBody, clip(reqDump)),
				slog.Int(logx.FieldResponseStatus, status),
				slog.String(logx.FieldResponseHeaders, clip(headers.Bytes())),
				slog.String(logx.FieldResponseBody, clip(body.Bytes())),
				slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
			)
		})
	}
}
