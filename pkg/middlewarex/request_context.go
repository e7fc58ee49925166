package middlewarex

import (
	"log/slog"
	"net/http"
	"unicode"

	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

const (
	headerNameTraceID = "X-Trace-Id"
	maxTraceIDLen     = 64
)

// RequestContext attaches a trace id and a request-scoped logger to the
// context. An upstream X-Trace-Id is reused when it looks sane, otherwise a
// new one is generated. The id is echoed back in the response header.
func RequestContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := contextx.TraceID(r.Header.Get(headerNameTraceID))
		if !validTraceID(traceID) {
			traceID = contextx.NewTraceID()
		}

		w.Header().Set(headerNameTraceID, traceID.String())

		ctx := contextx.WithTraceID(r.Context(), traceID)
		ctx = contextx.WithLogAttrs(ctx,
			logx.Stringer(logx.FieldTraceID, traceID),
			slog.String(logx.FieldHTTPMethod, r.Method),
			slog.String(logx.FieldURL, r.URL.Path),
			slog.String(logx.FieldIP, r.RemoteAddr),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func validTraceID(id contextx.TraceID) bool {
	if id == "" || len(id) > maxTraceIDLen {
		return false
	}

	for _, c := range id {
		if c > unicode.MaxASCII || !unicode.IsPrint(c) || unicode.IsSpace(c) {
			return false
		}
	}

	return true
}
