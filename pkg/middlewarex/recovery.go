package middlewarex

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx/reply"
	"fortune_cookie/pkg/logx"
)

// Recovery turns a handler panic into a JSON 500 with the request trace id
// as supportId.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			if rec == http.ErrAbortHandler { //nolint:errorlint,err113
				panic(rec)
			}

			logger(ctx).Error(
				"panic in handler",
				slog.Any(logx.FieldError, rec),
				slog.String(logx.FieldStack, string(debug.Stack())),
			)

			reply.AppError(ctx, w, http.StatusInternalServerError, errcodes.InternalServerError,
				"internal error", fmt.Errorf("panic: %v", rec)) //nolint:err113
		}()

		next.ServeHTTP(w, r)
	})
}
