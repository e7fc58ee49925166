package reply

import (
	"context"
	"log/slog"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

// ErrorBody — тело любого ответа с ошибкой. SupportID совпадает с trace id
// запроса.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	SupportID string `json:"supportId"`
}

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// AppError пишет ошибку, для которой вызывающий уже выбрал статус и код.
func AppError(ctx context.Context, w http.ResponseWriter, statusCode int, code failure.ErrorCode, message string, err error) {
	writeError(ctx, w, statusCode, code.String(), message, err)
}

//nolint:gochecknoglobals
var failureKinds = []struct {
	is          func(error) bool
	status      int
	defaultCode failure.ErrorCode
}{
	{failure.IsInvalidArgumentError, http.StatusBadRequest, errcodes.ValidationError},
	{failure.IsNotFoundError, http.StatusNotFound, errcodes.NotFound},
	{failure.IsUnauthorizedError, http.StatusUnauthorized, errcodes.Forbidden},
	{failure.IsForbiddenError, http.StatusForbidden, errcodes.Forbidden},
	{failure.IsConflictError, http.StatusConflict, errcodes.ValidationError},
	{failure.IsUnprocessableEntityError, http.StatusUnprocessableEntity, errcodes.ValidationError},
}

// Error выбирает статус по виду ошибки failure. Всё остальное отдаёт 500.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, errcodes.InternalServerError

	for _, kind := range failureKinds {
		if kind.is(err) {
			status, code = kind.status, kind.defaultCode
			break
		}
	}

	if c := failure.Code(err); c != "" {
		code = c
	}

	writeError(ctx, w, status, code.String(), failure.Description(err), err)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	logger(ctx).Log(ctx, level, "request failed",
		slog.Int(logx.FieldResponseStatus, status),
		slog.String("code", code),
		logx.Error(err),
	)

	JSON(ctx, w, status, ErrorBody{
		Code:      code,
		Message:   message,
		SupportID: supportID(ctx),
	})
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
