package server

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"fortune_cookie/internal/domain"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx/reply"
)

var errForbidden = errors.New("invalid admin token")

//nolint:gochecknoglobals
var statusByCode = map[failure.ErrorCode]int{
	errcodes.ValidationError:    http.StatusBadRequest,
	errcodes.InvalidPaging:      http.StatusBadRequest,
	errcodes.InvalidPhraseID:    http.StatusBadRequest,
	errcodes.InvalidPhrase:      http.StatusBadRequest,
	errcodes.Forbidden:          http.StatusForbidden,
	errcodes.NotFound:           http.StatusNotFound,
	errcodes.PhraseNotFound:     http.StatusNotFound,
	errcodes.StoreUnavailable:   http.StatusBadGateway,
	errcodes.TimeoutExceeded:    http.StatusGatewayTimeout,
	errcodes.UnknownStoreDriver: http.StatusInternalServerError,
}

// replyError отвечает доменными кодами для AppError, остальное отдаёт
// reply.Error (ошибки failure из разбора запроса).
func replyError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	if errors.Is(err, context.DeadlineExceeded) {
		reply.AppError(ctx, w, http.StatusGatewayTimeout, errcodes.TimeoutExceeded, "document store timed out", err)
		return
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	status, ok := statusByCode[appErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	reply.AppError(ctx, w, status, appErr.Code, appErr.Message, err)
}
