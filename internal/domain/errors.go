package domain

import (
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
)

// AppError — ошибка с кодом из errcodes. Код уходит клиенту API и выбирает
// HTTP-статус; Message показывается пользователю как есть.
//
// Две AppError равны для errors.Is, если совпадают коды.
type AppError struct {
	Code    failure.ErrorCode
	Message string
	cause   error
}

func NewError(code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func WrapError(err error, code failure.ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, cause: err}
}

func (e *AppError) Error() string {
	if e.cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %v", e.Message, e.cause)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// GetCode — код ближайшей AppError в цепочке.
func GetCode(err error) (failure.ErrorCode, bool) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return "", false
	}

	return appErr.Code, true
}

func HasCode(err error, code failure.ErrorCode) bool {
	return errors.Is(err, &AppError{Code: code})
}
