package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Фразы и хранилище документов
	PhraseNotFound     failure.ErrorCode = "PhraseNotFound"     // документа с таким ID нет в хранилище
	InvalidPhraseID    failure.ErrorCode = "InvalidPhraseID"    // пустой или мусорный ID
	InvalidPhrase      failure.ErrorCode = "InvalidPhrase"      // тело запроса не прошло валидацию
	StoreUnavailable   failure.ErrorCode = "StoreUnavailable"   // хранилище ответило не-2xx или не ответило
	UnknownStoreDriver failure.ErrorCode = "UnknownStoreDriver" // STORE_DRIVER не поддерживается
)
