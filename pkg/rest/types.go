// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// Phrase Фраза печенья с предсказанием
type Phrase struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PhraseRequest Тело запроса на создание или изменение фразы
type PhraseRequest struct {
	// Text Поле обязательно, но пустая строка допустима
	Text *string `json:"text" validate:"required"`
}

// PhrasePage Страница фраз
type PhrasePage struct {
	Items    []Phrase `json:"items"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`

	// HasNext Эвристика: страница заполнена целиком, значит дальше могут быть записи
	HasNext bool `json:"hasNext"`
}

// Fortune Результат открытия печенья
type Fortune struct {
	Phrase      string `json:"phrase"`
	LuckyNumber string `json:"luckyNumber,omitempty"`

	// Outcome drawn | empty | failed
	Outcome string `json:"outcome"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	// SupportID Идентификатор трассировки запроса
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
