package entity

import "fortune_cookie/internal/domain/value"

// Phrase — фраза для печенья с предсказанием.
// ID пустой, пока документ не сохранён в хранилище.
type Phrase struct {
	ID   value.PhraseID `json:"id"`
	Text string         `json:"text"`
}

// IsPersisted сообщает, присвоило ли хранилище идентификатор.
func (p Phrase) IsPersisted() bool {
	return !p.ID.IsZero()
}
