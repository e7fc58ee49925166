package value

import (
	"errors"
	"strings"
)

var ErrEmptyPhraseID = errors.New("phrase id is empty")

// PhraseID — непрозрачный идентификатор, который выдаёт хранилище документов.
type PhraseID string

func ParsePhraseID(s string) (PhraseID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyPhraseID
	}
	return PhraseID(s), nil
}

func (id PhraseID) String() string {
	return string(id)
}

func (id PhraseID) IsZero() bool {
	return id == ""
}
