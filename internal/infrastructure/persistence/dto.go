package persistence

import (
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
)

// phraseSchema — строка таблицы phrases.
type phraseSchema struct {
	ID       string `db:"id"`
	Text     string `db:"text"`
	Position int64  `db:"position"`
}

func (s phraseSchema) toDomain() entity.Phrase {
	return entity.Phrase{
		ID:   value.PhraseID(s.ID),
		Text: s.Text,
	}
}

func toDomain(schemas []phraseSchema) []entity.Phrase {
	phrases := make([]entity.Phrase, 0, len(schemas))
	for _, s := range schemas {
		phrases = append(phrases, s.toDomain())
	}
	return phrases
}
