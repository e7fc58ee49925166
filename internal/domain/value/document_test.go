package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain/value"
)

func TestDocumentAccessors(t *testing.T) {
	rq := require.New(t)

	keys := value.DefaultFieldKeys

	var doc value.Document

	_, ok := doc.Get(keys, value.FieldText)
	rq.False(ok)

	doc.Set(keys, value.FieldID, "abc")
	doc.Set(keys, value.FieldText, "Un viaje te espera")
	doc.Set(keys, value.FieldText, "Una sorpresa te espera")

	text, ok := doc.Get(keys, value.FieldText)
	rq.True(ok)
	rq.Equal("Una sorpresa te espera", text)
	rq.Len(doc.Fields, 2)

	rq.Equal(map[string]string{
		"id":            "abc",
		"CookieFortune": "Una sorpresa te espera",
	}, doc.Map())
}

func TestFieldKeysCustomEntity(t *testing.T) {
	rq := require.New(t)

	keys := value.FieldKeys{ID: "id", Text: "phrase"}

	rq.Equal("phrase", keys.Key(value.FieldText))
	rq.Equal("id", keys.Key(value.FieldID))
	rq.Empty(keys.Key(value.Field(42)))
}

func TestParsePhraseID(t *testing.T) {
	rq := require.New(t)

	id, err := value.ParsePhraseID(" 5f0e-aa ")
	rq.NoError(err)
	rq.Equal(value.PhraseID("5f0e-aa"), id)
	rq.False(id.IsZero())

	_, err = value.ParsePhraseID("   ")
	rq.ErrorIs(err, value.ErrEmptyPhraseID)
}
