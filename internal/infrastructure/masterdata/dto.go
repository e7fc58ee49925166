package masterdata

import (
	"fmt"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
)

// createResponse — ответ на POST /documents.
type createResponse struct {
	ID         string `json:"Id"`
	Href       string `json:"Href"`
	DocumentID string `json:"DocumentId"`
}

func (r createResponse) phraseID() value.PhraseID {
	if r.DocumentID != "" {
		return value.PhraseID(r.DocumentID)
	}
	return value.PhraseID(r.ID)
}

// searchRow — одна строка ответа /search. Значения полей приходят как
// произвольный JSON, поэтому приводятся к строке.
type searchRow map[string]any

func (r searchRow) document() value.Document {
	var doc value.Document

	for k, v := range r {
		switch v := v.(type) {
		case nil:
			doc.Fields = append(doc.Fields, value.DocumentField{Key: k})
		case string:
			doc.Fields = append(doc.Fields, value.DocumentField{Key: k, Value: v})
		default:
			doc.Fields = append(doc.Fields, value.DocumentField{Key: k, Value: fmt.Sprint(v)})
		}
	}

	return doc
}

func (r searchRow) toDomain(keys value.FieldKeys) entity.Phrase {
	doc := r.document()

	id, _ := doc.Get(keys, value.FieldID)
	text, _ := doc.Get(keys, value.FieldText)

	return entity.Phrase{ID: value.PhraseID(id), Text: text}
}

func textDocument(keys value.FieldKeys, text string) map[string]string {
	var doc value.Document
	doc.Set(keys, value.FieldText, text)

	return doc.Map()
}
