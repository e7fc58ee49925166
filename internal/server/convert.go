package server

import (
	"github.com/samber/lo"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/pkg/rest"
)

func newRESTPhrase(phrase entity.Phrase) rest.Phrase {
	return rest.Phrase{
		ID:   phrase.ID.String(),
		Text: phrase.Text,
	}
}

func newRESTPhrasePage(phrases []entity.Phrase, page, pageSize int) rest.PhrasePage {
	return rest.PhrasePage{
		Items:    lo.Map(phrases, func(p entity.Phrase, _ int) rest.Phrase { return newRESTPhrase(p) }),
		Page:     page,
		PageSize: pageSize,
		HasNext:  len(phrases) >= pageSize,
	}
}

func newRESTFortune(f entity.Fortune) rest.Fortune {
	return rest.Fortune{
		Phrase:      f.Phrase,
		LuckyNumber: f.LuckyNumberString(),
		Outcome:     string(f.Outcome),
	}
}
