package entity

import "fortune_cookie/internal/domain/value"

type FortuneOutcome string

const (
	FortuneDrawn  FortuneOutcome = "drawn"
	FortuneEmpty  FortuneOutcome = "empty"
	FortuneFailed FortuneOutcome = "failed"
)

// Fortune — то, что видит покупатель после нажатия на кнопку.
type Fortune struct {
	Phrase      string
	LuckyNumber *value.LuckyNumber // nil, если печенье не открылось
	Outcome     FortuneOutcome
}

func (f Fortune) LuckyNumberString() string {
	if f.LuckyNumber == nil {
		return ""
	}
	return f.LuckyNumber.String()
}
