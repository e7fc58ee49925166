package phraselist

import (
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
)

// Form — модальная форма создания/редактирования одной фразы.
// Никакой валидации нет: ни обрезки пробелов, ни проверки длины.
type Form struct {
	id      value.PhraseID
	initial string
}

// NewCreateForm открывает пустую форму.
func NewCreateForm() Form {
	return Form{}
}

// NewEditForm открывает форму с текстом существующей фразы.
func NewEditForm(p entity.Phrase) Form {
	return Form{id: p.ID, initial: p.Text}
}

func (f Form) IsEdit() bool {
	return !f.id.IsZero()
}

func (f Form) PhraseID() value.PhraseID {
	return f.id
}

func (f Form) InitialText() string {
	return f.initial
}

func (f Form) Title() string {
	if f.IsEdit() {
		return TitleEdit
	}
	return TitleCreate
}

func (f Form) ConfirmLabel() string {
	if f.IsEdit() {
		return LabelEdit
	}
	return LabelCreate
}

// Confirm возвращает (true, {text}).
func (f Form) Confirm(text string) FormResult {
	return FormResult{Confirmed: true, Text: text}
}

// Cancel возвращает (false, ничего).
func (f Form) Cancel() FormResult {
	return FormResult{}
}

type FormResult struct {
	Confirmed bool
	Text      string
}
