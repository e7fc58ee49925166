package fortune

import (
	"context"
	"errors"
	"sync"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
)

var ErrBusy = errors.New("fortune widget: draw in flight")

type drawer interface {
	Draw(ctx context.Context) (entity.Fortune, error)
}

// Widget — кнопка "открыть печенье" одного покупателя (или чата).
// Помнит последнюю фразу и счастливое число.
type Widget struct {
	drawer drawer

	mu      sync.Mutex
	loading bool
	opened  bool
	phrase  string
	lucky   *value.LuckyNumber
}

func NewWidget(d drawer) *Widget {
	return &Widget{drawer: d}
}

type WidgetView struct {
	Phrase      string
	LuckyNumber string
	Loading     bool
	ButtonLabel string
}

func (w *Widget) View() WidgetView {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.view()
}

// Open открывает печенье. Флаг загрузки снимается на любом исходе;
// при ошибке прежнее счастливое число стирается.
func (w *Widget) Open(ctx context.Context) (WidgetView, error) {
	w.mu.Lock()
	if w.loading {
		w.mu.Unlock()
		return WidgetView{}, ErrBusy
	}
	w.loading = true
	w.mu.Unlock()

	f, err := w.drawer.Draw(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.loading = false
	w.opened = true
	w.phrase = f.Phrase
	w.lucky = f.LuckyNumber

	if err != nil {
		w.phrase = MsgFailed
		w.lucky = nil
	}

	return w.view(), err
}

func (w *Widget) view() WidgetView {
	v := WidgetView{
		Phrase:      w.phrase,
		Loading:     w.loading,
		ButtonLabel: LabelOpen,
	}

	if w.lucky != nil {
		v.LuckyNumber = w.lucky.String()
	}

	if w.opened {
		v.ButtonLabel = LabelOpenMore
	}

	return v
}
