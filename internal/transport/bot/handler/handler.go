package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/service/fortune"
	"fortune_cookie/internal/domain/service/phraselist"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/internal/transport/bot/session"
	"fortune_cookie/internal/transport/bot/view"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Handler struct {
	sessions *session.Store
}

func New(sessions *session.Store) *Handler {
	return &Handler{
		sessions: sessions,
	}
}

// Reply — реакция на нажатие кнопки. С пустым Screen сообщение не меняется.
// Notice показывается всплывающей подсказкой Telegram.
type Reply struct {
	Screen view.Screen
	Notice string
}

// Phrases перечитывает текущую страницу и рисует список.
func (h *Handler) Phrases(ctx context.Context, chatID int64) view.Screen {
	c := h.sessions.Get(chatID).Phrases

	if err := c.Load(ctx); err != nil {
		h.logError(ctx, chatID, "phrase list load", err)
	}

	return view.List(c.View())
}

// Cancel закрывает открытую форму без сохранения.
func (h *Handler) Cancel(ctx context.Context, chatID int64) view.Screen {
	c := h.sessions.Get(chatID).Phrases

	if v := c.View(); v.Form != nil {
		if err := c.Submit(ctx, v.Form.Cancel()); err != nil {
			h.logError(ctx, chatID, "form cancel", err)
		}
	}

	return view.List(c.View())
}

func (h *Handler) Cookie(chatID int64) view.Screen {
	return view.Fortune(h.sessions.Get(chatID).Cookie.View())
}

// Text подтверждает открытую форму присланным текстом. false, если формы нет:
// тогда сообщение не для нас.
func (h *Handler) Text(ctx context.Context, chatID int64, text string) (view.Screen, bool) {
	c := h.sessions.Get(chatID).Phrases

	v := c.View()
	if v.Form == nil {
		return view.Screen{}, false
	}

	if err := c.Submit(ctx, v.Form.Confirm(text)); err != nil {
		if errors.Is(err, phraselist.ErrBusy) {
			return view.Form(*v.Form), true
		}
		h.logError(ctx, chatID, "form submit", err)
	}

	return view.List(c.View()), true
}

func (h *Handler) Callback(ctx context.Context, chatID int64, data string) Reply {
	sess := h.sessions.Get(chatID)
	c := sess.Phrases

	list := func(err error, op string) Reply {
		if errors.Is(err, phraselist.ErrBusy) {
			return Reply{Notice: view.BusyNotice}
		}
		if err != nil {
			h.logError(ctx, chatID, op, err)
		}
		return Reply{Screen: view.List(c.View())}
	}

	switch {
	case data == view.DataNext:
		_, err := c.NextPage(ctx)
		return list(err, "next page")

	case data == view.DataPrev:
		_, err := c.PrevPage(ctx)
		return list(err, "previous page")

	case data == view.DataAdd:
		return Reply{Screen: view.Form(c.OpenCreate())}

	case strings.HasPrefix(data, view.PrefixEdit):
		p, ok := findPhrase(c.View(), strings.TrimPrefix(data, view.PrefixEdit))
		if !ok {
			return Reply{Screen: view.List(c.View()), Notice: view.StaleNotice}
		}
		return Reply{Screen: view.Form(c.OpenEdit(p))}

	case strings.HasPrefix(data, view.PrefixRemove):
		p, ok := findPhrase(c.View(), strings.TrimPrefix(data, view.PrefixRemove))
		if !ok {
			return Reply{Screen: view.List(c.View()), Notice: view.StaleNotice}
		}
		if err := c.RequestRemove(p); err != nil {
			return list(err, "request remove")
		}
		return Reply{Screen: view.ConfirmRemove(p)}

	case data == view.DataYes, data == view.DataNo:
		err := c.ConfirmRemove(ctx, data == view.DataYes)
		if errors.Is(err, phraselist.ErrNoPendingRemoval) {
			err = nil
		}
		return list(err, "confirm remove")

	case data == view.DataDismiss:
		c.DismissMessage()
		return list(nil, "")

	case data == view.DataCancel:
		return Reply{Screen: h.Cancel(ctx, chatID)}

	case data == view.DataCookie:
		v, err := sess.Cookie.Open(ctx)
		if errors.Is(err, fortune.ErrBusy) {
			return Reply{Notice: view.BusyNotice}
		}
		if err != nil {
			h.logError(ctx, chatID, "fortune draw", err)
		}
		return Reply{Screen: view.Fortune(v)}

	default:
		return Reply{}
	}
}

func (h *Handler) logError(ctx context.Context, chatID int64, op string, err error) {
	logger(ctx).Error("bot: "+op+" failed", slog.Int64(logx.FieldChatID, chatID), logx.Error(err))
}

func findPhrase(v phraselist.View, rawID string) (entity.Phrase, bool) {
	id, err := value.ParsePhraseID(rawID)
	if err != nil {
		return entity.Phrase{}, false
	}

	return lo.Find(v.Items, func(p entity.Phrase) bool { return p.ID == id })
}
