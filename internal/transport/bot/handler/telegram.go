package handler

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"

	"fortune_cookie/internal/transport/bot/view"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, view.Screen{Text: view.StartMessage})
}

func (h *Handler) OnPhrases(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, h.Phrases(withUser(ctx, msg.From), msg.Chat.ID))
}

func (h *Handler) OnCancel(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, h.Cancel(withUser(ctx, msg.From), msg.Chat.ID))
}

func (h *Handler) OnCookie(ctx *th.Context, msg telego.Message) error {
	return h.send(ctx, msg.Chat.ID, h.Cookie(msg.Chat.ID))
}

func (h *Handler) OnText(ctx *th.Context, msg telego.Message) error {
	screen, ok := h.Text(withUser(ctx, msg.From), msg.Chat.ID, msg.Text)
	if !ok {
		return nil
	}

	return h.send(ctx, msg.Chat.ID, screen)
}

func (h *Handler) OnCallback(ctx *th.Context, query telego.CallbackQuery) error {
	chatID := query.From.ID
	if query.Message != nil {
		chatID = query.Message.GetChat().ID
	}

	reply := h.Callback(withUser(ctx, &query.From), chatID, query.Data)

	if reply.Screen.Text != "" && query.Message != nil {
		_, err := ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      tu.ID(chatID),
			MessageID:   query.Message.GetMessageID(),
			Text:        reply.Screen.Text,
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: reply.Screen.Keyboard,
		})
		// Telegram отвечает ошибкой, если текст не изменился.
		if err != nil {
			logger(ctx).Debug("bot: edit message", slog.Int64(logx.FieldChatID, chatID), logx.Error(err))
		}
	}

	answer := tu.CallbackQuery(query.ID)
	if reply.Notice != "" {
		answer = answer.WithText(reply.Notice)
	}

	return ctx.Bot().AnswerCallbackQuery(ctx, answer)
}

func (h *Handler) send(ctx *th.Context, chatID int64, screen view.Screen) error {
	params := &telego.SendMessageParams{
		ChatID:    tu.ID(chatID),
		Text:      screen.Text,
		ParseMode: telego.ModeHTML,
	}

	if screen.Keyboard != nil {
		params.ReplyMarkup = screen.Keyboard
	}

	_, err := ctx.Bot().SendMessage(ctx, params)

	return err
}

// withUser помечает апдейт trace id и автором, в том числе в логах.
func withUser(ctx context.Context, user *telego.User) context.Context {
	ctx, traceID := contextx.EnsureTraceID(ctx)
	ctx = contextx.WithLogAttrs(ctx, logx.Stringer(logx.FieldTraceID, traceID))

	if user == nil {
		return ctx
	}

	userID := contextx.UserID(user.ID)

	return contextx.WithLogAttrs(contextx.WithUserID(ctx, userID), logx.Stringer(logx.FieldUserID, userID))
}
