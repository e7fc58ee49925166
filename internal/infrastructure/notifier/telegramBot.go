package notifier

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/pkg/logx"
)

type messageSender interface {
	SendMessage(ctx context.Context, params *telego.SendMessageParams) (*telego.Message, error)
}

// TelegramBot шлёт уведомления об изменениях фраз в служебный чат.
type TelegramBot struct {
	bot    messageSender
	chatID int64
}

// NewTelegramBot. Обычно bot это *telego.Bot.
func NewTelegramBot(bot messageSender, chatID int64) *TelegramBot {
	return &TelegramBot{
		bot:    bot,
		chatID: chatID,
	}
}

// Run доставляет события из канала, пока канал не закрыт или не отменён ctx.
// Используется, когда очереди на Redis нет.
func (b *TelegramBot) Run(ctx context.Context, events <-chan entity.PhraseEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := b.SendPhraseEvent(ctx, event); err != nil {
				logger(ctx).Error("failed to send phrase event",
					slog.String(logx.FieldPhraseID, event.Phrase.ID.String()),
					logx.Error(err),
				)
			}
		}
	}
}

func (b *TelegramBot) SendPhraseEvent(ctx context.Context, event entity.PhraseEvent) error {
	msg := tu.Message(
		tu.ID(b.chatID),
		FormatPhraseEvent(event),
	).WithParseMode(telego.ModeHTML)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

// SendText отправляет простое текстовое сообщение.
func (b *TelegramBot) SendText(ctx context.Context, text string) error {
	msg := tu.Message(tu.ID(b.chatID), text)

	if _, err := b.bot.SendMessage(ctx, msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}

func FormatPhraseEvent(event entity.PhraseEvent) string {
	id := html.EscapeString(event.Phrase.ID.String())

	var text string

	switch event.Kind {
	case entity.PhraseCreated:
		text = fmt.Sprintf("🥠 <b>Nueva frase</b>\n\n%s\n\n<code>%s</code>", html.EscapeString(event.Phrase.Text), id)
	case entity.PhraseUpdated:
		text = fmt.Sprintf("✏️ <b>Frase editada</b>\n\n%s\n\n<code>%s</code>", html.EscapeString(event.Phrase.Text), id)
	case entity.PhraseDeleted:
		text = fmt.Sprintf("🗑 <b>Frase eliminada</b>\n\n<code>%s</code>", id)
	default:
		text = fmt.Sprintf("Frase %s: %s", html.EscapeString(string(event.Kind)), id)
	}

	if event.ActorID != 0 {
		text += fmt.Sprintf("\n👤 <a href=\"tg://user?id=%d\">%d</a>", event.ActorID, event.ActorID)
	}

	return text
}
