package notifier_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/infrastructure/notifier"
)

type senderStub struct {
	mu   sync.Mutex
	sent []*telego.SendMessageParams
	err  error
}

func (s *senderStub) SendMessage(_ context.Context, params *telego.SendMessageParams) (*telego.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, params)

	return &telego.Message{}, s.err
}

func (s *senderStub) messages() []*telego.SendMessageParams {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*telego.SendMessageParams(nil), s.sent...)
}

func TestFormatPhraseEvent(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name  string
		event entity.PhraseEvent
		want  string
	}{
		{
			name:  "created escapes html",
			event: entity.PhraseEvent{Kind: entity.PhraseCreated, Phrase: entity.Phrase{ID: "1", Text: "<b>suerte</b>"}},
			want:  "🥠 <b>Nueva frase</b>\n\n&lt;b&gt;suerte&lt;/b&gt;\n\n<code>1</code>",
		},
		{
			name:  "updated",
			event: entity.PhraseEvent{Kind: entity.PhraseUpdated, Phrase: entity.Phrase{ID: "2", Text: "otra"}},
			want:  "✏️ <b>Frase editada</b>\n\notra\n\n<code>2</code>",
		},
		{
			name:  "deleted",
			event: entity.PhraseEvent{Kind: entity.PhraseDeleted, Phrase: entity.Phrase{ID: "3"}},
			want:  "🗑 <b>Frase eliminada</b>\n\n<code>3</code>",
		},
		{
			name:  "edited from the bot",
			event: entity.PhraseEvent{Kind: entity.PhraseDeleted, Phrase: entity.Phrase{ID: "4"}, ActorID: 77},
			want:  "🗑 <b>Frase eliminada</b>\n\n<code>4</code>\n👤 <a href=\"tg://user?id=77\">77</a>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.want, notifier.FormatPhraseEvent(tc.event))
		})
	}
}

func TestTelegramBotSendPhraseEvent(t *testing.T) {
	rq := require.New(t)

	sender := &senderStub{}
	bot := notifier.NewTelegramBot(sender, 42)

	err := bot.SendPhraseEvent(context.Background(), entity.PhraseEvent{Kind: entity.PhraseDeleted, Phrase: entity.Phrase{ID: "x"}})
	rq.NoError(err)

	sent := sender.messages()
	rq.Len(sent, 1)
	rq.Equal(int64(42), sent[0].ChatID.ID)
	rq.Equal(telego.ModeHTML, sent[0].ParseMode)

	sender.err = errors.New("telegram is down")
	rq.Error(bot.SendText(context.Background(), "hola"))
}

func TestTelegramBotRunDeliversPublishedEvents(t *testing.T) {
	rq := require.New(t)

	sender := &senderStub{}
	bot := notifier.NewTelegramBot(sender, 1)

	events := make(chan entity.PhraseEvent, 2)
	pub := notifier.NewChannelPublisher(events)

	ctx := context.Background()
	rq.NoError(pub.Publish(ctx, entity.PhraseEvent{Kind: entity.PhraseCreated, Phrase: entity.Phrase{ID: "1"}}))
	rq.NoError(pub.Publish(ctx, entity.PhraseEvent{Kind: entity.PhraseDeleted, Phrase: entity.Phrase{ID: "1"}}))

	// Буфер полон: событие отбрасывается без ошибки.
	rq.NoError(pub.Publish(ctx, entity.PhraseEvent{Kind: entity.PhraseUpdated}))

	close(events)
	rq.NoError(bot.Run(ctx, events))
	rq.Len(sender.messages(), 2)
}

func TestTelegramBotRunStopsOnCancel(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := notifier.NewTelegramBot(&senderStub{}, 1).Run(ctx, make(chan entity.PhraseEvent))
	rq.ErrorIs(err, context.Canceled)
}
