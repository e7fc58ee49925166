package notifier

import (
	"context"

	"fortune_cookie/internal/domain/entity"
)

// ChannelPublisher передаёт события в TelegramBot.Run внутри процесса.
// Если буфер полон, событие отбрасывается: мутацию это не задерживает.
type ChannelPublisher struct {
	events chan<- entity.PhraseEvent
}

func NewChannelPublisher(events chan<- entity.PhraseEvent) ChannelPublisher {
	return ChannelPublisher{events: events}
}

func (p ChannelPublisher) Publish(ctx context.Context, event entity.PhraseEvent) error {
	select {
	case p.events <- event:
	default:
		logger(ctx).Warn("phrase event dropped: notifier is behind")
	}

	return nil
}
