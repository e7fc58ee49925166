package bot

import (
	"context"
	"fmt"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"fortune_cookie/internal/transport/bot/handler"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

const longPollingTimeout = 60

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Bot — Telegram-бот: админка фраз и печенье для покупателей.
type Bot struct {
	bot      *telego.Bot
	handler  *handler.Handler
	adminIDs []int64
}

func New(bot *telego.Bot, h *handler.Handler, adminIDs []int64) *Bot {
	return &Bot{
		bot:      bot,
		handler:  h,
		adminIDs: adminIDs,
	}
}

// Run слушает обновления long polling-ом до отмены ctx.
func (b *Bot) Run(ctx context.Context) error {
	updates, err := b.bot.UpdatesViaLongPolling(ctx, &telego.GetUpdatesParams{
		Timeout: longPollingTimeout,
	})
	if err != nil {
		return fmt.Errorf("bot.UpdatesViaLongPolling: %w", err)
	}

	botHandler, err := th.NewBotHandler(b.bot, updates)
	if err != nil {
		return fmt.Errorf("th.NewBotHandler: %w", err)
	}

	b.handler.RegisterRoutes(botHandler, b.adminIDs)

	go func() {
		if err := botHandler.Start(); err != nil {
			logger(ctx).Error("botHandler.Start", logx.Error(err))
		}
	}()

	<-ctx.Done()

	if err := botHandler.Stop(); err != nil {
		logger(ctx).Error("botHandler.Stop", logx.Error(err))
	}

	return nil
}
