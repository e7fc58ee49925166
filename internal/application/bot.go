package application

import (
	"context"
	"log/slog"

	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"fortune_cookie/internal/config"
	"fortune_cookie/internal/domain/service/fortune"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/domain/service/phraselist"
	"fortune_cookie/internal/transport/bot"
	"fortune_cookie/internal/transport/bot/handler"
	"fortune_cookie/internal/transport/bot/session"
)

// runBot запускает админку и витрину в Telegram. Без BOT_TOKEN бот не нужен.
func runBot(
	ctx context.Context,
	g *errgroup.Group,
	cfg config.Config,
	tg *telego.Bot,
	phraseService *service.PhraseService,
	fortuneService *fortune.Service,
) error {
	if tg == nil {
		logger(ctx).Info("BOT_TOKEN is empty, telegram bot is disabled")
		return nil
	}

	sessions := session.NewStore(cfg.Bot.SessionTTL, func() *session.Session {
		return &session.Session{
			Phrases: phraselist.NewController(phraseService, phraselist.WithPageSize(cfg.Admin.PageSize)),
			Cookie:  fortune.NewWidget(fortuneService),
		}
	})

	b := bot.New(tg, handler.New(sessions), cfg.Admin.TelegramIDs)

	g.Go(func() error {
		return b.Run(ctx)
	})

	logger(ctx).Info("telegram bot started", slog.Int("admins", len(cfg.Admin.TelegramIDs)))

	return nil
}
