package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/mymmrac/telego"
	"golang.org/x/sync/errgroup"

	"fortune_cookie/internal/config"
	"fortune_cookie/internal/domain/entity"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/infrastructure/notifier"
	"fortune_cookie/internal/worker"
	"fortune_cookie/pkg/application/modules"
	"fortune_cookie/pkg/logx"
)

const eventsBufferSize = 64

type notifications struct {
	bot       *telego.Bot
	publisher service.Publisher
	closers   []func() error
}

func (n notifications) close() {
	for _, c := range n.closers {
		if err := c(); err != nil {
			logger(context.Background()).Error("notifications close", logx.Error(err))
		}
	}
}

// newNotifications создаёт telego-бота и, если задан BOT_NOTIFY_CHAT_ID,
// доставку событий об изменении фраз: через очередь asynq при наличии
// Redis, иначе через канал внутри процесса.
func newNotifications(ctx context.Context, g *errgroup.Group, cfg config.Config) (notifications, error) {
	var n notifications

	if !cfg.Bot.Enabled() {
		return n, nil
	}

	bot, err := telego.NewBot(cfg.Bot.Token)
	if err != nil {
		return n, fmt.Errorf("telego.NewBot: %w", err)
	}

	n.bot = bot

	if cfg.Bot.NotifyChatID == 0 {
		return n, nil
	}

	sender := notifier.NewTelegramBot(bot, cfg.Bot.NotifyChatID)

	if !cfg.Redis.Enabled() {
		events := make(chan entity.PhraseEvent, eventsBufferSize)
		n.publisher = notifier.NewChannelPublisher(events)

		g.Go(func() error {
			if err := sender.Run(ctx, events); err != nil && ctx.Err() == nil {
				return fmt.Errorf("notifier.Run: %w", err)
			}
			return nil
		})

		logger(ctx).Info("phrase notifications are delivered in-process", slog.Int64("chat-id", cfg.Bot.NotifyChatID))

		return n, nil
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	}

	client := asynq.NewClient(redisOpt)

	n.publisher = worker.NewPublisher(client, worker.QueueNotifications)
	n.closers = append(n.closers, client.Close)

	err = modules.AsynqServer{
		Redis:           redisOpt,
		Queues:          map[string]int{worker.QueueNotifications: 1},
		Concurrency:     cfg.Redis.QueueConcurrency,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}.Run(ctx, g, worker.NewServeMux(sender))
	if err != nil {
		n.close()
		return notifications{}, fmt.Errorf("asynq: %w", err)
	}

	return n, nil
}
