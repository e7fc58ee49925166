package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

// TypePhraseChanged — задача "фраза создана, изменена или удалена".
const TypePhraseChanged = "phrase:changed"

const (
	QueueNotifications = "notifications"
	maxRetry           = 5
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher ставит события об изменении фраз в очередь asynq.
type Publisher struct {
	client enqueuer
	queue  string
}

// NewPublisher. Обычно client это *asynq.Client.
func NewPublisher(client enqueuer, queue string) *Publisher {
	if queue == "" {
		queue = QueueNotifications
	}

	return &Publisher{client: client, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, event entity.PhraseEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	info, err := p.client.EnqueueContext(ctx,
		asynq.NewTask(TypePhraseChanged, payload),
		asynq.Queue(p.queue),
		asynq.MaxRetry(maxRetry),
	)
	if err != nil {
		return fmt.Errorf("asynqClient.Enqueue: %w", err)
	}

	logger(ctx).Debug("phrase event enqueued",
		slog.String(logx.FieldTaskType, TypePhraseChanged),
		slog.String("task-id", info.ID),
	)

	return nil
}

type eventSender interface {
	SendPhraseEvent(ctx context.Context, event entity.PhraseEvent) error
}

// PhraseChangedHandler доставляет событие в Telegram. Битый payload
// не ретраится.
type PhraseChangedHandler struct {
	sender eventSender
}

func NewPhraseChangedHandler(sender eventSender) PhraseChangedHandler {
	return PhraseChangedHandler{sender: sender}
}

func (h PhraseChangedHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var event entity.PhraseEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		logger(ctx).Error("malformed task payload", slog.String(logx.FieldTaskType, task.Type()), logx.Error(err))
		return fmt.Errorf("json.Unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	if err := h.sender.SendPhraseEvent(ctx, event); err != nil {
		return fmt.Errorf("sender.SendPhraseEvent: %w", err)
	}

	return nil
}

// NewServeMux маршрутизирует задачи очереди уведомлений.
func NewServeMux(sender eventSender) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePhraseChanged, NewPhraseChangedHandler(sender).Handle)

	return mux
}
