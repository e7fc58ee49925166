package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/logx"
)

const defaultRequestTimeout = 10 * time.Second

// MaxPageSize — предел REST-Range хранилища документов (0-100).
const MaxPageSize = 100

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fortune_cookie",
	Subsystem: "phrases",
	Name:      "mutations_total",
	Help:      "Phrase mutations against the document store by kind and result.",
}, []string{"kind", "result"})

// Store — хранилище документов с фразами (Master Data, Postgres, SQLite, Redis).
type Store interface {
	List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error)
	Sample(ctx context.Context, n int) ([]entity.Phrase, error)
	Create(ctx context.Context, text string) (entity.Phrase, error)
	Update(ctx context.Context, id value.PhraseID, text string) error
	Delete(ctx context.Context, id value.PhraseID) error
}

// Publisher получает события об изменении фраз (очередь уведомлений).
type Publisher interface {
	Publish(ctx context.Context, event entity.PhraseEvent) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.PhraseEvent) error { return nil }

type PhraseService struct {
	store     Store
	publisher Publisher
	timeout   time.Duration
}

func NewPhraseService(store Store) *PhraseService {
	return &PhraseService{
		store:     store,
		publisher: nopPublisher{},
		timeout:   defaultRequestTimeout,
	}
}

func (s *PhraseService) WithPublisher(p Publisher) *PhraseService {
	if p != nil {
		s.publisher = p
	}
	return s
}

// WithTimeout ограничивает каждый запрос к хранилищу. 0 отключает ограничение.
func (s *PhraseService) WithTimeout(d time.Duration) *PhraseService {
	s.timeout = d
	return s
}

// List возвращает страницу фраз. Нумерация страниц с 1.
func (s *PhraseService) List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error) {
	if page < 1 || pageSize < 1 {
		return nil, domain.NewError(errcodes.InvalidPaging, "page and page size must be positive")
	}

	if pageSize > MaxPageSize {
		return nil, domain.NewError(errcodes.InvalidPaging, "page size must not exceed 100")
	}

	// Смещение последнего элемента страницы должно помещаться в int.
	if page-1 > (math.MaxInt-pageSize)/pageSize {
		return nil, domain.NewError(errcodes.InvalidPaging, "page is out of range")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	phrases, err := s.store.List(ctx, page, pageSize)
	if err != nil {
		logger(ctx).Error("failed to list phrases", slog.Int(logx.FieldPage, page), logx.Error(err))
		return nil, err
	}

	return phrases, nil
}

// Sample возвращает до n фраз; порядок определяет хранилище.
func (s *PhraseService) Sample(ctx context.Context, n int) ([]entity.Phrase, error) {
	if n < 1 {
		return nil, domain.NewError(errcodes.InvalidPaging, "sample size must be positive")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.store.Sample(ctx, n)
}

// Create сохраняет новую фразу. Текст не валидируется: пустая строка
// уйдёт в хранилище как есть.
func (s *PhraseService) Create(ctx context.Context, text string) (entity.Phrase, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	phrase, err := s.store.Create(ctx, text)
	if err != nil {
		mutationsTotal.WithLabelValues(string(entity.PhraseCreated), "error").Inc()
		logger(ctx).Error("failed to create phrase", logx.Error(err))
		return entity.Phrase{}, err
	}

	mutationsTotal.WithLabelValues(string(entity.PhraseCreated), "ok").Inc()
	s.publish(ctx, entity.PhraseEvent{Kind: entity.PhraseCreated, Phrase: phrase})

	return phrase, nil
}

func (s *PhraseService) Update(ctx context.Context, id value.PhraseID, text string) error {
	if id.IsZero() {
		return domain.NewError(errcodes.InvalidPhraseID, "phrase id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Update(ctx, id, text); err != nil {
		mutationsTotal.WithLabelValues(string(entity.PhraseUpdated), "error").Inc()
		logger(ctx).Error("failed to update phrase", slog.String(logx.FieldPhraseID, id.String()), logx.Error(err))
		return err
	}

	mutationsTotal.WithLabelValues(string(entity.PhraseUpdated), "ok").Inc()
	s.publish(ctx, entity.PhraseEvent{Kind: entity.PhraseUpdated, Phrase: entity.Phrase{ID: id, Text: text}})

	return nil
}

func (s *PhraseService) Delete(ctx context.Context, id value.PhraseID) error {
	if id.IsZero() {
		return domain.NewError(errcodes.InvalidPhraseID, "phrase id is required")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Delete(ctx, id); err != nil {
		mutationsTotal.WithLabelValues(string(entity.PhraseDeleted), "error").Inc()
		logger(ctx).Error("failed to delete phrase", slog.String(logx.FieldPhraseID, id.String()), logx.Error(err))
		return err
	}

	mutationsTotal.WithLabelValues(string(entity.PhraseDeleted), "ok").Inc()
	s.publish(ctx, entity.PhraseEvent{Kind: entity.PhraseDeleted, Phrase: entity.Phrase{ID: id}})

	return nil
}

// publish не влияет на результат мутации: документ уже сохранён.
func (s *PhraseService) publish(ctx context.Context, event entity.PhraseEvent) {
	if actor, err := contextx.UserIDFromContext(ctx); err == nil {
		event.ActorID = int64(actor)
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		logger(ctx).Warn("failed to publish phrase event",
			slog.String("kind", string(event.Kind)),
			slog.String(logx.FieldPhraseID, event.Phrase.ID.String()),
			logx.Error(err),
		)
	}
}

func (s *PhraseService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
