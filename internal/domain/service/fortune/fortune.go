package fortune

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

// DefaultSampleSize — сколько фраз запрашивается у хранилища за одно открытие.
const DefaultSampleSize = 10

// Тексты витрины.
const (
	MsgEmpty      = "No hay frases disponibles."
	MsgFailed     = "Ups, falló la galleta."
	MsgBlank      = "Sin frase disponible"
	LabelOpen     = "Abrir galleta"
	LabelOpenMore = "Abrir otra galleta"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var drawsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "fortune_cookie",
	Subsystem: "fortune",
	Name:      "draws_total",
	Help:      "Fortune cookie draws by outcome.",
}, []string{"outcome"})

type Sampler interface {
	Sample(ctx context.Context, n int) ([]entity.Phrase, error)
}

type Option func(*Service)

func WithSampleSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.sampleSize = n
		}
	}
}

// WithRand подменяет источник случайности. Доступ к нему сериализуется.
func WithRand(rnd value.IntNer) Option {
	return func(s *Service) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

// Service открывает печенье: берёт выборку фраз, выбирает одну равновероятно
// и генерирует счастливое число. Состояния между вызовами не хранит.
type Service struct {
	sampler    Sampler
	sampleSize int

	mu  sync.Mutex
	rnd value.IntNer
}

func NewService(sampler Sampler, opts ...Option) *Service {
	s := &Service{
		sampler:    sampler,
		sampleSize: DefaultSampleSize,
		rnd:        globalRand{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Draw никогда не возвращает пустой Fortune: при ошибке хранилища в Phrase
// лежит MsgFailed, а LuckyNumber равен nil.
func (s *Service) Draw(ctx context.Context) (entity.Fortune, error) {
	phrases, err := s.sampler.Sample(ctx, s.sampleSize)
	if err != nil {
		drawsTotal.WithLabelValues(string(entity.FortuneFailed)).Inc()
		logger(ctx).Error("fortune draw failed", logx.Error(err))

		return entity.Fortune{Phrase: MsgFailed, Outcome: entity.FortuneFailed}, fmt.Errorf("fortune.Draw: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lucky := value.NewLuckyNumber(s.rnd)

	if len(phrases) == 0 {
		drawsTotal.WithLabelValues(string(entity.FortuneEmpty)).Inc()
		return entity.Fortune{Phrase: MsgEmpty, LuckyNumber: &lucky, Outcome: entity.FortuneEmpty}, nil
	}

	text := phrases[s.rnd.IntN(len(phrases))].Text
	if text == "" {
		text = MsgBlank
	}

	drawsTotal.WithLabelValues(string(entity.FortuneDrawn)).Inc()

	return entity.Fortune{Phrase: text, LuckyNumber: &lucky, Outcome: entity.FortuneDrawn}, nil
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) } //nolint:gosec
