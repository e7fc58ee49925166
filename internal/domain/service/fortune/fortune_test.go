package fortune_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/service/fortune"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/tests"
)

var errStoreDown = errors.New("store is down")

type stubSampler struct {
	phrases []entity.Phrase
	err     error
	asked   int

	block   chan struct{}
	started chan struct{}
}

func (s *stubSampler) Sample(_ context.Context, n int) ([]entity.Phrase, error) {
	s.asked = n

	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.block != nil {
		<-s.block
	}

	if s.err != nil {
		return nil, s.err
	}

	return s.phrases[:min(n, len(s.phrases))], nil
}

// fixedRand всегда возвращает одно и то же число, обрезанное до n-1.
type fixedRand int

func (r fixedRand) IntN(n int) int { return min(int(r), n-1) }

func phrases(texts ...string) []entity.Phrase {
	out := make([]entity.Phrase, 0, len(texts))
	for i, text := range texts {
		out = append(out, entity.Phrase{ID: value.PhraseID(fmt.Sprint(i)), Text: text})
	}
	return out
}

func TestServiceDraw(t *testing.T) {
	testCases := []struct {
		name    string
		sampler *stubSampler
		rnd     fixedRand
		phrase  string
		outcome entity.FortuneOutcome
		lucky   bool
		wantErr bool
	}{
		{
			name:    "picks phrase by random index",
			sampler: &stubSampler{phrases: phrases("uno", "dos", "tres")},
			rnd:     1,
			phrase:  "dos",
			outcome: entity.FortuneDrawn,
			lucky:   true,
		},
		{
			name:    "empty store",
			sampler: &stubSampler{},
			phrase:  fortune.MsgEmpty,
			outcome: entity.FortuneEmpty,
			lucky:   true,
		},
		{
			name:    "empty phrase falls back",
			sampler: &stubSampler{phrases: phrases("")},
			phrase:  fortune.MsgBlank,
			outcome: entity.FortuneDrawn,
			lucky:   true,
		},
		{
			name:    "whitespace phrase is shown as is",
			sampler: &stubSampler{phrases: phrases("   ")},
			phrase:  "   ",
			outcome: entity.FortuneDrawn,
			lucky:   true,
		},
		{
			name:    "store failure",
			sampler: &stubSampler{err: errStoreDown},
			phrase:  fortune.MsgFailed,
			outcome: entity.FortuneFailed,
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			svc := fortune.NewService(tc.sampler, fortune.WithRand(tc.rnd))

			f, err := svc.Draw(context.Background())
			if tc.wantErr {
				rq.ErrorIs(err, errStoreDown)
			} else {
				rq.NoError(err)
			}

			rq.Equal(tc.phrase, f.Phrase)
			rq.Equal(tc.outcome, f.Outcome)
			rq.Equal(tc.lucky, f.LuckyNumber != nil)
			rq.Equal(fortune.DefaultSampleSize, tc.sampler.asked)

			if tc.lucky {
				rq.True(f.LuckyNumber.Valid())
			}
		})
	}
}

func TestServiceDrawSampleSize(t *testing.T) {
	rq := require.New(t)

	sampler := &stubSampler{phrases: phrases("a")}

	_, err := fortune.NewService(sampler, fortune.WithSampleSize(3)).Draw(context.Background())
	rq.NoError(err)
	rq.Equal(3, sampler.asked)
}

func TestServiceDrawUniform(t *testing.T) {
	rq := require.New(t)

	sampler := &stubSampler{phrases: phrases("a", "b", "c", "d")}
	svc := fortune.NewService(sampler, fortune.WithRand(tests.NewRandomizer(7)))

	seen := map[string]int{}
	for i := 0; i < 4000; i++ {
		f, err := svc.Draw(context.Background())
		rq.NoError(err)
		seen[f.Phrase]++
	}

	rq.Len(seen, 4)
	for text, n := range seen {
		rq.InDelta(1000, n, 150, "phrase %q", text)
	}
}
