package persistence

import (
	"context"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/rs/xid"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/errcodes"
)

// MemoryPhraseRepository держит фразы в памяти процесса. Для локальной
// разработки и тестов: после рестарта всё пропадает.
type MemoryPhraseRepository struct {
	mu      sync.RWMutex
	phrases []entity.Phrase
}

func NewMemoryPhraseRepository(seed ...string) *MemoryPhraseRepository {
	r := &MemoryPhraseRepository{}
	for _, text := range seed {
		r.phrases = append(r.phrases, entity.Phrase{ID: value.PhraseID(xid.New().String()), Text: text})
	}
	return r
}

func (r *MemoryPhraseRepository) List(_ context.Context, page, pageSize int) ([]entity.Phrase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	from := (page - 1) * pageSize
	if page < 1 || pageSize < 1 || from/pageSize != page-1 || from >= len(r.phrases) {
		return []entity.Phrase{}, nil
	}

	to := min(from+pageSize, len(r.phrases))

	return slices.Clone(r.phrases[from:to]), nil
}

func (r *MemoryPhraseRepository) Sample(_ context.Context, n int) ([]entity.Phrase, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Phrase, 0, min(n, len(r.phrases)))
	for _, i := range rand.Perm(len(r.phrases)) { //nolint:gosec
		if len(out) == n {
			break
		}
		out = append(out, r.phrases[i])
	}

	return out, nil
}

func (r *MemoryPhraseRepository) Create(_ context.Context, text string) (entity.Phrase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := entity.Phrase{ID: value.PhraseID(xid.New().String()), Text: text}
	r.phrases = append(r.phrases, p)

	return p, nil
}

func (r *MemoryPhraseRepository) Update(_ context.Context, id value.PhraseID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	r.phrases[i].Text = text

	return nil
}

func (r *MemoryPhraseRepository) Delete(_ context.Context, id value.PhraseID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	r.phrases = slices.Delete(r.phrases, i, i+1)

	return nil
}

func (r *MemoryPhraseRepository) index(id value.PhraseID) int {
	return slices.IndexFunc(r.phrases, func(p entity.Phrase) bool { return p.ID == id })
}
