package persistence_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/infrastructure/persistence"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/tests"
)

func TestMemoryPhraseRepository(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo := persistence.NewMemoryPhraseRepository("uno", "dos", "tres")

	page, err := repo.List(ctx, 2, 2)
	rq.NoError(err)
	rq.Len(page, 1)
	rq.Equal("tres", page[0].Text)

	created, err := repo.Create(ctx, "cuatro")
	rq.NoError(err)

	rq.NoError(repo.Update(ctx, created.ID, "cuatro!"))

	page, err = repo.List(ctx, 2, 2)
	rq.NoError(err)
	rq.Equal("cuatro!", page[1].Text)

	rq.NoError(repo.Delete(ctx, created.ID))
	rq.True(domain.HasCode(repo.Delete(ctx, created.ID), errcodes.PhraseNotFound))

	sample, err := repo.Sample(ctx, 2)
	rq.NoError(err)
	rq.Len(sample, 2)
	rq.NotEqual(sample[0].ID, sample[1].ID)
}

func TestMemoryPhraseRepositoryListOutOfRange(t *testing.T) {
	repo := persistence.NewMemoryPhraseRepository("uno", "dos")

	testCases := []struct {
		name     string
		page     int
		pageSize int
	}{
		{name: "past the end", page: 5, pageSize: 2},
		{name: "overflowing offset", page: 3, pageSize: math.MaxInt/2 + 1},
		{name: "zero page", page: 0, pageSize: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			page, err := repo.List(context.Background(), tc.page, tc.pageSize)
			rq.NoError(err)
			rq.Empty(page)
		})
	}
}

func TestMemoryPhraseRepositoryRandomMutations(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	rnd := tests.NewRandomizer(42)

	repo := persistence.NewMemoryPhraseRepository()
	texts := map[string]string{}

	for range 200 {
		before, err := repo.List(ctx, 1, 1000)
		rq.NoError(err)

		if len(before) == 0 || rnd.Bool() {
			text := rnd.Phrase()

			created, err := repo.Create(ctx, text)
			rq.NoError(err)
			rq.Equal(text, created.Text)

			texts[created.ID.String()] = text

			continue
		}

		victim := before[rnd.IntN(len(before))]
		rq.NoError(repo.Delete(ctx, victim.ID))
		delete(texts, victim.ID.String())

		after, err := repo.List(ctx, 1, 1000)
		rq.NoError(err)
		rq.Len(after, len(before)-1)
	}

	all, err := repo.List(ctx, 1, 1000)
	rq.NoError(err)
	rq.Len(all, len(texts))

	for _, p := range all {
		rq.Equal(texts[p.ID.String()], p.Text)
	}
}
