package persistence_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/internal/infrastructure/persistence"
	"fortune_cookie/pkg/errcodes"
)

func newRedisRepo(t *testing.T) (*persistence.RedisPhraseRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return persistence.NewRedisPhraseRepository(client), mr
}

func TestRedisPhraseRepositoryCRUD(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, _ := newRedisRepo(t)

	created := make([]entity.Phrase, 0, 5)
	for _, text := range []string{"uno", "dos", "tres", "cuatro", "cinco"} {
		p, err := repo.Create(ctx, text)
		rq.NoError(err)
		created = append(created, p)
	}

	page, err := repo.List(ctx, 1, 2)
	rq.NoError(err)
	rq.Equal(created[:2], page)

	page, err = repo.List(ctx, 3, 2)
	rq.NoError(err)
	rq.Equal(created[4:], page)

	page, err = repo.List(ctx, 4, 2)
	rq.NoError(err)
	rq.Empty(page)

	rq.NoError(repo.Update(ctx, created[1].ID, "dos, editada"))
	rq.NoError(repo.Delete(ctx, created[0].ID))

	page, err = repo.List(ctx, 1, 10)
	rq.NoError(err)
	rq.Len(page, 4)
	rq.Equal(entity.Phrase{ID: created[1].ID, Text: "dos, editada"}, page[0])
}

func TestRedisPhraseRepositoryNotFound(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, _ := newRedisRepo(t)

	rq.True(domain.HasCode(repo.Update(ctx, "missing", "x"), errcodes.PhraseNotFound))
	rq.True(domain.HasCode(repo.Delete(ctx, "missing"), errcodes.PhraseNotFound))
}

func TestRedisPhraseRepositoryUpdateAfterDeleteLeavesNoDocument(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, mr := newRedisRepo(t)

	p, err := repo.Create(ctx, "uno")
	rq.NoError(err)
	rq.NoError(repo.Delete(ctx, p.ID))

	rq.True(domain.HasCode(repo.Update(ctx, p.ID, "zombi"), errcodes.PhraseNotFound))
	rq.False(mr.Exists("phrase:" + p.ID.String()))

	page, err := repo.List(ctx, 1, 10)
	rq.NoError(err)
	rq.Empty(page)
}

func TestRedisPhraseRepositorySample(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	repo, _ := newRedisRepo(t)

	got, err := repo.Sample(ctx, 10)
	rq.NoError(err)
	rq.Empty(got)

	for _, text := range []string{"a", "b", "c"} {
		_, err = repo.Create(ctx, text)
		rq.NoError(err)
	}

	got, err = repo.Sample(ctx, 2)
	rq.NoError(err)
	rq.Len(got, 2)
	rq.NotEqual(got[0].ID, got[1].ID)

	got, err = repo.Sample(ctx, 10)
	rq.NoError(err)
	rq.Len(got, 3)
}

func TestRedisPhraseRepositoryUnavailable(t *testing.T) {
	rq := require.New(t)

	repo, mr := newRedisRepo(t)
	mr.Close()

	_, err := repo.List(context.Background(), 1, 10)
	rq.True(domain.HasCode(err, errcodes.StoreUnavailable))

	err = repo.Delete(context.Background(), value.PhraseID("x"))
	rq.True(domain.HasCode(err, errcodes.StoreUnavailable))

	err = repo.Update(context.Background(), value.PhraseID("x"), "y")
	rq.True(domain.HasCode(err, errcodes.StoreUnavailable))
}
