package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/errcodes"
)

const (
	redisSeqKey   = "phrases:seq"   // счётчик для порядка добавления
	redisOrderKey = "phrases:order" // ZSET id -> номер по счётчику
	redisPoolKey  = "phrases:pool"  // SET id, для SRANDMEMBER
	redisDocKey   = "phrase:"       // HASH на документ
	redisTextFld  = "text"
)

// updateScript пишет текст, только если id ещё в индексе: проверка и запись
// не должны разойтись с параллельным Delete.
//
//nolint:gochecknoglobals
var updateScript = redis.NewScript(`
if redis.call("ZSCORE", KEYS[1], ARGV[1]) == false then
	return 0
end
redis.call("HSET", KEYS[2], ARGV[2], ARGV[3])
return 1
`)

// RedisPhraseRepository: хеш на документ, упорядоченное множество для
// страниц и обычное множество для случайной выборки.
type RedisPhraseRepository struct {
	client redis.UniversalClient
}

func NewRedisPhraseRepository(client redis.UniversalClient) *RedisPhraseRepository {
	return &RedisPhraseRepository{client: client}
}

func (r *RedisPhraseRepository) List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error) {
	start := int64((page - 1) * pageSize)
	stop := start + int64(pageSize) - 1

	ids, err := r.client.ZRange(ctx, redisOrderKey, start, stop).Result()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to list phrases")
	}

	return r.load(ctx, ids)
}

func (r *RedisPhraseRepository) Sample(ctx context.Context, n int) ([]entity.Phrase, error) {
	ids, err := r.client.SRandMemberN(ctx, redisPoolKey, int64(n)).Result()
	if err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to sample phrases")
	}

	return r.load(ctx, ids)
}

func (r *RedisPhraseRepository) Create(ctx context.Context, text string) (entity.Phrase, error) {
	id := uuid.NewString()

	seq, err := r.client.Incr(ctx, redisSeqKey).Result()
	if err != nil {
		return entity.Phrase{}, domain.WrapError(err, errcodes.StoreUnavailable, "failed to allocate phrase position")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisDocKey+id, redisTextFld, text)
		pipe.ZAdd(ctx, redisOrderKey, redis.Z{Score: float64(seq), Member: id})
		pipe.SAdd(ctx, redisPoolKey, id)
		return nil
	})
	if err != nil {
		return entity.Phrase{}, domain.WrapError(err, errcodes.StoreUnavailable, "failed to insert phrase")
	}

	return entity.Phrase{ID: value.PhraseID(id), Text: text}, nil
}

func (r *RedisPhraseRepository) Update(ctx context.Context, id value.PhraseID, text string) error {
	keys := []string{redisOrderKey, redisDocKey + id.String()}

	updated, err := updateScript.Run(ctx, r.client, keys, id.String(), redisTextFld, text).Int()
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to update phrase")
	}

	if updated == 0 {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	return nil
}

func (r *RedisPhraseRepository) Delete(ctx context.Context, id value.PhraseID) error {
	var removed *redis.IntCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.ZRem(ctx, redisOrderKey, id.String())
		pipe.SRem(ctx, redisPoolKey, id.String())
		pipe.Del(ctx, redisDocKey+id.String())
		return nil
	})
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to delete phrase")
	}

	if removed.Val() == 0 {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	return nil
}

// load читает тексты одним конвейером, сохраняя порядок ids.
func (r *RedisPhraseRepository) load(ctx context.Context, ids []string) ([]entity.Phrase, error) {
	if len(ids) == 0 {
		return []entity.Phrase{}, nil
	}

	cmds := make([]*redis.StringCmd, len(ids))

	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGet(ctx, redisDocKey+id, redisTextFld)
		}
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read phrases")
	}

	phrases := make([]entity.Phrase, 0, len(ids))
	for i, id := range ids {
		text, err := cmds[i].Result()
		if errors.Is(err, redis.Nil) {
			// удалён между чтением индекса и документа
			continue
		}
		if err != nil {
			return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to read phrase")
		}

		phrases = append(phrases, entity.Phrase{ID: value.PhraseID(id), Text: text})
	}

	return phrases, nil
}
