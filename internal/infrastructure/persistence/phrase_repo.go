package persistence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/errcodes"
)

// PhraseRepository хранит фразы в SQL (Postgres через pgx или SQLite).
// Запросы пишутся с "?" и переписываются под драйвер через Rebind.
type PhraseRepository struct {
	db  *sqlx.DB
	now func() time.Time

	mu      sync.Mutex
	lastPos int64
}

func NewPhraseRepository(db *sqlx.DB) *PhraseRepository {
	return &PhraseRepository{db: db, now: time.Now}
}

// List возвращает страницу в порядке добавления.
func (r *PhraseRepository) List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error) {
	query := r.db.Rebind(`
		SELECT id, text, position
		FROM phrases
		ORDER BY position, id
		LIMIT ? OFFSET ?`)

	var schemas []phraseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, pageSize, (page-1)*pageSize); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to list phrases")
	}

	return toDomain(schemas), nil
}

// Sample возвращает до n случайных фраз. random() есть и в Postgres, и в SQLite.
func (r *PhraseRepository) Sample(ctx context.Context, n int) ([]entity.Phrase, error) {
	query := r.db.Rebind(`
		SELECT id, text, position
		FROM phrases
		ORDER BY random()
		LIMIT ?`)

	var schemas []phraseSchema
	if err := r.db.SelectContext(ctx, &schemas, query, n); err != nil {
		return nil, domain.WrapError(err, errcodes.StoreUnavailable, "failed to sample phrases")
	}

	return toDomain(schemas), nil
}

func (r *PhraseRepository) Create(ctx context.Context, text string) (entity.Phrase, error) {
	schema := phraseSchema{
		ID:       uuid.NewString(),
		Text:     text,
		Position: r.nextPosition(),
	}

	query := `
		INSERT INTO phrases (id, text, position)
		VALUES (:id, :text, :position)`

	if _, err := r.db.NamedExecContext(ctx, query, schema); err != nil {
		return entity.Phrase{}, domain.WrapError(err, errcodes.StoreUnavailable, "failed to insert phrase")
	}

	return schema.toDomain(), nil
}

func (r *PhraseRepository) Update(ctx context.Context, id value.PhraseID, text string) error {
	query := r.db.Rebind(`UPDATE phrases SET text = ? WHERE id = ?`)

	return r.execAffectingOne(ctx, "update", query, text, id.String())
}

func (r *PhraseRepository) Delete(ctx context.Context, id value.PhraseID) error {
	query := r.db.Rebind(`DELETE FROM phrases WHERE id = ?`)

	return r.execAffectingOne(ctx, "delete", query, id.String())
}

// execAffectingOne выполняет запрос и проверяет, что документ существовал.
func (r *PhraseRepository) execAffectingOne(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, fmt.Sprintf("failed to %s phrase", op))
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	return nil
}

// nextPosition строго растёт в пределах процесса, даже если часы грубые.
func (r *PhraseRepository) nextPosition() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastPos = max(r.now().UnixNano(), r.lastPos+1)

	return r.lastPos
}
