package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/service/fortune"
	service "fortune_cookie/internal/domain/service/phrase"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/internal/infrastructure/persistence"
	"fortune_cookie/internal/server"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/middlewarex"
	"fortune_cookie/pkg/rest"
	"fortune_cookie/pkg/tests"
)

const adminToken = "s3cr3t"

type failingStore struct{}

//nolint:gochecknoglobals
var errStoreDown = domain.WrapError(errors.New("connection refused"), errcodes.StoreUnavailable, "document store is unreachable")

func (failingStore) List(context.Context, int, int) ([]entity.Phrase, error) {
	return nil, errStoreDown
}

func (failingStore) Sample(context.Context, int) ([]entity.Phrase, error) {
	return nil, errStoreDown
}

func (failingStore) Create(context.Context, string) (entity.Phrase, error) {
	return entity.Phrase{}, errStoreDown
}

func (failingStore) Update(context.Context, value.PhraseID, string) error {
	return errStoreDown
}

func (failingStore) Delete(context.Context, value.PhraseID) error {
	return errStoreDown
}

func newAPI(t *testing.T, store service.Store) tests.APIClient {
	t.Helper()

	phrases := service.NewPhraseService(store)

	srv := server.NewServer(
		server.NewPhraseServer(phrases),
		server.NewFortuneServer(fortune.NewService(phrases)),
		adminToken,
	)

	r := chi.NewRouter()
	r.Use(middlewarex.RequestContext)
	srv.RegisterRoutes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(t, ts.URL, ts.Client())
}

func text(s string) rest.PhraseRequest {
	return rest.PhraseRequest{Text: &s}
}

func TestPhrasesCRUD(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	admin := newAPI(t, persistence.NewMemoryPhraseRepository("uno")).WithBearerToken(adminToken)

	var created rest.Phrase
	resp, err := admin.Post(ctx, "/v1/admin/phrases", text("La suerte llega"), &created, nil)
	rq.NoError(err)
	rq.Equal(http.StatusCreated, resp.StatusCode)
	rq.NotEmpty(created.ID)
	rq.Equal("La suerte llega", created.Text)

	var updated rest.Phrase
	resp, err = admin.Patch(ctx, "/v1/admin/phrases/"+created.ID, text(""), &updated, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Equal(rest.Phrase{ID: created.ID, Text: ""}, updated)

	var page rest.PhrasePage
	resp, err = admin.Get(ctx, "/v1/admin/phrases?page=1&pageSize=2", &page, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(page.Items, 2)
	rq.True(page.HasNext, "full page")

	resp, err = admin.Delete(ctx, "/v1/admin/phrases/"+created.ID, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	var apiErr rest.Error
	resp, err = admin.Delete(ctx, "/v1/admin/phrases/"+created.ID, nil, &apiErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode(errcodes.PhraseNotFound), apiErr.Code)
	rq.NotEmpty(apiErr.SupportID)
}

func TestPhrasesErrors(t *testing.T) {
	ctx := context.Background()

	api := newAPI(t, persistence.NewMemoryPhraseRepository())
	admin := api.WithBearerToken(adminToken)
	down := newAPI(t, failingStore{}).WithBearerToken(adminToken)

	testCases := []struct {
		name   string
		call   func(errDest *rest.Error) (*http.Response, error)
		status int
		code   string
	}{
		{
			name: "no token",
			call: func(e *rest.Error) (*http.Response, error) {
				return api.Get(ctx, "/v1/admin/phrases", nil, e)
			},
			status: http.StatusForbidden,
			code:   errcodes.Forbidden.String(),
		},
		{
			name: "bad page",
			call: func(e *rest.Error) (*http.Response, error) {
				return admin.Get(ctx, "/v1/admin/phrases?page=0", nil, e)
			},
			status: http.StatusBadRequest,
			code:   errcodes.InvalidPaging.String(),
		},
		{
			name: "page size above store range",
			call: func(e *rest.Error) (*http.Response, error) {
				return admin.Get(ctx, "/v1/admin/phrases?page=1&pageSize=101", nil, e)
			},
			status: http.StatusBadRequest,
			code:   errcodes.InvalidPaging.String(),
		},
		{
			name: "overflowing offset",
			call: func(e *rest.Error) (*http.Response, error) {
				return admin.Get(ctx, "/v1/admin/phrases?page=3&pageSize=4611686018427387904", nil, e)
			},
			status: http.StatusBadRequest,
			code:   errcodes.InvalidPaging.String(),
		},
		{
			name: "missing text",
			call: func(e *rest.Error) (*http.Response, error) {
				return admin.Post(ctx, "/v1/admin/phrases", tests.RawJSON(`{}`), nil, e)
			},
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name: "broken json",
			call: func(e *rest.Error) (*http.Response, error) {
				return admin.Post(ctx, "/v1/admin/phrases", tests.RawJSON(`{"text":`), nil, e)
			},
			status: http.StatusBadRequest,
			code:   errcodes.ValidationError.String(),
		},
		{
			name: "store down",
			call: func(e *rest.Error) (*http.Response, error) {
				return down.Get(ctx, "/v1/admin/phrases", nil, e)
			},
			status: http.StatusBadGateway,
			code:   errcodes.StoreUnavailable.String(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var apiErr rest.Error

			resp, err := tc.call(&apiErr)
			rq.NoError(err)
			rq.Equal(tc.status, resp.StatusCode)
			rq.Equal(tc.code, string(apiErr.Code))
		})
	}
}

func TestFortune(t *testing.T) {
	luckyPattern := regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)

	testCases := []struct {
		name    string
		store   service.Store
		outcome string
		phrase  string
	}{
		{
			name:    "drawn",
			store:   persistence.NewMemoryPhraseRepository("Hoy es tu día"),
			outcome: string(entity.FortuneDrawn),
			phrase:  "Hoy es tu día",
		},
		{
			name:    "empty",
			store:   persistence.NewMemoryPhraseRepository(),
			outcome: string(entity.FortuneEmpty),
			phrase:  fortune.MsgEmpty,
		},
		{
			name:    "failed",
			store:   failingStore{},
			outcome: string(entity.FortuneFailed),
			phrase:  fortune.MsgFailed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var got rest.Fortune

			resp, err := newAPI(t, tc.store).Post(context.Background(), "/v1/storefront/fortune", struct{}{}, &got, nil)
			rq.NoError(err)
			rq.Equal(http.StatusOK, resp.StatusCode)
			rq.Equal(tc.outcome, got.Outcome)
			rq.Equal(tc.phrase, got.Phrase)

			if tc.outcome == string(entity.FortuneFailed) {
				rq.Empty(got.LuckyNumber)
			} else {
				rq.Regexp(luckyPattern, got.LuckyNumber)
			}
		})
	}
}
