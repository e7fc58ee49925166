package masterdata_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/internal/infrastructure/masterdata"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// fakeStore имитирует сущность CF в Master Data.
type fakeStore struct {
	mu      sync.Mutex
	docs    []map[string]string
	seq     int
	ranges  []string
	sizes   []string
	headers http.Header
}

func (s *fakeStore) handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/CF/search", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.headers = r.Header.Clone()
		s.sizes = append(s.sizes, r.URL.Query().Get("_size"))

		from, to := 0, len(s.docs)
		if rng := r.Header.Get("REST-Range"); rng != "" {
			s.ranges = append(s.ranges, rng)
			_, _ = fmt.Sscanf(rng, "resources=%d-%d", &from, &to)
		}

		from = min(from, len(s.docs))
		to = min(to, len(s.docs))

		_ = json.NewEncoder(w).Encode(s.docs[from:to])
	})

	r.Post("/CF/documents", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.seq++
		id := fmt.Sprintf("doc-%d", s.seq)
		s.docs = append(s.docs, map[string]string{"id": id, "CookieFortune": body["CookieFortune"]})

		w.WriteHeader(http.StatusCreated)
		_, _ = fmt.Fprintf(w, `{"Id":"CF-%s","Href":"http://x/CF/documents/%s","DocumentId":"%s"}`, id, id, id)
	})

	r.Patch("/CF/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)

		for _, doc := range s.docs {
			if doc["id"] == chi.URLParam(r, "id") {
				doc["CookieFortune"] = body["CookieFortune"]
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	})

	r.Delete("/CF/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, doc := range s.docs {
			if doc["id"] == chi.URLParam(r, "id") {
				s.docs = append(s.docs[:i], s.docs[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	})

	return r
}

func newClient(t *testing.T, store *fakeStore) *masterdata.Client {
	t.Helper()

	srv := httptest.NewServer(store.handler())
	t.Cleanup(srv.Close)

	httpClient := &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			httpx.NewAppKeyRoundTripper(http.DefaultTransport, "vtexappkey-store", "secret"),
		),
	}

	return masterdata.NewClient(httpClient, srv.URL+"/", "CF", value.DefaultFieldKeys)
}

func TestClientCRUD(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := &fakeStore{}
	client := newClient(t, store)

	created, err := client.Create(ctx, "Hoy es tu día")
	rq.NoError(err)
	rq.Equal(entity.Phrase{ID: "doc-1", Text: "Hoy es tu día"}, created)

	_, err = client.Create(ctx, "Mañana también")
	rq.NoError(err)

	rq.NoError(client.Update(ctx, created.ID, "Hoy no"))

	list, err := client.List(ctx, 1, 10)
	rq.NoError(err)
	rq.Equal([]entity.Phrase{
		{ID: "doc-1", Text: "Hoy no"},
		{ID: "doc-2", Text: "Mañana también"},
	}, list)

	rq.NoError(client.Delete(ctx, created.ID))

	list, err = client.List(ctx, 1, 10)
	rq.NoError(err)
	rq.Len(list, 1)
	rq.Equal(value.PhraseID("doc-2"), list[0].ID)

	rq.Equal("vtexappkey-store", store.headers.Get("X-VTEX-API-AppKey"))
	rq.Equal("secret", store.headers.Get("X-VTEX-API-AppToken"))
}

func TestClientListRange(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	store := &fakeStore{}
	for i := 1; i <= 7; i++ {
		store.docs = append(store.docs, map[string]string{"id": fmt.Sprint(i), "CookieFortune": fmt.Sprint("frase ", i)})
	}

	client := newClient(t, store)

	page, err := client.List(ctx, 2, 3)
	rq.NoError(err)
	rq.Equal([]value.PhraseID{"4", "5", "6"}, []value.PhraseID{page[0].ID, page[1].ID, page[2].ID})

	page, err = client.List(ctx, 3, 3)
	rq.NoError(err)
	rq.Len(page, 1)

	page, err = client.List(ctx, 4, 3)
	rq.NoError(err)
	rq.Empty(page)

	rq.Equal([]string{"resources=3-6", "resources=6-9", "resources=9-12"}, store.ranges)
}

func TestClientSample(t *testing.T) {
	rq := require.New(t)

	store := &fakeStore{docs: []map[string]string{{"id": "1", "CookieFortune": "uno"}}}
	client := newClient(t, store)

	got, err := client.Sample(context.Background(), 10)
	rq.NoError(err)
	rq.Equal([]entity.Phrase{{ID: "1", Text: "uno"}}, got)
	rq.Equal([]string{"10"}, store.sizes)
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		status int
		body   string
		code   string
		call   func(c *masterdata.Client) error
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			code:   errcodes.PhraseNotFound.String(),
			call:   func(c *masterdata.Client) error { return c.Delete(ctx, "nope") },
		},
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{"Message":"boom"}`,
			code:   errcodes.StoreUnavailable.String(),
			call:   func(c *masterdata.Client) error { return c.Update(ctx, "1", "x") },
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			code:   errcodes.StoreUnavailable.String(),
			call: func(c *masterdata.Client) error {
				_, err := c.List(ctx, 1, 10)
				return err
			},
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   `{"not":"an array"`,
			code:   errcodes.StoreUnavailable.String(),
			call: func(c *masterdata.Client) error {
				_, err := c.Sample(ctx, 10)
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.Copy(w, strings.NewReader(tc.body))
			}))
			defer srv.Close()

			client := masterdata.NewClient(srv.Client(), srv.URL, "CF", value.DefaultFieldKeys)

			err := tc.call(client)
			rq.Error(err)

			code, ok := domain.GetCode(err)
			rq.True(ok)
			rq.Equal(tc.code, code.String())
		})
	}
}

func TestClientUnreachable(t *testing.T) {
	rq := require.New(t)

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := masterdata.NewClient(nil, url, "CF", value.DefaultFieldKeys)

	_, err := client.Create(context.Background(), "x")
	rq.True(domain.HasCode(err, errcodes.StoreUnavailable))
}
