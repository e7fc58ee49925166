// Package masterdata — клиент REST API хранилища документов магазина
// (Master Data): поиск, создание, частичное обновление и удаление.
package masterdata

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"fortune_cookie/internal/domain"
	"fortune_cookie/internal/domain/entity"
	"fortune_cookie/internal/domain/value"
	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/logx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

const headerRange = "REST-Range"

// errorBodyMaxLen — сколько байт тела ответа с ошибкой попадает в лог.
const errorBodyMaxLen = 512

type Client struct {
	httpClient *http.Client
	baseURL    string
	entity     string
	keys       value.FieldKeys
}

// NewClient. baseURL: корень API сущностей, например
// https://store.myvtex.com/api/dataentities.
func NewClient(httpClient *http.Client, baseURL, entityName string, keys value.FieldKeys) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		entity:     entityName,
		keys:       keys,
	}
}

// List читает страницу через заголовок REST-Range (с нуля, правая граница
// не включается).
func (c *Client) List(ctx context.Context, page, pageSize int) ([]entity.Phrase, error) {
	from := (page - 1) * pageSize
	to := from + pageSize

	q := url.Values{}
	q.Set("_fields", c.keys.ID+","+c.keys.Text)

	header := http.Header{}
	header.Set(headerRange, fmt.Sprintf("resources=%d-%d", from, to))

	var rows []searchRow
	if err := c.do(ctx, http.MethodGet, c.searchURL(q), header, nil, &rows); err != nil {
		return nil, fmt.Errorf("masterdata.List: %w", err)
	}

	return c.toDomain(rows), nil
}

// Sample отдаёт до n документов в порядке хранилища.
func (c *Client) Sample(ctx context.Context, n int) ([]entity.Phrase, error) {
	q := url.Values{}
	q.Set("_fields", c.keys.ID+","+c.keys.Text)
	q.Set("_size", strconv.Itoa(n))

	var rows []searchRow
	if err := c.do(ctx, http.MethodGet, c.searchURL(q), nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("masterdata.Sample: %w", err)
	}

	return c.toDomain(rows), nil
}

func (c *Client) Create(ctx context.Context, text string) (entity.Phrase, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, c.documentsURL(""), nil, textDocument(c.keys, text), &resp); err != nil {
		return entity.Phrase{}, fmt.Errorf("masterdata.Create: %w", err)
	}

	return entity.Phrase{ID: resp.phraseID(), Text: text}, nil
}

func (c *Client) Update(ctx context.Context, id value.PhraseID, text string) error {
	if err := c.do(ctx, http.MethodPatch, c.documentsURL(id), nil, textDocument(c.keys, text), nil); err != nil {
		return fmt.Errorf("masterdata.Update: %w", err)
	}

	return nil
}

func (c *Client) Delete(ctx context.Context, id value.PhraseID) error {
	if err := c.do(ctx, http.MethodDelete, c.documentsURL(id), nil, nil, nil); err != nil {
		return fmt.Errorf("masterdata.Delete: %w", err)
	}

	return nil
}

func (c *Client) searchURL(q url.Values) string {
	return c.baseURL + "/" + url.PathEscape(c.entity) + "/search?" + q.Encode()
}

func (c *Client) documentsURL(id value.PhraseID) string {
	u := c.baseURL + "/" + url.PathEscape(c.entity) + "/documents"
	if !id.IsZero() {
		u += "/" + url.PathEscape(id.String())
	}
	return u
}

func (c *Client) toDomain(rows []searchRow) []entity.Phrase {
	phrases := make([]entity.Phrase, 0, len(rows))
	for _, row := range rows {
		phrases = append(phrases, row.toDomain(c.keys))
	}
	return phrases
}

func (c *Client) do(ctx context.Context, method, rawURL string, header http.Header, body, dest any) error {
	var payload io.Reader = http.NoBody

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	for k, v := range header {
		req.Header[k] = v
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "document store is unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewError(errcodes.PhraseNotFound, "phrase not found")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyMaxLen))

		logger(ctx).Error("document store rejected request",
			slog.String(logx.FieldHTTPMethod, method),
			slog.Int(logx.FieldResponseStatus, resp.StatusCode),
			slog.String(logx.FieldResponseBody, string(b)),
		)

		return domain.WrapError(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			errcodes.StoreUnavailable,
			"document store request failed",
		)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return domain.WrapError(err, errcodes.StoreUnavailable, "document store returned malformed JSON")
	}

	return nil
}
