package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RawJSON is sent as the request body without marshaling.
type RawJSON string

// Request describes one API call. Body nil means no body.
type Request struct {
	Method string
	Path   string
	Body   any
}

// APIClient calls the service HTTP API from tests. Every exchange is written
// to the test log, so it shows up only when the test fails.
type APIClient struct {
	tb         testing.TB
	baseURL    string
	httpClient *http.Client
	header     http.Header
}

func NewAPIClient(tb testing.TB, baseURL string, httpClient *http.Client) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{tb: tb, baseURL: baseURL, httpClient: httpClient, header: http.Header{}}
}

// WithHeader returns a copy that adds the header to every request.
func (a APIClient) WithHeader(key, value string) APIClient {
	a.header = a.header.Clone()
	a.header.Set(key, value)

	return a
}

func (a APIClient) WithBearerToken(token string) APIClient {
	return a.WithHeader("Authorization", "Bearer "+token)
}

func (a APIClient) Get(ctx context.Context, path string, dest, errDest any) (*http.Response, error) {
	return a.Do(ctx, Request{Method: http.MethodGet, Path: path}, dest, errDest)
}

func (a APIClient) Post(ctx context.Context, path string, body, dest, errDest any) (*http.Response, error) {
	return a.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, dest, errDest)
}

func (a APIClient) Patch(ctx context.Context, path string, body, dest, errDest any) (*http.Response, error) {
	return a.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, dest, errDest)
}

func (a APIClient) Delete(ctx context.Context, path string, dest, errDest any) (*http.Response, error) {
	return a.Do(ctx, Request{Method: http.MethodDelete, Path: path}, dest, errDest)
}

// Do decodes a 2xx body into dest and any other body into errDest. Either
// may be nil.
func (a APIClient) Do(ctx context.Context, r Request, dest, errDest any) (*http.Response, error) {
	a.tb.Helper()

	body, err := encodeBody(r.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, a.baseURL+r.Path, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header = a.header.Clone()
	if r.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.tb.Logf("-> %s %s", req.Method, req.URL.Path)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if raw, dumpErr := httputil.DumpResponse(resp, true); dumpErr == nil {
		a.tb.Logf("<- %s", raw)
	}

	target := errDest
	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		target = dest
	}

	if target == nil {
		return resp, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %d response: %w", resp.StatusCode, err)
	}

	return resp, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return http.NoBody, nil
	case RawJSON:
		return strings.NewReader(string(b)), nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("json.Marshal: %w", err)
		}

		return bytes.NewReader(raw), nil
	}
}
