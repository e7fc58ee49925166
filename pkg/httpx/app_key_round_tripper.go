package httpx

import (
	"fmt"
	"net/http"
)

const (
	headerAppKey   = "X-VTEX-API-AppKey"
	headerAppToken = "X-VTEX-API-AppToken"
)

// AppKeyRoundTripper signs outgoing requests with a store application key pair.
// Empty credentials leave the request untouched.
type AppKeyRoundTripper struct {
	next     http.RoundTripper
	appKey   string
	appToken string
}

func NewAppKeyRoundTripper(
	next http.RoundTripper,
	appKey string,
	appToken string,
) AppKeyRoundTripper {
	return AppKeyRoundTripper{
		next:     next,
		appKey:   appKey,
		appToken: appToken,
	}
}

func (rt AppKeyRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if rt.appKey != "" && rt.appToken != "" {
		req = req.Clone(req.Context())
		req.Header.Set(headerAppKey, rt.appKey)
		req.Header.Set(headerAppToken, rt.appToken)
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
