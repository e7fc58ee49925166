package probe

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"fortune_cookie/pkg/contextx"
	"fortune_cookie/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const defaultCheckTimeout = 3 * time.Second

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Check reports whether a dependency (the phrase store, a queue) can serve
// requests. A nil error means ready.
type Check func(ctx context.Context) error

type Options struct {
	Name    string `json:"name"`
	Version string `json:"version"`

	// CheckTimeout bounds all readiness checks of one request. Zero means 3s.
	CheckTimeout time.Duration `json:"-"`
}

type state struct {
	Options

	Error string `json:"error,omitempty"`
}

// Probe answers liveness and readiness requests.
type Probe struct {
	options Options
	checks  []Check
}

func New(options Options, checks ...Check) Probe {
	if options.CheckTimeout <= 0 {
		options.CheckTimeout = defaultCheckTimeout
	}

	return Probe{options: options, checks: checks}
}

// Handler serves GET /healthz (process is alive) and GET /ready (every check
// passes, in order, first failure wins).
func (p Probe) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		p.write(w, http.StatusOK, "")
	})
	mux.HandleFunc("GET /ready", p.ready)

	return mux
}

func (p Probe) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), p.options.CheckTimeout)
	defer cancel()

	for _, check := range p.checks {
		if err := check(ctx); err != nil {
			logger(ctx).Warn("readiness check failed", logx.Error(err))
			p.write(w, http.StatusServiceUnavailable, err.Error())

			return
		}
	}

	p.write(w, http.StatusOK, "")
}

func (p Probe) write(w http.ResponseWriter, status int, errText string) {
	data, _ := json.Marshal(state{Options: p.options, Error: errText}) //nolint:errchkjson

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
