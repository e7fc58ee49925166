package modules

import (
	"context"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"fortune_cookie/pkg/metrics"
)

// MetricServer отдаёт /metrics на отдельном порту. При Gatherer nil
// используется prometheus.DefaultGatherer.
type MetricServer struct {
	ListenAddress string
	Gatherer      prometheus.Gatherer
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) (net.Addr, error) {
	return HTTPServer{
		ListenAddress:     m.ListenAddress,
		Handler:           metrics.Handler(m.Gatherer),
		ReadHeaderTimeout: serviceReadHeaderTimeout,
	}.Run(ctx, g)
}
