package modules

import (
	"context"
	"net"
	"time"

	"golang.org/x/sync/errgroup"

	"fortune_cookie/pkg/probe"
)

const serviceReadHeaderTimeout = 5 * time.Second

// ProbeServer отдаёт /healthz и /ready на отдельном порту. Readiness
// проходит, только если все Checks вернули nil.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Checks        []probe.Check
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) (net.Addr, error) {
	return HTTPServer{
		ListenAddress:     p.ListenAddress,
		Handler:           probe.New(probe.Options{Name: p.Name, Version: p.Version}, p.Checks...).Handler(),
		ReadHeaderTimeout: serviceReadHeaderTimeout,
	}.Run(ctx, g)
}
