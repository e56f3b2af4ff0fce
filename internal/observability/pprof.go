package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/scouting-platform/internal/config"
	"github.com/riskibarqy/scouting-platform/internal/platform/logging"
)

// PprofServer serves net/http/pprof on a side port, away from the public API.
type PprofServer struct {
	srv    *http.Server
	addr   string
	logger *logging.Logger
}

// StartPprofServer binds the listener before returning so a busy port fails
// startup. It returns a nil server when pprof is disabled.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*PprofServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.Pprof.Enabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.Pprof.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen pprof on %s: %w", cfg.Pprof.Addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("POST /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	p := &PprofServer{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr:   ln.Addr().String(),
		logger: logger,
	}
	go func() {
		logger.Info("pprof server starting", "addr", p.addr)
		if err := p.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return p, nil
}

// Addr is the bound listener address.
func (p *PprofServer) Addr() string { return p.addr }

// Stop is safe on a nil server.
func (p *PprofServer) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("stop pprof server: %w", err)
	}
	p.logger.Info("pprof server stopped")
	return nil
}
