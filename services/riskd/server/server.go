// Package server exposes the risk preview API: read-only endpoints that
// compute a vault's exact risk metrics and evaluate the action guards over a
// pluggable vault source. It submits no transactions; the vault contract is
// the authority, and these previews reproduce its accept/reject boundary.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"caucion/native/risk"
	"caucion/observability"
	"caucion/services/riskd/source"
)

// Config carries the serving options for the HTTP surface.
type Config struct {
	CORS            CORSConfig
	RateLimitPerMin int
}

// Server routes HTTP requests onto the risk engine and vault source.
type Server struct {
	log     *slog.Logger
	source  source.VaultSource
	engine  *risk.Engine
	metrics *observability.RiskdMetrics
}

// New wires a server around the given collaborators.
func New(log *slog.Logger, src source.VaultSource, engine *risk.Engine) *Server {
	return &Server{
		log:     log,
		source:  src,
		engine:  engine,
		metrics: observability.Riskd(),
	}
}

// Handler builds the routed handler with middleware applied, wrapped for
// OpenTelemetry trace propagation.
func (s *Server) Handler(cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(newRateLimiter(cfg.RateLimitPerMin).middleware)
	r.Use(observeRequests(s.log, s.metrics))

	r.Get("/api/health", s.health)
	r.Get("/api/price", s.price)
	r.Get("/api/vaults", s.listVaults)
	r.Get("/api/vaults/{id}", s.getVault)
	r.Post("/api/vaults/{id}/guards/borrow", s.guardBorrow)
	r.Post("/api/vaults/{id}/guards/withdraw", s.guardWithdraw)
	r.Get("/api/vaults/{id}/guards/close", s.guardClose)
	r.Get("/api/vaults/{id}/guards/liquidate", s.guardLiquidate)

	r.Handle("/metrics", promhttp.Handler())

	return otelhttp.NewHandler(r, "riskd")
}
