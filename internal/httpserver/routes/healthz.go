package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/mw"
)

func init() { Register("probes", registerProbes) }

// Liveness is open to anyone; readiness reveals whether Redis is up.
func registerProbes(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/readyz", handlers.Readyz(d))
}
