package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/mw"
)

func init() { Register("icons", registerIcons) }

func registerIcons(r chi.Router, d deps.Deps) {
	r.Route("/api/icons", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/", handlers.Icons(d))
		r.Get("/classify", handlers.Classify(d))
	})
}
