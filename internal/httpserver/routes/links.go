package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linkedit/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/linkedit/internal/httpserver/mw"
)

func init() { Register("links", registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	uploadLimit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.UploadBurst,
		RefillPerMin: d.UploadRefillPerMin,
		MaxEntries:   10000,
		TrustProxy:   d.TrustProxy,
		Logger:       d.Logger,
	})

	r.Route("/api/links", func(r chi.Router) {
		r.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		r.Get("/", handlers.ListLinks(d))
		r.Post("/", handlers.CreateLink(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetLink(d))
			r.Patch("/", handlers.PatchLink(d))
			r.Delete("/", handlers.DeleteLink(d))
			r.Get("/fields", handlers.LinkFields(d))
			r.With(uploadLimit).Post("/icon", handlers.UploadIcon(d))
			r.Post("/move-up", handlers.MoveLinkUp(d))
			r.Post("/move-down", handlers.MoveLinkDown(d))
		})
	})
}
