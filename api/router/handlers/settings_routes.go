package handlers

import (
	"github.com/go-chi/chi/v5"
)

func RegisterSettingsRoutes(r chi.Router) {
	r.Route("/settings/analyzer", func(r chi.Router) {
		r.Get("/", GetAnalyzerSettingsHandler)
		r.Put("/", UpdateAnalyzerSettingsHandler)
		r.Post("/", UpdateAnalyzerSettingsHandler)
	})
}
