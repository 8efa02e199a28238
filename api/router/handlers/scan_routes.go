package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterScanRoutes sets up the routes for scan management.
func RegisterScanRoutes(r chi.Router) {
	r.Route("/scans", func(r chi.Router) {
		r.Post("/", StartScanHandler)
		r.Get("/", GetScansHandler)
		r.Route("/{scanID}", func(r chi.Router) {
			r.Get("/", GetScanHandler)
			r.Delete("/", DeleteScanHandler)
			r.Get("/comments", GetScanCommentsHandler)
		})
	})
}
