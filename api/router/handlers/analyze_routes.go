package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterAnalyzeRoutes sets up the single-document analysis endpoints.
func RegisterAnalyzeRoutes(r chi.Router) {
	r.Post("/analyze", AnalyzeCommentsHandler)
	r.Post("/plan", PlanCommentsHandler)
}
