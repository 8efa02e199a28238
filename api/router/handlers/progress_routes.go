package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterProgressRoutes sets up the scan progress websocket endpoint.
func RegisterProgressRoutes(r chi.Router) {
	r.Get("/ws/progress", ProgressWSHandler)
}
