package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"commentsweep/core"
	"commentsweep/logger"
)

// RegisterLanguageRoutes sets up the language profile listing endpoint.
func RegisterLanguageRoutes(r chi.Router) {
	r.Get("/languages", getLanguagesHandler)
}

// getLanguagesHandler godoc
// @Summary List registered language profiles
// @Tags Languages
// @Produce json
// @Success 200 {array} models.LanguageInfo
// @Router /languages [get]
func getLanguagesHandler(w http.ResponseWriter, r *http.Request) {
	infos := core.LanguageInfos()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		logger.Error("Error encoding languages response: %v", err)
	}
}
