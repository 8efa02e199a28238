package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func TestGetLanguagesHandler(t *testing.T) {
	r := httptest.NewRequest("GET", "/languages", nil)
	w := httptest.NewRecorder()
	getLanguagesHandler(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var infos []models.LanguageInfo
	decodeJSON(t, w, &infos)
	require.NotEmpty(t, infos)

	byID := make(map[string]models.LanguageInfo, len(infos))
	for _, info := range infos {
		byID[info.ID] = info
	}
	js, ok := byID["javascript"]
	require.True(t, ok)
	assert.Contains(t, js.Aliases, "js")
	assert.True(t, js.HasDocBlock)
	assert.True(t, js.HasMulti)
	assert.Positive(t, js.KeywordCount)
}
