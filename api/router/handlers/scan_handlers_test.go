package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/database"
	"commentsweep/models"
)

func scanRouter() chi.Router {
	r := chi.NewRouter()
	RegisterScanRoutes(r)
	return r
}

func serveJSON(t *testing.T, router chi.Router, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	} else {
		reader = strings.NewReader("")
	}
	r := httptest.NewRequest(method, target, reader)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestStartScanHandlerRequiresInput(t *testing.T) {
	w := postJSON(t, StartScanHandler, "/scans", StartScanRequest{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "root_paths or documents is required")
}

func TestStartScanHandlerRejectsBothInputs(t *testing.T) {
	w := postJSON(t, StartScanHandler, "/scans", StartScanRequest{
		RootPaths: []string{"."},
		Documents: []ScanDocument{{Name: "a.js", LanguageID: "js", Content: "// x\n"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "mutually exclusive")
}

func TestStartScanHandlerRejectsMissingRoot(t *testing.T) {
	w := postJSON(t, StartScanHandler, "/scans", StartScanRequest{
		RootPaths: []string{"/no/such/directory"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStartScanHandlerInlineDocuments(t *testing.T) {
	w := postJSON(t, StartScanHandler, "/scans", StartScanRequest{
		Documents: []ScanDocument{
			{Name: "src/app.js", LanguageID: "js", Content: analyzeBody},
			{Name: "legacy.cob", LanguageID: "cobol", Content: "* legacy\n"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp StartScanResponse
	decodeJSON(t, w, &resp)
	require.NotEmpty(t, resp.ScanID)
	assert.Equal(t, 2, resp.FileCount)
	defer database.DeleteScan(resp.ScanID)

	scan, err := database.GetScanByID(resp.ScanID)
	require.NoError(t, err)
	assert.Equal(t, 2, scan.FileCount)
	assert.Equal(t, 3, scan.CommentCount, "the unsupported document contributes nothing")
	assert.Equal(t, 2, scan.SelectedCount)
	assert.False(t, isScanRunning(resp.ScanID), "inline scans complete before responding")

	last, err := database.GetLastScanID()
	require.NoError(t, err)
	assert.Equal(t, resp.ScanID, last)
}

func TestStartScanHandlerInlineDocumentNeedsName(t *testing.T) {
	w := postJSON(t, StartScanHandler, "/scans", StartScanRequest{
		Documents: []ScanDocument{{LanguageID: "js", Content: "// x\n"}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "name and language_id are required")
}

func TestScanLifecycle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte(analyzeBody), 0644))

	router := scanRouter()

	w := serveJSON(t, router, "POST", "/scans", StartScanRequest{RootPaths: []string{dir}, Workers: 2})
	require.Equal(t, http.StatusAccepted, w.Code)
	var started StartScanResponse
	decodeJSON(t, w, &started)
	require.NotEmpty(t, started.ScanID)
	assert.Equal(t, 1, started.FileCount)

	// The analysis itself runs asynchronously.
	require.Eventually(t, func() bool {
		scan, err := database.GetScanByID(started.ScanID)
		return err == nil && scan.CommentCount > 0 && !isScanRunning(started.ScanID)
	}, 5*time.Second, 10*time.Millisecond, "scan job should finish and persist counts")

	scan, err := database.GetScanByID(started.ScanID)
	require.NoError(t, err)
	assert.Equal(t, dir, scan.RootPath)
	assert.Equal(t, 1, scan.FileCount)
	assert.Equal(t, 3, scan.CommentCount)
	assert.Equal(t, 2, scan.SelectedCount)

	lastID, err := database.GetLastScanID()
	require.NoError(t, err)
	assert.Equal(t, started.ScanID, lastID)

	w = serveJSON(t, router, "GET", "/scans/"+started.ScanID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		models.Scan
		CategoryCounts map[string]int `json:"category_counts"`
		Running        bool           `json:"running"`
	}
	decodeJSON(t, w, &detail)
	assert.Equal(t, started.ScanID, detail.ID)
	assert.False(t, detail.Running)
	assert.Equal(t, 1, detail.CategoryCounts[string(models.CategoryDocumentation)])
	assert.Equal(t, 1, detail.CategoryCounts[string(models.CategoryNoise)])

	w = serveJSON(t, router, "GET", "/scans/"+started.ScanID+"/comments?only_removable=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page models.PaginatedResponse
	decodeJSON(t, w, &page)
	assert.Equal(t, 2, page.TotalRecords)

	w = serveJSON(t, router, "GET", "/scans?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listing models.PaginatedResponse
	decodeJSON(t, w, &listing)
	assert.GreaterOrEqual(t, listing.TotalRecords, 1)

	w = serveJSON(t, router, "DELETE", "/scans/"+started.ScanID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serveJSON(t, router, "GET", "/scans/"+started.ScanID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serveJSON(t, router, "DELETE", "/scans/"+started.ScanID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScanCommentsUnknownScan(t *testing.T) {
	w := serveJSON(t, scanRouter(), "GET", "/scans/no-such-scan/comments", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetScanCommentsRejectsUnknownCategory(t *testing.T) {
	scan := models.Scan{ID: "category-filter-scan", CreatedAt: time.Now(), ConfidenceThreshold: 0.6}
	require.NoError(t, database.CreateScan(scan))
	defer database.DeleteScan(scan.ID)

	w := serveJSON(t, scanRouter(), "GET", "/scans/"+scan.ID+"/comments?category=sparkles", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
