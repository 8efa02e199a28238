package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"commentsweep/config"
	"commentsweep/core"
	"commentsweep/database"
	"commentsweep/logger"
	"commentsweep/models"
)

// StartScanRequest defines the expected structure for the request body for
// the StartScanHandler. Exactly one of RootPaths and Documents must be set.
type StartScanRequest struct {
	RootPaths  []string       `json:"root_paths,omitempty"` // Files or directories to scan.
	Documents  []ScanDocument `json:"documents,omitempty"`  // Inline buffers, analyzed synchronously.
	Threshold  *float64       `json:"threshold,omitempty"`
	Categories []string       `json:"categories,omitempty"`
	Workers    int            `json:"workers,omitempty"` // 0 uses the configured worker count.
}

// ScanDocument is one client-submitted buffer for an inline scan. Editor
// hosts use this to persist analyses of open buffers the server cannot read
// from disk.
type ScanDocument struct {
	Name       string `json:"name"` // Display path recorded with the comments.
	LanguageID string `json:"language_id"`
	Content    string `json:"content"`
}

// StartScanResponse is returned with 202 Accepted once a directory scan is
// queued, or 201 Created once an inline document scan is recorded.
type StartScanResponse struct {
	ScanID    string `json:"scan_id"`
	FileCount int    `json:"file_count"` // Files collected for analysis.
}

// activeScans tracks cancel funcs for scans still running, so deleting a scan
// also stops its workers.
var (
	activeScansMu sync.Mutex
	activeScans   = make(map[string]context.CancelFunc)
)

func registerActiveScan(scanID string, cancel context.CancelFunc) {
	activeScansMu.Lock()
	activeScans[scanID] = cancel
	activeScansMu.Unlock()
}

func unregisterActiveScan(scanID string) {
	activeScansMu.Lock()
	delete(activeScans, scanID)
	activeScansMu.Unlock()
}

func cancelActiveScan(scanID string) bool {
	activeScansMu.Lock()
	cancel, ok := activeScans[scanID]
	activeScansMu.Unlock()
	if ok {
		cancel()
	}
	return ok
}

// StartScanHandler godoc
// @Summary Start a scan
// @Description With root_paths, collects analyzable files under the given roots, records a scan, and analyzes the files asynchronously; progress is broadcast on the /ws/progress websocket. With documents, analyzes the submitted buffers inline and records them as a completed scan.
// @Tags Scans
// @Accept json
// @Produce json
// @Param scan_request body StartScanRequest true "Scan roots or inline documents, plus analysis options"
// @Success 201 {object} StartScanResponse "Inline document scan recorded"
// @Success 202 {object} StartScanResponse "Directory scan queued"
// @Failure 400 {string} string "Invalid request payload, options, or roots"
// @Failure 500 {string} string "Failed to record the scan"
// @Router /scans [post]
func StartScanHandler(w http.ResponseWriter, r *http.Request) {
	var req StartScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("StartScanHandler: Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(req.RootPaths) == 0 && len(req.Documents) == 0 {
		logger.Error("StartScanHandler: root_paths or documents is required")
		http.Error(w, "root_paths or documents is required", http.StatusBadRequest)
		return
	}
	if len(req.RootPaths) > 0 && len(req.Documents) > 0 {
		logger.Error("StartScanHandler: root_paths and documents are mutually exclusive")
		http.Error(w, "root_paths and documents are mutually exclusive", http.StatusBadRequest)
		return
	}

	threshold, _, categorySet, err := resolveAnalysisOptions(req.Threshold, req.Categories)
	if err != nil {
		logger.Error("StartScanHandler: Invalid options: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Documents) > 0 {
		runDocumentScan(w, req.Documents, core.Options{Threshold: threshold, Categories: categorySet}, threshold)
		return
	}

	settings, err := database.GetAnalyzerSettings()
	if err != nil {
		logger.Error("StartScanHandler: Error loading analyzer settings: %v", err)
		http.Error(w, "Error loading analyzer settings", http.StatusInternalServerError)
		return
	}

	files, err := core.CollectFiles(req.RootPaths, core.WalkOptions{MaxFileSizeBytes: settings.MaxFileSizeBytes})
	if err != nil {
		logger.Error("StartScanHandler: Error collecting files: %v", err)
		http.Error(w, "Failed to collect files: "+err.Error(), http.StatusBadRequest)
		return
	}

	scan := models.Scan{
		ID:                  uuid.NewString(),
		RootPath:            strings.Join(req.RootPaths, ", "),
		FileCount:           len(files),
		ConfidenceThreshold: threshold,
		CreatedAt:           time.Now(),
	}
	if err := database.CreateScan(scan); err != nil {
		logger.Error("StartScanHandler: Error creating scan record: %v", err)
		http.Error(w, "Failed to create scan", http.StatusInternalServerError)
		return
	}

	workers := req.Workers
	if workers <= 0 {
		workers = config.AppConfig.Scanner.Workers
	}

	ctx, cancel := context.WithCancel(context.Background())
	registerActiveScan(scan.ID, cancel)
	go runScanJob(ctx, cancel, scan.ID, files, core.Options{Threshold: threshold, Categories: categorySet}, workers)

	logger.Info("StartScanHandler: Scan %s queued with %d files across %d roots", scan.ID, len(files), len(req.RootPaths))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(StartScanResponse{ScanID: scan.ID, FileCount: len(files)})
}

// runDocumentScan analyzes client-submitted buffers inline and records the
// result as a completed scan. Documents in unsupported languages are skipped,
// not fatal, matching how the directory walk treats unrecognized files.
func runDocumentScan(w http.ResponseWriter, docs []ScanDocument, opts core.Options, threshold float64) {
	for i, doc := range docs {
		if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.LanguageID) == "" {
			logger.Error("StartScanHandler: documents[%d] is missing name or language_id", i)
			http.Error(w, fmt.Sprintf("documents[%d]: name and language_id are required", i), http.StatusBadRequest)
			return
		}
	}

	scan := models.Scan{
		ID:                  uuid.NewString(),
		RootPath:            fmt.Sprintf("(%d submitted documents)", len(docs)),
		FileCount:           len(docs),
		ConfidenceThreshold: threshold,
		CreatedAt:           time.Now(),
	}
	if err := database.CreateScan(scan); err != nil {
		logger.Error("StartScanHandler: Error creating scan record: %v", err)
		http.Error(w, "Failed to create scan", http.StatusInternalServerError)
		return
	}

	var rows []models.ScanComment
	var commentCount, selectedCount int
	for _, doc := range docs {
		profile, ok := core.ProfileFor(doc.LanguageID)
		if !ok {
			logger.Info("StartScanHandler: Skipping document %s: unsupported language %q", doc.Name, doc.LanguageID)
			continue
		}
		analysis, err := core.Analyze(core.NewDocument(doc.Content, profile.ID), opts)
		if err != nil {
			logger.Error("StartScanHandler: Analysis failed for document %s: %v", doc.Name, err)
			continue
		}
		commentCount += len(analysis.Pairs)
		selectedCount += len(analysis.Selected)
		rows = append(rows, analysis.ScanComments(scan.ID, doc.Name, profile.ID)...)
	}

	if err := database.InsertScanComments(scan.ID, rows); err != nil {
		logger.Error("StartScanHandler: Error storing %d comments for scan %s: %v", len(rows), scan.ID, err)
		http.Error(w, "Error storing comments", http.StatusInternalServerError)
		return
	}
	if err := database.UpdateScanCounts(scan.ID, len(docs), commentCount, selectedCount); err != nil {
		logger.Error("StartScanHandler: Error updating counts for scan %s: %v", scan.ID, err)
	}
	if err := database.SetLastScanID(scan.ID); err != nil {
		logger.Error("StartScanHandler: Error recording last scan ID %s: %v", scan.ID, err)
	}

	logger.Info("StartScanHandler: Recorded %d submitted document(s) as scan %s: %d comments, %d selected",
		len(docs), scan.ID, commentCount, selectedCount)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(StartScanResponse{ScanID: scan.ID, FileCount: len(docs)})
}

// runScanJob analyzes the collected files on a worker pool, persists the
// classified comments, and broadcasts progress. It owns the scan's cancel
// registration for its whole lifetime.
func runScanJob(ctx context.Context, cancel context.CancelFunc, scanID string, files []string, opts core.Options, workers int) {
	defer cancel()
	defer unregisterActiveScan(scanID)

	progressFeed.Broadcast(ProgressEvent{Type: "scan_started", ScanID: scanID, FilesTotal: len(files)})

	var filesDone, commentCount, selectedCount atomic.Int64
	results := core.ScanFiles(ctx, files, opts, workers, func(r core.FileResult) {
		done := filesDone.Add(1)
		var comments, selected int64
		if r.Analysis != nil {
			comments = commentCount.Add(int64(len(r.Analysis.Pairs)))
			selected = selectedCount.Add(int64(len(r.Analysis.Selected)))
		} else {
			comments = commentCount.Load()
			selected = selectedCount.Load()
		}
		progressFeed.Broadcast(ProgressEvent{
			Type:          "file_done",
			ScanID:        scanID,
			Path:          r.Path,
			FilesDone:     int(done),
			FilesTotal:    len(files),
			CommentCount:  int(comments),
			SelectedCount: int(selected),
			Message:       r.Skipped,
		})
	})

	if ctx.Err() != nil {
		logger.ScanInfo("runScanJob: Scan %s cancelled after %d of %d files", scanID, filesDone.Load(), len(files))
		progressFeed.Broadcast(ProgressEvent{Type: "scan_cancelled", ScanID: scanID, FilesDone: int(filesDone.Load()), FilesTotal: len(files)})
		return
	}

	var rows []models.ScanComment
	for _, res := range results {
		if res.Analysis == nil {
			continue
		}
		rows = append(rows, res.Analysis.ScanComments(scanID, res.Path, res.LanguageID)...)
	}

	if err := database.InsertScanComments(scanID, rows); err != nil {
		logger.ScanError("runScanJob: Error storing %d comments for scan %s: %v", len(rows), scanID, err)
		progressFeed.Broadcast(ProgressEvent{Type: "scan_failed", ScanID: scanID, Message: "failed to store comments"})
		return
	}
	if err := database.UpdateScanCounts(scanID, len(files), int(commentCount.Load()), int(selectedCount.Load())); err != nil {
		logger.ScanError("runScanJob: Error updating counts for scan %s: %v", scanID, err)
	}
	if err := database.SetLastScanID(scanID); err != nil {
		logger.ScanError("runScanJob: Error recording last scan ID %s: %v", scanID, err)
	}

	logger.ScanInfo("runScanJob: Scan %s finished: %d files, %d comments, %d selected",
		scanID, len(files), commentCount.Load(), selectedCount.Load())
	progressFeed.Broadcast(ProgressEvent{
		Type:          "scan_done",
		ScanID:        scanID,
		FilesDone:     len(files),
		FilesTotal:    len(files),
		CommentCount:  int(commentCount.Load()),
		SelectedCount: int(selectedCount.Load()),
	})
}

// GetScansHandler godoc
// @Summary List recorded scans
// @Tags Scans
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Records per page (default 20, max 100)"
// @Param sort_by query string false "Sort column (created_at, root_path, file_count, comment_count, selected_count)"
// @Param sort_order query string false "ASC or DESC (default DESC)"
// @Success 200 {object} models.PaginatedResponse
// @Failure 500 {string} string "Failed to retrieve scans"
// @Router /scans [get]
func GetScansHandler(w http.ResponseWriter, r *http.Request) {
	page, limit, sortBy, sortOrder := paginationParams(r, "created_at")
	offset := (page - 1) * limit

	scans, totalRecords, err := database.GetAllScansPaginated(limit, offset, sortBy, sortOrder)
	if err != nil {
		logger.Error("GetScansHandler: Error fetching scans: %v", err)
		http.Error(w, "Failed to retrieve scans", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedResponse{
		Page:         page,
		Limit:        limit,
		TotalRecords: int(totalRecords),
		TotalPages:   int(totalPages(totalRecords, limit)),
		Records:      scans,
	})
}

// GetScanHandler godoc
// @Summary Get one scan with its per-category comment counts
// @Tags Scans
// @Produce json
// @Param scanID path string true "Scan ID"
// @Success 200 {object} models.Scan
// @Failure 404 {string} string "Scan not found"
// @Failure 500 {string} string "Failed to retrieve scan"
// @Router /scans/{scanID} [get]
func GetScanHandler(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	scan, err := database.GetScanByID(scanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, fmt.Sprintf("Scan with ID %s not found", scanID), http.StatusNotFound)
		} else {
			logger.Error("GetScanHandler: Error fetching scan %s: %v", scanID, err)
			http.Error(w, "Failed to retrieve scan", http.StatusInternalServerError)
		}
		return
	}

	counts, err := database.GetScanCategoryCounts(scanID)
	if err != nil {
		logger.Error("GetScanHandler: Error fetching category counts for scan %s: %v", scanID, err)
		http.Error(w, "Failed to retrieve category counts", http.StatusInternalServerError)
		return
	}

	response := struct {
		models.Scan
		CategoryCounts map[string]int `json:"category_counts"`
		Running        bool           `json:"running"`
	}{scan, counts, isScanRunning(scanID)}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func isScanRunning(scanID string) bool {
	activeScansMu.Lock()
	_, ok := activeScans[scanID]
	activeScansMu.Unlock()
	return ok
}

// DeleteScanHandler godoc
// @Summary Delete a scan and its comments
// @Description Cancels the scan first if it is still running. Comments are removed by the foreign key cascade.
// @Tags Scans
// @Param scanID path string true "Scan ID"
// @Success 204 "Scan deleted"
// @Failure 404 {string} string "Scan not found"
// @Failure 500 {string} string "Failed to delete scan"
// @Router /scans/{scanID} [delete]
func DeleteScanHandler(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	if cancelActiveScan(scanID) {
		logger.Info("DeleteScanHandler: Cancelled running scan %s", scanID)
	}

	if err := database.DeleteScan(scanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, fmt.Sprintf("Scan with ID %s not found", scanID), http.StatusNotFound)
		} else {
			logger.Error("DeleteScanHandler: Error deleting scan %s: %v", scanID, err)
			http.Error(w, "Failed to delete scan", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetScanCommentsHandler godoc
// @Summary List the classified comments recorded under a scan
// @Tags Scans
// @Produce json
// @Param scanID path string true "Scan ID"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Records per page (default 50, max 500)"
// @Param sort_by query string false "Sort column (file_path, line_number, category, confidence, id)"
// @Param sort_order query string false "ASC or DESC"
// @Param category query string false "Filter to one category"
// @Param file_path query string false "Filter by file path substring"
// @Param only_removable query bool false "Only comments marked for removal"
// @Success 200 {object} models.PaginatedResponse
// @Failure 400 {string} string "Unknown category"
// @Failure 404 {string} string "Scan not found"
// @Failure 500 {string} string "Failed to retrieve comments"
// @Router /scans/{scanID}/comments [get]
func GetScanCommentsHandler(w http.ResponseWriter, r *http.Request) {
	scanID := chi.URLParam(r, "scanID")

	if _, err := database.GetScanByID(scanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, fmt.Sprintf("Scan with ID %s not found", scanID), http.StatusNotFound)
		} else {
			logger.Error("GetScanCommentsHandler: Error fetching scan %s: %v", scanID, err)
			http.Error(w, "Failed to retrieve scan", http.StatusInternalServerError)
		}
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	category := q.Get("category")
	if category != "" && !models.IsValidCategory(category) {
		logger.Error("GetScanCommentsHandler: Unknown category %q", category)
		http.Error(w, fmt.Sprintf("Unknown category %q", category), http.StatusBadRequest)
		return
	}

	filters := models.ScanCommentFilters{
		ScanID:     scanID,
		Page:       page,
		Limit:      limit,
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
		Category:   category,
		FilePath:   q.Get("file_path"),
		OnlyRemove: q.Get("only_removable") == "true",
	}

	comments, totalRecords, err := database.GetScanCommentsPaginated(filters)
	if err != nil {
		logger.Error("GetScanCommentsHandler: Error fetching comments for scan %s: %v", scanID, err)
		http.Error(w, "Failed to retrieve comments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.PaginatedResponse{
		Page:         page,
		Limit:        limit,
		TotalRecords: int(totalRecords),
		TotalPages:   int(totalPages(totalRecords, limit)),
		Records:      comments,
	})
}
