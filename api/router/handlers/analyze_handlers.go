package handlers

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"commentsweep/core"
	"commentsweep/database"
	"commentsweep/logger"
	"commentsweep/models"
)

const analyzeCacheSize = 256

// analyzeCache memoizes ad-hoc analyses keyed on the full request inputs.
// Requests that attach to a scan bypass it because they have side effects.
var analyzeCache *lru.Cache[string, models.AnalyzeResponse]

func init() {
	// New only fails on a non-positive size.
	analyzeCache, _ = lru.New[string, models.AnalyzeResponse](analyzeCacheSize)
}

func analyzeCacheKey(content, languageID string, threshold float64, categories []string) string {
	sorted := append([]string(nil), categories...)
	sort.Strings(sorted)
	h := sha256.New()
	h.Write([]byte(content))
	h.Write([]byte{0})
	h.Write([]byte(languageID))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatFloat(threshold, 'f', -1, 64)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(sorted, ",")))
	return hex.EncodeToString(h.Sum(nil))
}

// resolveAnalysisOptions merges the per-request overrides with the persisted
// analyzer settings. A nil threshold and empty categories fall back to the
// stored values.
func resolveAnalysisOptions(threshold *float64, categories []string) (float64, []string, map[models.Category]bool, error) {
	settings, err := database.GetAnalyzerSettings()
	if err != nil {
		return 0, nil, nil, fmt.Errorf("loading analyzer settings: %w", err)
	}

	effective := settings.ConfidenceThreshold
	if threshold != nil {
		if *threshold < 0 || *threshold > 1 {
			return 0, nil, nil, fmt.Errorf("threshold must be between 0 and 1, got %v", *threshold)
		}
		effective = *threshold
	}
	if effective <= 0 {
		effective = models.DefaultConfidenceThreshold
	}

	if len(categories) == 0 {
		categories = settings.EnabledCategories
	}
	set, err := core.CategorySet(categories)
	if err != nil {
		return 0, nil, nil, err
	}
	return effective, categories, set, nil
}

// AnalyzeCommentsHandler godoc
// @Summary Analyze comments in a document
// @Description Extracts and classifies every comment in the posted content, returning the classified comments, the removable selection, and per-category summaries. Unknown languages return supported=false rather than an error.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param analyze_request body models.AnalyzeRequest true "Document content and analysis options"
// @Success 200 {object} models.AnalyzeResponse
// @Failure 400 {string} string "Invalid request payload or options"
// @Failure 404 {string} string "scan_id does not exist"
// @Failure 500 {string} string "Analysis or persistence error"
// @Router /analyze [post]
func AnalyzeCommentsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("AnalyzeCommentsHandler: Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.LanguageID == "" {
		logger.Error("AnalyzeCommentsHandler: language_id is required")
		http.Error(w, "language_id is required", http.StatusBadRequest)
		return
	}

	threshold, categories, categorySet, err := resolveAnalysisOptions(req.Threshold, req.Categories)
	if err != nil {
		logger.Error("AnalyzeCommentsHandler: Invalid options: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, ok := core.ProfileFor(req.LanguageID)
	if !ok {
		logger.Info("AnalyzeCommentsHandler: Unsupported language %q, skipping analysis", req.LanguageID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.AnalyzeResponse{
			Supported:  false,
			LanguageID: req.LanguageID,
			Threshold:  threshold,
			Comments:   []models.ClassifiedComment{},
			Selected:   []models.ClassifiedComment{},
			Summary:    map[models.Category]models.CategorySummary{},
		})
		return
	}

	cacheKey := ""
	if req.ScanID == "" && analyzeCache != nil {
		cacheKey = analyzeCacheKey(req.Content, profile.ID, threshold, categories)
		if cached, found := analyzeCache.Get(cacheKey); found {
			logger.Debug("AnalyzeCommentsHandler: Cache hit for language %s (%d bytes)", profile.ID, len(req.Content))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(cached)
			return
		}
	}

	doc := core.NewDocument(req.Content, profile.ID)
	analysis, err := core.Analyze(doc, core.Options{Threshold: threshold, Categories: categorySet})
	if err != nil {
		logger.Error("AnalyzeCommentsHandler: Analysis failed for language %s: %v", profile.ID, err)
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	selected := analysis.Selected
	if selected == nil {
		selected = []models.ClassifiedComment{}
	}
	resp := models.AnalyzeResponse{
		Supported:  true,
		LanguageID: profile.ID,
		Threshold:  analysis.Threshold,
		Comments:   analysis.Pairs,
		Selected:   selected,
		Summary:    analysis.Summary,
	}

	if req.ScanID != "" {
		scan, err := database.GetScanByID(req.ScanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				logger.Error("AnalyzeCommentsHandler: Scan with ID %s not found", req.ScanID)
				http.Error(w, fmt.Sprintf("Scan with ID %s not found", req.ScanID), http.StatusNotFound)
			} else {
				logger.Error("AnalyzeCommentsHandler: Error fetching scan %s: %v", req.ScanID, err)
				http.Error(w, "Error retrieving scan from database", http.StatusInternalServerError)
			}
			return
		}
		rows := analysis.ScanComments(scan.ID, req.FilePath, profile.ID)
		if err := database.InsertScanComments(scan.ID, rows); err != nil {
			logger.Error("AnalyzeCommentsHandler: Error storing comments for scan %s: %v", scan.ID, err)
			http.Error(w, "Error storing comments", http.StatusInternalServerError)
			return
		}
		if err := database.UpdateScanCounts(scan.ID, scan.FileCount+1, scan.CommentCount+len(analysis.Pairs), scan.SelectedCount+len(analysis.Selected)); err != nil {
			logger.Error("AnalyzeCommentsHandler: Error updating counts for scan %s: %v", scan.ID, err)
			http.Error(w, "Error updating scan counts", http.StatusInternalServerError)
			return
		}
		logger.Info("AnalyzeCommentsHandler: Attached %d comments to scan %s", len(rows), scan.ID)
	} else if analyzeCache != nil {
		analyzeCache.Add(cacheKey, resp)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// PlanCommentsHandler godoc
// @Summary Build a removal plan for a document
// @Description Analyzes the posted content and returns the deletion plan for the removable selection, ordered by descending start offset, along with the cleaned text.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param plan_request body models.PlanRequest true "Document content and analysis options"
// @Success 200 {object} models.PlanResponse
// @Failure 400 {string} string "Invalid request payload or options"
// @Failure 500 {string} string "Analysis error"
// @Router /plan [post]
func PlanCommentsHandler(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("PlanCommentsHandler: Error decoding request body: %v", err)
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.LanguageID == "" {
		logger.Error("PlanCommentsHandler: language_id is required")
		http.Error(w, "language_id is required", http.StatusBadRequest)
		return
	}

	threshold, _, categorySet, err := resolveAnalysisOptions(req.Threshold, req.Categories)
	if err != nil {
		logger.Error("PlanCommentsHandler: Invalid options: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, ok := core.ProfileFor(req.LanguageID)
	if !ok {
		logger.Info("PlanCommentsHandler: Unsupported language %q, skipping plan", req.LanguageID)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.PlanResponse{
			Supported:      false,
			LanguageID:     req.LanguageID,
			Threshold:      threshold,
			Deletions:      []models.Deletion{},
			CleanedContent: req.Content,
		})
		return
	}

	doc := core.NewDocument(req.Content, profile.ID)
	analysis, err := core.Analyze(doc, core.Options{Threshold: threshold, Categories: categorySet})
	if err != nil {
		logger.Error("PlanCommentsHandler: Analysis failed for language %s: %v", profile.ID, err)
		http.Error(w, "Analysis failed", http.StatusInternalServerError)
		return
	}

	deletions := analysis.Plan()
	if deletions == nil {
		deletions = []models.Deletion{}
	}
	cleaned, err := analysis.CleanedText()
	if err != nil {
		logger.Error("PlanCommentsHandler: Error applying deletions for language %s: %v", profile.ID, err)
		http.Error(w, "Error applying deletions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(models.PlanResponse{
		Supported:      true,
		LanguageID:     profile.ID,
		Threshold:      analysis.Threshold,
		Deletions:      deletions,
		CleanedContent: cleaned,
		RemovedCount:   len(deletions),
	})
}
