package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"commentsweep/logger"
	"commentsweep/models"
)

// InsertScanComments stores the classified comments of one scan inside a
// single transaction. Reasons are stored as a JSON array.
func InsertScanComments(scanID string, comments []models.ScanComment) error {
	if len(comments) == 0 {
		return nil
	}

	tx, err := DB.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert comments transaction for scan %s: %w", scanID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scan_comments (scan_id, file_path, language_id, line_number, kind, is_inline, category, confidence, should_remove, selected, reasons, raw_text, start_offset, end_offset)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing insert comment statement for scan %s: %w", scanID, err)
	}
	defer stmt.Close()

	for _, c := range comments {
		reasonsJSON, err := json.Marshal(c.Reasons)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("marshalling reasons for comment in %s: %w", c.FilePath, err)
		}
		_, err = stmt.Exec(scanID, c.FilePath, c.LanguageID, c.LineNumber, c.Kind, c.IsInline, c.Category, c.Confidence, c.ShouldRemove, c.Selected, string(reasonsJSON), c.RawText, c.StartOffset, c.EndOffset)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("executing insert comment statement for scan %s: %w", scanID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert comments transaction for scan %s: %w", scanID, err)
	}
	logger.ScanDebug("Persisted %d comments for scan %s", len(comments), scanID)
	return nil
}

// GetScanCommentsPaginated lists the persisted comments of one scan with
// optional category, path, and removability filters.
func GetScanCommentsPaginated(filters models.ScanCommentFilters) ([]models.ScanComment, int64, error) {
	var comments []models.ScanComment
	var totalRecords int64

	whereClause := "WHERE scan_id = ?"
	args := []interface{}{filters.ScanID}

	if filters.Category != "" {
		whereClause += " AND category = ?"
		args = append(args, filters.Category)
	}
	if filters.FilePath != "" {
		whereClause += " AND LOWER(file_path) LIKE LOWER(?)"
		args = append(args, "%"+filters.FilePath+"%")
	}
	if filters.OnlyRemove {
		whereClause += " AND should_remove = TRUE"
	}

	countQuery := "SELECT COUNT(*) FROM scan_comments " + whereClause
	if err := DB.QueryRow(countQuery, args...).Scan(&totalRecords); err != nil {
		return nil, 0, fmt.Errorf("counting comments for scan %s: %w", filters.ScanID, err)
	}
	if totalRecords == 0 {
		return comments, 0, nil
	}

	allowedSortColumns := map[string]bool{"file_path": true, "line_number": true, "category": true, "confidence": true, "id": true}
	sortBy := filters.SortBy
	if !allowedSortColumns[sortBy] {
		sortBy = "file_path"
	}
	sortOrder := strings.ToUpper(filters.SortOrder)
	if sortOrder != "ASC" && sortOrder != "DESC" {
		sortOrder = "ASC"
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	page := filters.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf(`SELECT id, scan_id, file_path, language_id, line_number, kind, is_inline, category, confidence, should_remove, selected, reasons, raw_text, start_offset, end_offset
						   FROM scan_comments %s
						   ORDER BY %s %s, line_number ASC, id ASC
						   LIMIT ? OFFSET ?`, whereClause, sortBy, sortOrder)
	args = append(args, limit, offset)

	rows, err := DB.Query(query, args...)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying comments for scan %s: %w", filters.ScanID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.ScanComment
		var reasonsJSON string
		if err := rows.Scan(&c.ID, &c.ScanID, &c.FilePath, &c.LanguageID, &c.LineNumber, &c.Kind, &c.IsInline, &c.Category, &c.Confidence, &c.ShouldRemove, &c.Selected, &reasonsJSON, &c.RawText, &c.StartOffset, &c.EndOffset); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning comment row for scan %s: %w", filters.ScanID, err)
		}
		if reasonsJSON != "" {
			if err := json.Unmarshal([]byte(reasonsJSON), &c.Reasons); err != nil {
				logger.Error("GetScanCommentsPaginated: Error unmarshalling reasons JSON for comment %d: %v", c.ID, err)
			}
		}
		comments = append(comments, c)
	}
	return comments, totalRecords, rows.Err()
}

// GetScanCategoryCounts aggregates the per-category counts of one scan.
func GetScanCategoryCounts(scanID string) (map[string]int, error) {
	rows, err := DB.Query(`
		SELECT category, COUNT(*)
		FROM scan_comments
		WHERE scan_id = ?
		GROUP BY category
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("querying category counts for scan %s: %w", scanID, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count row for scan %s: %w", scanID, err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}
