package database

import (
	"database/sql"
	"fmt"
	"strings"

	"commentsweep/models"
)

// CreateScan inserts a new scan record. The caller supplies the ID.
func CreateScan(scan models.Scan) error {
	stmt, err := DB.Prepare(`
		INSERT INTO scans (id, root_path, file_count, comment_count, selected_count, confidence_threshold, created_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`)
	if err != nil {
		return fmt.Errorf("preparing create scan statement: %w", err)
	}
	defer stmt.Close()

	// Document-only scans have no root path; store NULL rather than "".
	_, err = stmt.Exec(scan.ID, models.NullString(scan.RootPath), scan.FileCount, scan.CommentCount, scan.SelectedCount, scan.ConfidenceThreshold)
	if err != nil {
		return fmt.Errorf("executing create scan statement for scan %s: %w", scan.ID, err)
	}
	return nil
}

// GetScanByID fetches one scan record.
func GetScanByID(scanID string) (models.Scan, error) {
	var scan models.Scan
	var rootPath sql.NullString
	err := DB.QueryRow(`
		SELECT id, root_path, file_count, comment_count, selected_count, confidence_threshold, created_at
		FROM scans
		WHERE id = ?
	`, scanID).Scan(&scan.ID, &rootPath, &scan.FileCount, &scan.CommentCount, &scan.SelectedCount, &scan.ConfidenceThreshold, &scan.CreatedAt)
	scan.RootPath = rootPath.String

	if err != nil {
		if err == sql.ErrNoRows {
			return scan, fmt.Errorf("scan with ID %s not found: %w", scanID, err)
		}
		return scan, fmt.Errorf("querying scan %s: %w", scanID, err)
	}
	return scan, nil
}

// GetAllScansPaginated lists scan records, newest first by default.
func GetAllScansPaginated(limit int, offset int, sortByColumn string, sortOrder string) ([]models.Scan, int64, error) {
	var scans []models.Scan
	var totalRecords int64

	countQuery := "SELECT COUNT(*) FROM scans"
	err := DB.QueryRow(countQuery).Scan(&totalRecords)
	if err != nil {
		return nil, 0, fmt.Errorf("counting scans: %w", err)
	}

	if totalRecords == 0 {
		return scans, 0, nil
	}

	allowedSortColumns := map[string]bool{"created_at": true, "root_path": true, "file_count": true, "comment_count": true, "selected_count": true, "id": true}
	if !allowedSortColumns[sortByColumn] {
		sortByColumn = "created_at"
	}
	if strings.ToUpper(sortOrder) != "ASC" && strings.ToUpper(sortOrder) != "DESC" {
		sortOrder = "DESC"
	}

	query := fmt.Sprintf(`SELECT id, root_path, file_count, comment_count, selected_count, confidence_threshold, created_at
						   FROM scans
						   ORDER BY %s %s, id %s
						   LIMIT ? OFFSET ?`, sortByColumn, sortOrder, sortOrder)

	rows, err := DB.Query(query, limit, offset)
	if err != nil {
		return nil, totalRecords, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var scan models.Scan
		var rootPath sql.NullString
		if err := rows.Scan(&scan.ID, &rootPath, &scan.FileCount, &scan.CommentCount, &scan.SelectedCount, &scan.ConfidenceThreshold, &scan.CreatedAt); err != nil {
			return nil, totalRecords, fmt.Errorf("scanning scan row: %w", err)
		}
		scan.RootPath = rootPath.String
		scans = append(scans, scan)
	}
	return scans, totalRecords, rows.Err()
}

// UpdateScanCounts refreshes the aggregate counters after analysis completes.
func UpdateScanCounts(scanID string, fileCount, commentCount, selectedCount int) error {
	stmt, err := DB.Prepare(`
		UPDATE scans
		SET file_count = ?, comment_count = ?, selected_count = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing update scan counts statement for scan %s: %w", scanID, err)
	}
	defer stmt.Close()
	_, err = stmt.Exec(fileCount, commentCount, selectedCount, scanID)
	if err != nil {
		return fmt.Errorf("executing update scan counts statement for scan %s: %w", scanID, err)
	}
	return nil
}

// DeleteScan removes a scan; its comments go with it via the foreign key.
func DeleteScan(scanID string) error {
	result, err := DB.Exec("DELETE FROM scans WHERE id = ?", scanID)
	if err != nil {
		return fmt.Errorf("executing delete scan statement for scan %s: %w", scanID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected for delete scan %s: %w", scanID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("scan with ID %s not found: %w", scanID, sql.ErrNoRows)
	}
	return nil
}
