package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"commentsweep/database"
	"commentsweep/models"
)

var (
	scansLimitFlag int
	scansPageFlag  int
)

var scansCmd = &cobra.Command{
	Use:   "scans",
	Short: "List saved scans",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit := scansLimitFlag
		if limit <= 0 {
			limit = 20
		}
		page := scansPageFlag
		if page < 1 {
			page = 1
		}

		scans, total, err := database.GetAllScansPaginated(limit, (page-1)*limit, "created_at", "DESC")
		if err != nil {
			return fmt.Errorf("failed to list scans: %w", err)
		}
		if total == 0 {
			fmt.Println("No saved scans. Run 'commentsweep scan --save <path>' to create one.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"ID", "Created", "Root", "Files", "Comments", "Selected", "Threshold"})
		for _, s := range scans {
			table.Append([]string{
				s.ID,
				s.CreatedAt.Local().Format(time.DateTime),
				s.RootPath,
				strconv.Itoa(s.FileCount),
				strconv.Itoa(s.CommentCount),
				strconv.Itoa(s.SelectedCount),
				fmt.Sprintf("%.2f", s.ConfidenceThreshold),
			})
		}
		table.Render()
		fmt.Printf("Page %d, %d scan(s) total.\n", page, total)
		return nil
	},
}

// resolveScanArg turns a CLI scan argument into a scan ID. The literal "last"
// names the most recently completed scan.
func resolveScanArg(arg string) (string, error) {
	if arg != "last" {
		return arg, nil
	}
	id, err := database.GetLastScanID()
	if err != nil {
		return "", fmt.Errorf("failed to look up the last scan: %w", err)
	}
	if id == "" {
		return "", fmt.Errorf("no scan has been saved yet")
	}
	return id, nil
}

var scansShowCmd = &cobra.Command{
	Use:   "show <scan-id|last>",
	Short: "Show one saved scan with its per-category counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanID, err := resolveScanArg(args[0])
		if err != nil {
			return err
		}

		scan, err := database.GetScanByID(scanID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("scan %s not found", scanID)
			}
			return fmt.Errorf("failed to load scan %s: %w", scanID, err)
		}
		counts, err := database.GetScanCategoryCounts(scanID)
		if err != nil {
			return fmt.Errorf("failed to load category counts for scan %s: %w", scanID, err)
		}

		fmt.Printf("Scan %s\n", scan.ID)
		fmt.Printf("  Created:   %s\n", scan.CreatedAt.Local().Format(time.DateTime))
		fmt.Printf("  Root:      %s\n", scan.RootPath)
		fmt.Printf("  Files:     %d\n", scan.FileCount)
		fmt.Printf("  Comments:  %d (%d selected for removal)\n", scan.CommentCount, scan.SelectedCount)
		fmt.Printf("  Threshold: %.2f\n", scan.ConfidenceThreshold)

		if len(counts) > 0 {
			fmt.Println()
			table := tablewriter.NewWriter(os.Stdout)
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"Category", "Count"})
			for _, cat := range models.AllCategories {
				if n, ok := counts[string(cat)]; ok {
					table.Append([]string{string(cat), strconv.Itoa(n)})
				}
			}
			table.Render()
		}
		return nil
	},
}

var scansDeleteCmd = &cobra.Command{
	Use:   "delete <scan-id|last>",
	Short: "Delete a saved scan and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanID, err := resolveScanArg(args[0])
		if err != nil {
			return err
		}
		if err := database.DeleteScan(scanID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("scan %s not found", scanID)
			}
			return fmt.Errorf("failed to delete scan %s: %w", scanID, err)
		}
		fmt.Printf("Deleted scan %s\n", scanID)
		return nil
	},
}

func init() {
	scansCmd.Flags().IntVar(&scansLimitFlag, "limit", 20, "scans per page")
	scansCmd.Flags().IntVar(&scansPageFlag, "page", 1, "page number")

	scansCmd.AddCommand(scansShowCmd)
	scansCmd.AddCommand(scansDeleteCmd)
	rootCmd.AddCommand(scansCmd)
}
