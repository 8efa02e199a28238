package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"commentsweep/core"
	"commentsweep/database"
	"commentsweep/logger"
	"commentsweep/models"
)

var (
	cleanThresholdFlag float64
	cleanCategoryFlags []string
	cleanDryRunFlag    bool
	cleanBackupFlag    bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [path ...]",
	Short: "Remove the comments selected for removal, editing files in place",
	Long: `Analyzes the given paths like 'scan' does, then deletes the selected
comments from each file. Deletions are applied from the end of the file
backwards so earlier edits never shift later offsets. Files that change
between analysis and write-back are skipped untouched.

Use --dry-run to see the plan without modifying anything, and --backup to
keep a .bak copy of every file before it is rewritten.`,
	RunE: runCleanCommand,
}

// resolveAnalysisSettings merges CLI flags with the stored analyzer settings.
// The threshold flag only takes effect when explicitly set.
func resolveAnalysisSettings(cmd *cobra.Command, thresholdFlag float64, categoryFlags []string) (float64, core.Options, core.WalkOptions, error) {
	settings, err := database.GetAnalyzerSettings()
	if err != nil {
		return 0, core.Options{}, core.WalkOptions{}, fmt.Errorf("failed to load analyzer settings: %w", err)
	}

	threshold := settings.ConfidenceThreshold
	if cmd.Flags().Changed("threshold") {
		if thresholdFlag < 0 || thresholdFlag > 1 {
			return 0, core.Options{}, core.WalkOptions{}, fmt.Errorf("threshold must be between 0 and 1, got %v", thresholdFlag)
		}
		threshold = thresholdFlag
	}
	if threshold <= 0 {
		threshold = models.DefaultConfidenceThreshold
	}

	categories := categoryFlags
	if len(categories) == 0 {
		categories = settings.EnabledCategories
	}
	categorySet, err := core.CategorySet(categories)
	if err != nil {
		return 0, core.Options{}, core.WalkOptions{}, err
	}

	return threshold,
		core.Options{Threshold: threshold, Categories: categorySet},
		core.WalkOptions{MaxFileSizeBytes: settings.MaxFileSizeBytes},
		nil
}

func runCleanCommand(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	_, opts, walkOpts, err := resolveAnalysisSettings(cmd, cleanThresholdFlag, cleanCategoryFlags)
	if err != nil {
		return err
	}

	files, err := core.CollectFiles(roots, walkOpts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No analyzable files found.")
		return nil
	}

	var planTable *tablewriter.Table
	if cleanDryRunFlag {
		planTable = tablewriter.NewWriter(os.Stdout)
		planTable.SetAutoWrapText(false)
		planTable.SetHeader([]string{"File", "Line", "Category", "Whole Line", "Bytes"})
	}

	var filesChanged, commentsRemoved, bytesRemoved, skippedStale int
	for _, path := range files {
		res := core.ScanFile(path, opts)
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s: %v\n", path, res.Err)
			continue
		}
		if res.Analysis == nil || len(res.Analysis.Selected) == 0 {
			continue
		}

		plan := res.Analysis.Plan()
		if cleanDryRunFlag {
			for i := len(plan) - 1; i >= 0; i-- {
				d := plan[i]
				planTable.Append([]string{
					path,
					strconv.Itoa(d.LineNumber + 1),
					string(d.Category),
					strconv.FormatBool(d.WholeLine),
					strconv.Itoa(d.EndOffset - d.StartOffset),
				})
			}
			filesChanged++
			commentsRemoved += len(plan)
			for _, d := range plan {
				bytesRemoved += d.EndOffset - d.StartOffset
			}
			continue
		}

		cleaned, err := res.Analysis.CleanedText()
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s: %v\n", path, err)
			continue
		}

		// The file may have changed since ScanFile read it. Offsets from a
		// stale snapshot must never be applied to the current content.
		current, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s: %v\n", path, err)
			continue
		}
		if string(current) != res.Analysis.Document.Text() {
			fmt.Fprintf(os.Stderr, "WARN: %s changed during analysis, skipped\n", path)
			skippedStale++
			continue
		}

		perm := os.FileMode(0644)
		if info, err := os.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
		if cleanBackupFlag {
			if err := os.WriteFile(path+".bak", current, perm); err != nil {
				fmt.Fprintf(os.Stderr, "WARN: %s: failed to write backup, skipped: %v\n", path, err)
				continue
			}
		}
		if err := os.WriteFile(path, []byte(cleaned), perm); err != nil {
			fmt.Fprintf(os.Stderr, "WARN: %s: %v\n", path, err)
			continue
		}

		filesChanged++
		commentsRemoved += len(plan)
		bytesRemoved += len(current) - len(cleaned)
		logger.ScanInfo("clean: %s rewritten, %d deletion(s), %d byte(s) removed", path, len(plan), len(current)-len(cleaned))
	}

	if cleanDryRunFlag {
		if commentsRemoved == 0 {
			fmt.Println("Nothing to remove.")
			return nil
		}
		planTable.Render()
		fmt.Printf("\nWould remove %s comment(s) (%d bytes) from %d file(s). Run without --dry-run to apply.\n",
			color.New(color.Bold).Sprint(commentsRemoved), bytesRemoved, filesChanged)
		return nil
	}

	if filesChanged == 0 && skippedStale == 0 {
		fmt.Println("Nothing to remove.")
		return nil
	}
	fmt.Printf("Removed %s comment(s) (%d bytes) from %d file(s).\n",
		color.New(color.Bold).Sprint(commentsRemoved), bytesRemoved, filesChanged)
	if skippedStale > 0 {
		fmt.Printf("%d file(s) skipped because they changed during analysis. Re-run to pick them up.\n", skippedStale)
	}
	return nil
}

func init() {
	cleanCmd.Flags().Float64VarP(&cleanThresholdFlag, "threshold", "t", 0, "confidence threshold for removal selection (0-1, overrides stored settings)")
	cleanCmd.Flags().StringSliceVarP(&cleanCategoryFlags, "category", "c", nil, "restrict removal to these categories (repeatable)")
	cleanCmd.Flags().BoolVarP(&cleanDryRunFlag, "dry-run", "n", false, "show the removal plan without modifying files")
	cleanCmd.Flags().BoolVarP(&cleanBackupFlag, "backup", "b", false, "write a .bak copy of each file before rewriting it")

	rootCmd.AddCommand(cleanCmd)
}
