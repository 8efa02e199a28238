package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"commentsweep/config"
	"commentsweep/core"
	"commentsweep/database"
	"commentsweep/logger"
	"commentsweep/models"
)

var (
	scanThresholdFlag float64
	scanCategoryFlags []string
	scanJSONFlag      bool
	scanDetailsFlag   bool
	scanSaveFlag      bool
	scanWatchFlag     bool
	scanWorkersFlag   int
)

// scanOutput is the machine-readable form of one scan pass.
type scanOutput struct {
	Roots         []string                                    `json:"roots"`
	Threshold     float64                                     `json:"threshold"`
	FileCount     int                                         `json:"file_count"`
	CommentCount  int                                         `json:"comment_count"`
	SelectedCount int                                         `json:"selected_count"`
	SkippedCount  int                                         `json:"skipped_count"`
	Summary       map[models.Category]models.CategorySummary `json:"summary"`
	Files         []models.FileSummary                        `json:"files"`
	ScanID        string                                      `json:"scan_id,omitempty"`
}

var scanCmd = &cobra.Command{
	Use:   "scan [path ...]",
	Short: "Analyze the comments in files or directories",
	Long: `Walks the given paths (default: the current directory), extracts the
comments from every supported source file, classifies them, and reports
which ones are worth removing. Use --save to persist the results for
later inspection with 'commentsweep scans' or the API.`,
	RunE: runScanCommand,
}

func runScanCommand(cmd *cobra.Command, args []string) error {
	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}

	threshold, opts, walkOpts, err := resolveAnalysisSettings(cmd, scanThresholdFlag, scanCategoryFlags)
	if err != nil {
		return err
	}

	workers := scanWorkersFlag
	if workers <= 0 {
		workers = config.AppConfig.Scanner.Workers
	}

	if scanWatchFlag {
		if scanSaveFlag {
			return fmt.Errorf("--save cannot be combined with --watch")
		}
		return runScanWatch(roots, walkOpts, opts, workers, threshold)
	}

	files, err := core.CollectFiles(roots, walkOpts)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if scanJSONFlag {
			return printScanJSON(scanOutput{Roots: roots, Threshold: threshold, Summary: map[models.Category]models.CategorySummary{}, Files: []models.FileSummary{}})
		}
		fmt.Println("No analyzable files found.")
		return nil
	}

	if !scanJSONFlag {
		fmt.Printf("Scanning %d file(s)...\n", len(files))
	}
	results := core.ScanFiles(context.Background(), files, opts, workers, nil)

	out := buildScanOutput(roots, threshold, results)

	if scanSaveFlag {
		scanID, err := saveScanResults(roots, threshold, results, out)
		if err != nil {
			return err
		}
		out.ScanID = scanID
	}

	if scanJSONFlag {
		return printScanJSON(out)
	}
	renderScanTables(out, results)
	if out.ScanID != "" {
		fmt.Printf("\nSaved scan %s\n", color.New(color.Bold).Sprint(out.ScanID))
	}
	return nil
}

func runScanWatch(roots []string, walkOpts core.WalkOptions, opts core.Options, workers int, threshold float64) error {
	interval := time.Duration(config.AppConfig.Scanner.WatchIntervalSeconds) * time.Second

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws := core.NewWatchService(ctx, roots, interval, walkOpts, opts, workers, func(results []core.FileResult) {
		out := buildScanOutput(roots, threshold, results)
		if scanJSONFlag {
			if err := printScanJSON(out); err != nil {
				logger.Error("scan --watch: failed to encode pass output: %v", err)
			}
			return
		}
		fmt.Printf("\n--- %s ---\n", time.Now().Format("15:04:05"))
		renderScanTables(out, results)
	})
	ws.Start()
	if !scanJSONFlag {
		fmt.Printf("Watching %s every %s. Press Ctrl+C to stop.\n", strings.Join(roots, ", "), interval)
	}
	<-ctx.Done()
	ws.Stop()
	return nil
}

func buildScanOutput(roots []string, threshold float64, results []core.FileResult) scanOutput {
	out := scanOutput{
		Roots:     roots,
		Threshold: threshold,
		FileCount: len(results),
		Files:     make([]models.FileSummary, 0, len(results)),
	}
	var summaries []map[models.Category]models.CategorySummary
	for _, r := range results {
		fs := r.FileSummary()
		out.Files = append(out.Files, fs)
		if r.Analysis == nil {
			out.SkippedCount++
			continue
		}
		out.CommentCount += len(r.Analysis.Pairs)
		out.SelectedCount += len(r.Analysis.Selected)
		summaries = append(summaries, r.Analysis.Summary)
	}
	out.Summary = core.MergeSummaries(summaries)
	return out
}

func printScanJSON(out scanOutput) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scan output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func renderScanTables(out scanOutput, results []core.FileResult) {
	bold := color.New(color.Bold)
	fmt.Printf("Scanned %s file(s): %s comment(s), %s selected for removal (threshold %.2f)\n",
		bold.Sprint(out.FileCount-out.SkippedCount),
		bold.Sprint(out.CommentCount),
		color.New(color.Bold, color.FgRed).Sprint(out.SelectedCount),
		out.Threshold)
	if out.SkippedCount > 0 {
		fmt.Printf("%d file(s) skipped.\n", out.SkippedCount)
	}

	if len(out.Summary) > 0 {
		table := tablewriter.NewWriter(os.Stdout)
		table.SetAutoWrapText(false)
		table.SetHeader([]string{"Category", "Count", "Removable", "Avg Confidence"})
		for _, cat := range models.AllCategories {
			s, ok := out.Summary[cat]
			if !ok {
				continue
			}
			table.Append([]string{
				string(cat),
				strconv.Itoa(s.Count),
				strconv.Itoa(s.RemovableCount),
				fmt.Sprintf("%.2f", s.AverageConfidence),
			})
		}
		table.Render()
	}

	if scanDetailsFlag {
		renderSelectedDetails(results)
	}
}

func renderSelectedDetails(results []core.FileResult) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"File", "Line", "Category", "Confidence", "Comment"})

	rows := 0
	for _, r := range results {
		if r.Analysis == nil {
			continue
		}
		for _, cc := range r.Analysis.Selected {
			table.Append([]string{
				r.Path,
				strconv.Itoa(cc.Comment.LineNumber + 1),
				string(cc.Classification.Category),
				fmt.Sprintf("%.2f", cc.Classification.Confidence),
				firstCommentLine(cc.Comment.RawText, 60),
			})
			rows++
		}
	}
	if rows == 0 {
		fmt.Println("No comments selected for removal.")
		return
	}
	fmt.Println()
	table.Render()
}

// firstCommentLine returns the first line of a comment, truncated for display.
func firstCommentLine(raw string, max int) string {
	line := raw
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimRight(line, "\r")
	if len(line) > max {
		line = line[:max-3] + "..."
	}
	return line
}

func saveScanResults(roots []string, threshold float64, results []core.FileResult, out scanOutput) (string, error) {
	scan := models.Scan{
		ID:                  uuid.NewString(),
		RootPath:            strings.Join(roots, ", "),
		FileCount:           out.FileCount,
		CommentCount:        out.CommentCount,
		SelectedCount:       out.SelectedCount,
		ConfidenceThreshold: threshold,
		CreatedAt:           time.Now(),
	}
	if err := database.CreateScan(scan); err != nil {
		return "", fmt.Errorf("failed to create scan record: %w", err)
	}

	var rows []models.ScanComment
	for _, r := range results {
		if r.Analysis == nil {
			continue
		}
		rows = append(rows, r.Analysis.ScanComments(scan.ID, r.Path, r.LanguageID)...)
	}
	if err := database.InsertScanComments(scan.ID, rows); err != nil {
		return "", fmt.Errorf("failed to store scan comments: %w", err)
	}
	if err := database.SetLastScanID(scan.ID); err != nil {
		logger.Error("saveScanResults: failed to record last scan ID: %v", err)
	}
	return scan.ID, nil
}

// sortedCategoryNames is used by completion for the --category flag.
func sortedCategoryNames() []string {
	names := make([]string, 0, len(models.AllCategories))
	for _, c := range models.AllCategories {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

func init() {
	scanCmd.Flags().Float64VarP(&scanThresholdFlag, "threshold", "t", 0, "confidence threshold for removal selection (0-1, overrides stored settings)")
	scanCmd.Flags().StringSliceVarP(&scanCategoryFlags, "category", "c", nil, "restrict removal selection to these categories (repeatable)")
	scanCmd.Flags().BoolVar(&scanJSONFlag, "json", false, "emit machine-readable JSON instead of tables")
	scanCmd.Flags().BoolVarP(&scanDetailsFlag, "details", "d", false, "list every comment selected for removal")
	scanCmd.Flags().BoolVar(&scanSaveFlag, "save", false, "persist the scan results to the database")
	scanCmd.Flags().BoolVarP(&scanWatchFlag, "watch", "w", false, "rescan on an interval until interrupted")
	scanCmd.Flags().IntVar(&scanWorkersFlag, "workers", 0, "number of concurrent workers (0 = configured default)")

	scanCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sortedCategoryNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(scanCmd)
}
