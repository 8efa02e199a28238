package core

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"commentsweep/logger"
	"commentsweep/models"
)

// extensionLanguages maps file extensions to registered language IDs.
var extensionLanguages = map[string]string{
	".js": "javascript", ".jsx": "javascript", ".mjs": "javascript", ".cjs": "javascript",
	".ts": "typescript", ".tsx": "typescript",
	".py": "python", ".pyw": "python",
	".java": "java",
	".c":    "c", ".h": "c",
	".cpp": "cpp", ".cc": "cpp", ".cxx": "cpp", ".hpp": "cpp", ".hh": "cpp",
	".cs": "csharp",
	".go": "go",
	".rs": "rust",
	".rb": "ruby",
	".php": "php",
	".swift": "swift",
	".kt": "kotlin", ".kts": "kotlin",
	".html": "html", ".htm": "html", ".xml": "html", ".vue": "html", ".svg": "html",
	".css": "css",
	".scss": "scss", ".sass": "scss", ".less": "scss",
	".sh": "shellscript", ".bash": "shellscript", ".zsh": "shellscript",
	".sql": "sql",
	".lua": "lua",
	".yaml": "yaml", ".yml": "yaml",
	".pl": "perl", ".pm": "perl",
}

// DetectLanguageID returns the registered language for a file path based on
// its extension.
func DetectLanguageID(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	id, ok := extensionLanguages[ext]
	return id, ok
}

// skippedDirs are never descended into during collection. Hidden directories
// are skipped separately.
var skippedDirs = map[string]bool{
	"node_modules": true, "vendor": true, "dist": true, "build": true,
	"target": true, "__pycache__": true, "bower_components": true,
}

// WalkOptions bound a directory collection pass.
type WalkOptions struct {
	MaxFileSizeBytes int64 // Files larger than this are skipped; <= 0 disables the cap.
}

// CollectFiles walks the given roots and returns the analyzable files:
// supported extension and within the size cap. Roots may be files or
// directories. The returned list is sorted and de-duplicated, so a scan over
// the same tree always visits files in the same order.
func CollectFiles(roots []string, opts WalkOptions) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	addFile := func(path string, size int64) {
		if opts.MaxFileSizeBytes > 0 && size > opts.MaxFileSizeBytes {
			logger.ScanDebug("CollectFiles: %s exceeds size cap (%d bytes), skipped", path, size)
			return
		}
		if _, ok := DetectLanguageID(path); !ok {
			return
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat scan root %s: %w", root, err)
		}
		if !info.IsDir() {
			addFile(root, info.Size())
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.ScanDebug("CollectFiles: skipping %s: %v", path, err)
				return nil
			}
			if d.IsDir() {
				if path != root && (skippedDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				logger.ScanDebug("CollectFiles: skipping %s: %v", path, err)
				return nil
			}
			addFile(path, fi.Size())
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// FileResult is the outcome of analyzing one file.
type FileResult struct {
	Path       string
	LanguageID string
	Analysis   *Analysis
	Err        error
	Skipped    string // Non-empty reason when the file was not analyzed.
}

// FileSummary converts a result to its wire form.
func (r FileResult) FileSummary() models.FileSummary {
	fs := models.FileSummary{
		Path:          r.Path,
		LanguageID:    r.LanguageID,
		SkippedReason: r.Skipped,
	}
	if r.Err != nil {
		fs.AnalysisFailed = true
		fs.SkippedReason = r.Err.Error()
	}
	if r.Analysis != nil {
		fs.CommentCount = len(r.Analysis.Pairs)
		fs.SelectedCount = len(r.Analysis.Selected)
		fs.ByCategory = r.Analysis.Summary
	}
	return fs
}

const binarySniffLen = 8000

// isBinary applies the null-byte heuristic over the leading bytes.
func isBinary(data []byte) bool {
	n := len(data)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	return bytes.IndexByte(data[:n], 0) >= 0
}

// ScanFile loads and analyzes a single file.
func ScanFile(path string, opts Options) FileResult {
	id, ok := DetectLanguageID(path)
	if !ok {
		return FileResult{Path: path, Skipped: "unsupported extension"}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, LanguageID: id, Err: fmt.Errorf("failed to read file: %w", err)}
	}
	if isBinary(data) {
		return FileResult{Path: path, LanguageID: id, Skipped: "binary content"}
	}
	analysis, err := Analyze(NewDocument(string(data), id), opts)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) {
			return FileResult{Path: path, LanguageID: id, Skipped: "no language profile"}
		}
		return FileResult{Path: path, LanguageID: id, Err: err}
	}
	return FileResult{Path: path, LanguageID: id, Analysis: analysis}
}

// ScanFiles analyzes files with a bounded worker pool. The returned slice
// matches the order of files regardless of completion order. progress, when
// non-nil, is invoked from worker goroutines as each file finishes and must
// be safe for concurrent use. Cancelling ctx stops feeding new files; files
// never started are marked skipped.
func ScanFiles(ctx context.Context, files []string, opts Options, workers int, progress func(FileResult)) []FileResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				r := ScanFile(files[idx], opts)
				results[idx] = r
				if progress != nil {
					progress(r)
				}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if results[i].Path == "" {
			results[i] = FileResult{Path: files[i], Skipped: "cancelled"}
		}
	}
	return results
}
