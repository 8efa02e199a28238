package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestDetectLanguageID(t *testing.T) {
	cases := []struct {
		path   string
		wantID string
		wantOK bool
	}{
		{"main.go", "go", true},
		{"src/app.JS", "javascript", true},
		{"script.PY", "python", true},
		{"style.scss", "scss", true},
		{"data.dat", "", false},
		{"Makefile", "", false},
	}
	for _, tc := range cases {
		id, ok := DetectLanguageID(tc.path)
		assert.Equal(t, tc.wantOK, ok, "path %q", tc.path)
		assert.Equal(t, tc.wantID, id, "path %q", tc.path)
	}
}

func TestCollectFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.go":              "package a\n",
		"b.js":              "send();\n",
		"sub/c.py":          "x = 1\n",
		"node_modules/d.js": "skip();\n",
		".git/e.js":         "skip();\n",
		"notes.txt":         "plain text\n",
	})

	files, err := CollectFiles([]string{dir}, WalkOptions{})
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "b.js"),
		filepath.Join(dir, "sub", "c.py"),
	}
	assert.Equal(t, want, files)
}

func TestCollectFilesSizeCap(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"small.go": "package a\n",
		"big.go":   "package a\n// padding padding padding padding padding\n",
	})

	files, err := CollectFiles([]string{dir}, WalkOptions{MaxFileSizeBytes: 20})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "small.go")}, files)

	files, err = CollectFiles([]string{dir}, WalkOptions{})
	require.NoError(t, err)
	assert.Len(t, files, 2, "zero cap disables the size check")
}

func TestCollectFilesDeduplicatesRoots(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.js": "x();\n"})
	file := filepath.Join(dir, "a.js")

	files, err := CollectFiles([]string{dir, file}, WalkOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, files)
}

func TestCollectFilesMissingRoot(t *testing.T) {
	_, err := CollectFiles([]string{filepath.Join(t.TempDir(), "nope")}, WalkOptions{})
	assert.Error(t, err)
}

func TestIsBinary(t *testing.T) {
	assert.True(t, isBinary([]byte{0x7f, 'E', 'L', 'F', 0x00}))
	assert.False(t, isBinary([]byte("plain source text")))
	assert.False(t, isBinary(nil))

	// Null byte past the sniff window is not inspected.
	tail := append(bytes.Repeat([]byte{'a'}, binarySniffLen+1), 0x00)
	assert.False(t, isBinary(tail))
}

func TestScanFile(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.js": "// hmm\nsend();\n"})

	r := ScanFile(filepath.Join(dir, "app.js"), Options{})
	require.NoError(t, r.Err)
	assert.Equal(t, "javascript", r.LanguageID)
	require.NotNil(t, r.Analysis)
	assert.Len(t, r.Analysis.Pairs, 1)
	assert.Len(t, r.Analysis.Selected, 1)

	fs := r.FileSummary()
	assert.Equal(t, 1, fs.CommentCount)
	assert.Equal(t, 1, fs.SelectedCount)
	assert.False(t, fs.AnalysisFailed)
}

func TestScanFileUnsupportedExtension(t *testing.T) {
	r := ScanFile("/tmp/whatever.dat", Options{})
	assert.Equal(t, "unsupported extension", r.Skipped)
	assert.Nil(t, r.Analysis)
	assert.NoError(t, r.Err)
}

func TestScanFileBinaryContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.go")
	require.NoError(t, os.WriteFile(path, []byte{'p', 0x00, 'k'}, 0644))

	r := ScanFile(path, Options{})
	assert.Equal(t, "binary content", r.Skipped)
	assert.Nil(t, r.Analysis)
}

func TestScanFileReadError(t *testing.T) {
	r := ScanFile(filepath.Join(t.TempDir(), "missing.go"), Options{})
	require.Error(t, r.Err)

	fs := r.FileSummary()
	assert.True(t, fs.AnalysisFailed)
	assert.NotEmpty(t, fs.SkippedReason)
}

func TestScanFilesOrderAndProgress(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"one.js":   "// hmm\na();\n",
		"two.js":   "b();\n",
		"three.py": "# hmm\nc()\n",
	})
	files, err := CollectFiles([]string{dir}, WalkOptions{})
	require.NoError(t, err)
	require.Len(t, files, 3)

	var done atomic.Int32
	results := ScanFiles(context.Background(), files, Options{}, 2, func(FileResult) {
		done.Add(1)
	})

	require.Len(t, results, 3)
	assert.Equal(t, int32(3), done.Load())
	for i, r := range results {
		assert.Equal(t, files[i], r.Path, "results keep input order")
		assert.NoError(t, r.Err)
		require.NotNil(t, r.Analysis)
	}
}

func TestScanFilesCancelled(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"one.js": "a();\n", "two.js": "b();\n", "three.js": "c();\n", "four.js": "d();\n",
	})
	files, err := CollectFiles([]string{dir}, WalkOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := ScanFiles(ctx, files, Options{}, 2, nil)

	require.Len(t, results, len(files))
	for i, r := range results {
		assert.Equal(t, files[i], r.Path)
		if r.Analysis == nil {
			assert.Equal(t, "cancelled", r.Skipped)
		}
	}
}

func TestFileSummaryCarriesCategories(t *testing.T) {
	dir := writeTree(t, map[string]string{"app.js": "// hmm\nsend();\n"})
	r := ScanFile(filepath.Join(dir, "app.js"), Options{})
	require.NoError(t, r.Err)

	fs := r.FileSummary()
	require.Contains(t, fs.ByCategory, models.CategoryNoise)
	assert.Equal(t, 1, fs.ByCategory[models.CategoryNoise].Count)
}
