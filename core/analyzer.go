package core

import (
	"errors"
	"fmt"

	"commentsweep/logger"
	"commentsweep/models"
)

// ErrUnsupportedLanguage is returned by Analyze when no profile is registered
// for the document's language. Callers treat it as "nothing to do", not a
// failure.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Options tune one analysis run.
type Options struct {
	Threshold  float64                  // Minimum confidence for removal selection; <= 0 means the default.
	Categories map[models.Category]bool // Categories eligible for removal; nil or empty means all.
}

// Analysis is the complete outcome of analyzing one document snapshot. Pairs
// holds every extracted comment with its classification in extraction order;
// Selected is the removable subset that passed the threshold and category
// filters at analysis time.
type Analysis struct {
	Document  *Document
	Threshold float64
	Pairs     []models.ClassifiedComment
	Selected  []models.ClassifiedComment
	Summary   map[models.Category]models.CategorySummary
}

// Analyze runs extraction, classification, selection, and aggregation over a
// document. The passes are sequential and pure: the same snapshot and options
// always produce the same result.
func Analyze(doc *Document, opts Options) (*Analysis, error) {
	profile, ok := ProfileFor(doc.LanguageID())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, doc.LanguageID())
	}
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = models.DefaultConfidenceThreshold
	}

	comments := ExtractComments(doc, profile)
	pairs := make([]models.ClassifiedComment, 0, len(comments))
	var selected []models.ClassifiedComment
	for _, c := range comments {
		result := ClassifyComment(c, profile, doc.Text())
		pair := models.ClassifiedComment{Comment: c, Classification: result}
		pairs = append(pairs, pair)
		if result.ShouldRemove && result.Confidence >= threshold && categoryEnabled(opts.Categories, result.Category) {
			selected = append(selected, pair)
		}
	}

	logger.ScanDebug("Analyze: language=%s comments=%d selected=%d threshold=%.2f",
		profile.ID, len(pairs), len(selected), threshold)

	return &Analysis{
		Document:  doc,
		Threshold: threshold,
		Pairs:     pairs,
		Selected:  selected,
		Summary:   Summarize(pairs),
	}, nil
}

func categoryEnabled(enabled map[models.Category]bool, cat models.Category) bool {
	if len(enabled) == 0 {
		return true
	}
	return enabled[cat]
}

// CategorySet converts category names to the set form Options wants,
// rejecting unknown names.
func CategorySet(names []string) (map[models.Category]bool, error) {
	if len(names) == 0 {
		return nil, nil
	}
	set := make(map[models.Category]bool, len(names))
	for _, n := range names {
		if !models.IsValidCategory(n) {
			return nil, fmt.Errorf("unknown category %q", n)
		}
		set[models.Category(n)] = true
	}
	return set, nil
}

// Empty reports whether extraction found no comments at all.
func (a *Analysis) Empty() bool { return len(a.Pairs) == 0 }

// ScanComments flattens the analysis into persistence rows for one scan.
// Selected rows are matched by span since selection is a subset of the pairs.
func (a *Analysis) ScanComments(scanID, filePath, languageID string) []models.ScanComment {
	selectedSpans := make(map[[2]int]bool, len(a.Selected))
	for _, cc := range a.Selected {
		selectedSpans[[2]int{cc.Comment.StartOffset, cc.Comment.EndOffset}] = true
	}

	rows := make([]models.ScanComment, 0, len(a.Pairs))
	for _, cc := range a.Pairs {
		rows = append(rows, models.ScanComment{
			ScanID:       scanID,
			FilePath:     filePath,
			LanguageID:   languageID,
			LineNumber:   cc.Comment.LineNumber,
			Kind:         string(cc.Comment.Kind),
			IsInline:     cc.Comment.IsInline,
			Category:     string(cc.Classification.Category),
			Confidence:   cc.Classification.Confidence,
			ShouldRemove: cc.Classification.ShouldRemove,
			Selected:     selectedSpans[[2]int{cc.Comment.StartOffset, cc.Comment.EndOffset}],
			Reasons:      cc.Classification.Reasons,
			RawText:      cc.Comment.RawText,
			StartOffset:  cc.Comment.StartOffset,
			EndOffset:    cc.Comment.EndOffset,
		})
	}
	return rows
}

// Plan builds the deletion plan for the selected comments.
func (a *Analysis) Plan() []models.Deletion {
	return PlanRemoval(a.Document, a.Selected)
}

// CleanedText applies the plan to the analyzed snapshot and returns the
// resulting text.
func (a *Analysis) CleanedText() (string, error) {
	return ApplyDeletions(a.Document.Text(), a.Plan())
}
