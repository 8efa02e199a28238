package core

import "commentsweep/models"

// Summarize groups classification results by category. Counts cover every
// classified comment; RemovableCount counts shouldRemove flags before any
// threshold is applied, so the summary is threshold-independent.
func Summarize(pairs []models.ClassifiedComment) map[models.Category]models.CategorySummary {
	totals := make(map[models.Category]models.CategorySummary)
	sums := make(map[models.Category]float64)
	for _, cc := range pairs {
		cat := cc.Classification.Category
		s := totals[cat]
		s.Count++
		if cc.Classification.ShouldRemove {
			s.RemovableCount++
		}
		totals[cat] = s
		sums[cat] += cc.Classification.Confidence
	}
	for cat, s := range totals {
		s.AverageConfidence = sums[cat] / float64(s.Count)
		totals[cat] = s
	}
	return totals
}

// MergeSummaries folds per-file summaries into one rollup.
func MergeSummaries(all []map[models.Category]models.CategorySummary) map[models.Category]models.CategorySummary {
	merged := make(map[models.Category]models.CategorySummary)
	sums := make(map[models.Category]float64)
	for _, m := range all {
		for cat, s := range m {
			t := merged[cat]
			t.Count += s.Count
			t.RemovableCount += s.RemovableCount
			merged[cat] = t
			sums[cat] += s.AverageConfidence * float64(s.Count)
		}
	}
	for cat, t := range merged {
		if t.Count > 0 {
			t.AverageConfidence = sums[cat] / float64(t.Count)
		}
		merged[cat] = t
	}
	return merged
}
