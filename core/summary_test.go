package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func classified(cat models.Category, remove bool, conf float64) models.ClassifiedComment {
	return models.ClassifiedComment{
		Classification: models.Classification{Category: cat, ShouldRemove: remove, Confidence: conf},
	}
}

func TestSummarize(t *testing.T) {
	pairs := []models.ClassifiedComment{
		classified(models.CategoryNoise, true, 0.8),
		classified(models.CategoryNoise, true, 0.8),
		classified(models.CategoryDocumentation, false, 0.9),
		classified(models.CategoryRedundant, true, 0.6),
		classified(models.CategoryRedundant, true, 0.9),
	}

	summary := Summarize(pairs)
	require.Len(t, summary, 3)

	noise := summary[models.CategoryNoise]
	assert.Equal(t, 2, noise.Count)
	assert.Equal(t, 2, noise.RemovableCount)
	assert.InDelta(t, 0.8, noise.AverageConfidence, 1e-9)

	doc := summary[models.CategoryDocumentation]
	assert.Equal(t, 1, doc.Count)
	assert.Equal(t, 0, doc.RemovableCount)

	redundant := summary[models.CategoryRedundant]
	assert.Equal(t, 2, redundant.Count)
	assert.InDelta(t, 0.75, redundant.AverageConfidence, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
}

func TestMergeSummaries(t *testing.T) {
	fileA := map[models.Category]models.CategorySummary{
		models.CategoryNoise:         {Count: 2, RemovableCount: 2, AverageConfidence: 0.8},
		models.CategoryDocumentation: {Count: 1, RemovableCount: 0, AverageConfidence: 0.85},
	}
	fileB := map[models.Category]models.CategorySummary{
		models.CategoryNoise: {Count: 1, RemovableCount: 1, AverageConfidence: 0.9},
	}

	merged := MergeSummaries([]map[models.Category]models.CategorySummary{fileA, fileB})
	require.Len(t, merged, 2)

	noise := merged[models.CategoryNoise]
	assert.Equal(t, 3, noise.Count)
	assert.Equal(t, 3, noise.RemovableCount)
	assert.InDelta(t, (0.8*2+0.9)/3, noise.AverageConfidence, 1e-9)

	doc := merged[models.CategoryDocumentation]
	assert.Equal(t, 1, doc.Count)
	assert.InDelta(t, 0.85, doc.AverageConfidence, 1e-9)
}

func TestMergeSummariesEmpty(t *testing.T) {
	assert.Empty(t, MergeSummaries(nil))
	assert.Empty(t, MergeSummaries([]map[models.Category]models.CategorySummary{{}, {}}))
}
