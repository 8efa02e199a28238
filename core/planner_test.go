package core

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func analyzeForTest(t *testing.T, docText, languageID string) *Analysis {
	t.Helper()
	a, err := Analyze(NewDocument(docText, languageID), Options{})
	require.NoError(t, err)
	return a
}

// referenceApply deletes all ranges from the immutable original and
// reassembles the remainder, independent of application order.
func referenceApply(text string, dels []models.Deletion) string {
	asc := append([]models.Deletion(nil), dels...)
	sort.Slice(asc, func(i, j int) bool { return asc[i].StartOffset < asc[j].StartOffset })
	var b strings.Builder
	prev := 0
	for _, d := range asc {
		b.WriteString(text[prev:d.StartOffset])
		prev = d.EndOffset
	}
	b.WriteString(text[prev:])
	return b.String()
}

func TestPlanWholeLineWhenOnlyContent(t *testing.T) {
	docText := "   // noise\nx = 1;\n"
	a := analyzeForTest(t, docText, "javascript")
	require.Len(t, a.Selected, 1)

	plan := a.Plan()
	require.Len(t, plan, 1)
	assert.True(t, plan[0].WholeLine)
	assert.Equal(t, 0, plan[0].StartOffset)
	assert.Equal(t, strings.Index(docText, "x ="), plan[0].EndOffset, "terminator included")

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, "x = 1;\n", cleaned)
}

func TestPlanSpanOnlyWhenCodePrecedes(t *testing.T) {
	docText := "x = 1; // noise\n"
	a := analyzeForTest(t, docText, "javascript")
	require.Len(t, a.Selected, 1)

	plan := a.Plan()
	require.Len(t, plan, 1)
	assert.False(t, plan[0].WholeLine)

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, "x = 1; \n", cleaned, "trailing space before the comment is preserved")
}

func TestPlanDescendingOrderMatchesReferenceReassembly(t *testing.T) {
	docText := "// old\ncode();\n// old\nmore();\n// old\nlast();\n// keep explains the algorithm retry loop\n"
	a := analyzeForTest(t, docText, "javascript")
	require.Len(t, a.Selected, 3, "the documentation comment stays")

	plan := a.Plan()
	require.Len(t, plan, 3)
	for i := 1; i < len(plan); i++ {
		assert.Greater(t, plan[i-1].StartOffset, plan[i].StartOffset, "plan must be ordered by descending start")
	}

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, referenceApply(docText, plan), cleaned)
	assert.Equal(t, "code();\nmore();\nlast();\n// keep explains the algorithm retry loop\n", cleaned)
}

func TestPlanCoalescesOverlappingSpans(t *testing.T) {
	// Lua single-line and block patterns both cover the block region with
	// different spans; the plan must delete each byte at most once.
	docText := "--[[ x ]] \nprint(1)\n"
	a := analyzeForTest(t, docText, "lua")
	require.Len(t, a.Selected, 2)

	plan := a.Plan()
	require.Len(t, plan, 1, "overlapping deletions coalesce")

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, "print(1)\n", cleaned)
}

func TestPlanMultiLineBlockDeletesAllItsLines(t *testing.T) {
	docText := "keep();\n/* foo\n   bar() baz() qux(); { } [ ]\n*/\nafter();\n"
	a := analyzeForTest(t, docText, "javascript")
	require.Len(t, a.Selected, 1)

	plan := a.Plan()
	require.Len(t, plan, 1)
	assert.True(t, plan[0].WholeLine)

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, "keep();\nafter();\n", cleaned)
}

func TestPlanKeepsTrailingCodeAfterBlockComment(t *testing.T) {
	docText := "/* test */ run();\n"
	a := analyzeForTest(t, docText, "javascript")
	require.Len(t, a.Selected, 1)

	plan := a.Plan()
	require.Len(t, plan, 1)
	assert.False(t, plan[0].WholeLine, "code follows the comment on its line")

	cleaned, err := ApplyDeletions(docText, plan)
	require.NoError(t, err)
	assert.Equal(t, " run();\n", cleaned)
}

func TestApplyDeletionsRejectsStaleText(t *testing.T) {
	docText := "   // noise\nx = 1;\n"
	a := analyzeForTest(t, docText, "javascript")
	plan := a.Plan()
	require.NotEmpty(t, plan)

	_, err := ApplyDeletions("x;", plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDeletion)
}

func TestApplyDeletionsEmptyPlanIsIdentity(t *testing.T) {
	out, err := ApplyDeletions("unchanged\n", nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged\n", out)
}
