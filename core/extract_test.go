package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commentsweep/models"
)

func TestExtractSingleLineRuns(t *testing.T) {
	docText := "// one\n// two\ncode();\n"
	doc := NewDocument(docText, "javascript")
	comments := ExtractComments(doc, mustProfile(t, "javascript"))

	require.Len(t, comments, 2, "consecutive single-line comments are separate spans")
	assert.Equal(t, "// one", comments[0].RawText)
	assert.Equal(t, "// two", comments[1].RawText)
	assert.Equal(t, 0, comments[0].LineNumber)
	assert.Equal(t, 1, comments[1].LineNumber)
	assert.False(t, comments[0].IsInline)
}

func TestExtractMultiLineSpan(t *testing.T) {
	docText := "a();\n/* explain\n   more */\nb();\n"
	doc := NewDocument(docText, "javascript")
	comments := ExtractComments(doc, mustProfile(t, "javascript"))

	require.Len(t, comments, 1)
	c := comments[0]
	assert.Equal(t, models.CommentKindMultiLine, c.Kind)
	assert.Equal(t, strings.Index(docText, "/*"), c.StartOffset)
	assert.Equal(t, strings.Index(docText, "*/")+2, c.EndOffset)
	assert.Equal(t, 1, c.LineNumber)
	assert.Equal(t, docText[c.StartOffset:c.EndOffset], c.RawText)
}

func TestExtractInlineComment(t *testing.T) {
	docText := "x = 1; // trailing\ny = 2;\n"
	doc := NewDocument(docText, "javascript")
	comments := ExtractComments(doc, mustProfile(t, "javascript"))

	require.Len(t, comments, 1)
	assert.True(t, comments[0].IsInline)
	assert.Equal(t, "// trailing", comments[0].RawText)
	assert.Equal(t, "x = 1; // trailing", comments[0].Context.CurrentLineText)
	assert.Equal(t, "y = 2;", comments[0].Context.NextLineText)
}

func TestExtractPythonDocstring(t *testing.T) {
	docText := "'''module docstring'''\nimport os\n"
	doc := NewDocument(docText, "python")
	comments := ExtractComments(doc, mustProfile(t, "python"))

	require.Len(t, comments, 1)
	assert.Equal(t, models.CommentKindDocBlock, comments[0].Kind)
}

func TestExtractRustDocLineNotDoubleReported(t *testing.T) {
	docText := "/// documents the thing\nfn thing() {}\n"
	doc := NewDocument(docText, "rust")
	comments := ExtractComments(doc, mustProfile(t, "rust"))

	// The single-line pattern also matches the doc line on the exact same
	// span; extraction reports it once, as doc-block.
	require.Len(t, comments, 1)
	assert.Equal(t, models.CommentKindDocBlock, comments[0].Kind)
}

func TestExtractOverlappingPatternsBothReported(t *testing.T) {
	// Lua: the single-line pattern runs past the block closer, producing a
	// different span over the same region. Both are reported; overlap
	// resolution is deliberately not attempted.
	docText := "--[[ x ]] return 1\n"
	doc := NewDocument(docText, "lua")
	comments := ExtractComments(doc, mustProfile(t, "lua"))

	require.Len(t, comments, 2)
	assert.Equal(t, models.CommentKindMultiLine, comments[0].Kind)
	assert.Equal(t, "--[[ x ]]", comments[0].RawText)
	assert.Equal(t, models.CommentKindSingleLine, comments[1].Kind)
	assert.Equal(t, "--[[ x ]] return 1", comments[1].RawText)
}

func TestExtractCRLFExcludesCarriageReturn(t *testing.T) {
	docText := "// a\r\nb = 1\r\n"
	doc := NewDocument(docText, "javascript")
	comments := ExtractComments(doc, mustProfile(t, "javascript"))

	require.Len(t, comments, 1)
	assert.Equal(t, "// a", comments[0].RawText)
	assert.Equal(t, "b = 1", comments[0].Context.NextLineText)
}

func TestBuildContextSkipsBlankLines(t *testing.T) {
	docText := "before();\n// lead\n\n\ncode();\n"
	doc := NewDocument(docText, "javascript")
	ctx := BuildContext(doc, 1)

	assert.Equal(t, "before();", ctx.PreviousLineText)
	assert.Equal(t, "// lead", ctx.CurrentLineText)
	assert.Equal(t, "", ctx.NextLineText)
	assert.Equal(t, "code();", ctx.NextNonEmptyLineText)
	assert.Equal(t, 0, ctx.IndentLevel)
}

func TestBuildContextIndentAndDocumentEnd(t *testing.T) {
	docText := "fn():\n    # tail comment"
	doc := NewDocument(docText, "python")
	ctx := BuildContext(doc, 1)

	assert.Equal(t, 4, ctx.IndentLevel)
	assert.Equal(t, "", ctx.NextLineText)
	assert.Equal(t, "", ctx.NextNonEmptyLineText, "no following line at end of document")
}

func TestExtractNoCommentsIsEmptyResult(t *testing.T) {
	doc := NewDocument("x = 1\ny = 2\n", "python")
	comments := ExtractComments(doc, mustProfile(t, "python"))
	assert.Empty(t, comments)
}
