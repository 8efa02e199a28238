package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"commentsweep/models"
)

func ctxWithNext(next string) models.CommentContext {
	return models.CommentContext{NextNonEmptyLineText: next}
}

func TestRedundancyScoreBounds(t *testing.T) {
	cases := []struct {
		norm string
		next string
	}{
		{"", ""},
		{"x", "anything()"},
		{"get value", "value = getValue()"},
		{"fetch the user data", "fetchUserData()"},
		{"completely unrelated words", "transmogrify(7)"},
		{"get value get value get value", "getValue()"},
	}
	for _, tc := range cases {
		score := RedundancyScore(tc.norm, ctxWithNext(tc.next))
		assert.GreaterOrEqual(t, score, 0.0, "norm=%q", tc.norm)
		assert.LessOrEqual(t, score, 0.95, "norm=%q", tc.norm)
	}
}

func TestRedundancyScoreZeroCases(t *testing.T) {
	assert.Zero(t, RedundancyScore("ab", ctxWithNext("ab = 1")), "comment shorter than 3 chars")
	assert.Zero(t, RedundancyScore("meaningful comment", ctxWithNext("")), "no following code line")
	assert.Zero(t, RedundancyScore("meaningful comment", ctxWithNext("   ")), "whitespace-only following line")
	assert.Zero(t, RedundancyScore("a b c", ctxWithNext("x = 1")), "no comment tokens longer than 2 chars")
}

func TestRedundancyScoreExactRestatementCapped(t *testing.T) {
	// Every token matches exactly; the raw mean of 1.0 must cap at 0.95.
	score := RedundancyScore("parse config", ctxWithNext("parse config"))
	assert.InDelta(t, 0.95, score, 1e-9)
}

func TestRedundancyScoreSubstringWeight(t *testing.T) {
	// "fetch" and "user" and "data" are substrings of fetchUserData; "the"
	// contributes nothing. (0.7*3 + 0)/4.
	score := RedundancyScore("fetch the user data", ctxWithNext("fetchUserData()"))
	assert.InDelta(t, 0.525, score, 1e-6)
}

func TestRedundancyScoreSynonymWeight(t *testing.T) {
	// "delete" maps to "remove" via the synonym table (0.5); "entry" matches
	// exactly (1.0). Mean is 0.75.
	score := RedundancyScore("delete entry", ctxWithNext("remove_entry(key)"))
	assert.InDelta(t, 0.75, score, 1e-9)
}

func TestRedundancyScoreUnrelated(t *testing.T) {
	score := RedundancyScore("old version", ctxWithNext("x = get_value()"))
	assert.Zero(t, score)
}
