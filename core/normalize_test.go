package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeComment(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"slash single", "// Fetch the user", "fetch the user"},
		{"hash single", "## TODO later", "todo later"},
		{"c block", "/* body text */", "body text"},
		{"doc block with continuations", "/**\n * Returns the id.\n * @param x input\n */", "returns the id. @param x input"},
		{"html", "<!-- hidden note -->", "hidden note"},
		{"lua block", "--[[ multi\nline ]]", "multi line"},
		{"lua line", "-- dashes", "dashes"},
		{"ruby block", "=begin\nnotes here\n=end", "notes here"},
		{"python docstring", `"""Summary line."""`, "summary line."},
		{"whitespace collapse", "//   many\t\tspaces   ", "many spaces"},
		{"already plain", "plain words", "plain words"},
		{"empty", "//", ""},
		{"preprocessor loses hash", "// #ifdef DEBUG", "ifdef debug"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeComment(tc.raw))
		})
	}
}

func TestWordTokens(t *testing.T) {
	assert.Equal(t, []string{"fetch", "the", "user_id", "2"}, wordTokens("fetch the user_id 2"))
	assert.Empty(t, wordTokens("!!! ???"))
	assert.Equal(t, []string{"a", "b"}, wordTokens("a.b"))
}

func TestAlphaOnly(t *testing.T) {
	assert.Equal(t, "getuserbyid", alphaOnly("getUserById()"))
	assert.Equal(t, "getvalue", alphaOnly("get_value_2"))
	assert.Equal(t, "", alphaOnly("123 !?"))
}
