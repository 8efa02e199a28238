package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileForResolution(t *testing.T) {
	cases := []struct {
		input  string
		wantID string
	}{
		{"go", "go"},
		{"golang", "go"},
		{"TypeScript", "typescript"},
		{"TSX", "typescript"},
		{" py ", "python"},
		{"C++", "cpp"},
		{"objective-c", "c"},
	}
	for _, tc := range cases {
		p, ok := ProfileFor(tc.input)
		require.True(t, ok, "expected %q to resolve", tc.input)
		assert.Equal(t, tc.wantID, p.ID, "input %q", tc.input)
	}

	_, ok := ProfileFor("brainfuck")
	assert.False(t, ok)
	_, ok = ProfileFor("")
	assert.False(t, ok)
}

func TestSupportedLanguagesSorted(t *testing.T) {
	langs := SupportedLanguages()
	require.NotEmpty(t, langs)
	assert.IsIncreasing(t, langs)
	assert.Contains(t, langs, "go")
	assert.Contains(t, langs, "python")
	assert.Contains(t, langs, "javascript")
	assert.NotContains(t, langs, "golang", "aliases are not listed")
}

func TestLanguageInfos(t *testing.T) {
	infos := LanguageInfos()
	byID := make(map[string]int, len(infos))
	for i, info := range infos {
		byID[info.ID] = i
	}

	require.Contains(t, byID, "go")
	goInfo := infos[byID["go"]]
	assert.True(t, goInfo.HasMulti)
	assert.False(t, goInfo.HasDocBlock)
	assert.Contains(t, goInfo.Aliases, "golang")
	assert.Positive(t, goInfo.KeywordCount)

	require.Contains(t, byID, "python")
	pyInfo := infos[byID["python"]]
	assert.False(t, pyInfo.HasMulti)
	assert.True(t, pyInfo.HasDocBlock)
}

func TestRegisterProfile(t *testing.T) {
	err := RegisterProfile(ProfileSpec{
		ID:                "ini",
		Aliases:           []string{"cfg", "CONF"},
		SingleLinePattern: `;[^\r\n]*`,
		Keywords:          []string{"Section", "key", ""},
	})
	require.NoError(t, err)

	p, ok := ProfileFor("CFG")
	require.True(t, ok)
	assert.Equal(t, "ini", p.ID)
	assert.Equal(t, "; note", p.SingleLine.FindString("key=1 ; note\n"))
	assert.True(t, p.Keywords["section"], "keywords lowercased")
	assert.False(t, p.Keywords[""], "blank keywords dropped")
}

func TestRegisterProfileMalformedPattern(t *testing.T) {
	err := RegisterProfile(ProfileSpec{ID: "broken", SingleLinePattern: `[unclosed`})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)

	_, ok := ProfileFor("broken")
	assert.False(t, ok, "failed registration must not leave a partial profile")
}

func TestRegisterProfileRequiresPatterns(t *testing.T) {
	err := RegisterProfile(ProfileSpec{ID: "patternless", Keywords: []string{"word"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}

func TestRegisterProfileRequiresID(t *testing.T) {
	err := RegisterProfile(ProfileSpec{SingleLinePattern: `//[^\r\n]*`})
	assert.Error(t, err)
}

func TestLoadProfilesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profiles.yaml")
	content := `- id: haskell
  aliases: [hs]
  single_line_pattern: '--[^\r\n]*'
  multi_line_pattern: '(?s)\{-.*?-\}'
- id: vim
  single_line_pattern: '"[^\r\n]*'
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	n, err := LoadProfilesFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p, ok := ProfileFor("hs")
	require.True(t, ok)
	assert.Equal(t, "haskell", p.ID)
	assert.NotNil(t, p.MultiLine)
	assert.Nil(t, p.DocBlock)

	_, ok = ProfileFor("vim")
	assert.True(t, ok)
}

func TestLoadProfilesFileMissingIsNotError(t *testing.T) {
	n, err := LoadProfilesFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLoadProfilesFileMalformed(t *testing.T) {
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badYAML, []byte("{not a list"), 0644))
	_, err := LoadProfilesFile(badYAML)
	assert.Error(t, err)

	badPattern := filepath.Join(dir, "badpattern.yaml")
	require.NoError(t, os.WriteFile(badPattern, []byte("- id: oops\n  single_line_pattern: '['\n"), 0644))
	_, err = LoadProfilesFile(badPattern)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedPattern)
}
