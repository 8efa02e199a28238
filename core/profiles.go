package core

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"commentsweep/logger"
	"commentsweep/models"
)

// ErrMalformedPattern is returned when a user-supplied profile pattern does
// not compile. The original pattern error is attached to the message.
var ErrMalformedPattern = errors.New("malformed comment pattern")

// Profile holds the compiled comment grammar for one language. Any of the
// three patterns may be nil; extraction runs whichever are present. Keywords
// are the lowercase reserved words used by the commented-code heuristic.
type Profile struct {
	ID         string
	Aliases    []string
	SingleLine *regexp.Regexp
	MultiLine  *regexp.Regexp
	DocBlock   *regexp.Regexp
	Keywords   map[string]bool
}

// ProfileSpec is the serializable form of a Profile, used for user-defined
// profiles loaded from a YAML file. Patterns are standard RE2 expressions and
// are matched against the whole document text.
type ProfileSpec struct {
	ID                string   `yaml:"id"`
	Aliases           []string `yaml:"aliases,omitempty"`
	SingleLinePattern string   `yaml:"single_line_pattern,omitempty"`
	MultiLinePattern  string   `yaml:"multi_line_pattern,omitempty"`
	DocBlockPattern   string   `yaml:"doc_block_pattern,omitempty"`
	Keywords          []string `yaml:"keywords,omitempty"`
}

func kw(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Shared compiled patterns. Most C-family languages use the same three.
var (
	reSlashSingle = regexp.MustCompile(`//[^\r\n]*`)
	reCMulti      = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reCDoc        = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	reHashSingle  = regexp.MustCompile(`#[^\r\n]*`)
	reDashSingle  = regexp.MustCompile(`--[^\r\n]*`)
	reTripleDoc   = regexp.MustCompile(`///[^\r\n]*|//![^\r\n]*`)
	reHTMLMulti   = regexp.MustCompile(`(?s)<!--.*?-->`)
	reTripleQuote = regexp.MustCompile(`(?s)""".*?"""|'''.*?'''`)
	reRubyMulti   = regexp.MustCompile(`(?ms)^=begin.*?^=end[^\r\n]*`)
	reLuaMulti    = regexp.MustCompile(`(?s)--\[\[.*?\]\]`)
)

var profiles = map[string]*Profile{
	"javascript": {
		ID: "javascript", Aliases: []string{"js", "jsx", "javascriptreact", "node", "mjs"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("function", "return", "var", "let", "const", "if", "else", "for", "while", "switch", "case", "new", "this", "typeof", "class", "import", "export", "async", "await", "null", "undefined", "true", "false"),
	},
	"typescript": {
		ID: "typescript", Aliases: []string{"ts", "tsx", "typescriptreact"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("function", "return", "var", "let", "const", "if", "else", "for", "while", "switch", "case", "new", "this", "typeof", "class", "interface", "type", "enum", "import", "export", "async", "await", "null", "undefined", "true", "false"),
	},
	"python": {
		ID: "python", Aliases: []string{"py", "python3"},
		SingleLine: reHashSingle, DocBlock: reTripleQuote,
		Keywords: kw("def", "return", "if", "elif", "else", "for", "while", "import", "from", "class", "try", "except", "raise", "with", "lambda", "pass", "self", "none", "true", "false", "print"),
	},
	"java": {
		ID: "java", Aliases: nil,
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("public", "private", "protected", "static", "final", "void", "class", "interface", "extends", "implements", "return", "if", "else", "for", "while", "new", "this", "import", "package", "try", "catch", "throws", "null", "true", "false"),
	},
	"c": {
		ID: "c", Aliases: []string{"objective-c", "objectivec"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("int", "char", "void", "return", "if", "else", "for", "while", "switch", "case", "struct", "typedef", "static", "const", "sizeof", "break", "continue", "printf", "null"),
	},
	"cpp": {
		ID: "cpp", Aliases: []string{"c++", "cplusplus"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("int", "char", "void", "return", "if", "else", "for", "while", "switch", "case", "class", "struct", "template", "namespace", "using", "new", "delete", "const", "auto", "nullptr", "public", "private", "virtual"),
	},
	"csharp": {
		ID: "csharp", Aliases: []string{"cs", "c#"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reTripleDoc,
		Keywords: kw("public", "private", "protected", "static", "void", "class", "interface", "namespace", "using", "return", "if", "else", "for", "foreach", "while", "new", "this", "var", "string", "int", "bool", "null", "true", "false"),
	},
	"go": {
		ID: "go", Aliases: []string{"golang"},
		SingleLine: reSlashSingle, MultiLine: reCMulti,
		Keywords: kw("func", "return", "if", "else", "for", "range", "switch", "case", "type", "struct", "interface", "map", "chan", "go", "defer", "package", "import", "var", "const", "nil", "true", "false", "err"),
	},
	"rust": {
		ID: "rust", Aliases: []string{"rs"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reTripleDoc,
		Keywords: kw("fn", "let", "mut", "return", "if", "else", "for", "while", "loop", "match", "struct", "enum", "impl", "trait", "use", "mod", "pub", "self", "some", "none", "ok", "err", "true", "false"),
	},
	"ruby": {
		ID: "ruby", Aliases: []string{"rb"},
		SingleLine: reHashSingle, MultiLine: reRubyMulti,
		Keywords: kw("def", "end", "return", "if", "elsif", "else", "unless", "while", "until", "do", "class", "module", "require", "attr_accessor", "self", "nil", "true", "false", "puts"),
	},
	"php": {
		ID: "php", Aliases: nil,
		SingleLine: regexp.MustCompile(`//[^\r\n]*|#[^\r\n]*`), MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("function", "return", "if", "else", "elseif", "foreach", "for", "while", "class", "public", "private", "protected", "static", "echo", "new", "use", "namespace", "null", "true", "false", "array"),
	},
	"swift": {
		ID: "swift", Aliases: nil,
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reTripleDoc,
		Keywords: kw("func", "let", "var", "return", "if", "else", "for", "while", "switch", "case", "class", "struct", "enum", "protocol", "extension", "guard", "import", "self", "nil", "true", "false"),
	},
	"kotlin": {
		ID: "kotlin", Aliases: []string{"kt", "kts"},
		SingleLine: reSlashSingle, MultiLine: reCMulti, DocBlock: reCDoc,
		Keywords: kw("fun", "val", "var", "return", "if", "else", "for", "while", "when", "class", "object", "interface", "data", "import", "package", "this", "null", "true", "false"),
	},
	"html": {
		ID: "html", Aliases: []string{"htm", "xml", "vue", "svg"},
		MultiLine: reHTMLMulti,
		Keywords:  kw("div", "span", "class", "href", "src", "script", "style"),
	},
	"css": {
		ID: "css", Aliases: nil,
		MultiLine: reCMulti,
		Keywords:  kw("color", "background", "margin", "padding", "display", "position", "width", "height", "font"),
	},
	"scss": {
		ID: "scss", Aliases: []string{"sass", "less"},
		SingleLine: reSlashSingle, MultiLine: reCMulti,
		Keywords: kw("color", "background", "margin", "padding", "display", "mixin", "include", "extend", "import"),
	},
	"shellscript": {
		ID: "shellscript", Aliases: []string{"sh", "bash", "shell", "zsh"},
		SingleLine: reHashSingle,
		Keywords:   kw("echo", "export", "function", "then", "else", "elif", "done", "esac", "local", "exit", "return", "source"),
	},
	"sql": {
		ID: "sql", Aliases: nil,
		SingleLine: reDashSingle, MultiLine: reCMulti,
		Keywords: kw("select", "from", "where", "insert", "update", "delete", "join", "table", "create", "alter", "drop", "values", "into", "order", "group", "having", "index"),
	},
	"lua": {
		ID: "lua", Aliases: nil,
		SingleLine: reDashSingle, MultiLine: reLuaMulti,
		Keywords: kw("function", "local", "end", "return", "if", "then", "else", "elseif", "for", "while", "do", "nil", "true", "false", "require"),
	},
	"yaml": {
		ID: "yaml", Aliases: []string{"yml"},
		SingleLine: reHashSingle,
		Keywords:   kw("name", "value", "true", "false", "null"),
	},
	"perl": {
		ID: "perl", Aliases: []string{"pl"},
		SingleLine: reHashSingle,
		Keywords:   kw("sub", "my", "return", "if", "elsif", "else", "unless", "foreach", "while", "use", "print", "defined", "undef"),
	},
}

var aliasIndex = map[string]string{}

func init() {
	for id, p := range profiles {
		for _, alias := range p.Aliases {
			aliasIndex[alias] = id
		}
	}
}

// ProfileFor resolves a language identifier or registered alias to its
// profile. Matching is case-insensitive.
func ProfileFor(languageID string) (*Profile, bool) {
	id := strings.ToLower(strings.TrimSpace(languageID))
	if p, ok := profiles[id]; ok {
		return p, true
	}
	if base, ok := aliasIndex[id]; ok {
		return profiles[base], true
	}
	return nil, false
}

// SupportedLanguages returns all registered language identifiers, sorted.
// Aliases are not included.
func SupportedLanguages() []string {
	ids := make([]string, 0, len(profiles))
	for id := range profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LanguageInfos returns API-facing descriptors for all registered profiles,
// sorted by identifier.
func LanguageInfos() []models.LanguageInfo {
	infos := make([]models.LanguageInfo, 0, len(profiles))
	for _, id := range SupportedLanguages() {
		p := profiles[id]
		aliases := append([]string(nil), p.Aliases...)
		sort.Strings(aliases)
		infos = append(infos, models.LanguageInfo{
			ID:           p.ID,
			Aliases:      aliases,
			HasDocBlock:  p.DocBlock != nil,
			HasMulti:     p.MultiLine != nil,
			KeywordCount: len(p.Keywords),
		})
	}
	return infos
}

// RegisterProfile compiles a ProfileSpec and adds it to the registry,
// replacing any existing profile with the same ID. Intended for user-defined
// profiles loaded at startup; the registry is not safe for concurrent
// mutation afterwards.
func RegisterProfile(spec ProfileSpec) error {
	id := strings.ToLower(strings.TrimSpace(spec.ID))
	if id == "" {
		return fmt.Errorf("profile id is required")
	}
	compile := func(expr, name string) (*regexp.Regexp, error) {
		if expr == "" {
			return nil, nil
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s for profile %s: %v", ErrMalformedPattern, name, id, err)
		}
		return re, nil
	}
	single, err := compile(spec.SingleLinePattern, "single_line_pattern")
	if err != nil {
		return err
	}
	multi, err := compile(spec.MultiLinePattern, "multi_line_pattern")
	if err != nil {
		return err
	}
	doc, err := compile(spec.DocBlockPattern, "doc_block_pattern")
	if err != nil {
		return err
	}
	if single == nil && multi == nil && doc == nil {
		return fmt.Errorf("%w: profile %s defines no patterns", ErrMalformedPattern, id)
	}

	keywords := make(map[string]bool, len(spec.Keywords))
	for _, k := range spec.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords[k] = true
		}
	}

	profiles[id] = &Profile{
		ID:         id,
		Aliases:    spec.Aliases,
		SingleLine: single,
		MultiLine:  multi,
		DocBlock:   doc,
		Keywords:   keywords,
	}
	for _, alias := range spec.Aliases {
		aliasIndex[strings.ToLower(strings.TrimSpace(alias))] = id
	}
	logger.Info("Registered language profile: %s (aliases: %v)", id, spec.Aliases)
	return nil
}

// LoadProfilesFile reads user-defined profiles from a YAML file and registers
// each of them. A missing file is not an error; a malformed file or pattern is.
func LoadProfilesFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}

	var specs []ProfileSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return 0, fmt.Errorf("failed to parse profiles file %s: %w", path, err)
	}

	for _, spec := range specs {
		if err := RegisterProfile(spec); err != nil {
			return 0, fmt.Errorf("profiles file %s: %w", path, err)
		}
	}
	logger.Info("Loaded %d language profile(s) from %s", len(specs), path)
	return len(specs), nil
}
