package models

// Category is the label a classified comment ends up with. Exactly one
// category is assigned per comment.
type Category string

const (
	CategoryDocumentation Category = "documentation"
	CategoryCritical      Category = "critical"
	CategoryCommentedCode Category = "commented_code"
	CategoryRedundant     Category = "redundant"
	CategoryNoise         Category = "noise"
	CategoryOutdated      Category = "outdated"
	CategoryTrivial       Category = "trivial"
	CategoryEmpty         Category = "empty"
	CategoryDuplicate     Category = "duplicate"
	CategoryDebug         Category = "debug"
	CategoryRegular       Category = "regular"
)

// AllCategories lists every category in classification priority order.
var AllCategories = []Category{
	CategoryDocumentation,
	CategoryCritical,
	CategoryCommentedCode,
	CategoryRedundant,
	CategoryNoise,
	CategoryOutdated,
	CategoryTrivial,
	CategoryEmpty,
	CategoryDuplicate,
	CategoryDebug,
	CategoryRegular,
}

// IsValidCategory reports whether s names a known category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Classification is the outcome of running one comment through the rule chain.
type Classification struct {
	Category     Category `json:"category" example:"redundant"`
	ShouldRemove bool     `json:"should_remove" example:"true"`
	Confidence   float64  `json:"confidence" example:"0.8"` // In [0,1]; removal only acts on it when >= the configured threshold.
	Reasons      []string `json:"reasons" example:"matches commented-out code shape"`
}

// ClassifiedComment pairs a comment with its classification. The analyzer
// returns these in extraction order.
type ClassifiedComment struct {
	Comment        Comment        `json:"comment"`
	Classification Classification `json:"classification"`
}
