// Package trust implements the high-stakes claim classification and
// annotation layer. It is additive: facts are never mutated, annotation
// produces derived records, and enforcement only changes what is asked of
// the generation collaborator.
package trust

import (
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// highStakesCategories are categories whose facts always require verification
var highStakesCategories = map[model.Category]bool{
	model.CategoryImpact:    true,
	model.CategoryAwards:    true,
	model.CategoryEducation: true,
}

// highStakesKeywords flag facts whose text names entities that carry
// reputational risk if the claim is false, grouped by kind.
var highStakesKeywords = []string{
	// Conference names
	"neurips", "icml", "cvpr", "acl", "emnlp", "nips",
	// Company names
	"openai", "google", "meta", "amazon", "microsoft", "apple",
	// University names
	"harvard", "mit", "stanford",
	// Credential tokens
	"phd",
	// Organization acronyms
	"ieee", "acm", "nasa",
}

// IsHighStakes reports whether a fact requires verification before it may be
// stated definitively. True iff the category is in the high-stakes set or the
// case-folded text contains a high-stakes keyword. Pure and deterministic:
// the result depends only on the fact's category and text.
func IsHighStakes(fact model.Fact) bool {
	if highStakesCategories[fact.Category] {
		return true
	}

	if fact.Text == "" {
		return false
	}

	lower := strings.ToLower(fact.Text)
	for _, keyword := range highStakesKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}
