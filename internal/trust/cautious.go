package trust

import (
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// CautiousDirective is the instruction injected into generation requests when
// language enforcement is active and unverified high-stakes facts are present.
const CautiousDirective = "Some facts are unverified high-stakes claims and have been rephrased cautiously. " +
	"Do NOT state them definitively: keep the cautious phrasing, never claim publications, awards, degrees or " +
	"employers as established fact unless a verification link was provided."

// Conversion records one cautious rewrite for auditing
type Conversion struct {
	Original  string         `json:"original"`
	Converted string         `json:"converted"`
	Reason    string         `json:"reason"`
	Category  model.Category `json:"category"`
}

// PreprocessStats counts what preprocessing did
type PreprocessStats struct {
	TotalFacts      int `json:"total_facts"`
	HighStakesCount int `json:"high_stakes_count"`
	VerifiedCount   int `json:"verified_count"`
	UnverifiedCount int `json:"unverified_count"`
	ConvertedCount  int `json:"converted_count"`
}

// PreprocessResult is the outcome of preparing annotated facts for generation
type PreprocessResult struct {
	FactsForGeneration   []string        `json:"facts_for_generation"`
	OriginalFacts        []string        `json:"original_facts"`
	UnverifiedHighStakes []string        `json:"unverified_high_stakes"` // Fact identifiers attached as request metadata
	Conversions          []Conversion    `json:"conversion_log"`
	Stats                PreprocessStats `json:"stats"`
}

// PreprocessFacts prepares annotated facts for generation. With enforcement
// disabled every fact passes through unchanged. With enforcement enabled,
// unverified high-stakes facts are rewritten to cautious phrasing and logged;
// verified and normal facts pass through as-is. The input facts are not
// modified.
//
// The high-stakes classification is rederived from the fact text and category
// rather than read from the stored trust flag, so a stale or hand-edited flag
// in the facts file cannot bypass enforcement.
func PreprocessFacts(facts []model.AnnotatedFact, enforce bool) PreprocessResult {
	result := PreprocessResult{
		FactsForGeneration: make([]string, 0, len(facts)),
		OriginalFacts:      make([]string, 0, len(facts)),
		Stats:              PreprocessStats{TotalFacts: len(facts)},
	}

	for _, fact := range facts {
		result.OriginalFacts = append(result.OriginalFacts, fact.Text)

		if !enforce || !IsHighStakes(fact.Fact) {
			result.FactsForGeneration = append(result.FactsForGeneration, fact.Text)
			if IsHighStakes(fact.Fact) {
				result.Stats.HighStakesCount++
				if fact.VerificationStatus == model.StatusVerified {
					result.Stats.VerifiedCount++
				} else {
					result.Stats.UnverifiedCount++
				}
			}
			continue
		}

		result.Stats.HighStakesCount++

		if fact.VerificationStatus == model.StatusVerified {
			result.Stats.VerifiedCount++
			result.FactsForGeneration = append(result.FactsForGeneration, fact.Text)
			continue
		}

		result.Stats.UnverifiedCount++
		cautious := CautiousPhrasing(fact.Text, fact.Category)
		result.FactsForGeneration = append(result.FactsForGeneration, cautious)
		result.UnverifiedHighStakes = append(result.UnverifiedHighStakes, fact.Text)
		result.Conversions = append(result.Conversions, Conversion{
			Original:  fact.Text,
			Converted: cautious,
			Reason:    "unverified_high_stakes",
			Category:  fact.Category,
		})
		result.Stats.ConvertedCount++
	}

	return result
}

// CautiousPhrasing rewrites a high-stakes fact into hedged form, preserving
// the venue or degree where it can be identified.
//
// Examples:
//
//	"Published a research paper at NeurIPS 2025"
//	  -> "Has reported research work related to NeurIPS; verification link not provided."
//	"Won an ACM Best Paper Award in 2025"
//	  -> "Has reported an award claim; verification link not provided."
func CautiousPhrasing(text string, category model.Category) string {
	lower := strings.ToLower(text)

	// Publications and research
	if category == model.CategoryImpact || containsAny(lower, "published", "paper", "publication", "research") {
		for _, venue := range []string{"NeurIPS", "ICML", "CVPR", "ACL"} {
			if strings.Contains(lower, strings.ToLower(venue)) {
				return "Has reported research work related to " + venue + "; verification link not provided."
			}
		}
		return "Has reported research work; verification link not provided."
	}

	// Awards
	if category == model.CategoryAwards || containsAny(lower, "won", "award", "prize", "honor") {
		return "Has reported an award claim; verification link not provided."
	}

	// Education
	if category == model.CategoryEducation || containsAny(lower, "phd", "doctorate", "harvard", "mit", "stanford") {
		if containsAny(lower, "phd", "doctorate") {
			return "Has reported " + text + "; verification link not provided."
		}
		return "Has reported educational background; verification link not provided."
	}

	// Elite employers
	if category == model.CategoryExperience && containsAny(lower, "openai", "google", "meta", "microsoft", "apple", "amazon") {
		return "Has reported work experience; verification link not provided."
	}

	return "Has reported: " + text + "; verification link not provided."
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
