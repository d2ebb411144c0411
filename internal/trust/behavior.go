package trust

import (
	"regexp"
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Behavior tracking inspects how a generated message treated high-stakes
// facts: softened (hedged), suppressed (dropped entirely), or violating
// (stated definitively despite being unverified). All rules are lexical and
// deterministic for a fixed message.

var (
	strongClaimPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(published|won|awarded|received|accepted|presented)\b`),
		regexp.MustCompile(`\b(phd|doctorate)\s+(from|at|in)\b`),
		regexp.MustCompile(`\b(graduated|studied)\s+(from|at)\s+(harvard|mit|stanford)`),
	}

	softeningPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(reported|have reported|has reported)\b`),
		regexp.MustCompile(`\b(pursued|related to|experience related to|work related to)\b`),
		regexp.MustCompile(`\b(according to|as noted in|as mentioned in)\b`),
		regexp.MustCompile(`\b(verification link not provided|verification not included)\b`),
	}

	definitePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(published|i published|my paper|accepted at|presented at)\b`),
		regexp.MustCompile(`\b(won|i won|received|awarded|prize|honor)\b`),
		regexp.MustCompile(`\b(phd|doctorate)\s+(from|at|in)\b`),
	}

	wordPattern = regexp.MustCompile(`\b\w{4,}\b`)
)

var behaviorStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "at": true, "in": true, "on": true,
	"for": true, "to": true, "of": true, "and": true, "or": true, "but": true,
}

// BehaviorReport summarizes enforcement behavior for one message
type BehaviorReport struct {
	HighStakesDetected int `json:"total_high_stakes_facts_detected"`
	UnverifiedCount    int `json:"total_high_stakes_unverified"`
	SoftenedCount      int `json:"softened_claims_count"`
	SuppressedCount    int `json:"suppressed_claims_count"`
	ViolationCount     int `json:"enforcement_violations_count"`
}

// AnalyzeBehavior inspects a generated message against the high-stakes facts
// that fed its generation. With enforcement disabled the report is empty.
func AnalyzeBehavior(message string, facts []model.AnnotatedFact, pre PreprocessResult, enforce bool) BehaviorReport {
	if !enforce {
		return BehaviorReport{}
	}

	report := BehaviorReport{
		UnverifiedCount: len(pre.Conversions),
	}

	for _, fact := range facts {
		// Rederived, same as PreprocessFacts: stored flags may be stale.
		if !IsHighStakes(fact.Fact) {
			continue
		}
		report.HighStakesDetected++

		if SoftenedClaim(message, fact.Text) {
			report.SoftenedCount++
		}
		if SuppressedClaim(message, fact.Text) {
			report.SuppressedCount++
		}
		if EnforcementViolation(message, fact.Text, pre.Conversions) {
			report.ViolationCount++
		}
	}

	return report
}

// SoftenedClaim reports whether a strong high-stakes claim appears in the
// message with hedging language around it.
func SoftenedClaim(message, originalFact string) bool {
	originalLower := strings.ToLower(originalFact)

	strong := false
	for _, p := range strongClaimPatterns {
		if p.MatchString(originalLower) {
			strong = true
			break
		}
	}
	if !strong {
		return false
	}

	if keywordOverlap(message, originalFact) <= 0.3 {
		return false
	}

	messageLower := strings.ToLower(message)
	for _, p := range softeningPatterns {
		if p.MatchString(messageLower) {
			return true
		}
	}
	return false
}

// SuppressedClaim reports whether an approved fact was effectively dropped
// from the message: fewer than 30% of its significant keywords appear.
func SuppressedClaim(message, originalFact string) bool {
	keywords := significantKeywords(originalFact)
	if len(keywords) == 0 {
		return false
	}

	messageWords := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(message), -1) {
		messageWords[w] = true
	}

	overlap := 0
	for kw := range keywords {
		if messageWords[kw] {
			overlap++
		}
	}
	return float64(overlap)/float64(len(keywords)) < 0.3
}

// EnforcementViolation reports whether an unverified (converted) high-stakes
// fact is stated definitively without softening.
func EnforcementViolation(message, originalFact string, conversions []Conversion) bool {
	converted := false
	for _, c := range conversions {
		if strings.EqualFold(c.Original, originalFact) {
			converted = true
			break
		}
	}
	if !converted {
		return false
	}

	if keywordOverlap(message, originalFact) <= 0.3 {
		return false
	}

	messageLower := strings.ToLower(message)
	definite := false
	for _, p := range definitePatterns {
		if p.MatchString(messageLower) {
			definite = true
			break
		}
	}

	return definite && !SoftenedClaim(message, originalFact)
}

// keywordOverlap returns the fraction of the fact's 4+ letter words that
// appear in the message.
func keywordOverlap(message, fact string) float64 {
	factWords := wordPattern.FindAllString(strings.ToLower(fact), -1)
	if len(factWords) == 0 {
		return 0
	}
	unique := make(map[string]bool, len(factWords))
	for _, w := range factWords {
		unique[w] = true
	}

	messageWords := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(message), -1) {
		messageWords[w] = true
	}

	overlap := 0
	for w := range unique {
		if messageWords[w] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(unique))
}

func significantKeywords(fact string) map[string]bool {
	keywords := make(map[string]bool)
	for _, w := range wordPattern.FindAllString(strings.ToLower(fact), -1) {
		if !behaviorStopWords[w] {
			keywords[w] = true
		}
	}
	return keywords
}
