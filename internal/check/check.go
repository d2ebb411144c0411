// Package check runs deterministic validation rules against generated
// outreach messages. Every check is a total, pure function: the same message
// and prompt spec always produce the same result, and no check ever errors
// on well-formed input. Failures are recorded as booleans plus a free-text
// note naming the rule that failed.
//
// Word counting is plain whitespace tokenization (strings.Fields); there is
// no locale-aware segmentation. Fabrication detection is the fixed lexical
// heuristic documented on DetectFabrication, not entailment.
package check

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Result holds the outcome of all checks for one message
type Result struct {
	WithinWordLimit bool     `json:"within_word_limit"`
	MustIncludeOK   bool     `json:"must_include_ok"`
	ToneOK          bool     `json:"tone_ok"`
	AddsNewFacts    bool     `json:"adds_new_facts"`
	OverallPass     bool     `json:"overall_pass"`
	FailureReasons  []string `json:"failure_reasons,omitempty"`
	Notes           string   `json:"notes"`
}

// Run applies all checks to one (spec, message) pair and combines them.
// overall_pass = word limit AND must-include AND tone AND no new facts.
func Run(spec model.PromptSpec, message string) Result {
	wordLimitOK := WithinWordLimit(message, spec.MaxWords)
	includeOK, missing := MustIncludeAll(message, spec.MustInclude)
	toneOK, toneIssues := ToneProfessional(message)
	addsNew, fabrications := DetectFabrication(message, spec.AllowedFacts, spec.Company)

	result := Result{
		WithinWordLimit: wordLimitOK,
		MustIncludeOK:   includeOK,
		ToneOK:          toneOK,
		AddsNewFacts:    addsNew,
		OverallPass:     wordLimitOK && includeOK && toneOK && !addsNew,
	}

	if !wordLimitOK {
		result.FailureReasons = append(result.FailureReasons,
			fmt.Sprintf("Word limit exceeded: %d > %d", len(strings.Fields(message)), spec.MaxWords))
	}
	for _, item := range missing {
		result.FailureReasons = append(result.FailureReasons, "Missing: "+item)
	}
	result.FailureReasons = append(result.FailureReasons, toneIssues...)
	result.FailureReasons = append(result.FailureReasons, fabrications...)

	if len(result.FailureReasons) > 0 {
		result.Notes = strings.Join(result.FailureReasons, "; ")
	} else {
		result.Notes = "All checks passed"
	}

	return result
}

// WithinWordLimit reports whether the message stays within maxWords tokens.
// Tokens are whitespace-separated fields; an empty message fails.
func WithinWordLimit(text string, maxWords int) bool {
	if text == "" {
		return false
	}
	return len(strings.Fields(text)) <= maxWords
}

// MustIncludeAll reports whether every required item appears in the message
// as a case-insensitive substring, order irrelevant. An empty requirement
// list trivially passes. The second return lists the missing items.
func MustIncludeAll(text string, mustInclude []string) (bool, []string) {
	if len(mustInclude) == 0 {
		return true, nil
	}
	if text == "" {
		return false, append([]string(nil), mustInclude...)
	}

	lower := strings.ToLower(text)
	var missing []string
	for _, item := range mustInclude {
		if !strings.Contains(lower, strings.ToLower(item)) {
			missing = append(missing, item)
		}
	}
	return len(missing) == 0, missing
}

const maxExclamations = 2

var (
	emojiPattern    = regexp.MustCompile(`[\x{1F300}-\x{1FAFF}]|[\x{2600}-\x{27BF}]`)
	slangPattern    = regexp.MustCompile(`\b(yo|bro|asap|pls|plz|thx|lol|omg|tbh|imo|btw|idk|gonna|wanna|gotta|lemme|dunno)\b`)
	shoutingPattern = regexp.MustCompile(`[A-Z]{4,}`)
)

// ToneProfessional checks the tone heuristic: the message must be non-empty,
// free of emoji and banned casual tokens (word-boundary match), use at most
// two exclamation marks, and contain no run of four or more capitals.
func ToneProfessional(text string) (bool, []string) {
	if text == "" {
		return false, []string{"Empty message"}
	}

	var issues []string
	lower := strings.ToLower(text)

	if emojiPattern.MatchString(text) {
		issues = append(issues, "Contains emojis")
	}

	if m := slangPattern.FindStringSubmatch(lower); m != nil {
		issues = append(issues, fmt.Sprintf("Slang detected: %s", m[1]))
	}

	if n := strings.Count(text, "!"); n > maxExclamations {
		issues = append(issues, fmt.Sprintf("Too many exclamation marks (%d)", n))
	}

	if shoutingPattern.MatchString(text) {
		issues = append(issues, "Contains excessive capitalization")
	}

	return len(issues) == 0, issues
}

var (
	phdPattern        = regexp.MustCompile(`\b(ph\.?d\.?|doctorate)\b`)
	mbaPattern        = regexp.MustCompile(`\b(m\.?b\.?a\.?)\b`)
	bachelorPattern   = regexp.MustCompile(`\b(b\.?a\.?|bachelors?)\b`)
	yearPattern       = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	graduationPattern = regexp.MustCompile(`\b(recent graduate|graduated|alumni)\b`)
	percentPattern    = regexp.MustCompile(`\d+%`)
	numberPattern     = regexp.MustCompile(`\b\d[\d,]*(?:\.\d+)?\b`)

	employmentPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:worked at|worked for)\s+([a-z][a-z\s&]+?)(?:\s|,|\.|$)`),
		regexp.MustCompile(`\b(?:previously at|previously with)\s+([a-z][a-z\s&]+?)(?:\s|,|\.|$)`),
		regexp.MustCompile(`\b(?:interned at|interned with)\s+([a-z][a-z\s&]+?)(?:\s|,|\.|$)`),
		regexp.MustCompile(`\b(?:employed at|employed by)\s+([a-z][a-z\s&]+?)(?:\s|,|\.|$)`),
	}

	publicationIndicators = []string{"published", "publication", "paper", "award", "prize", "honor"}
)

// DetectFabrication flags substantive claims in the message that cannot be
// traced to the allowed-fact set. The algorithm is a fixed lexical heuristic,
// applied to the case-folded message, with each rule family reporting at most
// one reason:
//
//  1. degree tokens (PhD/doctorate, MBA, BA/bachelor) with no allowed fact
//     containing the same token;
//  2. four-digit years 1900-2099 absent from every allowed fact;
//  3. graduation-status words when no allowed fact mentions graduation;
//  4. employer phrases ("worked at X", "interned with X", ...) naming a
//     company other than the target company and absent from allowed facts;
//  5. publication/award indicator words absent from allowed facts;
//  6. percent metrics absent from allowed facts;
//  7. bare numbers (digit runs that are neither years nor percent metrics)
//     absent from every allowed fact, so "a team of 50 engineers" is flagged
//     unless some allowed fact carries the 50.
//
// Traceability is case-insensitive substring containment. This is heuristic,
// not entailment, and deliberately so: downstream metrics depend on the
// result being reproducible for a fixed message.
func DetectFabrication(text string, allowedFacts []string, targetCompany string) (bool, []string) {
	if text == "" || len(allowedFacts) == 0 {
		return false, nil
	}

	lower := strings.ToLower(text)
	allowedLower := make([]string, len(allowedFacts))
	for i, f := range allowedFacts {
		allowedLower[i] = strings.ToLower(f)
	}

	var fabrications []string

	// 1. Degrees
	degreeRules := []struct {
		pattern *regexp.Regexp
		tokens  []string
		label   string
	}{
		{phdPattern, []string{"phd", "doctorate"}, "PhD"},
		{mbaPattern, []string{"mba"}, "MBA"},
		{bachelorPattern, []string{"ba", "bachelor"}, "BA"},
	}
	for _, rule := range degreeRules {
		if rule.pattern.MatchString(lower) && !anyFactContainsAny(allowedLower, rule.tokens) {
			fabrications = append(fabrications, "Fabricated degree: "+rule.label)
			break
		}
	}

	// 2. Years
	for _, year := range yearPattern.FindAllString(text, -1) {
		if !anyFactContains(allowedLower, year) {
			fabrications = append(fabrications, "Year not in allowed facts: "+year)
			break
		}
	}

	// 3. Graduation status
	if graduationPattern.MatchString(lower) && !anyFactContainsAny(allowedLower, []string{"graduate", "grad", "expected"}) {
		fabrications = append(fabrications, "Claims graduation status not in allowed facts")
	}

	// 4. Employers
	target := strings.ToLower(targetCompany)
	for _, pattern := range employmentPatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		company := strings.TrimSpace(match[1])
		if len(company) < 3 || company == target {
			continue
		}
		if !anyFactContains(allowedLower, company) {
			fabrications = append(fabrications, "New employer not in allowed facts: "+company)
			break
		}
	}

	// 5. Publications and awards
	for _, indicator := range publicationIndicators {
		if strings.Contains(lower, indicator) && !anyFactContains(allowedLower, indicator) {
			fabrications = append(fabrications, "Claims "+indicator+" not in allowed facts")
			break
		}
	}

	// 6. Percent metrics
	for _, pct := range percentPattern.FindAllString(text, -1) {
		if !anyFactContains(allowedLower, pct) {
			fabrications = append(fabrications, "Metric not in allowed facts: "+pct)
			break
		}
	}

	// 7. Bare numbers. Years and percents already have their own families.
	for _, loc := range numberPattern.FindAllStringIndex(text, -1) {
		num := text[loc[0]:loc[1]]
		if yearPattern.MatchString(num) {
			continue
		}
		if loc[1] < len(text) && text[loc[1]] == '%' {
			continue
		}
		if !anyFactContains(allowedLower, num) {
			fabrications = append(fabrications, "Number not in allowed facts: "+num)
			break
		}
	}

	return len(fabrications) > 0, fabrications
}

func anyFactContains(facts []string, token string) bool {
	token = strings.ToLower(token)
	for _, f := range facts {
		if strings.Contains(f, token) {
			return true
		}
	}
	return false
}

func anyFactContainsAny(facts []string, tokens []string) bool {
	for _, t := range tokens {
		if anyFactContains(facts, t) {
			return true
		}
	}
	return false
}
