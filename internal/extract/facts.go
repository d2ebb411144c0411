// Package extract pulls candidate profile facts out of resume or LinkedIn
// text. Extraction is evidence-based: every fact carries the exact source
// quote it was taken from, and nothing is inferred beyond what can be
// quoted. Facts produced here are raw - trust annotation happens later in
// the trust package.
package extract

import (
	"regexp"
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
	"golang.org/x/net/html"
)

// FactExtractor extracts facts by pattern matching against profile text
type FactExtractor struct {
	rules []extractionRule
}

type extractionRule struct {
	pattern  *regexp.Regexp
	category model.Category
}

// NewFactExtractor creates a new fact extractor
func NewFactExtractor() *FactExtractor {
	return &FactExtractor{
		rules: []extractionRule{
			{
				pattern:  regexp.MustCompile(`(?i)(?:degree|bachelor|master|phd|doctorate|m\.?s\.?c?\.?|b\.?s\.?c?\.?)\s+[^,.\n]+`),
				category: model.CategoryEducation,
			},
			{
				pattern:  regexp.MustCompile(`(?i)(?:graduated|studied|attended)\s+[^,.\n]+`),
				category: model.CategoryEducation,
			},
			{
				pattern:  regexp.MustCompile(`(?i)(?:worked|employed|interned|served)\s+(?:at|for|with)\s+[^,.\n]+`),
				category: model.CategoryExperience,
			},
			{
				pattern:  regexp.MustCompile(`(?i)\d+\+?\s*(?:years?|months?)\s+(?:of\s+)?[^,.\n]+`),
				category: model.CategoryExperience,
			},
			{
				pattern:  regexp.MustCompile(`(?i)(?:published|presented)\s+[^,.\n]+`),
				category: model.CategoryImpact,
			},
			{
				pattern:  regexp.MustCompile(`(?i)(?:won|awarded|received)\s+[^,.\n]*(?:award|prize|honor)[^,.\n]*`),
				category: model.CategoryAwards,
			},
		},
	}
}

// Extract extracts facts from plain profile text. Each match becomes one
// fact with the matched text as both value and evidence quote.
func (e *FactExtractor) Extract(text string) []model.Fact {
	var facts []model.Fact
	seen := make(map[string]bool)

	for _, rule := range e.rules {
		for _, match := range rule.pattern.FindAllString(text, -1) {
			quote := strings.TrimSpace(match)
			key := strings.ToLower(quote)
			if quote == "" || seen[key] {
				continue
			}
			seen[key] = true

			facts = append(facts, model.Fact{
				Text:       quote,
				Category:   rule.category,
				Evidence:   quote,
				Confidence: 0.7,
			})
		}
	}

	return facts
}

// ExtractHTML extracts facts from an HTML profile export (e.g., a saved
// LinkedIn page) by stripping markup to visible text first.
func (e *FactExtractor) ExtractHTML(htmlContent string) ([]model.Fact, error) {
	text, err := VisibleText(htmlContent)
	if err != nil {
		return nil, err
	}
	return e.Extract(text), nil
}

// VisibleText extracts the visible text of an HTML document, skipping
// script, style and similar non-content subtrees.
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return buf.String(), nil
}

// FromForm builds facts from structured form input, one per field. Form
// fields are trusted verbatim, so confidence is 1.
func FromForm(education, experience, skills string) []model.Fact {
	var facts []model.Fact

	add := func(value string, category model.Category) {
		if value == "" {
			return
		}
		facts = append(facts, model.Fact{
			Text:       value,
			Category:   category,
			Evidence:   value,
			Confidence: 1.0,
		})
	}

	add(education, model.CategoryEducation)
	add(experience, model.CategoryExperience)
	add(skills, model.CategorySkills)

	return facts
}
