package trust

import (
	"fmt"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Annotate attaches trust metadata to a fact. The original fact fields are
// embedded unchanged; the trust flag is recomputed from the fact itself, so
// annotating the same inputs repeatedly yields identical output.
//
// An empty status defaults to unverified. No URL requirement is enforced
// here - that is advisory metadata checked at the caller boundary.
func Annotate(fact model.Fact, status model.VerificationStatus, url string) model.AnnotatedFact {
	if status == "" {
		status = model.StatusUnverified
	}

	flag := model.TrustNormal
	if IsHighStakes(fact) {
		flag = model.TrustHighStakes
	}

	return model.AnnotatedFact{
		Fact:               fact,
		TrustFlag:          flag,
		VerificationStatus: status,
		VerificationURL:    url,
	}
}

// AnnotateAll annotates a sequence of facts with a shared default status.
func AnnotateAll(facts []model.Fact, status model.VerificationStatus) []model.AnnotatedFact {
	annotated := make([]model.AnnotatedFact, 0, len(facts))
	for _, f := range facts {
		annotated = append(annotated, Annotate(f, status, ""))
	}
	return annotated
}

// Inconsistencies returns advisory warnings for annotated facts whose
// metadata is suspect: a verified fact without a supporting URL. These are
// surfaced to the caller, never treated as errors, and processing does not
// block on them.
func Inconsistencies(facts []model.AnnotatedFact) []string {
	var warnings []string
	for _, f := range facts {
		if f.VerificationStatus == model.StatusVerified && f.VerificationURL == "" {
			warnings = append(warnings, fmt.Sprintf("fact %q is marked verified but has no verification URL", f.Text))
		}
	}
	return warnings
}
