package model

import "fmt"

// Fact represents a single extracted profile fact. Facts are produced by an
// external extraction step and are never mutated afterwards; trust annotation
// produces a derived AnnotatedFact instead.
type Fact struct {
	Text       string   `json:"text" yaml:"text"`                             // The fact text itself
	Category   Category `json:"category" yaml:"category"`                     // Closed category enumeration
	Evidence   string   `json:"evidence,omitempty" yaml:"evidence,omitempty"` // Exact source quote backing the fact
	Confidence float64  `json:"confidence" yaml:"confidence"`                 // Extraction confidence (0-1)
}

// Category categorizes the nature of a fact
type Category string

const (
	CategoryImpact         Category = "impact"         // Measurable outcomes, publications, shipped work
	CategoryAwards         Category = "awards"         // Prizes, honors, recognitions
	CategoryEducation      Category = "education"      // Degrees, schools, coursework
	CategorySkills         Category = "skills"         // Tools and technologies
	CategoryExperience     Category = "experience"     // Employment history
	CategoryProjects       Category = "projects"       // Side projects, open source
	CategoryCertifications Category = "certifications" // Professional certifications
	CategoryOther          Category = "other"          // Anything else
)

// ParseCategory converts a raw string into a Category, rejecting values
// outside the closed enumeration at construction time.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryImpact, CategoryAwards, CategoryEducation, CategorySkills,
		CategoryExperience, CategoryProjects, CategoryCertifications, CategoryOther:
		return Category(s), nil
	case "":
		return CategoryOther, nil
	default:
		return "", fmt.Errorf("unknown fact category: %q", s)
	}
}

// TrustFlag is the classification outcome of the high-stakes classifier
type TrustFlag string

const (
	TrustHighStakes TrustFlag = "high_stakes" // Reputational/verification risk if false
	TrustNormal     TrustFlag = "normal"
)

// VerificationStatus is the user-asserted verification state of a fact
type VerificationStatus string

const (
	StatusVerified   VerificationStatus = "verified"
	StatusUnverified VerificationStatus = "unverified"
)

// AnnotatedFact is a Fact plus trust calibration metadata. The embedded Fact
// fields are carried over byte-identical from the source fact.
type AnnotatedFact struct {
	Fact `yaml:",inline"`

	TrustFlag          TrustFlag          `json:"trust_flag" yaml:"trust_flag"`
	VerificationStatus VerificationStatus `json:"verification_status" yaml:"verification_status"`
	VerificationURL    string             `json:"verification_url" yaml:"verification_url"` // Empty allowed only when unverified (advisory)
}
