package model

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCategory(t *testing.T) {
	valid := []string{"impact", "awards", "education", "skills", "experience", "projects", "certifications", "other"}
	for _, s := range valid {
		category, err := ParseCategory(s)
		if err != nil {
			t.Errorf("ParseCategory(%q) failed: %v", s, err)
		}
		if string(category) != s {
			t.Errorf("ParseCategory(%q) = %q", s, category)
		}
	}

	// Empty defaults to other
	category, err := ParseCategory("")
	if err != nil || category != CategoryOther {
		t.Errorf("Expected empty category to default to other, got %q, %v", category, err)
	}

	// Unknown values are rejected
	if _, err := ParseCategory("hobbies"); err == nil {
		t.Error("Expected error for unknown category")
	}
}

func TestPromptSpec_Validate(t *testing.T) {
	valid := PromptSpec{
		ID:            "p1",
		Channel:       ChannelEmail,
		RecipientType: RecipientRecruiter,
		MaxWords:      120,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid spec to pass, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PromptSpec)
	}{
		{"missing id", func(p *PromptSpec) { p.ID = "" }},
		{"bad channel", func(p *PromptSpec) { p.Channel = "telegram" }},
		{"bad recipient", func(p *PromptSpec) { p.RecipientType = "ceo" }},
		{"zero max words", func(p *PromptSpec) { p.MaxWords = 0 }},
		{"negative max words", func(p *PromptSpec) { p.MaxWords = -5 }},
	}

	for _, tc := range cases {
		spec := valid
		tc.mutate(&spec)
		if err := spec.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestLoadPromptSpecs_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")

	content := `
- id: p1
  channel: email
  recipient_type: recruiter
  company: Acme
  target_role: Backend Engineer
  tone: professional
  max_words: 120
  allowed_facts:
    - Two years of Go experience
  must_include:
    - github.com/someone
- id: p2
  channel: linkedin_dm
  recipient_type: founder
  company: Initech
  max_words: 80
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadPromptSpecs(path)
	if err != nil {
		t.Fatalf("LoadPromptSpecs failed: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("Expected 2 specs, got %d", len(specs))
	}
	if specs[0].MaxWords != 120 || specs[0].Channel != ChannelEmail {
		t.Errorf("Unexpected first spec: %+v", specs[0])
	}
	if len(specs[0].AllowedFacts) != 1 || len(specs[0].MustInclude) != 1 {
		t.Errorf("Expected fact lists to load, got %+v", specs[0])
	}
}

func TestLoadPromptSpecs_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.json")

	content := `[{"id":"p1","channel":"email","recipient_type":"hiring_manager","max_words":100}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	specs, err := LoadPromptSpecs(path)
	if err != nil {
		t.Fatalf("LoadPromptSpecs failed: %v", err)
	}
	if len(specs) != 1 || specs[0].RecipientType != RecipientHiringManager {
		t.Errorf("Unexpected specs: %+v", specs)
	}
}

func TestLoadPromptSpecs_RejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")

	content := `
- id: p1
  channel: carrier_pigeon
  recipient_type: recruiter
  max_words: 100
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPromptSpecs(path); err == nil {
		t.Error("Expected invalid channel to be rejected at load time")
	}
}

func TestRunResult_Overconfident(t *testing.T) {
	cases := []struct {
		confidence float64
		pass       bool
		want       bool
	}{
		{0.9, false, true},
		{0.75, false, true},
		{0.74, false, false},
		{0.9, true, false},
		{0.5, false, false},
	}

	for _, tc := range cases {
		r := RunResult{Confidence: tc.confidence, OverallPass: tc.pass}
		if got := r.Overconfident(); got != tc.want {
			t.Errorf("Overconfident(conf=%v, pass=%v) = %v, want %v", tc.confidence, tc.pass, got, tc.want)
		}
	}
}

func TestAnnotatedFacts_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")

	facts := []AnnotatedFact{
		{
			Fact:               Fact{Text: "Published a paper at NeurIPS 2024", Category: CategoryImpact, Confidence: 0.9},
			TrustFlag:          TrustHighStakes,
			VerificationStatus: StatusUnverified,
		},
		{
			Fact:               Fact{Text: "Knows Go and Python", Category: CategorySkills, Confidence: 1.0},
			TrustFlag:          TrustNormal,
			VerificationStatus: StatusVerified,
			VerificationURL:    "https://example.com/profile",
		},
	}

	if err := SaveAnnotatedFacts(facts, path); err != nil {
		t.Fatalf("SaveAnnotatedFacts failed: %v", err)
	}

	loaded, err := LoadAnnotatedFacts(path)
	if err != nil {
		t.Fatalf("LoadAnnotatedFacts failed: %v", err)
	}

	if len(loaded) != len(facts) {
		t.Fatalf("Expected %d facts, got %d", len(facts), len(loaded))
	}
	for i := range facts {
		if loaded[i] != facts[i] {
			t.Errorf("Fact %d changed in round trip:\nwant %+v\ngot  %+v", i, facts[i], loaded[i])
		}
	}
}

func TestLoadAnnotatedFacts_DefaultsStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "facts.yaml")

	content := `
- text: Knows Go
  category: skills
  confidence: 1.0
  trust_flag: normal
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	facts, err := LoadAnnotatedFacts(path)
	if err != nil {
		t.Fatalf("LoadAnnotatedFacts failed: %v", err)
	}
	if facts[0].VerificationStatus != StatusUnverified {
		t.Errorf("Expected missing status to default to unverified, got %q", facts[0].VerificationStatus)
	}
}
