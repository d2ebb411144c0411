package llm

import (
	"strings"
	"testing"

	"github.com/outreachlint/outreachlint/internal/model"
)

func TestExtractConfidence(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
	}{
		{"trailing line", "Great message body.\nConfidence: 0.85", 0.85},
		{"case insensitive", "body\nconfidence: 0.6", 0.6},
		{"integer", "body\nConfidence: 1", 1},
		{"clamped high", "body\nConfidence: 3.5", 1},
		{"missing", "no confidence line here", 0.5},
		{"bare decimal", "Confidence: .75", 0.75},
	}

	for _, tc := range cases {
		if got := ExtractConfidence(tc.text); got != tc.want {
			t.Errorf("%s: ExtractConfidence(%q) = %v, want %v", tc.name, tc.text, got, tc.want)
		}
	}
}

func TestStripConfidence(t *testing.T) {
	got := StripConfidence("Great message body.\nConfidence: 0.85")
	if got != "Great message body." {
		t.Errorf("Expected confidence line removed, got %q", got)
	}

	plain := "no confidence line here"
	if got := StripConfidence(plain); got != plain {
		t.Errorf("Expected message without confidence line untouched, got %q", got)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	req := GenerateRequest{
		Spec: model.PromptSpec{
			ID:            "p1",
			Channel:       model.ChannelEmail,
			RecipientType: model.RecipientRecruiter,
			Company:       "Acme",
			TargetRole:    "Backend Engineer",
			Tone:          "professional",
			MaxWords:      120,
			MustInclude:   []string{"github.com/someone"},
		},
		AllowedFacts: []string{"Two years of Go experience"},
	}

	prompt := BuildSystemPrompt(req)

	for _, want := range []string{"Acme", "Backend Engineer", "120 words", "github.com/someone", "Two years of Go experience", "Confidence:"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected system prompt to contain %q", want)
		}
	}
}

func TestBuildSystemPrompt_AppendsDirective(t *testing.T) {
	req := GenerateRequest{
		Spec:         model.PromptSpec{Channel: model.ChannelEmail, MaxWords: 100},
		AllowedFacts: []string{"Has reported research work related to NeurIPS; verification link not provided."},
		Directive:    "Do NOT state unverified claims definitively.",
	}

	prompt := BuildSystemPrompt(req)

	if !strings.Contains(prompt, req.Directive) {
		t.Error("Expected directive to be appended to system prompt")
	}
	if !strings.Contains(prompt, "Has reported research work") {
		t.Error("Expected cautious fact to appear in allowed facts")
	}

	// Without a directive, nothing extra is appended
	req.Directive = ""
	plain := BuildSystemPrompt(req)
	if strings.Contains(plain, "Do NOT state unverified") {
		t.Error("Expected no directive text without enforcement")
	}
}

func TestBuildUserPrompt_DefaultNotes(t *testing.T) {
	req := GenerateRequest{
		Spec: model.PromptSpec{Channel: model.ChannelLinkedInDM, MaxWords: 80},
	}

	prompt := BuildUserPrompt(req)
	if !strings.Contains(prompt, "General outreach message") {
		t.Error("Expected default notes placeholder when spec notes are empty")
	}
	if !strings.Contains(prompt, "None specified") {
		t.Error("Expected empty lists to render as None specified")
	}
}

func TestNewProvider(t *testing.T) {
	// Empty provider name disables generation without error
	p, err := NewProvider(Config{Provider: ""})
	if err != nil || p != nil {
		t.Errorf("Expected nil provider and nil error for empty name, got %v %v", p, err)
	}

	if _, err := NewProvider(Config{Provider: "unknown"}); err == nil {
		t.Error("Expected error for unknown provider")
	}

	p, err = NewProvider(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("Expected no error for openai provider, got %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("Expected provider name openai, got %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai provider without API key")
	}

	p, err = NewProvider(Config{Provider: "claude", APIKey: "sk-ant-test"})
	if err != nil {
		t.Fatalf("Expected no error for claude alias, got %v", err)
	}
	if p.Name() != "anthropic" {
		t.Errorf("Expected provider name anthropic, got %s", p.Name())
	}

	if _, err := NewProvider(Config{Provider: "anthropic"}); err == nil {
		t.Error("Expected error for anthropic provider without API key")
	}
}
