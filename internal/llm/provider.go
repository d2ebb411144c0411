package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Provider defines the interface for generation collaborators
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces one outreach message for the given request
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for one generation attempt
type GenerateRequest struct {
	// Spec is the outreach scenario being evaluated
	Spec model.PromptSpec

	// AllowedFacts is the fact list handed to the model. With language
	// enforcement active, unverified high-stakes facts arrive here already
	// rewritten to cautious phrasing.
	AllowedFacts []string

	// Directive is an extra instruction appended to the system prompt when
	// language enforcement is active; empty otherwise.
	Directive string

	// UnverifiedHighStakes carries the identifiers of unverified high-stakes
	// facts as request metadata. It never alters the check logic.
	UnverifiedHighStakes []string

	// RunIndex is the 0-based run number within the prompt
	RunIndex int

	// Model overrides the configured model when non-empty
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature for sampling
	Temperature float64
}

// GenerateResponse contains the model's output
type GenerateResponse struct {
	// Message is the generated outreach message
	Message string

	// Confidence is the model's self-reported confidence, parsed from the
	// trailing "Confidence: <x>" line and clamped to [0,1]
	Confidence float64

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption where the provider reports it
	TokensUsed int
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI-compatible endpoints
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, Groq-compatible gateways)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for sampling
	Temperature float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "",
		Model:       "",
		Timeout:     30,
		MaxTokens:   800,
		Temperature: 0.2,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
	}
}

// BuildSystemPrompt constructs the system prompt for a generation request.
// The model is told to use only the supplied facts and to end its output
// with a confidence line the evaluator can parse.
func BuildSystemPrompt(req GenerateRequest) string {
	spec := req.Spec

	prompt := fmt.Sprintf(`You are a professional job outreach assistant. Generate a %s %s message for a job application.

Rules:
- Target: %s at %s for %s role
- Tone: %s
- Maximum %d words
- Must include: %s
- ONLY mention these facts: %s. Do not add any other facts, companies, years, or details.
- For email: Include a subject line. For LinkedIn DM: No subject line.
- End with exactly: Confidence: <number between 0 and 1>`,
		spec.Tone, spec.Channel,
		spec.RecipientType, spec.Company, spec.TargetRole,
		spec.Tone,
		spec.MaxWords,
		joinOrNone(spec.MustInclude),
		joinOrNone(req.AllowedFacts))

	if req.Directive != "" {
		prompt += "\n\n" + req.Directive
	}

	return prompt
}

// BuildUserPrompt constructs the user prompt for a generation request
func BuildUserPrompt(req GenerateRequest) string {
	spec := req.Spec

	notes := spec.Notes
	if notes == "" {
		notes = "General outreach message"
	}

	return fmt.Sprintf(`Generate a %s message based on these notes:

%s

Company: %s
Role: %s
Recipient: %s

Requirements:
- %s tone, max %d words
- Must include: %s
- Only use these facts: %s`,
		spec.Channel,
		notes,
		spec.Company, spec.TargetRole, spec.RecipientType,
		spec.Tone, spec.MaxWords,
		joinOrNone(spec.MustInclude),
		joinOrNone(req.AllowedFacts))
}

var confidencePattern = regexp.MustCompile(`(?i)Confidence:\s*([0-9]*\.?[0-9]+)`)

// ExtractConfidence parses the self-reported confidence from model output.
// Returns 0.5 when no parsable confidence line is present; values are
// clamped to [0,1].
func ExtractConfidence(text string) float64 {
	match := confidencePattern.FindStringSubmatch(text)
	if match == nil {
		return 0.5
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0.5
	}

	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// StripConfidence removes the self-reported confidence line from model
// output so it never leaks into the message handed to the checks.
func StripConfidence(text string) string {
	return strings.TrimSpace(confidencePattern.ReplaceAllString(text, ""))
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None specified"
	}
	return strings.Join(items, ", ")
}
