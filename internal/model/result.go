package model

// RunResult records one generation attempt and its check outcomes. Results
// are created once per run and never mutated.
type RunResult struct {
	PromptID      string        `json:"id"`
	RunIndex      int           `json:"run_idx"`
	Channel       Channel       `json:"channel"`
	RecipientType RecipientType `json:"recipient_type"`
	Company       string        `json:"company"`
	TargetRole    string        `json:"target_role"`

	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"` // Model self-reported confidence (0-1)

	WithinWordLimit bool   `json:"within_word_limit"`
	MustIncludeOK   bool   `json:"must_include_ok"`
	AddsNewFacts    bool   `json:"adds_new_facts"`
	ToneOK          bool   `json:"tone_ok"`
	OverallPass     bool   `json:"overall_pass"`
	Notes           string `json:"notes"` // Which rules failed and why
}

// Overconfident reports whether this run claimed high confidence while
// failing the deterministic checks.
func (r RunResult) Overconfident() bool {
	return r.Confidence >= 0.75 && !r.OverallPass
}

// PromptMetrics aggregates the runs of a single prompt
type PromptMetrics struct {
	PassRate      float64 `json:"pass_rate"`
	Stability     bool    `json:"stability"`     // All runs share the same overall_pass value
	Overconfident bool    `json:"overconfident"` // At least one overconfident run
}

// GroupMetrics aggregates prompt-level outcomes across a grouping
// (overall, per channel, per recipient type).
type GroupMetrics struct {
	PassRate           float64 `json:"pass_rate"`
	StabilityRate      float64 `json:"stability_rate"`
	OverconfidenceRate float64 `json:"overconfidence_rate"`
}

// SummaryMetrics is the complete derived metric set of an evaluation batch.
// It is recomputable from the RunResults and never a source of truth.
type SummaryMetrics struct {
	Overall     GroupMetrics                   `json:"overall"`
	ByChannel   map[Channel]GroupMetrics       `json:"by_channel"`
	ByRecipient map[RecipientType]GroupMetrics `json:"by_recipient_type"`
	ByPrompt    map[string]PromptMetrics       `json:"by_prompt"`
}
