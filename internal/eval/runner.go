// Package eval drives repeated generation+check cycles per prompt and folds
// the results into summary metrics.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/outreachlint/outreachlint/internal/cache"
	"github.com/outreachlint/outreachlint/internal/check"
	"github.com/outreachlint/outreachlint/internal/llm"
	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/outreachlint/outreachlint/internal/trust"
	"github.com/outreachlint/outreachlint/internal/worker"
)

// Observer is invoked once per completed run, after checks. It is optional
// instrumentation (audit logging, progress output) and is decoupled from the
// check logic entirely.
type Observer func(result model.RunResult)

// Runner evaluates prompt specs against a generation provider. All feature
// toggles arrive through the explicit config record passed at construction.
type Runner struct {
	provider llm.Provider
	cfg      *model.Config
	cache    cache.Cache
	limiter  *worker.Limiter
	observer Observer
}

// NewRunner creates a new evaluation runner
func NewRunner(provider llm.Provider, cfg *model.Config) *Runner {
	r := &Runner{
		provider: provider,
		cfg:      cfg,
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			r.cache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			r.cache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	if cfg.RateLimit.RequestsPerSecond > 0 {
		r.limiter = worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	}

	return r
}

// SetObserver registers a per-run callback
func (r *Runner) SetObserver(obs Observer) {
	r.observer = obs
}

// EvaluateAll evaluates every prompt spec. With Concurrency > 1 prompts run
// in parallel through the worker pool; runs within a prompt are always
// sequential. Results come back in input order keyed by (PromptID, RunIndex).
func (r *Runner) EvaluateAll(ctx context.Context, specs []model.PromptSpec, facts []model.AnnotatedFact) []model.RunResult {
	if r.cfg.Eval.Concurrency > 1 {
		batch := worker.NewBatchEvaluator(r, r.cfg.Eval.Concurrency)
		return batch.ProcessPrompts(ctx, specs, facts)
	}

	var results []model.RunResult
	for _, spec := range specs {
		results = append(results, r.EvaluatePrompt(ctx, spec, facts)...)
	}
	return results
}

// EvaluatePrompt runs the configured number of generation+check cycles for
// one prompt. A generation failure never aborts the prompt: it is recorded
// as a failed RunResult with a descriptive note and siblings continue.
func (r *Runner) EvaluatePrompt(ctx context.Context, spec model.PromptSpec, facts []model.AnnotatedFact) []model.RunResult {
	enforce := r.cfg.HighStakes.Enabled && r.cfg.HighStakes.Enforce

	genFacts := spec.AllowedFacts
	directive := ""
	var unverified []string
	var pre trust.PreprocessResult

	if len(facts) > 0 {
		pre = trust.PreprocessFacts(facts, enforce)
		genFacts = pre.FactsForGeneration
		if len(pre.UnverifiedHighStakes) > 0 {
			directive = trust.CautiousDirective
			unverified = pre.UnverifiedHighStakes
		}
	}

	runs := r.cfg.Eval.RunsPerPrompt
	if runs <= 0 {
		runs = 1
	}

	results := make([]model.RunResult, 0, runs)
	for i := 0; i < runs; i++ {
		req := llm.GenerateRequest{
			Spec:                 spec,
			AllowedFacts:         genFacts,
			Directive:            directive,
			UnverifiedHighStakes: unverified,
			RunIndex:             i,
			Model:                r.cfg.LLM.Model,
			MaxTokens:            r.cfg.LLM.MaxTokens,
			Temperature:          r.cfg.LLM.Temperature,
		}

		result := r.runOnce(ctx, spec, req)

		if enforce && len(facts) > 0 && result.Message != "" {
			behavior := trust.AnalyzeBehavior(result.Message, facts, pre, true)
			if behavior.ViolationCount > 0 || behavior.SoftenedCount > 0 {
				result.Notes += fmt.Sprintf("; High-stakes handling: %d softened, %d suppressed, %d violations",
					behavior.SoftenedCount, behavior.SuppressedCount, behavior.ViolationCount)
			}
		}

		results = append(results, result)

		if r.observer != nil {
			r.observer(result)
		}
	}

	return results
}

// runOnce executes a single generation attempt and checks the output.
// The checks always run against the spec's original allowed facts; language
// enforcement only changes what was asked of the provider.
func (r *Runner) runOnce(ctx context.Context, spec model.PromptSpec, req llm.GenerateRequest) model.RunResult {
	resp, err := r.generate(ctx, req)
	if err != nil {
		return failedRun(spec, req.RunIndex, fmt.Sprintf("Generation error: %v", err))
	}

	checked := check.Run(spec, resp.Message)

	return model.RunResult{
		PromptID:        spec.ID,
		RunIndex:        req.RunIndex,
		Channel:         spec.Channel,
		RecipientType:   spec.RecipientType,
		Company:         spec.Company,
		TargetRole:      spec.TargetRole,
		Message:         resp.Message,
		Confidence:      resp.Confidence,
		WithinWordLimit: checked.WithinWordLimit,
		MustIncludeOK:   checked.MustIncludeOK,
		AddsNewFacts:    checked.AddsNewFacts,
		ToneOK:          checked.ToneOK,
		OverallPass:     checked.OverallPass,
		Notes:           checked.Notes,
	}
}

// generate calls the provider, going through the response cache and the
// per-host rate limiter when configured.
func (r *Runner) generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	if r.provider == nil {
		return nil, fmt.Errorf("no generation provider configured")
	}

	key := cache.RunKey(req.Spec.ID, req.RunIndex, r.cfg.LLM.Model, req.AllowedFacts)

	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var resp llm.GenerateResponse
			if json.Unmarshal(data, &resp) == nil {
				return &resp, nil
			}
		}
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.limiterHost()); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = r.cache.Set(key, data, r.cfg.Cache.TTL)
		}
	}

	return resp, nil
}

// limiterHost picks the rate-limiter bucket key: the API host when a base
// URL is configured, otherwise the provider name.
func (r *Runner) limiterHost() string {
	if r.cfg.LLM.BaseURL != "" {
		if parsed, err := url.Parse(r.cfg.LLM.BaseURL); err == nil && parsed.Host != "" {
			return parsed.Host
		}
	}
	return r.provider.Name()
}

// failedRun builds the RunResult for a failed generation attempt, matching
// the shape of a checked run so metrics stay uniform.
func failedRun(spec model.PromptSpec, runIndex int, note string) model.RunResult {
	return model.RunResult{
		PromptID:        spec.ID,
		RunIndex:        runIndex,
		Channel:         spec.Channel,
		RecipientType:   spec.RecipientType,
		Company:         spec.Company,
		TargetRole:      spec.TargetRole,
		Message:         "",
		Confidence:      0,
		WithinWordLimit: false,
		MustIncludeOK:   false,
		AddsNewFacts:    true,
		ToneOK:          false,
		OverallPass:     false,
		Notes:           note,
	}
}
