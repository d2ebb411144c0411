package worker

import (
	"context"
	"sort"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Evaluator defines the interface for evaluating a single prompt
type Evaluator interface {
	EvaluatePrompt(ctx context.Context, spec model.PromptSpec, facts []model.AnnotatedFact) []model.RunResult
}

// PromptJob evaluates one prompt spec
type PromptJob struct {
	Index     int // Position in the input batch, used to restore ordering
	Spec      model.PromptSpec
	Facts     []model.AnnotatedFact
	Evaluator Evaluator
}

// Execute runs the prompt evaluation. Per-run failures are already isolated
// inside the evaluator as failed RunResults, so a job never aborts siblings.
func (j *PromptJob) Execute(ctx context.Context) Result {
	return &PromptResult{
		Index:   j.Index,
		Spec:    j.Spec,
		Results: j.Evaluator.EvaluatePrompt(ctx, j.Spec, j.Facts),
	}
}

// PromptResult holds the evaluation outcome of one prompt
type PromptResult struct {
	Index   int
	Spec    model.PromptSpec
	Results []model.RunResult
	Err     error
}

// GetError returns the error from the prompt result
func (r *PromptResult) GetError() error {
	return r.Err
}

// BatchEvaluator evaluates multiple prompts concurrently
type BatchEvaluator struct {
	evaluator   Evaluator
	concurrency int
}

// NewBatchEvaluator creates a new batch evaluator
func NewBatchEvaluator(evaluator Evaluator, concurrency int) *BatchEvaluator {
	return &BatchEvaluator{
		evaluator:   evaluator,
		concurrency: concurrency,
	}
}

// ProcessPrompts evaluates prompts in parallel and returns the flattened
// RunResults in input order, each run keyed by its (PromptID, RunIndex).
func (b *BatchEvaluator) ProcessPrompts(ctx context.Context, specs []model.PromptSpec, facts []model.AnnotatedFact) []model.RunResult {
	if len(specs) == 0 {
		return []model.RunResult{}
	}

	pool := NewPoolWithQueue(ctx, b.concurrency, len(specs))
	pool.Start()

	for i, spec := range specs {
		pool.Submit(&PromptJob{
			Index:     i,
			Spec:      spec,
			Facts:     facts,
			Evaluator: b.evaluator,
		})
	}

	results := pool.Wait()

	promptResults := make([]*PromptResult, 0, len(results))
	for _, result := range results {
		promptResults = append(promptResults, result.(*PromptResult))
	}
	sort.Slice(promptResults, func(i, j int) bool {
		return promptResults[i].Index < promptResults[j].Index
	})

	var runs []model.RunResult
	for _, pr := range promptResults {
		runs = append(runs, pr.Results...)
	}
	return runs
}
