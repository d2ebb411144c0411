package eval

import (
	"github.com/outreachlint/outreachlint/internal/model"
)

// Summarize folds run results into summary metrics grouped overall, by
// channel, by recipient type, and per prompt. Stability and overconfidence
// are prompt-level: a prompt is stable when all its runs share the same
// overall_pass value, and overconfident when at least one run reported
// confidence >= 0.75 while failing. The overall pass rate is the mean of
// per-prompt pass rates; channel and recipient pass rates are the fraction
// of runs in the group that passed.
func Summarize(results []model.RunResult) model.SummaryMetrics {
	summary := model.SummaryMetrics{
		ByChannel:   make(map[model.Channel]model.GroupMetrics),
		ByRecipient: make(map[model.RecipientType]model.GroupMetrics),
		ByPrompt:    make(map[string]model.PromptMetrics),
	}

	if len(results) == 0 {
		return summary
	}

	byPrompt, order := groupByPrompt(results)

	var passRateSum, stableCount, overconfCount float64
	for _, id := range order {
		metrics := promptMetrics(byPrompt[id])
		summary.ByPrompt[id] = metrics

		passRateSum += metrics.PassRate
		if metrics.Stability {
			stableCount++
		}
		if metrics.Overconfident {
			overconfCount++
		}
	}

	n := float64(len(order))
	summary.Overall = model.GroupMetrics{
		PassRate:           passRateSum / n,
		StabilityRate:      stableCount / n,
		OverconfidenceRate: overconfCount / n,
	}

	byChannel := make(map[model.Channel][]model.RunResult)
	byRecipient := make(map[model.RecipientType][]model.RunResult)
	for _, r := range results {
		byChannel[r.Channel] = append(byChannel[r.Channel], r)
		byRecipient[r.RecipientType] = append(byRecipient[r.RecipientType], r)
	}

	for channel, runs := range byChannel {
		summary.ByChannel[channel] = groupMetrics(runs)
	}
	for recipient, runs := range byRecipient {
		summary.ByRecipient[recipient] = groupMetrics(runs)
	}

	return summary
}

// promptMetrics aggregates the runs of a single prompt
func promptMetrics(runs []model.RunResult) model.PromptMetrics {
	passCount := 0
	overconfident := false
	allSame := true

	for i, r := range runs {
		if r.OverallPass {
			passCount++
		}
		if r.Overconfident() {
			overconfident = true
		}
		if i > 0 && r.OverallPass != runs[0].OverallPass {
			allSame = false
		}
	}

	return model.PromptMetrics{
		PassRate:      float64(passCount) / float64(len(runs)),
		Stability:     allSame,
		Overconfident: overconfident,
	}
}

// groupMetrics aggregates a group of runs spanning multiple prompts:
// pass rate over runs, stability and overconfidence rates over the
// group's prompts.
func groupMetrics(runs []model.RunResult) model.GroupMetrics {
	passCount := 0
	for _, r := range runs {
		if r.OverallPass {
			passCount++
		}
	}

	byPrompt, order := groupByPrompt(runs)
	var stableCount, overconfCount float64
	for _, id := range order {
		metrics := promptMetrics(byPrompt[id])
		if metrics.Stability {
			stableCount++
		}
		if metrics.Overconfident {
			overconfCount++
		}
	}

	n := float64(len(order))
	return model.GroupMetrics{
		PassRate:           float64(passCount) / float64(len(runs)),
		StabilityRate:      stableCount / n,
		OverconfidenceRate: overconfCount / n,
	}
}

// groupByPrompt buckets runs by prompt ID, preserving first-seen order
func groupByPrompt(results []model.RunResult) (map[string][]model.RunResult, []string) {
	grouped := make(map[string][]model.RunResult)
	var order []string
	for _, r := range results {
		if _, seen := grouped[r.PromptID]; !seen {
			order = append(order, r.PromptID)
		}
		grouped[r.PromptID] = append(grouped[r.PromptID], r)
	}
	return grouped, order
}
