// Package report serializes evaluation output: a CSV of per-run results, a
// JSON summary of the derived metrics, and a human-readable stdout table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/outreachlint/outreachlint/internal/model"
)

// Renderer writes evaluation results and summary metrics
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

var csvHeader = []string{
	"id", "run_idx", "channel", "recipient_type", "company", "target_role",
	"confidence", "within_word_limit", "must_include_ok", "adds_new_facts",
	"tone_ok", "overall_pass", "message", "notes",
}

// WriteCSV writes one row per run result
func (r *Renderer) WriteCSV(results []model.RunResult, path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close csv: %w", closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, result := range results {
		row := []string{
			result.PromptID,
			strconv.Itoa(result.RunIndex),
			string(result.Channel),
			string(result.RecipientType),
			result.Company,
			result.TargetRole,
			strconv.FormatFloat(result.Confidence, 'f', 3, 64),
			strconv.FormatBool(result.WithinWordLimit),
			strconv.FormatBool(result.MustIncludeOK),
			strconv.FormatBool(result.AddsNewFacts),
			strconv.FormatBool(result.ToneOK),
			strconv.FormatBool(result.OverallPass),
			result.Message,
			result.Notes,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// WriteSummaryJSON writes the summary metrics as indented JSON
func (r *Renderer) WriteSummaryJSON(summary model.SummaryMetrics, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}

// PrintSummary writes a compact human-readable summary table
func (r *Renderer) PrintSummary(w io.Writer, summary model.SummaryMetrics) {
	line := strings.Repeat("=", 80)

	fmt.Fprintf(w, "\n%s\n", line)
	fmt.Fprintf(w, "OUTREACH MESSAGE EVALUATION\n")
	fmt.Fprintf(w, "%s\n", line)

	fmt.Fprintf(w, "\nOverall Metrics:\n")
	printGroup(w, "  ", summary.Overall)

	if len(summary.ByChannel) > 0 {
		fmt.Fprintf(w, "\nBy Channel:\n")
		for _, channel := range sortedKeys(summary.ByChannel) {
			fmt.Fprintf(w, "  %s:\n", titleCase(channel))
			printGroup(w, "    ", summary.ByChannel[model.Channel(channel)])
		}
	}

	if len(summary.ByRecipient) > 0 {
		fmt.Fprintf(w, "\nBy Recipient Type:\n")
		for _, recipient := range sortedKeys(summary.ByRecipient) {
			fmt.Fprintf(w, "  %s:\n", titleCase(recipient))
			printGroup(w, "    ", summary.ByRecipient[model.RecipientType(recipient)])
		}
	}

	if len(summary.ByPrompt) > 0 {
		fmt.Fprintf(w, "\nPer-Prompt Summary:\n")
		fmt.Fprintf(w, "%-30s %-12s %-10s %-10s\n", "ID", "Pass Rate", "Stable", "Overconf")
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", 80))

		ids := make([]string, 0, len(summary.ByPrompt))
		for id := range summary.ByPrompt {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			m := summary.ByPrompt[id]
			fmt.Fprintf(w, "%-30s %-12.3f %-10t %-10t\n", id, m.PassRate, m.Stability, m.Overconfident)
		}
	}

	fmt.Fprintf(w, "%s\n", line)
}

func printGroup(w io.Writer, indent string, m model.GroupMetrics) {
	fmt.Fprintf(w, "%sPass Rate:         %.3f\n", indent, m.PassRate)
	fmt.Fprintf(w, "%sStability Rate:    %.3f\n", indent, m.StabilityRate)
	fmt.Fprintf(w, "%sOverconfidence:    %.3f\n", indent, m.OverconfidenceRate)
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

// titleCase renders enum values like "linkedin_dm" as "Linkedin Dm"
func titleCase(s string) string {
	words := strings.Split(strings.ReplaceAll(s, "_", " "), " ")
	for i, word := range words {
		if word != "" {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
