package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/outreachlint/outreachlint/internal/model"
)

func sampleResults() []model.RunResult {
	return []model.RunResult{
		{
			PromptID:        "backend_recruiter",
			RunIndex:        0,
			Channel:         model.ChannelEmail,
			RecipientType:   model.RecipientRecruiter,
			Company:         "Acme",
			TargetRole:      "Backend Engineer",
			Message:         "Hello, I have two years of Go experience.",
			Confidence:      0.8,
			WithinWordLimit: true,
			MustIncludeOK:   true,
			ToneOK:          true,
			OverallPass:     true,
			Notes:           "All checks passed",
		},
		{
			PromptID:      "backend_recruiter",
			RunIndex:      1,
			Channel:       model.ChannelEmail,
			RecipientType: model.RecipientRecruiter,
			Company:       "Acme",
			TargetRole:    "Backend Engineer",
			Message:       "yo, hire me!!!",
			Confidence:    0.9,
			ToneOK:        false,
			OverallPass:   false,
			Notes:         "Slang detected: yo; Too many exclamation marks (3)",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.csv")

	r := NewRenderer()
	if err := r.WriteCSV(sampleResults(), path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse written CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "id" || rows[0][len(rows[0])-1] != "notes" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	if rows[1][0] != "backend_recruiter" || rows[1][1] != "0" {
		t.Errorf("Unexpected first row: %v", rows[1])
	}
	if rows[2][6] != "0.900" {
		t.Errorf("Expected confidence formatted to 3 decimals, got %q", rows[2][6])
	}

	// Notes with separators survive CSV quoting
	if !strings.Contains(rows[2][13], "Slang detected") {
		t.Errorf("Expected notes preserved, got %q", rows[2][13])
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	summary := model.SummaryMetrics{
		Overall: model.GroupMetrics{PassRate: 0.5, StabilityRate: 0, OverconfidenceRate: 1},
		ByChannel: map[model.Channel]model.GroupMetrics{
			model.ChannelEmail: {PassRate: 0.5},
		},
		ByRecipient: map[model.RecipientType]model.GroupMetrics{
			model.RecipientRecruiter: {PassRate: 0.5},
		},
		ByPrompt: map[string]model.PromptMetrics{
			"backend_recruiter": {PassRate: 0.5, Stability: false, Overconfident: true},
		},
	}

	r := NewRenderer()
	if err := r.WriteSummaryJSON(summary, path); err != nil {
		t.Fatalf("WriteSummaryJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var loaded model.SummaryMetrics
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Written summary is not valid JSON: %v", err)
	}
	if loaded.Overall.PassRate != 0.5 {
		t.Errorf("Expected pass rate 0.5, got %v", loaded.Overall.PassRate)
	}
	if !loaded.ByPrompt["backend_recruiter"].Overconfident {
		t.Error("Expected prompt overconfidence to round-trip")
	}
}

func TestPrintSummary(t *testing.T) {
	summary := model.SummaryMetrics{
		Overall: model.GroupMetrics{PassRate: 0.667, StabilityRate: 0.5, OverconfidenceRate: 0.25},
		ByChannel: map[model.Channel]model.GroupMetrics{
			model.ChannelEmail:      {PassRate: 0.75},
			model.ChannelLinkedInDM: {PassRate: 0.5},
		},
		ByRecipient: map[model.RecipientType]model.GroupMetrics{
			model.RecipientFounder: {PassRate: 0.5},
		},
		ByPrompt: map[string]model.PromptMetrics{
			"founder_dm": {PassRate: 0.5, Stability: false, Overconfident: false},
		},
	}

	var buf strings.Builder
	NewRenderer().PrintSummary(&buf, summary)
	out := buf.String()

	for _, want := range []string{
		"OUTREACH MESSAGE EVALUATION",
		"Overall Metrics:",
		"Pass Rate:         0.667",
		"By Channel:",
		"Linkedin Dm:",
		"By Recipient Type:",
		"Founder:",
		"Per-Prompt Summary:",
		"founder_dm",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected summary output to contain %q", want)
		}
	}
}
