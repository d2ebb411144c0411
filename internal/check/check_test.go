package check

import (
	"strings"
	"testing"

	"github.com/outreachlint/outreachlint/internal/model"
)

func TestWithinWordLimit_Boundary(t *testing.T) {
	// Exactly at the limit passes; one over fails
	limit := 5
	exact := "one two three four five"
	over := exact + " six"

	if !WithinWordLimit(exact, limit) {
		t.Error("Expected message at exactly the limit to pass")
	}
	if WithinWordLimit(over, limit) {
		t.Error("Expected message one word over the limit to fail")
	}
}

func TestWithinWordLimit_WhitespaceTokens(t *testing.T) {
	// Hyphenated compounds and multiple spaces collapse to whitespace fields
	if !WithinWordLimit("state-of-the-art   systems engineer", 3) {
		t.Error("Expected 3 whitespace fields to pass a limit of 3")
	}
}

func TestWithinWordLimit_EmptyMessage(t *testing.T) {
	if WithinWordLimit("", 100) {
		t.Error("Expected empty message to fail")
	}
}

func TestMustIncludeAll_CaseInsensitive(t *testing.T) {
	message := "Check out my work on github.com/someone and my portfolio."

	ok, missing := MustIncludeAll(message, []string{"GitHub", "portfolio"})
	if !ok {
		t.Errorf("Expected case-insensitive match, missing: %v", missing)
	}
}

func TestMustIncludeAll_ReportsMissing(t *testing.T) {
	message := "I would love to chat about the role."

	ok, missing := MustIncludeAll(message, []string{"GitHub", "role"})
	if ok {
		t.Error("Expected check to fail with a missing item")
	}
	if len(missing) != 1 || missing[0] != "GitHub" {
		t.Errorf("Expected missing [GitHub], got %v", missing)
	}
}

func TestMustIncludeAll_EmptyRequirements(t *testing.T) {
	ok, missing := MustIncludeAll("anything at all", nil)
	if !ok || missing != nil {
		t.Errorf("Expected empty requirement list to pass, got %v %v", ok, missing)
	}
}

func TestToneProfessional(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    bool
	}{
		{"clean", "I enjoyed reading about your team and would welcome a conversation.", true},
		{"emoji", "Excited to connect \U0001F680", false},
		{"slang", "yo, this role looks great", false},
		{"slang boundary", "I program in Python and prototype quickly.", true},
		{"two exclamations", "Great role! Great team!", true},
		{"three exclamations", "Great role! Great team! Let's talk!", false},
		{"shouting", "I am VERY interested in this position.", false},
		{"acronym under four caps", "I work with AWS and SQL daily.", true},
		{"empty", "", false},
	}

	for _, tc := range cases {
		ok, issues := ToneProfessional(tc.message)
		if ok != tc.want {
			t.Errorf("%s: ToneProfessional(%q) = %v (issues %v), want %v", tc.name, tc.message, ok, issues, tc.want)
		}
	}
}

func TestDetectFabrication_Degree(t *testing.T) {
	facts := []string{"BS in Computer Science from a state school"}

	fabricated, reasons := DetectFabrication("I hold a PhD in machine learning.", facts, "Acme")
	if !fabricated {
		t.Error("Expected unbacked PhD claim to be flagged")
	}
	if len(reasons) == 0 || !strings.Contains(reasons[0], "PhD") {
		t.Errorf("Expected PhD reason, got %v", reasons)
	}
}

func TestDetectFabrication_Year(t *testing.T) {
	facts := []string{"Graduated in 2022 with a BS in CS"}

	if fabricated, _ := DetectFabrication("I graduated in 2022.", facts, "Acme"); fabricated {
		t.Error("Expected year present in facts to pass")
	}

	fabricated, reasons := DetectFabrication("Since 2019 I have led the platform team.", facts, "Acme")
	if !fabricated {
		t.Error("Expected year absent from facts to be flagged")
	}
	found := false
	for _, r := range reasons {
		if strings.Contains(r, "2019") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected reason naming 2019, got %v", reasons)
	}
}

func TestDetectFabrication_Employer(t *testing.T) {
	facts := []string{"Two years of backend experience in Go"}

	fabricated, reasons := DetectFabrication("I previously worked at Globex on payments.", facts, "Acme")
	if !fabricated {
		t.Errorf("Expected unbacked employer to be flagged, reasons %v", reasons)
	}

	// Naming the target company is not a fabrication
	if fabricated, reasons := DetectFabrication("I would love to work at Acme.", facts, "Acme"); fabricated {
		t.Errorf("Expected target company mention to pass, reasons %v", reasons)
	}
}

func TestDetectFabrication_PublicationIndicator(t *testing.T) {
	facts := []string{"Two years of backend experience in Go"}

	fabricated, reasons := DetectFabrication("My paper on distributed tracing was well received.", facts, "Acme")
	if !fabricated {
		t.Error("Expected unbacked publication claim to be flagged")
	}
	if len(reasons) == 0 || !strings.Contains(reasons[0], "paper") {
		t.Errorf("Expected paper reason, got %v", reasons)
	}
}

func TestDetectFabrication_PercentMetric(t *testing.T) {
	facts := []string{"Reduced page load time by 40%"}

	if fabricated, _ := DetectFabrication("I reduced page load time by 40%.", facts, "Acme"); fabricated {
		t.Error("Expected backed metric to pass")
	}

	fabricated, _ := DetectFabrication("I improved throughput by 300%.", facts, "Acme")
	if !fabricated {
		t.Error("Expected unbacked metric to be flagged")
	}
}

func TestDetectFabrication_BareNumber(t *testing.T) {
	facts := []string{"Built a CLI tool"}

	fabricated, reasons := DetectFabrication("I led a team of 50 engineers", facts, "Acme")
	if !fabricated {
		t.Error("Expected untraceable number to be flagged")
	}
	found := false
	for _, r := range reasons {
		if strings.Contains(r, "50") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected reason naming 50, got %v", reasons)
	}

	backed := []string{"Led a team of 50 engineers"}
	if fabricated, _ := DetectFabrication("I led a team of 50 engineers", backed, "Acme"); fabricated {
		t.Error("Expected backed number to pass")
	}

	// Years and percents stay with their own rule families
	pctFacts := []string{"Reduced page load time by 40%", "Shipped in 2023"}
	if fabricated, _ := DetectFabrication("In 2023 I reduced page load time by 40%.", pctFacts, "Acme"); fabricated {
		t.Error("Expected backed year and percent to pass the number rule")
	}
}

func TestDetectFabrication_NoAllowedFacts(t *testing.T) {
	fabricated, reasons := DetectFabrication("I hold a PhD from 1999.", nil, "Acme")
	if fabricated || reasons != nil {
		t.Errorf("Expected no fabrication detection without an allowed-fact set, got %v %v", fabricated, reasons)
	}
}

func TestRun_CombinesChecks(t *testing.T) {
	spec := model.PromptSpec{
		ID:            "p1",
		Channel:       model.ChannelEmail,
		RecipientType: model.RecipientRecruiter,
		Company:       "Acme",
		TargetRole:    "Backend Engineer",
		Tone:          "professional",
		MaxWords:      50,
		AllowedFacts:  []string{"Two years of Go experience", "github.com/someone"},
		MustInclude:   []string{"github.com/someone"},
	}

	pass := "Hello, I have two years of Go experience and my work is at github.com/someone. I would welcome a short conversation about the Backend Engineer role at Acme."
	result := Run(spec, pass)
	if !result.OverallPass {
		t.Errorf("Expected clean message to pass, notes: %s", result.Notes)
	}
	if result.Notes != "All checks passed" {
		t.Errorf("Expected all-passed note, got %q", result.Notes)
	}

	fail := "yo! I won an award at my last job!!! Find me at github.com/someone."
	result = Run(spec, fail)
	if result.OverallPass {
		t.Error("Expected failing message to fail overall")
	}
	if result.ToneOK {
		t.Error("Expected tone check to fail")
	}
	if !result.AddsNewFacts {
		t.Error("Expected award claim to count as a new fact")
	}
	if result.Notes == "" || result.Notes == "All checks passed" {
		t.Errorf("Expected failure notes, got %q", result.Notes)
	}
}

func TestRun_IndependentChecks(t *testing.T) {
	// A word-limit failure must not mask a must-include failure
	spec := model.PromptSpec{
		ID:            "p2",
		Channel:       model.ChannelLinkedInDM,
		RecipientType: model.RecipientFounder,
		Company:       "Acme",
		MaxWords:      3,
		AllowedFacts:  []string{"Go experience"},
		MustInclude:   []string{"portfolio"},
	}

	result := Run(spec, "This message is longer than three words.")
	if result.WithinWordLimit {
		t.Error("Expected word limit to fail")
	}
	if result.MustIncludeOK {
		t.Error("Expected must-include to fail independently")
	}
	if !strings.Contains(result.Notes, "Missing: portfolio") {
		t.Errorf("Expected missing item in notes, got %q", result.Notes)
	}
}
