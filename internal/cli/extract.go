package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/outreachlint/outreachlint/internal/extract"
	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/spf13/cobra"
)

var (
	extractOut        string
	extractHTML       bool
	extractEducation  string
	extractExperience string
	extractSkills     string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <profile-file>",
	Short: "Extract candidate facts from a profile document",
	Long: `Extract scans a plain-text or HTML profile (resume, bio, LinkedIn
export) for factual claims worth annotating: degrees, employment,
publications, awards, and quantified impact.

Extraction is heuristic. Review the output before feeding it to
annotate; extracted facts carry the exact source quote as evidence.

With --education/--experience/--skills, structured form input is used
instead of a profile file and carries full confidence.

Example:
  outreachlint extract resume.txt --out facts.yaml
  outreachlint extract profile.html --html --out facts.yaml
  outreachlint extract --education "BS in CS, 2022" --skills "Go, Python"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractOut, "out", "facts.yaml", "output path for extracted facts")
	extractCmd.Flags().BoolVar(&extractHTML, "html", false, "treat input as HTML and strip markup first")
	extractCmd.Flags().StringVar(&extractEducation, "education", "", "education fact (form input, skips heuristics)")
	extractCmd.Flags().StringVar(&extractExperience, "experience", "", "experience fact (form input, skips heuristics)")
	extractCmd.Flags().StringVar(&extractSkills, "skills", "", "skills fact (form input, skips heuristics)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	formInput := extractEducation != "" || extractExperience != "" || extractSkills != ""

	var facts []model.Fact
	switch {
	case formInput:
		facts = extract.FromForm(extractEducation, extractExperience, extractSkills)

	case len(args) == 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}

		extractor := extract.NewFactExtractor()
		if extractHTML || strings.HasSuffix(args[0], ".html") {
			facts, err = extractor.ExtractHTML(string(data))
			if err != nil {
				return fmt.Errorf("extract from HTML: %w", err)
			}
		} else {
			facts = extractor.Extract(string(data))
		}

	default:
		return fmt.Errorf("provide a profile file or form input flags")
	}

	if len(facts) == 0 {
		fmt.Println("No facts extracted")
		return nil
	}

	if err := model.SaveFacts(facts, extractOut); err != nil {
		return fmt.Errorf("save facts: %w", err)
	}

	fmt.Printf("Extracted %d facts -> %s\n", len(facts), extractOut)

	if verbose {
		for _, f := range facts {
			fmt.Fprintf(os.Stderr, "  [%s] %s\n", f.Category, f.Text)
		}
	}

	return nil
}
