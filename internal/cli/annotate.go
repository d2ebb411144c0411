package cli

import (
	"fmt"
	"os"

	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/outreachlint/outreachlint/internal/trust"
	"github.com/spf13/cobra"
)

var (
	annotateOut    string
	annotateStatus string
)

// annotateCmd represents the annotate command
var annotateCmd = &cobra.Command{
	Use:   "annotate <facts-file>",
	Short: "Annotate extracted facts with trust metadata",
	Long: `Annotate classifies each fact as high-stakes or normal and stamps it
with a verification status. High-stakes facts are claims in impact,
awards, or education categories, or claims naming well-known venues,
companies, or institutions: the ones most damaging if fabricated.

Facts start unverified. Edit the output file to mark facts verified
once you have a supporting URL; the verify command probes those URLs.

Example:
  outreachlint annotate facts.yaml --out annotated.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	annotateCmd.Flags().StringVar(&annotateOut, "out", "annotated.yaml", "output path for annotated facts")
	annotateCmd.Flags().StringVar(&annotateStatus, "status", "unverified", "initial verification status (verified, unverified)")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	facts, err := model.LoadFacts(args[0])
	if err != nil {
		return fmt.Errorf("load facts: %w", err)
	}
	if len(facts) == 0 {
		return fmt.Errorf("no facts found in %s", args[0])
	}

	status := model.VerificationStatus(annotateStatus)
	if status != model.StatusVerified && status != model.StatusUnverified {
		return fmt.Errorf("invalid status %q (want verified or unverified)", annotateStatus)
	}

	annotated := trust.AnnotateAll(facts, status)

	highStakes := 0
	for _, f := range annotated {
		if f.TrustFlag == model.TrustHighStakes {
			highStakes++
		}
	}

	if err := model.SaveAnnotatedFacts(annotated, annotateOut); err != nil {
		return fmt.Errorf("save annotated facts: %w", err)
	}

	fmt.Printf("Annotated %d facts (%d high-stakes) -> %s\n", len(annotated), highStakes, annotateOut)

	for _, warning := range trust.Inconsistencies(annotated) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", warning)
	}

	return nil
}
