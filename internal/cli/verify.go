package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/outreachlint/outreachlint/internal/verify"
	"github.com/spf13/cobra"
)

var (
	verifyTimeout  time.Duration
	verifyWorkers  int
	verifyNoRobots bool
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <annotated-facts-file>",
	Short: "Probe verification URLs for annotated facts",
	Long: `Verify sends a HEAD request to each fact's verification URL and
reports whether the link is reachable. A reachable link does not prove
the claim; an unreachable one flags an annotation worth revisiting.

Facts without a URL are skipped; verified facts without a URL produce
an advisory warning. robots.txt is respected unless --no-robots is set.

Example:
  outreachlint verify annotated.yaml
  outreachlint verify annotated.yaml --workers 10 --timeout 5s`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().DurationVar(&verifyTimeout, "timeout", 10*time.Second, "per-request timeout")
	verifyCmd.Flags().IntVar(&verifyWorkers, "workers", 20, "concurrent probes")
	verifyCmd.Flags().BoolVar(&verifyNoRobots, "no-robots", false, "ignore robots.txt")
}

func runVerify(cmd *cobra.Command, args []string) error {
	facts, err := model.LoadAnnotatedFacts(args[0])
	if err != nil {
		return fmt.Errorf("load facts: %w", err)
	}
	if len(facts) == 0 {
		return fmt.Errorf("no facts found in %s", args[0])
	}

	cfg := model.DefaultConfig().Verify
	cfg.Timeout = verifyTimeout
	cfg.MaxWorkers = verifyWorkers
	cfg.RespectRobots = !verifyNoRobots

	ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout*time.Duration(len(facts)))
	defer cancel()

	verifier := verify.NewVerifier(cfg)
	results := verifier.Verify(ctx, facts)

	accessible, broken, skipped := 0, 0, 0
	for _, r := range results {
		switch {
		case r.Skipped != "":
			skipped++
			if verbose {
				fmt.Fprintf(os.Stderr, "  SKIP %s: %s\n", r.FactText, r.Skipped)
			}
		case r.Accessible:
			accessible++
			if verbose {
				fmt.Fprintf(os.Stderr, "  OK   %s (%d)\n", r.URL, r.StatusCode)
			}
		default:
			broken++
			if r.Error != "" {
				fmt.Printf("  BROKEN %s: %s\n", r.URL, r.Error)
			} else {
				fmt.Printf("  BROKEN %s (status %d)\n", r.URL, r.StatusCode)
			}
		}
		if r.Warning != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", r.Warning)
		}
	}

	fmt.Printf("Probed %d facts: %d accessible, %d broken, %d skipped\n",
		len(results), accessible, broken, skipped)

	if broken > 0 {
		return fmt.Errorf("%d verification links unreachable", broken)
	}
	return nil
}
