package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/outreachlint/outreachlint/internal/eval"
	"github.com/outreachlint/outreachlint/internal/llm"
	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/outreachlint/outreachlint/internal/report"
	"github.com/spf13/cobra"
)

var (
	evalRuns        int
	evalProvider    string
	evalModel       string
	evalConcurrency int
	evalOutputDir   string
	evalNoCache     bool
	evalFactsFile   string
	evalHighStakes  bool
	evalEnforce     bool
	evalTimeout     time.Duration
)

// evalCmd represents the eval command
var evalCmd = &cobra.Command{
	Use:   "eval <prompts-file>",
	Short: "Evaluate generated outreach messages for a set of prompts",
	Long: `Eval generates R outreach messages per prompt spec and runs the
deterministic check battery on each one:
- Word limit (whitespace tokenization)
- Required content (case-insensitive substring match)
- Professional tone heuristics
- Fabricated facts outside the allowed list

It then aggregates pass rate, stability, and overconfidence per prompt
and per channel/recipient group, and writes a CSV of runs plus a JSON
summary.

Example:
  outreachlint eval prompts.yaml
  outreachlint eval prompts.yaml --runs 5 --provider openai --model gpt-4o-mini
  outreachlint eval prompts.yaml --facts facts.yaml --high-stakes --enforce-language`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	// Evaluation flags
	evalCmd.Flags().IntVar(&evalRuns, "runs", 3, "generation runs per prompt")
	evalCmd.Flags().IntVar(&evalConcurrency, "concurrency", 1, "prompts evaluated in parallel")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", 10*time.Minute, "overall evaluation timeout")

	// LLM flags
	evalCmd.Flags().StringVar(&evalProvider, "provider", "openai", "generation provider (openai, anthropic, ollama)")
	evalCmd.Flags().StringVar(&evalModel, "model", "gpt-4o-mini", "generation model name")
	evalCmd.Flags().BoolVar(&evalNoCache, "no-cache", false, "disable generation response cache")

	// Trust layer flags
	evalCmd.Flags().StringVar(&evalFactsFile, "facts", "", "annotated facts file (YAML)")
	evalCmd.Flags().BoolVar(&evalHighStakes, "high-stakes", false, "enable the high-stakes trust layer")
	evalCmd.Flags().BoolVar(&evalEnforce, "enforce-language", false, "rewrite unverified high-stakes facts to cautious phrasing before generation")

	// Output flags
	evalCmd.Flags().StringVar(&evalOutputDir, "output-dir", "./outreachlint-results", "directory for CSV and JSON reports")
}

func runEval(cmd *cobra.Command, args []string) error {
	promptsFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), evalTimeout)
	defer cancel()

	specs, err := model.LoadPromptSpecs(promptsFile)
	if err != nil {
		return fmt.Errorf("load prompts: %w", err)
	}
	if len(specs) == 0 {
		return fmt.Errorf("no prompt specs found in %s", promptsFile)
	}

	var facts []model.AnnotatedFact
	if evalFactsFile != "" {
		facts, err = model.LoadAnnotatedFacts(evalFactsFile)
		if err != nil {
			return fmt.Errorf("load facts: %w", err)
		}
	}

	// Defaults and config file first, then flags on top
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("runs") {
		cfg.Eval.RunsPerPrompt = evalRuns
	}
	if flags.Changed("concurrency") {
		cfg.Eval.Concurrency = evalConcurrency
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !evalNoCache
	}
	if flags.Changed("high-stakes") {
		cfg.HighStakes.Enabled = evalHighStakes
	}
	if flags.Changed("enforce-language") {
		cfg.HighStakes.Enforce = evalEnforce
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = evalOutputDir
	}
	cfg.Output.Verbose = verbose

	if flags.Changed("provider") || cfg.LLM.Provider == "" {
		cfg.LLM.Provider = evalProvider
	}
	if flags.Changed("model") || cfg.LLM.Model == "" {
		cfg.LLM.Model = evalModel
	}

	// Environment takes precedence over any key in the config file
	switch strings.ToLower(cfg.LLM.Provider) {
	case "openai":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			cfg.LLM.APIKey = key
		}
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("create provider: %w", err)
	}
	if provider == nil {
		return fmt.Errorf("no generation provider configured")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Prompts: %d\n", len(specs))
		fmt.Fprintf(os.Stderr, "Runs per prompt: %d\n", cfg.Eval.RunsPerPrompt)
		fmt.Fprintf(os.Stderr, "Provider: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		if cfg.HighStakes.Enabled {
			fmt.Fprintf(os.Stderr, "High-stakes layer: on (enforce=%v)\n", cfg.HighStakes.Enforce)
		}
		fmt.Fprintln(os.Stderr)
	}

	runner := eval.NewRunner(provider, cfg)
	if verbose {
		runner.SetObserver(func(r model.RunResult) {
			status := "FAIL"
			if r.OverallPass {
				status = "PASS"
			}
			fmt.Fprintf(os.Stderr, "  %s run %d: %s (confidence %.2f)\n", r.PromptID, r.RunIndex, status, r.Confidence)
		})
	}

	results := runner.EvaluateAll(ctx, specs, facts)
	summary := eval.Summarize(results)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	renderer := report.NewRenderer()
	csvPath := filepath.Join(cfg.Output.Dir, "runs.csv")
	jsonPath := filepath.Join(cfg.Output.Dir, "summary.json")

	if err := renderer.WriteCSV(results, csvPath); err != nil {
		return fmt.Errorf("write CSV: %w", err)
	}
	if err := renderer.WriteSummaryJSON(summary, jsonPath); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	renderer.PrintSummary(os.Stdout, summary)

	if verbose {
		fmt.Fprintf(os.Stderr, "\nWrote %s and %s\n", csvPath, jsonPath)
	}

	return nil
}
