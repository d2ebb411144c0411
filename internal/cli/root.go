package cli

import (
	"fmt"
	"os"

	"github.com/outreachlint/outreachlint/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "outreachlint",
	Short: "Outreachlint - deterministic checks for LLM job-outreach messages",
	Long: `Outreachlint evaluates LLM-generated job outreach messages with
deterministic, reproducible checks: word limits, required content,
tone heuristics, and fabricated-fact detection against an approved
fact list.

It also classifies extracted profile facts as high-stakes (claims that
carry reputational risk if false), tracks a verification state per fact,
and can enforce cautious phrasing for unverified high-stakes claims
during generation.

Outreachlint measures how a model behaves; it never asserts what is true.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Outreachlint.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("outreachlint v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.outreachlint/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.outreachlint")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match OUTREACHLINT_*
	viper.SetEnvPrefix("OUTREACHLINT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: built-in defaults overlaid
// with whatever viper read from the config file and environment. Commands
// apply their own flags on top of the returned record.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
