package model

import "time"

// Config is the complete outreachlint configuration record. It is built once
// from defaults, config file, environment and flags, then passed explicitly
// into the components that need it - there is no process-wide mutable state.
type Config struct {
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
	Eval       EvalConfig       `yaml:"eval" mapstructure:"eval"`
	HighStakes HighStakesConfig `yaml:"high_stakes" mapstructure:"high_stakes"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit" mapstructure:"rate_limit"`
	Verify     VerifyConfig     `yaml:"verify" mapstructure:"verify"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the generation collaborator
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic", "ollama", "" (disabled)
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// EvalConfig configures the evaluation runner
type EvalConfig struct {
	RunsPerPrompt int `yaml:"runs_per_prompt" mapstructure:"runs_per_prompt"`
	Concurrency   int `yaml:"concurrency" mapstructure:"concurrency"` // Parallel prompts; 1 = sequential
}

// HighStakesConfig holds the trust layer feature toggles. These replace the
// ENABLE_HIGH_STAKES_LAYER / ENFORCE_HIGH_STAKES_LANGUAGE environment flags
// of earlier tooling.
type HighStakesConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"` // Annotate facts with trust metadata
	Enforce bool `yaml:"enforce" mapstructure:"enforce"` // Rewrite unverified high-stakes facts to cautious phrasing
}

// CacheConfig configures generation response caching
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RateLimitConfig throttles generation requests per API host
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// VerifyConfig configures verification URL probing
type VerifyConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	MaxWorkers    int           `yaml:"max_workers" mapstructure:"max_workers"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// OutputConfig configures report output
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "",
			Model:       "",
			Timeout:     30,
			MaxTokens:   800,
			Temperature: 0.2,
		},
		Eval: EvalConfig{
			RunsPerPrompt: 3,
			Concurrency:   1,
		},
		HighStakes: HighStakesConfig{
			Enabled: false,
			Enforce: false,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			BurstSize:         5,
		},
		Verify: VerifyConfig{
			Timeout:       10 * time.Second,
			MaxWorkers:    20,
			UserAgent:     "Outreachlint/0.1 (+https://github.com/outreachlint/outreachlint)",
			RespectRobots: true,
		},
		Output: OutputConfig{
			Dir:     "./outreachlint-results",
			Verbose: false,
		},
	}
}
