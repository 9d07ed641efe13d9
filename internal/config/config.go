package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"finstmt/internal/domain"
)

// Config holds all pipeline configuration. It is assembled once at
// startup (defaults, then config file, then environment, in that
// precedence order) and passed explicitly to every component.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Segmenter  SegmenterConfig  `mapstructure:"segmenter"`
	Prompts    PromptsConfig    `mapstructure:"prompts"`
	Validation ValidationConfig `mapstructure:"validation"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
}

// LLMConfig holds completion-endpoint settings.
type LLMConfig struct {
	URL            string  `mapstructure:"url"`
	Model          string  `mapstructure:"model"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	Retries        int     `mapstructure:"retries"`
	BackoffFactor  float64 `mapstructure:"backoff_factor"`
	Temperature    float64 `mapstructure:"temperature"`
}

// Timeout returns the per-request timeout as a duration.
func (c *LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SegmenterConfig holds document chunking settings.
type SegmenterConfig struct {
	ChunkSize int `mapstructure:"chunk_size"`
}

// PromptsConfig locates the prompt template to use for extraction.
type PromptsConfig struct {
	File string `mapstructure:"file"`
	Key  string `mapstructure:"key"`
}

// ValidationConfig holds balance-check settings.
type ValidationConfig struct {
	ToleranceRatio float64 `mapstructure:"tolerance_ratio"`
}

// ExtractionConfig holds orchestrator-level settings.
type ExtractionConfig struct {
	SkipPolicy string `mapstructure:"skip_policy"`
}

// Policy returns the configured skip policy as a domain value.
func (c *ExtractionConfig) Policy() domain.SkipPolicy {
	return domain.SkipPolicy(c.SkipPolicy)
}

// Load reads configuration with the FINSTMT_ environment prefix,
// optionally layered over a YAML config file. An empty path falls back
// to FINSTMT_CONFIG, then to env-and-defaults only.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FINSTMT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// LLM defaults (Ollama-style local endpoint)
	v.SetDefault("llm.url", "http://localhost:11434/api/generate")
	v.SetDefault("llm.model", "llama3.1:8b")
	v.SetDefault("llm.timeout_seconds", 120)
	v.SetDefault("llm.retries", 2)
	v.SetDefault("llm.backoff_factor", 2.0)
	v.SetDefault("llm.temperature", 0.1)

	// Segmenter defaults
	v.SetDefault("segmenter.chunk_size", 5000)

	// Prompt defaults
	v.SetDefault("prompts.file", "prompts.yaml")
	v.SetDefault("prompts.key", "key_metrics")

	// Validation defaults
	v.SetDefault("validation.tolerance_ratio", 0.05)

	// Extraction defaults
	v.SetDefault("extraction.skip_policy", string(domain.SkipPolicyContinue))

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"llm.url":                     "FINSTMT_LLM_URL",
		"llm.model":                   "FINSTMT_LLM_MODEL",
		"llm.timeout_seconds":         "FINSTMT_LLM_TIMEOUT_SECONDS",
		"llm.retries":                 "FINSTMT_LLM_RETRIES",
		"llm.backoff_factor":          "FINSTMT_LLM_BACKOFF_FACTOR",
		"llm.temperature":             "FINSTMT_LLM_TEMPERATURE",
		"segmenter.chunk_size":        "FINSTMT_SEGMENTER_CHUNK_SIZE",
		"prompts.file":                "FINSTMT_PROMPTS_FILE",
		"prompts.key":                 "FINSTMT_PROMPTS_KEY",
		"validation.tolerance_ratio":  "FINSTMT_VALIDATION_TOLERANCE_RATIO",
		"extraction.skip_policy":      "FINSTMT_EXTRACTION_SKIP_POLICY",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	if path == "" {
		path = os.Getenv("FINSTMT_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks settings every pipeline stage relies on.
func (c *Config) Validate() error {
	if c.Segmenter.ChunkSize <= 0 {
		return errors.New("segmenter.chunk_size must be positive")
	}
	if c.Validation.ToleranceRatio < 0 {
		return errors.New("validation.tolerance_ratio must not be negative")
	}
	if !c.Extraction.Policy().Valid() {
		return fmt.Errorf("extraction.skip_policy must be %q or %q", domain.SkipPolicyContinue, domain.SkipPolicyAbort)
	}
	return nil
}

// ValidateForExtraction checks the settings the extraction stage needs
// before any model call is made.
func (c *Config) ValidateForExtraction() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.LLM.URL == "" {
		return errors.New("llm.url is required")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if c.LLM.Retries < 0 {
		return errors.New("llm.retries must not be negative")
	}
	if c.LLM.BackoffFactor <= 0 {
		return errors.New("llm.backoff_factor must be positive")
	}
	if c.Prompts.File == "" {
		return errors.New("prompts.file is required")
	}
	if c.Prompts.Key == "" {
		return errors.New("prompts.key is required")
	}
	return nil
}
