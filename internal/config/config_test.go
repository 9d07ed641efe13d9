package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finstmt/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:11434/api/generate", cfg.LLM.URL)
	assert.Equal(t, "llama3.1:8b", cfg.LLM.Model)
	assert.Equal(t, 120, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, 2, cfg.LLM.Retries)
	assert.Equal(t, 2.0, cfg.LLM.BackoffFactor)
	assert.Equal(t, 0.1, cfg.LLM.Temperature)
	assert.Equal(t, 5000, cfg.Segmenter.ChunkSize)
	assert.Equal(t, "prompts.yaml", cfg.Prompts.File)
	assert.Equal(t, "key_metrics", cfg.Prompts.Key)
	assert.Equal(t, 0.05, cfg.Validation.ToleranceRatio)
	assert.Equal(t, domain.SkipPolicyContinue, cfg.Extraction.Policy())

	require.NoError(t, cfg.Validate())
	require.NoError(t, cfg.ValidateForExtraction())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "llm:\n  model: mistral:7b\n  retries: 5\nsegmenter:\n  chunk_size: 2000\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mistral:7b", cfg.LLM.Model)
	assert.Equal(t, 5, cfg.LLM.Retries)
	assert.Equal(t, 2000, cfg.Segmenter.ChunkSize)
	// Untouched keys keep their defaults.
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.LLM.URL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: mistral:7b\n"), 0o644))

	t.Setenv("FINSTMT_LLM_MODEL", "qwen2.5:14b")
	t.Setenv("FINSTMT_SEGMENTER_CHUNK_SIZE", "1234")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "qwen2.5:14b", cfg.LLM.Model)
	assert.Equal(t, 1234, cfg.Segmenter.ChunkSize)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  retries: 9\n"), 0o644))
	t.Setenv("FINSTMT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.LLM.Retries)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero chunk size",
			mutate:  func(c *Config) { c.Segmenter.ChunkSize = 0 },
			wantErr: "chunk_size",
		},
		{
			name:    "negative tolerance",
			mutate:  func(c *Config) { c.Validation.ToleranceRatio = -0.1 },
			wantErr: "tolerance_ratio",
		},
		{
			name:    "unknown skip policy",
			mutate:  func(c *Config) { c.Extraction.SkipPolicy = "retry-forever" },
			wantErr: "skip_policy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateForExtraction(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing url",
			mutate:  func(c *Config) { c.LLM.URL = "" },
			wantErr: "llm.url",
		},
		{
			name:    "missing model",
			mutate:  func(c *Config) { c.LLM.Model = "" },
			wantErr: "llm.model",
		},
		{
			name:    "negative retries",
			mutate:  func(c *Config) { c.LLM.Retries = -1 },
			wantErr: "retries",
		},
		{
			name:    "zero backoff factor",
			mutate:  func(c *Config) { c.LLM.BackoffFactor = 0 },
			wantErr: "backoff_factor",
		},
		{
			name:    "missing prompt key",
			mutate:  func(c *Config) { c.Prompts.Key = "" },
			wantErr: "prompts.key",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.ValidateForExtraction()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLLMConfigTimeout(t *testing.T) {
	cfg := LLMConfig{TimeoutSeconds: 90}
	assert.Equal(t, "1m30s", cfg.Timeout().String())
}
