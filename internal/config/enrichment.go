package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkgconfig "journal-radar/pkg/config"
)

// Enrichment provider names accepted in ENRICHMENT_PROVIDER.
const (
	ProviderDeepSeek = "deepseek"
	ProviderClaude   = "claude"
)

// keyFileName is the local fallback for the DeepSeek API key. It is
// checked in the working directory first, then next to the binary.
const keyFileName = "key.txt"

// EnrichmentConfig selects which language model backs selection,
// summarization and trend synthesis, and carries its credentials.
//
// Environment variables:
//   - ENRICHMENT_PROVIDER: "deepseek" (default) or "claude"
//   - DEEPSEEK_API_KEY: DeepSeek key; falls back to a local key.txt file
//   - ANTHROPIC_API_KEY: Claude key
//
// Missing credentials are not an error. The pipeline runs in degraded
// mode without a model, so a misconfigured key never blocks the digest.
type EnrichmentConfig struct {
	Provider string
	APIKey   string
}

// LoadEnrichmentConfig reads the enrichment provider selection and its
// API key from the environment.
func LoadEnrichmentConfig() (*EnrichmentConfig, error) {
	provider := strings.ToLower(pkgconfig.GetEnvString("ENRICHMENT_PROVIDER", ProviderDeepSeek))

	switch provider {
	case ProviderDeepSeek:
		return &EnrichmentConfig{Provider: provider, APIKey: deepSeekKey()}, nil
	case ProviderClaude:
		return &EnrichmentConfig{Provider: provider, APIKey: os.Getenv("ANTHROPIC_API_KEY")}, nil
	default:
		return nil, fmt.Errorf("unknown ENRICHMENT_PROVIDER %q (expected %q or %q)",
			provider, ProviderDeepSeek, ProviderClaude)
	}
}

// Configured reports whether a usable API key is present.
func (c *EnrichmentConfig) Configured() bool {
	return c.APIKey != ""
}

// deepSeekKey resolves the DeepSeek API key: the environment variable
// wins, then a key.txt beside the working directory or the binary.
func deepSeekKey() string {
	if key := strings.TrimSpace(os.Getenv("DEEPSEEK_API_KEY")); key != "" {
		return key
	}

	candidates := []string{keyFileName}
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), keyFileName))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if key := strings.TrimSpace(string(data)); key != "" {
			return key
		}
	}
	return ""
}
