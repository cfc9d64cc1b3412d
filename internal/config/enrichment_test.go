package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnrichmentConfig_DefaultsToDeepSeek(t *testing.T) {
	t.Setenv("ENRICHMENT_PROVIDER", "")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := LoadEnrichmentConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, cfg.Provider)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.True(t, cfg.Configured())
}

func TestLoadEnrichmentConfig_Claude(t *testing.T) {
	t.Setenv("ENRICHMENT_PROVIDER", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg, err := LoadEnrichmentConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderClaude, cfg.Provider)
	assert.Equal(t, "sk-ant-test", cfg.APIKey)
}

func TestLoadEnrichmentConfig_ProviderCaseInsensitive(t *testing.T) {
	t.Setenv("ENRICHMENT_PROVIDER", "DeepSeek")
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")

	cfg, err := LoadEnrichmentConfig()

	require.NoError(t, err)
	assert.Equal(t, ProviderDeepSeek, cfg.Provider)
}

func TestLoadEnrichmentConfig_UnknownProvider(t *testing.T) {
	t.Setenv("ENRICHMENT_PROVIDER", "gemini")

	_, err := LoadEnrichmentConfig()

	assert.Error(t, err)
}

func TestLoadEnrichmentConfig_MissingKeyIsNotError(t *testing.T) {
	t.Setenv("ENRICHMENT_PROVIDER", "deepseek")
	t.Setenv("DEEPSEEK_API_KEY", "")

	cfg, err := LoadEnrichmentConfig()

	require.NoError(t, err)
	assert.False(t, cfg.Configured())
}

func TestDeepSeekKey_FileFallback(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/key.txt", []byte("sk-from-file\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	assert.Equal(t, "sk-from-file", deepSeekKey())
}

func TestDeepSeekKey_EnvWinsOverFile(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "  sk-from-env  ")

	assert.Equal(t, "sk-from-env", deepSeekKey())
}
