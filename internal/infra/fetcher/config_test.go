package fetcher_test

import (
	"os"
	"testing"
	"time"

	"journal-radar/internal/infra/fetcher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()

	if !cfg.Enabled {
		t.Error("expected Enabled=true by default")
	}

	if cfg.Threshold != 200 {
		t.Errorf("expected Threshold=200, got %d", cfg.Threshold)
	}

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected Timeout=10s, got %v", cfg.Timeout)
	}

	if cfg.MaxBodySize != 10*1024*1024 {
		t.Errorf("expected MaxBodySize=10MB, got %d", cfg.MaxBodySize)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     fetcher.ContentFetchConfig
		wantErr bool
	}{
		{
			name: "valid config",
			cfg: fetcher.ContentFetchConfig{
				Enabled:     true,
				Threshold:   300,
				Timeout:     15 * time.Second,
				MaxBodySize: 20 * 1024 * 1024,
			},
			wantErr: false,
		},
		{
			name: "zero threshold is valid",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   0,
				Timeout:     10 * time.Second,
				MaxBodySize: 1024 * 1024,
			},
			wantErr: false,
		},
		{
			name: "negative threshold",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   -1,
				Timeout:     10 * time.Second,
				MaxBodySize: 1024 * 1024,
			},
			wantErr: true,
		},
		{
			name: "zero timeout",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   200,
				Timeout:     0,
				MaxBodySize: 1024 * 1024,
			},
			wantErr: true,
		},
		{
			name: "timeout above ceiling",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   200,
				Timeout:     5 * time.Minute,
				MaxBodySize: 1024 * 1024,
			},
			wantErr: true,
		},
		{
			name: "body size below minimum",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   200,
				Timeout:     10 * time.Second,
				MaxBodySize: 512,
			},
			wantErr: true,
		},
		{
			name: "body size above maximum",
			cfg: fetcher.ContentFetchConfig{
				Threshold:   200,
				Timeout:     10 * time.Second,
				MaxBodySize: 200 * 1024 * 1024,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		cfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() error = %v", err)
		}
		if cfg.Threshold != 200 {
			t.Errorf("expected Threshold=200, got %d", cfg.Threshold)
		}
	})

	t.Run("overrides from environment", func(t *testing.T) {
		os.Setenv("CONTENT_FETCH_ENABLED", "false")
		os.Setenv("CONTENT_FETCH_THRESHOLD", "500")
		os.Setenv("CONTENT_FETCH_TIMEOUT", "20s")
		defer func() {
			os.Unsetenv("CONTENT_FETCH_ENABLED")
			os.Unsetenv("CONTENT_FETCH_THRESHOLD")
			os.Unsetenv("CONTENT_FETCH_TIMEOUT")
		}()

		cfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() error = %v", err)
		}

		if cfg.Enabled {
			t.Error("expected Enabled=false")
		}
		if cfg.Threshold != 500 {
			t.Errorf("expected Threshold=500, got %d", cfg.Threshold)
		}
		if cfg.Timeout != 20*time.Second {
			t.Errorf("expected Timeout=20s, got %v", cfg.Timeout)
		}
	})

	t.Run("invalid values fall back to defaults", func(t *testing.T) {
		os.Setenv("CONTENT_FETCH_THRESHOLD", "not-a-number")
		defer os.Unsetenv("CONTENT_FETCH_THRESHOLD")

		cfg, err := fetcher.LoadConfigFromEnv()
		if err != nil {
			t.Fatalf("LoadConfigFromEnv() error = %v", err)
		}
		if cfg.Threshold != 200 {
			t.Errorf("expected default Threshold=200, got %d", cfg.Threshold)
		}
	})
}
