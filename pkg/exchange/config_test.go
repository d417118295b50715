package exchange_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	exchange "panda-api/pkg/exchange"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("BINANCE_SPOT_URL", "https://spot.example.com")
	t.Cleanup(func() {
		os.Unsetenv("BINANCE_SPOT_URL")
	})

	configYAML := `
exchanges:
  binance:
    spot_base_url: ${BINANCE_SPOT_URL}
    futures_base_url: https://fapi.example.com
    quote_asset: USDT
    cache_ttl: 90s
    timeout: 45s
    max_attempts: 4
  hyperliquid:
    base_url: https://info.example.com
`
	path := filepath.Join(dir, "exchanges.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := exchange.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}

	binance := cfg.For("binance")
	if binance.SpotBaseURL != "https://spot.example.com" {
		t.Fatalf("env expansion failed: %s", binance.SpotBaseURL)
	}
	if binance.CacheTTL != 90*time.Second {
		t.Fatalf("unexpected cache ttl: %s", binance.CacheTTL)
	}
	if binance.Timeout != 45*time.Second {
		t.Fatalf("unexpected timeout: %s", binance.Timeout)
	}
	if binance.MaxAttempts != 4 {
		t.Fatalf("unexpected max attempts: %d", binance.MaxAttempts)
	}

	if cfg.For("hyperliquid").BaseURL != "https://info.example.com" {
		t.Fatalf("hyperliquid base url not loaded")
	}
}

func TestLoadConfigInvalidDuration(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
exchanges:
  bybit:
    cache_ttl: ninety
`
	path := filepath.Join(dir, "exchanges.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := exchange.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "cache_ttl") {
		t.Fatalf("expected cache_ttl error, got %v", err)
	}
}

func TestLoadConfigNegativeAttempts(t *testing.T) {
	cfg := strings.NewReader(`
exchanges:
  binance:
    max_attempts: -1
`)
	_, err := exchange.LoadConfigFromReader(cfg)
	if err == nil || !strings.Contains(err.Error(), "max_attempts") {
		t.Fatalf("expected max_attempts error, got %v", err)
	}
}

func TestConfigForUnknownExchange(t *testing.T) {
	cfg, err := exchange.LoadConfigFromReader(strings.NewReader(`exchanges: {}`))
	if err != nil {
		t.Fatalf("LoadConfigFromReader error: %v", err)
	}
	settings := cfg.For("binance")
	if settings == nil {
		t.Fatal("For must return an empty config, not nil")
	}
	if settings.SpotBaseURL != "" || settings.CacheTTL != 0 {
		t.Fatalf("expected zero-value settings, got %+v", settings)
	}
}
