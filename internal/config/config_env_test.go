package config

import (
	"os"
	"path/filepath"
	"testing"

	"panda-api/pkg/confkit"
	"panda-api/pkg/exchange"
)

// Test_hydrateSections_withEnvAndSectionFiles verifies env expansion and
// per-section hydration without going through go-zero conf.Load.
func Test_hydrateSections_withEnvAndSectionFiles(t *testing.T) {
	dir := t.TempDir()

	// Prepare exchanges.yaml using env placeholders
	exchangesYAML := []byte(`
exchanges:
  hyperliquid:
    base_url: ${HLIQ_BASE}
    timeout: ${HLIQ_TIMEOUT}
  binance:
    quote_asset: USDC
`)
	exchPath := filepath.Join(dir, "exchanges.yaml")
	if err := os.WriteFile(exchPath, exchangesYAML, 0o600); err != nil {
		t.Fatalf("write exchanges.yaml: %v", err)
	}

	// Prepare metrics.yaml using env placeholders
	metricsYAML := []byte(`
BaseURL: ${METRICS_BASE}
APIKey: ${METRICS_KEY}
`)
	metricsPath := filepath.Join(dir, "metrics.yaml")
	if err := os.WriteFile(metricsPath, metricsYAML, 0o600); err != nil {
		t.Fatalf("write metrics.yaml: %v", err)
	}

	// Set envs consumed by the files above
	t.Setenv("HLIQ_BASE", "https://api.hyperliquid.local/info")
	t.Setenv("HLIQ_TIMEOUT", "7s")
	t.Setenv("METRICS_BASE", "https://metrics.local")
	t.Setenv("METRICS_KEY", "hydrate-key")

	// Construct top-level config and hydrate sections
	cfg := &Config{
		Env:      "test",
		Export:   ExportConf{OutputDir: "exports"},
		Exchange: confkit.Section[exchange.Config]{File: "exchanges.yaml"},
		Metrics:  confkit.Section[MetricsConf]{File: "metrics.yaml"},
	}
	cfg.baseDir = dir
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := cfg.hydrateSections(); err != nil {
		t.Fatalf("hydrateSections: %v", err)
	}

	if cfg.Exchange.Value == nil {
		t.Fatalf("Exchange section not hydrated")
	}
	hl := cfg.Exchange.Value.For("hyperliquid")
	if got := hl.BaseURL; got != "https://api.hyperliquid.local/info" {
		t.Fatalf("hyperliquid base_url not expanded, got %q", got)
	}
	if got := hl.Timeout.String(); got != "7s" {
		t.Fatalf("hyperliquid timeout not parsed, got %s", got)
	}
	if got := cfg.Exchange.Value.For("binance").QuoteAsset; got != "USDC" {
		t.Fatalf("binance quote_asset got %q", got)
	}
	if got := cfg.Exchange.File; got != exchPath {
		t.Fatalf("Exchange.File not resolved, got %q want %q", got, exchPath)
	}

	if cfg.Metrics.Value == nil {
		t.Fatalf("Metrics section not hydrated")
	}
	if got := cfg.Metrics.Value.BaseURL; got != "https://metrics.local" {
		t.Fatalf("metrics BaseURL not expanded, got %q", got)
	}
	if got := cfg.Metrics.Value.APIKey; got != "hydrate-key" {
		t.Fatalf("metrics APIKey not expanded, got %q", got)
	}
	if got := cfg.Metrics.Value.TimeoutSeconds; got != 30 {
		t.Fatalf("metrics TimeoutSeconds not defaulted, got %d", got)
	}
}

// Test_hydrateSections_skipsEmptyFiles confirms absent section files leave
// the sections nil instead of failing.
func Test_hydrateSections_skipsEmptyFiles(t *testing.T) {
	cfg := &Config{Env: "test", Export: ExportConf{OutputDir: "exports"}}
	cfg.baseDir = t.TempDir()
	if err := cfg.hydrateSections(); err != nil {
		t.Fatalf("hydrateSections: %v", err)
	}
	if cfg.Exchange.Value != nil || cfg.Metrics.Value != nil {
		t.Fatalf("sections should stay nil when no files are configured")
	}
	if opts := cfg.MetricsOptions(); opts != nil {
		t.Fatalf("expected no metrics options, got %d", len(opts))
	}
}

// TestLoad_MainConfig runs the full Load path and checks defaults.
func TestLoad_MainConfig(t *testing.T) {
	dir := t.TempDir()
	mainYAML := []byte(`
Name: panda-api-test
Host: 127.0.0.1
Port: 0
`)
	mainPath := filepath.Join(dir, "panda-api.yaml")
	if err := os.WriteFile(mainPath, mainYAML, 0o600); err != nil {
		t.Fatalf("write main config: %v", err)
	}

	cfg, err := Load(mainPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("Env not defaulted, got %q", cfg.Env)
	}
	if cfg.Export.OutputDir != "exports" {
		t.Fatalf("Export.OutputDir not defaulted, got %q", cfg.Export.OutputDir)
	}
	if got := cfg.MainPath(); got != mainPath {
		t.Fatalf("MainPath got %q want %q", got, mainPath)
	}
	if got := cfg.BaseDir(); got != dir {
		t.Fatalf("BaseDir got %q want %q", got, dir)
	}
}
