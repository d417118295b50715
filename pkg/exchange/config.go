package exchange

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures per-exchange adapter settings. Keys are exchange names;
// the composition root decides which names it knows how to build.
type Config struct {
	Exchanges map[string]*AdapterConfig `yaml:"exchanges"`
}

// AdapterConfig overrides one adapter's endpoints and tuning. Fields not
// meaningful for a given vendor are ignored by its builder.
type AdapterConfig struct {
	BaseURL        string `yaml:"base_url"`
	SpotBaseURL    string `yaml:"spot_base_url"`
	FuturesBaseURL string `yaml:"futures_base_url"`
	QuoteAsset     string `yaml:"quote_asset"`
	MaxAttempts    int    `yaml:"max_attempts"`

	CacheTTLRaw string        `yaml:"cache_ttl"`
	CacheTTL    time.Duration `yaml:"-"`
	TimeoutRaw  string        `yaml:"timeout"`
	Timeout     time.Duration `yaml:"-"`
}

// LoadConfig reads adapter configuration from disk.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open exchange config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read exchange config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal exchange config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	if c.Exchanges == nil {
		c.Exchanges = make(map[string]*AdapterConfig)
	}
	for name, adapter := range c.Exchanges {
		if adapter == nil {
			adapter = &AdapterConfig{}
			c.Exchanges[name] = adapter
		}
		adapter.expandEnv()
		if err := adapter.parseDurations(name); err != nil {
			return err
		}
	}
	return nil
}

func (a *AdapterConfig) expandEnv() {
	a.BaseURL = strings.TrimSpace(os.ExpandEnv(a.BaseURL))
	a.SpotBaseURL = strings.TrimSpace(os.ExpandEnv(a.SpotBaseURL))
	a.FuturesBaseURL = strings.TrimSpace(os.ExpandEnv(a.FuturesBaseURL))
	a.QuoteAsset = strings.TrimSpace(os.ExpandEnv(a.QuoteAsset))
	a.CacheTTLRaw = strings.TrimSpace(os.ExpandEnv(a.CacheTTLRaw))
	a.TimeoutRaw = strings.TrimSpace(os.ExpandEnv(a.TimeoutRaw))
}

func (a *AdapterConfig) parseDurations(name string) error {
	parse := func(field, raw string) (time.Duration, error) {
		if raw == "" {
			return 0, nil
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, fmt.Errorf("exchange %s: invalid %s %q: %w", name, field, raw, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("exchange %s: %s must be positive, got %s", name, field, d)
		}
		return d, nil
	}

	var err error
	if a.CacheTTL, err = parse("cache_ttl", a.CacheTTLRaw); err != nil {
		return err
	}
	if a.Timeout, err = parse("timeout", a.TimeoutRaw); err != nil {
		return err
	}
	return nil
}

// Validate checks the structural invariants. Whether a name maps to a
// known adapter is decided where the registry is assembled.
func (c *Config) Validate() error {
	for name, adapter := range c.Exchanges {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("exchange config: exchange name cannot be empty")
		}
		if adapter == nil {
			return fmt.Errorf("exchange config: exchange %s is nil", name)
		}
		if adapter.MaxAttempts < 0 {
			return fmt.Errorf("exchange config: exchange %s max_attempts cannot be negative", name)
		}
	}
	return nil
}

// For returns the settings for name, or an empty config when none were
// provided.
func (c *Config) For(name string) *AdapterConfig {
	if c == nil || c.Exchanges == nil {
		return &AdapterConfig{}
	}
	if adapter, ok := c.Exchanges[strings.ToLower(name)]; ok && adapter != nil {
		return adapter
	}
	return &AdapterConfig{}
}
