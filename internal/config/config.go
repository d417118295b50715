package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"

	"panda-api/pkg/confkit"
	exchangepkg "panda-api/pkg/exchange"
	metricspkg "panda-api/pkg/metrics"
)

// MetricsConf configures the analytics backend client. Empty values fall
// back to the PANDA_BACKEND_API_URL / PANDA_API_KEY environment.
type MetricsConf struct {
	BaseURL        string `json:",optional"`
	APIKey         string `json:",optional"`
	TimeoutSeconds int    `json:",default=30"`
}

// Options translates the section into client options, leaving unset
// values to the client's own environment fallback.
func (m *MetricsConf) Options() []metricspkg.Option {
	var opts []metricspkg.Option
	if strings.TrimSpace(m.BaseURL) != "" {
		opts = append(opts, metricspkg.WithBaseURL(m.BaseURL))
	}
	if strings.TrimSpace(m.APIKey) != "" {
		opts = append(opts, metricspkg.WithAPIKey(m.APIKey))
	}
	if m.TimeoutSeconds > 0 {
		opts = append(opts, metricspkg.WithTimeout(time.Duration(m.TimeoutSeconds)*time.Second))
	}
	return opts
}

// LoadMetricsConf reads a metrics section file with env expansion.
func LoadMetricsConf(path string) (*MetricsConf, error) {
	return confkit.LoadFile[MetricsConf](path, true)
}

// ExportConf controls where export operations write files.
type ExportConf struct {
	OutputDir string `json:",default=exports"`
}

type Config struct {
	rest.RestConf
	// Env indicates the running environment: test | dev | prod
	Env    string `json:",default=test"`
	Export ExportConf

	Exchange confkit.Section[exchangepkg.Config] `json:",optional"`
	Metrics  confkit.Section[MetricsConf]        `json:",optional"`

	mainPath string
	baseDir  string
}

func (c *Config) IsTestEnv() bool {
	return c.Env == "test" || c.Env == ""
}

func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	confkit.LoadDotenvOnce()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	var cfg Config
	if err := conf.Load(absPath, &cfg, conf.UseEnv()); err != nil {
		return nil, fmt.Errorf("load config %s: %w", absPath, err)
	}

	cfg.mainPath = absPath
	cfg.baseDir = filepath.Dir(absPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.hydrateSections(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "", "test", "dev", "prod":
		if strings.TrimSpace(c.Env) == "" {
			c.Env = "test"
		}
	default:
		return errors.New("config: env must be one of test|dev|prod")
	}
	if strings.TrimSpace(c.Export.OutputDir) == "" {
		return errors.New("config: export.outputDir is required")
	}
	return nil
}

func (c *Config) hydrateSections() error {
	base := c.baseDir

	if err := c.Exchange.Hydrate(base, exchangepkg.LoadConfig); err != nil {
		return fmt.Errorf("load exchange config: %w", err)
	}
	if err := c.Metrics.Hydrate(base, LoadMetricsConf); err != nil {
		return fmt.Errorf("load metrics config: %w", err)
	}
	return nil
}

// MetricsOptions flattens the hydrated metrics section; an absent
// section yields no options and the client falls back to environment
// configuration.
func (c *Config) MetricsOptions() []metricspkg.Option {
	if c.Metrics.Value == nil {
		return nil
	}
	return c.Metrics.Value.Options()
}

func (c *Config) MainPath() string {
	return c.mainPath
}

func (c *Config) BaseDir() string {
	return c.baseDir
}
