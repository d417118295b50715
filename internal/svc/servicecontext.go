package svc

import (
	"strings"
	"sync"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/config"
	exchangepkg "panda-api/pkg/exchange"
	"panda-api/pkg/exchange/binance"
	"panda-api/pkg/exchange/bybit"
	"panda-api/pkg/exchange/hyperliquid"
	metricspkg "panda-api/pkg/metrics"
)

type ServiceContext struct {
	Config   config.Config
	Registry *exchangepkg.Registry

	mu       sync.Mutex
	adapters map[string]exchangepkg.Exchange

	metrics    *metricspkg.Client
	metricsErr error
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config:   c,
		Registry: exchangepkg.NewRegistry(),
		adapters: make(map[string]exchangepkg.Exchange),
	}

	exCfg := c.Exchange.Value
	if exCfg == nil {
		exCfg = &exchangepkg.Config{}
	}

	svc.Registry.Register(exchangepkg.Info{
		Name:        binance.Name,
		Markets:     binance.Markets(),
		Description: binance.Description,
	}, func() (exchangepkg.Exchange, error) {
		return binance.New(binanceOptions(exCfg.For(binance.Name))...), nil
	})

	svc.Registry.Register(exchangepkg.Info{
		Name:        bybit.Name,
		Markets:     bybit.Markets(),
		Description: bybit.Description,
	}, func() (exchangepkg.Exchange, error) {
		return bybit.New(bybitOptions(exCfg.For(bybit.Name))...), nil
	})

	svc.Registry.Register(exchangepkg.Info{
		Name:        hyperliquid.Name,
		Markets:     hyperliquid.Markets(),
		Description: hyperliquid.Description,
	}, func() (exchangepkg.Exchange, error) {
		return hyperliquid.New(hyperliquidOptions(exCfg.For(hyperliquid.Name))...), nil
	})

	return svc
}

// Adapter returns the named exchange adapter, creating and caching it on
// first use so all requests share one HTTP client per vendor.
func (s *ServiceContext) Adapter(name string) (exchangepkg.Exchange, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	s.mu.Lock()
	defer s.mu.Unlock()
	if ex, ok := s.adapters[key]; ok {
		return ex, nil
	}
	ex, err := s.Registry.Create(key)
	if err != nil {
		return nil, err
	}
	s.adapters[key] = ex
	return ex, nil
}

// Metrics returns the analytics backend client, constructing it on first
// use. A configuration failure is cached so later callers see the same
// error instead of retrying construction.
func (s *ServiceContext) Metrics() (*metricspkg.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metrics != nil || s.metricsErr != nil {
		return s.metrics, s.metricsErr
	}
	s.metrics, s.metricsErr = metricspkg.NewClient(s.Config.MetricsOptions()...)
	return s.metrics, s.metricsErr
}

// Close releases every adapter and client created so far.
func (s *ServiceContext) Close() {
	s.mu.Lock()
	adapters := s.adapters
	s.adapters = make(map[string]exchangepkg.Exchange)
	client := s.metrics
	s.metrics = nil
	s.mu.Unlock()

	for name, ex := range adapters {
		if err := ex.Close(); err != nil {
			logx.Errorf("svc: close %s adapter: %v", name, err)
		}
	}
	if client != nil {
		client.Close()
	}
}

func binanceOptions(ac *exchangepkg.AdapterConfig) []binance.Option {
	var opts []binance.Option
	if ac.SpotBaseURL != "" {
		opts = append(opts, binance.WithSpotBaseURL(ac.SpotBaseURL))
	}
	if ac.FuturesBaseURL != "" {
		opts = append(opts, binance.WithFuturesBaseURL(ac.FuturesBaseURL))
	}
	if ac.QuoteAsset != "" {
		opts = append(opts, binance.WithQuoteAsset(ac.QuoteAsset))
	}
	if f := newFetcher(ac); f != nil {
		opts = append(opts, binance.WithFetcher(f))
	}
	if ac.CacheTTL > 0 {
		opts = append(opts, binance.WithCache(exchangepkg.NewPairCache(ac.CacheTTL)))
	}
	return opts
}

func bybitOptions(ac *exchangepkg.AdapterConfig) []bybit.Option {
	var opts []bybit.Option
	if ac.BaseURL != "" {
		opts = append(opts, bybit.WithBaseURL(ac.BaseURL))
	}
	if ac.QuoteAsset != "" {
		opts = append(opts, bybit.WithQuoteAsset(ac.QuoteAsset))
	}
	if f := newFetcher(ac); f != nil {
		opts = append(opts, bybit.WithFetcher(f))
	}
	if ac.CacheTTL > 0 {
		opts = append(opts, bybit.WithCache(exchangepkg.NewPairCache(ac.CacheTTL)))
	}
	return opts
}

func hyperliquidOptions(ac *exchangepkg.AdapterConfig) []hyperliquid.Option {
	var opts []hyperliquid.Option
	if ac.BaseURL != "" {
		opts = append(opts, hyperliquid.WithBaseURL(ac.BaseURL))
	}
	if f := newFetcher(ac); f != nil {
		opts = append(opts, hyperliquid.WithFetcher(f))
	}
	if ac.CacheTTL > 0 {
		opts = append(opts, hyperliquid.WithCache(exchangepkg.NewPairCache(ac.CacheTTL)))
	}
	return opts
}

func newFetcher(ac *exchangepkg.AdapterConfig) *exchangepkg.Fetcher {
	var fopts []exchangepkg.FetcherOption
	if ac.MaxAttempts > 0 {
		fopts = append(fopts, exchangepkg.WithMaxAttempts(ac.MaxAttempts))
	}
	if ac.Timeout > 0 {
		fopts = append(fopts, exchangepkg.WithTimeout(ac.Timeout))
	}
	if len(fopts) == 0 {
		return nil
	}
	return exchangepkg.NewFetcher(fopts...)
}
