// Package binance adapts Binance spot and USD-margined futures market data
// to the uniform exchange contract.
package binance

import (
	"context"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

const (
	// Name is the registry identifier for this adapter.
	Name = "binance"

	// Description is the human-readable summary exposed by the registry.
	Description = "Binance spot and USDT-margined perpetual futures market data"

	defaultSpotBaseURL    = "https://api.binance.com"
	defaultFuturesBaseURL = "https://fapi.binance.com"
	defaultQuoteAsset     = "USDT"
)

// Markets returns the market types this adapter serves. Pure metadata,
// callable without an instance.
func Markets() []exchange.MarketType {
	return []exchange.MarketType{exchange.MarketSpot, exchange.MarketFutures}
}

// Adapter implements the exchange contract against Binance REST endpoints.
type Adapter struct {
	spotBaseURL    string
	futuresBaseURL string
	quoteAsset     string
	fetcher        *exchange.Fetcher
	cache          *exchange.PairCache
}

var (
	_ exchange.Exchange                    = (*Adapter)(nil)
	_ exchange.KlineProvider               = (*Adapter)(nil)
	_ exchange.FundingHistoryProvider      = (*Adapter)(nil)
	_ exchange.FundingInfoProvider         = (*Adapter)(nil)
	_ exchange.OpenInterestProvider        = (*Adapter)(nil)
	_ exchange.OpenInterestHistoryProvider = (*Adapter)(nil)
)

// Option customises the adapter.
type Option func(*Adapter)

// WithSpotBaseURL overrides the spot API endpoint.
func WithSpotBaseURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.spotBaseURL = u
		}
	}
}

// WithFuturesBaseURL overrides the futures API endpoint.
func WithFuturesBaseURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.futuresBaseURL = u
		}
	}
}

// WithQuoteAsset overrides the quote asset used to filter pair listings.
func WithQuoteAsset(asset string) Option {
	return func(a *Adapter) {
		if asset != "" {
			a.quoteAsset = asset
		}
	}
}

// WithFetcher replaces the default retrying fetcher.
func WithFetcher(f *exchange.Fetcher) Option {
	return func(a *Adapter) {
		if f != nil {
			a.fetcher = f
		}
	}
}

// WithCache replaces the default pair cache.
func WithCache(c *exchange.PairCache) Option {
	return func(a *Adapter) {
		if c != nil {
			a.cache = c
		}
	}
}

// New constructs a Binance adapter with production endpoints unless
// overridden.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		spotBaseURL:    defaultSpotBaseURL,
		futuresBaseURL: defaultFuturesBaseURL,
		quoteAsset:     defaultQuoteAsset,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.fetcher == nil {
		a.fetcher = exchange.NewFetcher()
	}
	if a.cache == nil {
		a.cache = exchange.NewPairCache(0)
	}
	return a
}

// Name implements exchange.Exchange.
func (a *Adapter) Name() string { return Name }

// SupportedMarkets implements exchange.Exchange.
func (a *Adapter) SupportedMarkets() []exchange.MarketType { return Markets() }

// Close releases the underlying HTTP client.
func (a *Adapter) Close() error { return a.fetcher.Close() }

// FetchSymbols parses one exchange-info payload into active and inactive
// listings, filtered to the configured quote asset. Futures listings are
// additionally restricted to perpetual contracts.
func (a *Adapter) FetchSymbols(ctx context.Context, url, tag string) (active, inactive []exchange.SymbolPair, err error) {
	spotTag := exchange.MarketTag(Name, exchange.MarketSpot)
	futuresTag := exchange.MarketTag(Name, exchange.MarketFutures)
	if tag != spotTag && tag != futuresTag {
		return nil, nil, exchange.Validationf("unknown exchange tag %q, expected %s or %s", tag, spotTag, futuresTag)
	}

	var info exchangeInfo
	if err := a.fetcher.GetJSON(ctx, url, &info); err != nil {
		return nil, nil, fmt.Errorf("binance: fetch exchange info: %w", err)
	}

	for _, item := range info.Symbols {
		if item.QuoteAsset != a.quoteAsset {
			continue
		}
		pair := exchange.SymbolPair{Symbol: item.BaseAsset, Pair: item.Symbol}
		if tag == futuresTag {
			if item.ContractType != "PERPETUAL" {
				continue
			}
			pair.Pair = item.Pair
		}
		if item.Status == "TRADING" {
			active = append(active, pair)
		} else {
			inactive = append(inactive, pair)
		}
	}
	return active, inactive, nil
}

// FetchAllPairs lists every pair for the given market, consulting the pair
// cache when permitted.
func (a *Adapter) FetchAllPairs(ctx context.Context, market exchange.MarketType, useCache bool) (*exchange.PairList, error) {
	if !exchange.SupportsMarket(a.SupportedMarkets(), market) {
		return nil, exchange.Validationf("unsupported market type %q, supported markets: %s",
			market, exchange.JoinMarkets(a.SupportedMarkets()))
	}

	if useCache {
		if cached, ok := a.cache.Load(market); ok {
			logx.WithContext(ctx).Infof("binance: using cached pairs for %s market", market)
			return cached, nil
		}
	}

	var url string
	switch market {
	case exchange.MarketSpot:
		url = a.spotBaseURL + "/api/v3/exchangeInfo?permissions=SPOT"
	case exchange.MarketFutures:
		url = a.futuresBaseURL + "/fapi/v1/exchangeInfo"
	}

	tag := exchange.MarketTag(Name, market)
	active, inactive, err := a.FetchSymbols(ctx, url, tag)
	if err != nil {
		return nil, err
	}

	list := exchange.BuildPairList(tag, active, inactive)
	if useCache {
		a.cache.Store(market, list)
	}
	return list, nil
}

type exchangeInfo struct {
	Symbols []struct {
		Symbol       string `json:"symbol"`
		Pair         string `json:"pair"`
		Status       string `json:"status"`
		BaseAsset    string `json:"baseAsset"`
		QuoteAsset   string `json:"quoteAsset"`
		ContractType string `json:"contractType"`
	} `json:"symbols"`
}
