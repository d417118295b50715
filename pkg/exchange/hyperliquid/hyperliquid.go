// Package hyperliquid adapts Hyperliquid's info endpoint to the uniform
// exchange contract. All requests are POSTs against a single URL with a
// typed JSON body.
//
// The vendor has no historical kline endpoint in this surface; the live
// snapshot capability (FetchMarketData) is the supported alternative.
package hyperliquid

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

const (
	// Name is the registry identifier for this adapter.
	Name = "hyperliquid"

	// Description is the human-readable summary exposed by the registry.
	Description = "Hyperliquid spot and perpetual listings with live market snapshots"

	defaultBaseURL = "https://api.hyperliquid.xyz/info"
)

// symbolAliases collapses vendor spellings to canonical symbols before
// they appear in any pair name or symbol field.
var symbolAliases = map[string]string{
	"USDT0": "USDT",
}

// Markets returns the market types this adapter serves.
func Markets() []exchange.MarketType {
	return []exchange.MarketType{exchange.MarketSpot, exchange.MarketFutures}
}

// Adapter implements the exchange contract against the Hyperliquid info
// endpoint.
type Adapter struct {
	baseURL string
	fetcher *exchange.Fetcher
	cache   *exchange.PairCache
}

var (
	_ exchange.Exchange           = (*Adapter)(nil)
	_ exchange.MarketDataProvider = (*Adapter)(nil)
)

// Option customises the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the info endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.baseURL = u
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

// New constructs a Hyperliquid adapter against the production endpoint
// unless overridden.
func New(opts ...Option) *Adapter {
	a := &Adapter{baseURL: defaultBaseURL}
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

// infoRequest is the shared envelope for info endpoint requests.
type infoRequest struct {
	Type string `json:"type"`
}

type spotMeta struct {
	Tokens []struct {
		Name  string `json:"name"`
		Index int    `json:"index"`
	} `json:"tokens"`
	Universe []struct {
		Name   string `json:"name"`
		Tokens []int  `json:"tokens"`
	} `json:"universe"`
}

type futuresMeta struct {
	Universe []universeEntry `json:"universe"`
}

// FetchSymbols lists pairs for one market. url is the info endpoint; the
// request body is chosen from the tag. Spot pair names are synthesized
// from a token-index table, futures pairs as SYMBOL-USD. Spot listings
// carry no activity flag, so their inactive set is always empty.
func (a *Adapter) FetchSymbols(ctx context.Context, url, tag string) (active, inactive []exchange.SymbolPair, err error) {
	switch tag {
	case exchange.MarketTag(Name, exchange.MarketSpot):
		return a.fetchSpotSymbols(ctx, url)
	case exchange.MarketTag(Name, exchange.MarketFutures):
		return a.fetchFuturesSymbols(ctx, url)
	default:
		return nil, nil, exchange.Validationf("unknown exchange tag %q, expected %s or %s",
			tag, exchange.MarketTag(Name, exchange.MarketSpot), exchange.MarketTag(Name, exchange.MarketFutures))
	}
}

func (a *Adapter) fetchSpotSymbols(ctx context.Context, url string) (active, inactive []exchange.SymbolPair, err error) {
	var meta spotMeta
	if err := a.fetcher.PostJSON(ctx, url, infoRequest{Type: "spotMeta"}, &meta); err != nil {
		return nil, nil, err
	}

	tokens := make(map[int]string, len(meta.Tokens))
	for _, token := range meta.Tokens {
		tokens[token.Index] = token.Name
	}

	for _, entry := range meta.Universe {
		if len(entry.Tokens) != 2 {
			continue
		}
		base, okBase := tokens[entry.Tokens[0]]
		quote, okQuote := tokens[entry.Tokens[1]]
		if !okBase || !okQuote {
			continue
		}
		baseSym := normalizeSymbol(base)
		quoteSym := normalizeSymbol(quote)
		active = append(active, exchange.SymbolPair{Symbol: baseSym, Pair: baseSym + "/" + quoteSym})
	}
	return active, nil, nil
}

func (a *Adapter) fetchFuturesSymbols(ctx context.Context, url string) (active, inactive []exchange.SymbolPair, err error) {
	var meta futuresMeta
	if err := a.fetcher.PostJSON(ctx, url, infoRequest{Type: "meta"}, &meta); err != nil {
		return nil, nil, err
	}

	for _, entry := range meta.Universe {
		name := normalizeSymbol(entry.Name)
		pair := exchange.SymbolPair{Symbol: name, Pair: name + "-USD"}
		if entry.IsDelisted {
			inactive = append(inactive, pair)
		} else {
			active = append(active, pair)
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
			logx.WithContext(ctx).Infof("hyperliquid: using cached pairs for %s market", market)
			return cached, nil
		}
	}

	tag := exchange.MarketTag(Name, market)
	active, inactive, err := a.FetchSymbols(ctx, a.baseURL, tag)
	if err != nil {
		return nil, err
	}

	list := exchange.BuildPairList(tag, active, inactive)
	if useCache {
		a.cache.Store(market, list)
	}
	return list, nil
}

func normalizeSymbol(symbol string) string {
	if canonical, ok := symbolAliases[symbol]; ok {
		return canonical
	}
	return symbol
}
