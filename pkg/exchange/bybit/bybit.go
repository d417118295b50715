// Package bybit adapts Bybit v5 spot and linear-perpetual market data to
// the uniform exchange contract.
//
// Every v5 response wraps its payload in an envelope carrying a vendor
// return code. A non-zero code on a 2xx response is a vendor-side failure
// and surfaces as a VendorError, distinct from transport errors.
package bybit

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

const (
	// Name is the registry identifier for this adapter.
	Name = "bybit"

	// Description is the human-readable summary exposed by the registry.
	Description = "Bybit spot and USDT linear perpetual market data"

	defaultBaseURL    = "https://api.bybit.com"
	defaultQuoteAsset = "USDT"
)

// Markets returns the market types this adapter serves.
func Markets() []exchange.MarketType {
	return []exchange.MarketType{exchange.MarketSpot, exchange.MarketFutures}
}

// Adapter implements the exchange contract against Bybit v5 REST
// endpoints.
type Adapter struct {
	baseURL    string
	quoteAsset string
	fetcher    *exchange.Fetcher
	cache      *exchange.PairCache
}

var (
	_ exchange.Exchange                   = (*Adapter)(nil)
	_ exchange.KlineProvider              = (*Adapter)(nil)
	_ exchange.FundingHistoryProvider     = (*Adapter)(nil)
	_ exchange.OpenInterestSeriesProvider = (*Adapter)(nil)
)

// Option customises the adapter.
type Option func(*Adapter)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(a *Adapter) {
		if u != "" {
			a.baseURL = u
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

// New constructs a Bybit adapter with production endpoints unless
// overridden.
func New(opts ...Option) *Adapter {
	a := &Adapter{
		baseURL:    defaultBaseURL,
		quoteAsset: defaultQuoteAsset,
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

// response is the v5 envelope common to every endpoint.
type response[T any] struct {
	RetCode int    `json:"retCode"`
	RetMsg  string `json:"retMsg"`
	Result  T      `json:"result"`
}

// fetchEnvelope retrieves url and unwraps the v5 envelope, converting a
// non-zero return code into a VendorError.
func fetchEnvelope[T any](ctx context.Context, f *exchange.Fetcher, url string) (T, error) {
	var envelope response[T]
	if err := f.GetJSON(ctx, url, &envelope); err != nil {
		var zero T
		return zero, err
	}
	if envelope.RetCode != 0 {
		var zero T
		msg := envelope.RetMsg
		if msg == "" {
			msg = "unknown error"
		}
		return zero, &exchange.VendorError{Exchange: Name, Code: envelope.RetCode, Msg: msg}
	}
	return envelope.Result, nil
}

type instrumentList struct {
	List []struct {
		Symbol       string `json:"symbol"`
		BaseCoin     string `json:"baseCoin"`
		QuoteCoin    string `json:"quoteCoin"`
		Status       string `json:"status"`
		ContractType string `json:"contractType"`
	} `json:"list"`
}

// FetchSymbols parses one instruments-info payload. The trading-status
// filter is embedded in the request, so the vendor never reports inactive
// pairs and the second return is always empty.
func (a *Adapter) FetchSymbols(ctx context.Context, url, tag string) (active, inactive []exchange.SymbolPair, err error) {
	spotTag := exchange.MarketTag(Name, exchange.MarketSpot)
	futuresTag := exchange.MarketTag(Name, exchange.MarketFutures)
	if tag != spotTag && tag != futuresTag {
		return nil, nil, exchange.Validationf("unknown exchange tag %q, expected %s or %s", tag, spotTag, futuresTag)
	}

	result, err := fetchEnvelope[instrumentList](ctx, a.fetcher, url)
	if err != nil {
		return nil, nil, err
	}

	for _, item := range result.List {
		if item.QuoteCoin != a.quoteAsset || item.Status != "Trading" {
			continue
		}
		if tag == futuresTag && item.ContractType != "LinearPerpetual" {
			continue
		}
		active = append(active, exchange.SymbolPair{Symbol: item.BaseCoin, Pair: item.Symbol})
	}
	return active, nil, nil
}

// FetchAllPairs lists every pair for the given market, consulting the pair
// cache when permitted. Inactive is always empty on this vendor.
func (a *Adapter) FetchAllPairs(ctx context.Context, market exchange.MarketType, useCache bool) (*exchange.PairList, error) {
	if !exchange.SupportsMarket(a.SupportedMarkets(), market) {
		return nil, exchange.Validationf("unsupported market type %q, supported markets: %s",
			market, exchange.JoinMarkets(a.SupportedMarkets()))
	}

	if useCache {
		if cached, ok := a.cache.Load(market); ok {
			logx.WithContext(ctx).Infof("bybit: using cached pairs for %s market", market)
			return cached, nil
		}
	}

	url := a.baseURL + "/v5/market/instruments-info?category=" + categoryFor(market) + "&status=Trading&limit=1000"
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

func categoryFor(market exchange.MarketType) string {
	if market == exchange.MarketFutures {
		return "linear"
	}
	return "spot"
}
