// Package exchange defines the uniform market-data contract implemented by
// vendor adapters, the bounded-retry fetcher they share, the pair cache, and
// the registry mapping exchange names to adapter constructors.
package exchange

import "context"

// Exchange is the required contract every vendor adapter implements.
// Optional features live on the narrower capability interfaces below;
// callers probe for them with a type assertion instead of assuming
// availability.
type Exchange interface {
	// Name returns the lowercase exchange identifier, e.g. "binance".
	Name() string

	// SupportedMarkets enumerates the market types the adapter serves.
	SupportedMarkets() []MarketType

	// FetchSymbols parses one exchange-info endpoint into active and
	// inactive symbol listings. tag selects the vendor-specific parse and
	// must be one of the adapter's known exchange tags, e.g.
	// "binance-spot".
	FetchSymbols(ctx context.Context, url, tag string) (active, inactive []SymbolPair, err error)

	// FetchAllPairs lists every trading pair for the given market type,
	// tagged with the exchange tag and activity flag. When useCache is
	// set, a fresh cached listing short-circuits the network call and the
	// fetched result is stored for subsequent calls.
	FetchAllPairs(ctx context.Context, market MarketType, useCache bool) (*PairList, error)

	// Close releases the adapter's HTTP client. Safe to call more than
	// once; further fetches return ErrClosed.
	Close() error
}

// KlineQuery bounds one candlestick request. Zero-value fields fall back
// to vendor defaults: Market to spot, Limit to the vendor's page size.
type KlineQuery struct {
	Symbol    string
	Interval  string
	Market    MarketType
	StartTime int64
	EndTime   int64
	Limit     int
	Timezone  string
}

// KlineProvider fetches historical candlesticks. Returned series are
// always chronological, oldest first, regardless of the vendor's native
// ordering.
type KlineProvider interface {
	FetchKlines(ctx context.Context, q KlineQuery) ([]Kline, error)
}

// FundingHistoryQuery bounds a funding-rate history request. Symbol is
// optional on vendors that support a full listing.
type FundingHistoryQuery struct {
	Symbol    string
	StartTime int64
	EndTime   int64
	Limit     int
}

// FundingHistoryProvider fetches historical funding rates for perpetual
// contracts.
type FundingHistoryProvider interface {
	FetchFundingRateHistory(ctx context.Context, q FundingHistoryQuery) ([]FundingRate, error)
}

// FundingInfoProvider fetches funding-rate configuration (caps, floors,
// intervals) for every listed contract. The vendor endpoint takes no
// parameters.
type FundingInfoProvider interface {
	FetchFundingRateInfo(ctx context.Context) ([]FundingRateInfo, error)
}

// OpenInterestProvider reports current open interest as a single record
// per symbol. Vendors that model the same concept as an interval series
// implement OpenInterestSeriesProvider instead.
type OpenInterestProvider interface {
	FetchOpenInterest(ctx context.Context, symbol string) (*OpenInterest, error)
}

// OpenInterestHistoryQuery bounds a request for aggregated open-interest
// statistics. Period is required and vendor-enumerated.
type OpenInterestHistoryQuery struct {
	Symbol    string
	Period    string
	Limit     int
	StartTime int64
	EndTime   int64
}

// OpenInterestHistoryProvider fetches aggregated historical open-interest
// statistics.
type OpenInterestHistoryProvider interface {
	FetchOpenInterestHistory(ctx context.Context, q OpenInterestHistoryQuery) ([]OpenInterestStat, error)
}

// OpenInterestSeriesQuery bounds an open-interest series request.
// Interval is required; the vendor has no default granularity.
type OpenInterestSeriesQuery struct {
	Symbol    string
	Interval  string
	StartTime int64
	EndTime   int64
	Limit     int
}

// OpenInterestSeriesProvider fetches open interest as a timed series,
// even for conceptually "current" queries. Counterpart of
// OpenInterestProvider on vendors that never return a single record.
type OpenInterestSeriesProvider interface {
	FetchOpenInterestSeries(ctx context.Context, q OpenInterestSeriesQuery) ([]OpenInterestPoint, error)
}

// MarketDataProvider fetches a live per-asset market snapshot. symbol
// optionally narrows the result to one asset; an unknown symbol yields an
// empty slice, not an error. Snapshots are never cached.
type MarketDataProvider interface {
	FetchMarketData(ctx context.Context, symbol string) ([]MarketSnapshot, error)
}
