package exchange

import "strings"

// MarketType identifies a trading venue category offered by a vendor.
type MarketType string

const (
	MarketSpot    MarketType = "spot"
	MarketFutures MarketType = "futures"
)

// SymbolPair is one raw listing entry before exchange tagging: the base
// asset and the vendor's trading-pair identifier.
type SymbolPair struct {
	Symbol string `json:"symbol"`
	Pair   string `json:"pair"`
}

// TradingPair is a tagged listing entry. Exchange carries the vendor and
// market, e.g. "binance-spot".
type TradingPair struct {
	Symbol   string `json:"symbol"`
	Pair     string `json:"pair"`
	Exchange string `json:"exchange"`
	IsActive bool   `json:"is_active"`
}

// PairList partitions a market's pairs by trading status. Vendors that
// cannot report inactive pairs leave Inactive empty.
type PairList struct {
	Active   []TradingPair `json:"active"`
	Inactive []TradingPair `json:"inactive"`
}

func (l *PairList) clone() *PairList {
	if l == nil {
		return nil
	}
	out := &PairList{
		Active:   make([]TradingPair, len(l.Active)),
		Inactive: make([]TradingPair, len(l.Inactive)),
	}
	copy(out.Active, l.Active)
	copy(out.Inactive, l.Inactive)
	return out
}

// Kline is one candlestick. Prices and volumes are decimal strings as
// the vendors report them; fields past Volume are vendor-dependent.
type Kline struct {
	OpenTime      int64  `json:"open_time"`
	Open          string `json:"open"`
	High          string `json:"high"`
	Low           string `json:"low"`
	Close         string `json:"close"`
	Volume        string `json:"volume"`
	CloseTime     int64  `json:"close_time,omitempty"`
	QuoteVolume   string `json:"quote_volume,omitempty"`
	Trades        int64  `json:"trades,omitempty"`
	TakerBuyBase  string `json:"taker_buy_base,omitempty"`
	TakerBuyQuote string `json:"taker_buy_quote,omitempty"`
}

// FundingRate is one historical funding-rate record. Binance reports
// FundingTime and a mark price; Bybit reports FundingRateTimestamp only.
type FundingRate struct {
	Symbol               string `json:"symbol"`
	FundingRate          string `json:"funding_rate"`
	FundingTime          int64  `json:"funding_time,omitempty"`
	FundingRateTimestamp int64  `json:"funding_rate_timestamp,omitempty"`
	MarkPrice            string `json:"mark_price,omitempty"`
}

// FundingRateInfo describes a contract's funding-rate configuration.
type FundingRateInfo struct {
	Symbol                   string `json:"symbol"`
	AdjustedFundingRateCap   string `json:"adjusted_funding_rate_cap"`
	AdjustedFundingRateFloor string `json:"adjusted_funding_rate_floor"`
	FundingIntervalHours     int    `json:"funding_interval_hours"`
}

// OpenInterest is the current open interest for one contract.
type OpenInterest struct {
	Symbol       string `json:"symbol"`
	OpenInterest string `json:"open_interest"`
	Timestamp    int64  `json:"timestamp"`
}

// OpenInterestStat is one aggregated historical open-interest record.
type OpenInterestStat struct {
	Symbol               string `json:"symbol"`
	SumOpenInterest      string `json:"sum_open_interest"`
	SumOpenInterestValue string `json:"sum_open_interest_value"`
	Timestamp            int64  `json:"timestamp"`
}

// OpenInterestPoint is one element of an open-interest series.
type OpenInterestPoint struct {
	Symbol       string `json:"symbol"`
	OpenInterest string `json:"open_interest"`
	Timestamp    int64  `json:"timestamp"`
}

// MarketSnapshot is a live per-asset view combining static metadata with
// market context. Request-scoped; never cached.
type MarketSnapshot struct {
	Symbol         string  `json:"symbol"`
	MarkPrice      float64 `json:"mark_price"`
	OraclePrice    float64 `json:"oracle_price"`
	MidPrice       float64 `json:"mid_price"`
	PrevDayPrice   float64 `json:"prev_day_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	Volume24hBase  float64 `json:"volume_24h_base"`
	Volume24hUSD   float64 `json:"volume_24h_usd"`
	FundingRate    float64 `json:"funding_rate"`
	OpenInterest   float64 `json:"open_interest"`
	Premium        float64 `json:"premium"`
	MaxLeverage    float64 `json:"max_leverage"`
	SizeDecimals   int     `json:"size_decimals"`
	IsDelisted     bool    `json:"is_delisted"`
}

// MarketTag joins an exchange name and market type into the tag carried
// by every TradingPair, e.g. "bybit-futures".
func MarketTag(name string, market MarketType) string {
	return name + "-" + string(market)
}

// SupportsMarket reports whether market is one of markets.
func SupportsMarket(markets []MarketType, market MarketType) bool {
	for _, m := range markets {
		if m == market {
			return true
		}
	}
	return false
}

// JoinMarkets renders a market list for error messages.
func JoinMarkets(markets []MarketType) string {
	parts := make([]string, len(markets))
	for i, m := range markets {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// BuildPairList tags raw symbol listings with the exchange tag and the
// activity flag.
func BuildPairList(tag string, active, inactive []SymbolPair) *PairList {
	list := &PairList{
		Active:   make([]TradingPair, 0, len(active)),
		Inactive: make([]TradingPair, 0, len(inactive)),
	}
	for _, s := range active {
		list.Active = append(list.Active, TradingPair{Symbol: s.Symbol, Pair: s.Pair, Exchange: tag, IsActive: true})
	}
	for _, s := range inactive {
		list.Inactive = append(list.Inactive, TradingPair{Symbol: s.Symbol, Pair: s.Pair, Exchange: tag, IsActive: false})
	}
	return list
}
