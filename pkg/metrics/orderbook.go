package metrics

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"

	"panda-api/pkg/exchange"
)

const orderbookPath = "/workbench/orderbook/"

var orderbookMetrics = []string{
	"bid_ask",
	"bid_ask_ratio",
	"bid_ask_delta",
	"bid_ask_cvd",
	"total_volume",
	"bid_increase_decrease",
	"ask_increase_decrease",
	"bid_ask_ratio_inc_dec",
}

var orderbookExchanges = []string{
	"binance-futures",
	"binance",
	"bybit-futures",
	"bybit",
	"hyperliquid-futures",
	"hyperliquid",
}

var orderbookTimeframes = []string{"1m", "5m", "15m", "30m", "1H", "4H", "1D", "1W", "1M"}

// Depth windows as percent-of-mid ranges, e.g. "2.5-10" covers orders
// between 2.5% and 10% from mid price.
var orderbookVolumeRanges = []string{
	"0-1", "0-2.5", "0-5", "0-10", "0-25", "0-100",
	"1-2.5", "1-5", "1-10", "1-25", "1-100",
	"2.5-5", "2.5-10", "2.5-25", "2.5-100",
	"5-10", "5-25", "5-100",
	"10-25", "10-100",
	"25-100",
}

// OrderbookQuery selects an orderbook metric window.
type OrderbookQuery struct {
	Metric    string
	Symbol    string
	Exchange  string
	Timeframe string
	Volume    string
	EpochLow  int64
	EpochHigh int64
}

// OrderbookStats summarizes the value column of an orderbook metric.
// Metrics without a single value column report only the period count.
type OrderbookStats struct {
	TotalPeriods  int      `json:"total_periods"`
	FieldAnalyzed string   `json:"field_analyzed,omitempty"`
	Min           *float64 `json:"min,omitempty"`
	Max           *float64 `json:"max,omitempty"`
	Avg           *float64 `json:"avg,omitempty"`
}

// OrderbookResponse is the formatted metric payload. Points pass through
// unchanged since each metric carries its own field set.
type OrderbookResponse struct {
	Metric string           `json:"metric"`
	Count  int              `json:"count"`
	Data   []map[string]any `json:"data"`
	Stats  OrderbookStats   `json:"stats"`
}

// FetchOrderbookMetric validates the query and fetches one orderbook
// metric series from the workbench endpoint.
func (c *Client) FetchOrderbookMetric(ctx context.Context, q OrderbookQuery) (*OrderbookResponse, error) {
	if err := validateOrderbookQuery(q); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("metric", strings.ToLower(q.Metric))
	params.Set("symbol", q.Symbol)
	params.Set("exchange", q.Exchange)
	params.Set("timeframe", q.Timeframe)
	params.Set("volume", strings.ToLower(q.Volume))
	params.Set("epoch_low", strconv.FormatInt(q.EpochLow, 10))
	params.Set("epoch_high", strconv.FormatInt(q.EpochHigh, 10))

	var raw struct {
		Data []map[string]any `json:"data"`
	}
	if err := c.getJSON(ctx, orderbookPath, params, &raw); err != nil {
		return nil, err
	}

	metric := strings.ToLower(q.Metric)
	return &OrderbookResponse{
		Metric: metric,
		Count:  len(raw.Data),
		Data:   raw.Data,
		Stats:  OrderbookStatistics(raw.Data, metric),
	}, nil
}

func validateOrderbookQuery(q OrderbookQuery) error {
	if !containsString(orderbookMetrics, strings.ToLower(q.Metric)) {
		return exchange.Validationf("invalid metric %q, supported metrics: %s", q.Metric, strings.Join(orderbookMetrics, ", "))
	}
	if strings.TrimSpace(q.Symbol) == "" {
		return exchange.Validationf("symbol is required")
	}
	if !containsString(orderbookExchanges, normalizeExchange(q.Exchange)) {
		return exchange.Validationf("invalid exchange %q, supported exchanges: %s", q.Exchange, strings.Join(orderbookExchanges, ", "))
	}
	if !containsString(orderbookTimeframes, q.Timeframe) {
		return exchange.Validationf("invalid timeframe %q, supported timeframes: %s", q.Timeframe, strings.Join(orderbookTimeframes, ", "))
	}
	if !containsString(orderbookVolumeRanges, strings.ToLower(q.Volume)) {
		return exchange.Validationf("invalid volume range %q, supported ranges: %s", q.Volume, strings.Join(orderbookVolumeRanges, ", "))
	}
	if q.EpochLow < 0 || q.EpochHigh < 0 {
		return exchange.Validationf("epoch timestamps must be positive")
	}
	if q.EpochLow >= q.EpochHigh {
		return exchange.Validationf("epoch_low must be less than epoch_high")
	}
	return nil
}

// normalizeExchange lowercases and strips a -spot suffix; the orderbook
// backend keys spot books under the bare vendor name.
func normalizeExchange(name string) string {
	name = strings.ToLower(name)
	return strings.TrimSuffix(name, "-spot")
}

// OrderbookStatistics summarizes the metric's value column. The bid_ask
// metric derives a bid/ask ratio; delta-style metrics have no single
// column and report only the period count.
func OrderbookStatistics(data []map[string]any, metric string) OrderbookStats {
	stats := OrderbookStats{TotalPeriods: len(data)}
	if len(data) == 0 {
		return stats
	}

	var field string
	var values []float64
	switch strings.ToLower(metric) {
	case "bid_ask":
		field = "bid_ask_ratio (calculated)"
		for _, item := range data {
			bid, okBid := numberField(item, "bid")
			ask, okAsk := numberField(item, "ask")
			if okBid && okAsk && ask != 0 {
				values = append(values, bid/ask)
			}
		}
	case "bid_ask_ratio", "bid_ask_delta", "total_volume":
		field = strings.ToLower(metric)
		values = collectField(data, field)
	case "bid_ask_cvd":
		field = "cvd"
		values = collectField(data, field)
	default:
		return stats
	}

	stats.FieldAnalyzed = field
	if len(values) == 0 {
		return stats
	}

	lo, hi, sum := values[0], values[0], 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	stats.Min = roundPtr(lo)
	stats.Max = roundPtr(hi)
	stats.Avg = roundPtr(sum / float64(len(values)))
	return stats
}

func collectField(data []map[string]any, field string) []float64 {
	var values []float64
	for _, item := range data {
		if v, ok := numberField(item, field); ok {
			values = append(values, v)
		}
	}
	return values
}

func numberField(item map[string]any, key string) (float64, bool) {
	v, ok := item[key].(float64)
	return v, ok
}

func roundPtr(v float64) *float64 {
	r := math.Round(v*10000) / 10000
	return &r
}
