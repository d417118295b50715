package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"panda-api/pkg/exchange"
)

const (
	defaultKlineLimit    = 500
	maxSpotKlineLimit    = 1000
	maxFuturesKlineLimit = 1500
)

var klineIntervals = []string{
	"1s", "1m", "3m", "5m", "15m", "30m",
	"1h", "2h", "4h", "6h", "8h", "12h",
	"1d", "3d", "1w", "1M",
}

// FetchKlines returns candlesticks for one symbol. Binance serves rows
// oldest first, so no reordering is needed.
func (a *Adapter) FetchKlines(ctx context.Context, q exchange.KlineQuery) ([]exchange.Kline, error) {
	if !containsString(klineIntervals, q.Interval) {
		return nil, exchange.Validationf("invalid interval %q, supported intervals: %s",
			q.Interval, strings.Join(klineIntervals, ", "))
	}

	market := q.Market
	if market == "" {
		market = exchange.MarketSpot
	}

	var endpoint string
	var maxLimit int
	switch market {
	case exchange.MarketSpot:
		endpoint = a.spotBaseURL + "/api/v3/klines"
		maxLimit = maxSpotKlineLimit
	case exchange.MarketFutures:
		endpoint = a.futuresBaseURL + "/fapi/v1/klines"
		maxLimit = maxFuturesKlineLimit
	default:
		return nil, exchange.Validationf("unsupported market type %q, supported markets: %s",
			market, exchange.JoinMarkets(a.SupportedMarkets()))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultKlineLimit
	}
	if limit > maxLimit {
		return nil, exchange.Validationf("limit cannot exceed %d for %s market", maxLimit, market)
	}

	params := url.Values{}
	params.Set("symbol", q.Symbol)
	params.Set("interval", q.Interval)
	params.Set("limit", strconv.Itoa(limit))
	if q.StartTime > 0 {
		params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}
	// The timezone offset only applies to spot; "0" (UTC) is the vendor
	// default and is omitted.
	if market == exchange.MarketSpot && q.Timezone != "" && q.Timezone != "0" {
		params.Set("timeZone", q.Timezone)
	}

	var rows []klineRow
	if err := a.fetcher.GetJSON(ctx, endpoint+"?"+params.Encode(), &rows); err != nil {
		return nil, fmt.Errorf("binance: fetch klines: %w", err)
	}

	klines := make([]exchange.Kline, 0, len(rows))
	for _, row := range rows {
		klines = append(klines, exchange.Kline{
			OpenTime:      row.int64At(0),
			Open:          row.str(1),
			High:          row.str(2),
			Low:           row.str(3),
			Close:         row.str(4),
			Volume:        row.str(5),
			CloseTime:     row.int64At(6),
			QuoteVolume:   row.str(7),
			Trades:        row.int64At(8),
			TakerBuyBase:  row.str(9),
			TakerBuyQuote: row.str(10),
		})
	}
	return klines, nil
}

// klineRow is one fixed-position vendor kline array mixing numbers and
// decimal strings.
type klineRow []json.RawMessage

func (r klineRow) str(i int) string {
	if i >= len(r) {
		return ""
	}
	var s string
	if err := json.Unmarshal(r[i], &s); err != nil {
		return ""
	}
	return s
}

func (r klineRow) int64At(i int) int64 {
	if i >= len(r) {
		return 0
	}
	var v int64
	if err := json.Unmarshal(r[i], &v); err != nil {
		return 0
	}
	return v
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
