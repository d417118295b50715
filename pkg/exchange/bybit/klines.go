package bybit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"panda-api/pkg/exchange"
)

const (
	defaultKlineLimit = 200
	maxKlineLimit     = 1000
)

// Vendor-native interval codes: minutes as bare numbers, then
// day/week/month letters.
var klineIntervals = []string{"1", "3", "5", "15", "30", "60", "120", "240", "360", "720", "D", "W", "M"}

type klineList struct {
	Symbol   string     `json:"symbol"`
	Category string     `json:"category"`
	List     [][]string `json:"list"`
}

// FetchKlines returns candlesticks for one symbol. The vendor serves rows
// newest first; they are reversed so the series is chronological.
func (a *Adapter) FetchKlines(ctx context.Context, q exchange.KlineQuery) ([]exchange.Kline, error) {
	if !containsString(klineIntervals, q.Interval) {
		return nil, exchange.Validationf("invalid interval %q, supported intervals: %s",
			q.Interval, strings.Join(klineIntervals, ", "))
	}

	market := q.Market
	if market == "" {
		market = exchange.MarketSpot
	}
	if !exchange.SupportsMarket(a.SupportedMarkets(), market) {
		return nil, exchange.Validationf("unsupported market type %q, supported markets: %s",
			market, exchange.JoinMarkets(a.SupportedMarkets()))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultKlineLimit
	}
	if limit > maxKlineLimit {
		return nil, exchange.Validationf("limit must be between 1 and %d", maxKlineLimit)
	}

	params := url.Values{}
	params.Set("category", categoryFor(market))
	params.Set("symbol", q.Symbol)
	params.Set("interval", q.Interval)
	params.Set("limit", strconv.Itoa(limit))
	if q.StartTime > 0 {
		params.Set("start", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		params.Set("end", strconv.FormatInt(q.EndTime, 10))
	}

	result, err := fetchEnvelope[klineList](ctx, a.fetcher, a.baseURL+"/v5/market/kline?"+params.Encode())
	if err != nil {
		return nil, err
	}

	// Newest first from the vendor; flip in place.
	rows := result.List
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	klines := make([]exchange.Kline, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("bybit: kline row has %d fields, want 7", len(row))
		}
		openTime, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bybit: parse kline timestamp: %w", err)
		}
		klines = append(klines, exchange.Kline{
			OpenTime:    openTime,
			Open:        row[1],
			High:        row[2],
			Low:         row[3],
			Close:       row[4],
			Volume:      row[5],
			QuoteVolume: row[6],
		})
	}
	return klines, nil
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
