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
	defaultOpenInterestLimit = 50
	maxOpenInterestLimit     = 200
)

var openInterestIntervals = []string{"5min", "15min", "30min", "1h", "4h", "1d"}

type openInterestList struct {
	Symbol   string `json:"symbol"`
	Category string `json:"category"`
	List     []struct {
		OpenInterest string `json:"openInterest"`
		Timestamp    string `json:"timestamp"`
	} `json:"list"`
}

// FetchOpenInterestSeries returns open interest as a timed series. The
// vendor has no default granularity, so the interval is mandatory even
// for a conceptually current query.
func (a *Adapter) FetchOpenInterestSeries(ctx context.Context, q exchange.OpenInterestSeriesQuery) ([]exchange.OpenInterestPoint, error) {
	if q.Symbol == "" {
		return nil, exchange.Validationf("symbol is required")
	}
	if q.Interval == "" {
		return nil, exchange.Validationf("interval is required for bybit open interest")
	}
	if !containsString(openInterestIntervals, q.Interval) {
		return nil, exchange.Validationf("invalid interval %q, supported intervals: %s",
			q.Interval, strings.Join(openInterestIntervals, ", "))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultOpenInterestLimit
	}
	if limit > maxOpenInterestLimit {
		return nil, exchange.Validationf("limit must be between 1 and %d", maxOpenInterestLimit)
	}

	params := url.Values{}
	params.Set("category", "linear")
	params.Set("symbol", q.Symbol)
	params.Set("intervalTime", q.Interval)
	params.Set("limit", strconv.Itoa(limit))
	if q.StartTime > 0 {
		params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}

	result, err := fetchEnvelope[openInterestList](ctx, a.fetcher, a.baseURL+"/v5/market/open-interest?"+params.Encode())
	if err != nil {
		return nil, err
	}

	points := make([]exchange.OpenInterestPoint, 0, len(result.List))
	for _, row := range result.List {
		ts, err := strconv.ParseInt(row.Timestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bybit: parse open interest timestamp: %w", err)
		}
		points = append(points, exchange.OpenInterestPoint{
			Symbol:       result.Symbol,
			OpenInterest: row.OpenInterest,
			Timestamp:    ts,
		})
	}
	return points, nil
}
