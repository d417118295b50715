package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"panda-api/pkg/exchange"
)

const (
	defaultOpenInterestLimit = 30
	maxOpenInterestLimit     = 500
)

var openInterestPeriods = []string{"5m", "15m", "30m", "1h", "2h", "4h", "6h", "12h", "1d"}

// FetchOpenInterest returns the current open interest for one contract.
func (a *Adapter) FetchOpenInterest(ctx context.Context, symbol string) (*exchange.OpenInterest, error) {
	if symbol == "" {
		return nil, exchange.Validationf("symbol is required")
	}

	var row struct {
		Symbol       string `json:"symbol"`
		OpenInterest string `json:"openInterest"`
		Time         int64  `json:"time"`
	}
	endpoint := a.futuresBaseURL + "/fapi/v1/openInterest?symbol=" + url.QueryEscape(symbol)
	if err := a.fetcher.GetJSON(ctx, endpoint, &row); err != nil {
		return nil, fmt.Errorf("binance: fetch open interest: %w", err)
	}

	return &exchange.OpenInterest{
		Symbol:       row.Symbol,
		OpenInterest: row.OpenInterest,
		Timestamp:    row.Time,
	}, nil
}

// FetchOpenInterestHistory returns aggregated open-interest statistics at a
// fixed period granularity.
func (a *Adapter) FetchOpenInterestHistory(ctx context.Context, q exchange.OpenInterestHistoryQuery) ([]exchange.OpenInterestStat, error) {
	if q.Symbol == "" {
		return nil, exchange.Validationf("symbol is required")
	}
	if !containsString(openInterestPeriods, q.Period) {
		return nil, exchange.Validationf("invalid period %q, supported periods: %s",
			q.Period, strings.Join(openInterestPeriods, ", "))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultOpenInterestLimit
	}
	if limit > maxOpenInterestLimit {
		return nil, exchange.Validationf("limit must be between 1 and %d", maxOpenInterestLimit)
	}

	params := url.Values{}
	params.Set("symbol", q.Symbol)
	params.Set("period", q.Period)
	params.Set("limit", strconv.Itoa(limit))
	if q.StartTime > 0 {
		params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}

	var rows []struct {
		Symbol               string `json:"symbol"`
		SumOpenInterest      string `json:"sumOpenInterest"`
		SumOpenInterestValue string `json:"sumOpenInterestValue"`
		Timestamp            int64  `json:"timestamp"`
	}
	endpoint := a.futuresBaseURL + "/futures/data/openInterestHist?" + params.Encode()
	if err := a.fetcher.GetJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("binance: fetch open interest history: %w", err)
	}

	stats := make([]exchange.OpenInterestStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, exchange.OpenInterestStat{
			Symbol:               row.Symbol,
			SumOpenInterest:      row.SumOpenInterest,
			SumOpenInterestValue: row.SumOpenInterestValue,
			Timestamp:            row.Timestamp,
		})
	}
	return stats, nil
}
