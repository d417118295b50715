package bybit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"panda-api/pkg/exchange"
)

const (
	defaultFundingLimit = 200
	maxFundingLimit     = 200
)

type fundingList struct {
	Category string `json:"category"`
	List     []struct {
		Symbol               string `json:"symbol"`
		FundingRate          string `json:"fundingRate"`
		FundingRateTimestamp string `json:"fundingRateTimestamp"`
	} `json:"list"`
}

// FetchFundingRateHistory returns historical funding rates for linear
// perpetuals. The vendor requires start and end times as a pair, so a
// start without an end is rejected before any network call.
func (a *Adapter) FetchFundingRateHistory(ctx context.Context, q exchange.FundingHistoryQuery) ([]exchange.FundingRate, error) {
	if q.StartTime > 0 && q.EndTime <= 0 {
		return nil, exchange.Validationf("if startTime is provided, endTime must also be provided")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultFundingLimit
	}
	if limit > maxFundingLimit {
		return nil, exchange.Validationf("limit must be between 1 and %d", maxFundingLimit)
	}

	params := url.Values{}
	params.Set("category", "linear")
	params.Set("limit", strconv.Itoa(limit))
	if q.Symbol != "" {
		params.Set("symbol", q.Symbol)
	}
	if q.StartTime > 0 {
		params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
		params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}

	result, err := fetchEnvelope[fundingList](ctx, a.fetcher, a.baseURL+"/v5/market/funding/history?"+params.Encode())
	if err != nil {
		return nil, err
	}

	rates := make([]exchange.FundingRate, 0, len(result.List))
	for _, row := range result.List {
		ts, err := strconv.ParseInt(row.FundingRateTimestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bybit: parse funding timestamp: %w", err)
		}
		rates = append(rates, exchange.FundingRate{
			Symbol:               row.Symbol,
			FundingRate:          row.FundingRate,
			FundingRateTimestamp: ts,
		})
	}
	return rates, nil
}
