package binance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"panda-api/pkg/exchange"
)

const (
	defaultFundingLimit = 100
	maxFundingLimit     = 1000
)

// FetchFundingRateHistory returns historical funding rates for perpetual
// contracts. Symbol is optional; without it the vendor returns every
// contract interleaved.
func (a *Adapter) FetchFundingRateHistory(ctx context.Context, q exchange.FundingHistoryQuery) ([]exchange.FundingRate, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultFundingLimit
	}
	if limit > maxFundingLimit {
		return nil, exchange.Validationf("limit must be between 1 and %d", maxFundingLimit)
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if q.Symbol != "" {
		params.Set("symbol", q.Symbol)
	}
	if q.StartTime > 0 {
		params.Set("startTime", strconv.FormatInt(q.StartTime, 10))
	}
	if q.EndTime > 0 {
		params.Set("endTime", strconv.FormatInt(q.EndTime, 10))
	}

	var rows []struct {
		Symbol      string `json:"symbol"`
		FundingRate string `json:"fundingRate"`
		FundingTime int64  `json:"fundingTime"`
		MarkPrice   string `json:"markPrice"`
	}
	endpoint := a.futuresBaseURL + "/fapi/v1/fundingRate?" + params.Encode()
	if err := a.fetcher.GetJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("binance: fetch funding rate history: %w", err)
	}

	rates := make([]exchange.FundingRate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, exchange.FundingRate{
			Symbol:      row.Symbol,
			FundingRate: row.FundingRate,
			FundingTime: row.FundingTime,
			MarkPrice:   row.MarkPrice,
		})
	}
	return rates, nil
}

// FetchFundingRateInfo returns the funding-rate caps, floors and intervals
// for every contract with a non-default configuration.
func (a *Adapter) FetchFundingRateInfo(ctx context.Context) ([]exchange.FundingRateInfo, error) {
	var rows []struct {
		Symbol                   string `json:"symbol"`
		AdjustedFundingRateCap   string `json:"adjustedFundingRateCap"`
		AdjustedFundingRateFloor string `json:"adjustedFundingRateFloor"`
		FundingIntervalHours     int    `json:"fundingIntervalHours"`
	}
	if err := a.fetcher.GetJSON(ctx, a.futuresBaseURL+"/fapi/v1/fundingInfo", &rows); err != nil {
		return nil, fmt.Errorf("binance: fetch funding rate info: %w", err)
	}

	infos := make([]exchange.FundingRateInfo, 0, len(rows))
	for _, row := range rows {
		infos = append(infos, exchange.FundingRateInfo{
			Symbol:                   row.Symbol,
			AdjustedFundingRateCap:   row.AdjustedFundingRateCap,
			AdjustedFundingRateFloor: row.AdjustedFundingRateFloor,
			FundingIntervalHours:     row.FundingIntervalHours,
		})
	}
	return infos, nil
}
