// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

import (
	"panda-api/pkg/exchange"
	"panda-api/pkg/export"
	"panda-api/pkg/indicators"
	"panda-api/pkg/metrics"
)

// ErrorPayload is the uniform failure shape every operation returns. Params
// echoes the request that was in effect so callers can correlate failures
// without keeping their own request log.
type ErrorPayload struct {
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
	Message   string `json:"message"`
	Hint      string `json:"hint,omitempty"`
	Params    any    `json:"params,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type ExchangesResponse struct {
	Count     int             `json:"count"`
	Exchanges []exchange.Info `json:"exchanges"`
}

type PairsReq struct {
	Exchange string `form:"exchange" json:"exchange,optional"`
	Market   string `form:"market,default=spot" json:"market,optional"`
	Status   string `form:"status,default=active,options=active|inactive|all" json:"status,optional"`
}

type PairsResponse struct {
	Exchange     string                 `json:"exchange"`
	Market       string                 `json:"market"`
	StatusFilter string                 `json:"status_filter"`
	Count        int                    `json:"count"`
	Pairs        []exchange.TradingPair `json:"pairs"`
}

type ComparePairsReq struct {
	Exchange string   `form:"exchange" json:"exchange,optional"`
	Markets  []string `form:"markets" json:"markets,optional"`
}

// ComparePairsResponse reports set differences for a two-market compare
// and per-market counts otherwise. Only and BothMarkets stay empty in the
// counts-only case.
type ComparePairsResponse struct {
	Exchange        string              `json:"exchange"`
	MarketsCompared []string            `json:"markets_compared"`
	Only            map[string][]string `json:"only,omitempty"`
	BothMarkets     []string            `json:"both_markets,omitempty"`
	Counts          map[string]int      `json:"counts"`
}

type MarketDataReq struct {
	Exchange string `form:"exchange" json:"exchange,optional"`
	Symbol   string `form:"symbol,optional" json:"symbol,omitempty,optional"`
}

type MarketDataResponse struct {
	Exchange     string                    `json:"exchange"`
	SymbolFilter string                    `json:"symbol_filter,omitempty"`
	Count        int                       `json:"count"`
	Markets      []exchange.MarketSnapshot `json:"markets"`
}

type KlinesReq struct {
	Exchange  string `form:"exchange" json:"exchange,optional"`
	Symbol    string `form:"symbol" json:"symbol,optional"`
	Interval  string `form:"interval" json:"interval,optional"`
	Market    string `form:"market,default=spot" json:"market,optional"`
	StartTime int64  `form:"start_time,optional" json:"start_time,omitempty,optional"`
	EndTime   int64  `form:"end_time,optional" json:"end_time,omitempty,optional"`
	Limit     int    `form:"limit,default=500" json:"limit,optional"`
	Timezone  string `form:"timezone,default=0" json:"timezone,omitempty,optional"`
}

type KlinesResponse struct {
	Exchange  string           `json:"exchange"`
	Symbol    string           `json:"symbol"`
	Interval  string           `json:"interval"`
	Market    string           `json:"market"`
	Count     int              `json:"count"`
	StartTime int64            `json:"start_time,omitempty"`
	EndTime   int64            `json:"end_time,omitempty"`
	Klines    []exchange.Kline `json:"klines"`
}

type FundingHistoryReq struct {
	Exchange  string `form:"exchange" json:"exchange,optional"`
	Symbol    string `form:"symbol,optional" json:"symbol,omitempty,optional"`
	StartTime int64  `form:"start_time,optional" json:"start_time,omitempty,optional"`
	EndTime   int64  `form:"end_time,optional" json:"end_time,omitempty,optional"`
	Limit     int    `form:"limit,default=100" json:"limit,optional"`
}

type FundingHistoryResponse struct {
	Exchange     string                 `json:"exchange"`
	SymbolFilter string                 `json:"symbol_filter,omitempty"`
	StartTime    int64                  `json:"start_time,omitempty"`
	EndTime      int64                  `json:"end_time,omitempty"`
	Limit        int                    `json:"limit"`
	Count        int                    `json:"count"`
	FundingRates []exchange.FundingRate `json:"funding_rates"`
}

type FundingInfoReq struct {
	Exchange string `form:"exchange" json:"exchange,optional"`
}

type FundingInfoResponse struct {
	Exchange    string                     `json:"exchange"`
	Count       int                        `json:"count"`
	FundingInfo []exchange.FundingRateInfo `json:"funding_info"`
}

type OpenInterestReq struct {
	Exchange  string `form:"exchange" json:"exchange,optional"`
	Symbol    string `form:"symbol" json:"symbol,optional"`
	Interval  string `form:"interval,optional" json:"interval,omitempty,optional"`
	StartTime int64  `form:"start_time,optional" json:"start_time,omitempty,optional"`
	EndTime   int64  `form:"end_time,optional" json:"end_time,omitempty,optional"`
	Limit     int    `form:"limit,default=50" json:"limit,optional"`
}

// OpenInterestResponse carries one of two vendor shapes: a single current
// record (OpenInterest and Timestamp set) or an interval series (Interval,
// Count and History set). Callers branch on which fields are present.
type OpenInterestResponse struct {
	Exchange     string                       `json:"exchange"`
	Symbol       string                       `json:"symbol"`
	OpenInterest string                       `json:"open_interest,omitempty"`
	Timestamp    int64                        `json:"timestamp,omitempty"`
	Interval     string                       `json:"interval,omitempty"`
	Count        int                          `json:"count,omitempty"`
	History      []exchange.OpenInterestPoint `json:"history,omitempty"`
}

type OpenInterestHistoryReq struct {
	Exchange  string `form:"exchange" json:"exchange,optional"`
	Symbol    string `form:"symbol" json:"symbol,optional"`
	Period    string `form:"period" json:"period,optional"`
	Limit     int    `form:"limit,default=30" json:"limit,optional"`
	StartTime int64  `form:"start_time,optional" json:"start_time,omitempty,optional"`
	EndTime   int64  `form:"end_time,optional" json:"end_time,omitempty,optional"`
}

type OpenInterestHistoryResponse struct {
	Exchange  string                      `json:"exchange"`
	Symbol    string                      `json:"symbol"`
	Period    string                      `json:"period"`
	Limit     int                         `json:"limit"`
	StartTime int64                       `json:"start_time,omitempty"`
	EndTime   int64                       `json:"end_time,omitempty"`
	Count     int                         `json:"count"`
	History   []exchange.OpenInterestStat `json:"history"`
}

type IndicatorReq struct {
	Exchange  string `json:"exchange"`
	Symbol    string `json:"symbol"`
	Interval  string `json:"interval"`
	Indicator string `json:"indicator"`
	Market    string `json:"market,default=spot"`
	Period    int    `json:"period,optional"`
	Limit     int    `json:"limit,default=100"`
}

type IndicatorResponse struct {
	indicators.Result
	Exchange string `json:"exchange"`
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Market   string `json:"market"`
}

type BatchIndicatorsReq struct {
	Exchange   string   `json:"exchange"`
	Symbol     string   `json:"symbol"`
	Interval   string   `json:"interval"`
	Indicators []string `json:"indicators"`
	Market     string   `json:"market,default=spot"`
	Limit      int      `json:"limit,default=100"`
}

type BatchIndicatorsResponse struct {
	indicators.BatchResult
	Exchange    string `json:"exchange"`
	Symbol      string `json:"symbol"`
	Interval    string `json:"interval"`
	Market      string `json:"market"`
	KlinesCount int    `json:"klines_count"`
}

type ExportKlinesReq struct {
	Exchange  string `json:"exchange"`
	Symbol    string `json:"symbol"`
	Interval  string `json:"interval"`
	Market    string `json:"market,default=spot"`
	FilePath  string `json:"file_path,optional"`
	Format    string `json:"format,default=json,options=json|csv|msgpack"`
	StartTime int64  `json:"start_time,optional"`
	EndTime   int64  `json:"end_time,optional"`
	Limit     int    `json:"limit,default=500"`
}

type ExportFundingReq struct {
	Exchange  string `json:"exchange"`
	Symbol    string `json:"symbol"`
	FilePath  string `json:"file_path,optional"`
	Format    string `json:"format,default=json,options=json|csv|msgpack"`
	StartTime int64  `json:"start_time,optional"`
	EndTime   int64  `json:"end_time,optional"`
	Limit     int    `json:"limit,default=100"`
}

type ExportOpenInterestReq struct {
	Exchange  string `json:"exchange"`
	Symbol    string `json:"symbol"`
	FilePath  string `json:"file_path,optional"`
	Format    string `json:"format,default=json,options=json|csv|msgpack"`
	Interval  string `json:"interval,optional"`
	StartTime int64  `json:"start_time,optional"`
	EndTime   int64  `json:"end_time,optional"`
	Limit     int    `json:"limit,default=50"`
}

type ExportPairsReq struct {
	Exchange string `json:"exchange"`
	Market   string `json:"market,default=spot"`
	Status   string `json:"status,default=active,options=active|inactive|all"`
	FilePath string `json:"file_path,optional"`
	Format   string `json:"format,default=json,options=json|csv|msgpack"`
}

type ExportIndicatorsReq struct {
	Exchange   string   `json:"exchange"`
	Symbol     string   `json:"symbol"`
	Interval   string   `json:"interval"`
	Indicators []string `json:"indicators"`
	Market     string   `json:"market,default=spot"`
	FilePath   string   `json:"file_path,optional"`
	Format     string   `json:"format,default=json,options=json|csv|msgpack"`
	Limit      int      `json:"limit,default=100"`
}

type ExportResponse struct {
	export.Result
	Exchange             string   `json:"exchange"`
	Symbol               string   `json:"symbol,omitempty"`
	Interval             string   `json:"interval,omitempty"`
	Market               string   `json:"market,omitempty"`
	DataType             string   `json:"data_type,omitempty"`
	StatusFilter         string   `json:"status_filter,omitempty"`
	IndicatorsCalculated []string `json:"indicators_calculated,omitempty"`
}

type DivineDipReq struct {
	ExchangeType      string `form:"exchange_type" json:"exchange_type,optional"`
	Timeframe         string `form:"timeframe" json:"timeframe,optional"`
	StartEpoch        int64  `form:"start_epoch" json:"start_epoch,optional"`
	EndEpoch          int64  `form:"end_epoch" json:"end_epoch,optional"`
	Exchange          string `form:"exchange,optional" json:"exchange,omitempty,optional"`
	Token             string `form:"token,optional" json:"token,omitempty,optional"`
	Chain             string `form:"chain,optional" json:"chain,omitempty,optional"`
	PoolAddress       string `form:"pool_address,optional" json:"pool_address,omitempty,optional"`
	IncludeStatistics bool   `form:"include_statistics,default=true" json:"include_statistics,optional"`
}

type DivineDipResponse struct {
	Metric       string                   `json:"metric"`
	ExchangeType string                   `json:"exchange_type"`
	Exchange     string                   `json:"exchange,omitempty"`
	Token        string                   `json:"token,omitempty"`
	Chain        string                   `json:"chain,omitempty"`
	PoolAddress  string                   `json:"pool_address,omitempty"`
	Timeframe    string                   `json:"timeframe"`
	Count        int                      `json:"count"`
	Data         []metrics.DivineDipPoint `json:"data"`
	Statistics   *metrics.DivineDipStats  `json:"statistics,omitempty"`
}

type OrderbookReq struct {
	Metric            string `form:"metric" json:"metric,optional"`
	Symbol            string `form:"symbol" json:"symbol,optional"`
	Exchange          string `form:"exchange" json:"exchange,optional"`
	Timeframe         string `form:"timeframe" json:"timeframe,optional"`
	Volume            string `form:"volume" json:"volume,optional"`
	EpochLow          int64  `form:"epoch_low" json:"epoch_low,optional"`
	EpochHigh         int64  `form:"epoch_high" json:"epoch_high,optional"`
	IncludeStatistics bool   `form:"include_statistics,default=true" json:"include_statistics,optional"`
}

type OrderbookResponse struct {
	Metric     string                  `json:"metric"`
	Symbol     string                  `json:"symbol"`
	Exchange   string                  `json:"exchange"`
	Timeframe  string                  `json:"timeframe"`
	Volume     string                  `json:"volume"`
	Count      int                     `json:"count"`
	Data       []map[string]any        `json:"data"`
	Statistics *metrics.OrderbookStats `json:"statistics,omitempty"`
}
