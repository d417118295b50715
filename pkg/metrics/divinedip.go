package metrics

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"panda-api/pkg/exchange"
)

// Exchange types accepted by the metrics backend.
const (
	ExchangeTypeCEX = "CEX"
	ExchangeTypeDEX = "DEX"
)

const (
	divineDipPath        = "/metrics/panda_jlabs_metrics/"
	defaultMetricVersion = 4
)

var (
	cexTimeframes = []string{"15m", "30m", "1H", "4H", "1D"}
	// DEX pools have no sub-hour granularity.
	dexTimeframes = []string{"1H", "4H", "1D"}

	cexExchanges = []string{
		"binance-spot",
		"binance-futures",
		"bybit-spot",
		"bybit-futures",
		"hyperliquid-spot",
		"hyperliquid-futures",
	}
)

// DivineDipQuery selects a divine-dip window. CEX targets need Exchange
// and Token; DEX targets need Chain and PoolAddress.
type DivineDipQuery struct {
	ExchangeType string
	Exchange     string
	Token        string
	Chain        string
	PoolAddress  string
	Timeframe    string
	StartEpoch   int64
	EndEpoch     int64
}

// DivineDipPoint is one dip-signal observation.
type DivineDipPoint struct {
	Timestamp string  `json:"timestamp"`
	DivineDip float64 `json:"divine_dip"`
}

// DivineDipStats summarizes signal density over a window.
type DivineDipStats struct {
	TotalPeriods     int     `json:"total_periods"`
	DivineDipSignals int     `json:"divine_dip_signals"`
	SignalPercentage float64 `json:"signal_percentage"`
}

// DivineDipResponse is the formatted metric payload.
type DivineDipResponse struct {
	Metric string           `json:"metric"`
	Count  int              `json:"count"`
	Data   []DivineDipPoint `json:"data"`
	Stats  DivineDipStats   `json:"stats"`
}

type rawDivineDip struct {
	Data []struct {
		T  string  `json:"t"`
		DD float64 `json:"dd"`
	} `json:"data"`
}

// FetchDivineDip validates the query, fetches the raw signal series and
// reshapes it with summary statistics.
func (c *Client) FetchDivineDip(ctx context.Context, q DivineDipQuery) (*DivineDipResponse, error) {
	params := url.Values{}
	params.Set("metric", "divine_dip")
	params.Set("version", strconv.Itoa(defaultMetricVersion))
	params.Set("timeframe", q.Timeframe)
	params.Set("start_epoch", strconv.FormatInt(q.StartEpoch, 10))
	params.Set("end_epoch", strconv.FormatInt(q.EndEpoch, 10))

	switch strings.ToUpper(strings.TrimSpace(q.ExchangeType)) {
	case ExchangeTypeCEX:
		if err := validateCEXQuery(q); err != nil {
			return nil, err
		}
		params.Set("exchange_type", ExchangeTypeCEX)
		params.Set("exchange", q.Exchange)
		params.Set("token", q.Token)
	case ExchangeTypeDEX:
		if err := validateDEXQuery(q); err != nil {
			return nil, err
		}
		params.Set("exchange_type", ExchangeTypeDEX)
		params.Set("chain", q.Chain)
		params.Set("pool_address", q.PoolAddress)
	default:
		return nil, exchange.Validationf("invalid exchange type %q, must be %s or %s", q.ExchangeType, ExchangeTypeCEX, ExchangeTypeDEX)
	}

	var raw rawDivineDip
	if err := c.getJSON(ctx, divineDipPath, params, &raw); err != nil {
		return nil, err
	}

	points := make([]DivineDipPoint, len(raw.Data))
	for i, item := range raw.Data {
		points[i] = DivineDipPoint{Timestamp: item.T, DivineDip: item.DD}
	}
	return &DivineDipResponse{
		Metric: "divine_dip",
		Count:  len(points),
		Data:   points,
		Stats:  DivineDipStatistics(points),
	}, nil
}

// DivineDipStatistics counts dip signals and their share of the window.
func DivineDipStatistics(points []DivineDipPoint) DivineDipStats {
	stats := DivineDipStats{TotalPeriods: len(points)}
	if len(points) == 0 {
		return stats
	}
	for _, p := range points {
		if p.DivineDip == 1 {
			stats.DivineDipSignals++
		}
	}
	pct := float64(stats.DivineDipSignals) / float64(stats.TotalPeriods) * 100
	stats.SignalPercentage = math.Round(pct*100) / 100
	return stats
}

func validateCEXQuery(q DivineDipQuery) error {
	if !containsString(cexExchanges, q.Exchange) {
		return exchange.Validationf("invalid CEX exchange %q, supported exchanges: %s", q.Exchange, strings.Join(cexExchanges, ", "))
	}
	if !containsString(cexTimeframes, q.Timeframe) {
		return exchange.Validationf("invalid CEX timeframe %q, supported timeframes: %s", q.Timeframe, strings.Join(cexTimeframes, ", "))
	}
	if q.Token == "" {
		return exchange.Validationf("token is required for CEX metrics")
	}
	return validateEpochRange(q.StartEpoch, q.EndEpoch)
}

func validateDEXQuery(q DivineDipQuery) error {
	if !containsString(dexTimeframes, q.Timeframe) {
		return exchange.Validationf("invalid DEX timeframe %q, supported timeframes: %s", q.Timeframe, strings.Join(dexTimeframes, ", "))
	}
	if q.Chain == "" {
		return exchange.Validationf("chain is required for DEX metrics")
	}
	if q.PoolAddress == "" {
		return exchange.Validationf("pool address is required for DEX metrics")
	}
	if requiresHexAddress(q.Chain) && !common.IsHexAddress(q.PoolAddress) {
		return exchange.Validationf("invalid pool address %q for chain %s", q.PoolAddress, q.Chain)
	}
	return validateEpochRange(q.StartEpoch, q.EndEpoch)
}

// requiresHexAddress reports whether the chain uses 0x-prefixed EVM
// addresses. Solana pools are base58 and skip the hex check.
func requiresHexAddress(chain string) bool {
	return !strings.EqualFold(chain, "solana")
}

func validateEpochRange(start, end int64) error {
	if start < 0 || end < 0 {
		return exchange.Validationf("epoch timestamps must be positive")
	}
	if start >= end {
		return exchange.Validationf("start_epoch must be less than end_epoch")
	}
	return nil
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
