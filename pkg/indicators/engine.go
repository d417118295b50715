package indicators

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/pkg/exchange"
)

// Row is one timestamped output record: the source candle plus whatever
// indicator values exist at that position. Warm-up NaNs are omitted from
// Values so the rows always serialize.
type Row struct {
	Timestamp int64              `json:"timestamp"`
	Open      float64            `json:"open"`
	High      float64            `json:"high"`
	Low       float64            `json:"low"`
	Close     float64            `json:"close"`
	Volume    float64            `json:"volume"`
	Values    map[string]float64 `json:"values,omitempty"`
}

// Result carries one indicator computation over a candle series.
type Result struct {
	Indicator  string         `json:"indicator"`
	Period     int            `json:"period,omitempty"`
	Source     string         `json:"source,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Overbought float64        `json:"overbought,omitempty"`
	Oversold   float64        `json:"oversold,omitempty"`
	Data       []Row          `json:"data"`
}

// BatchResult carries several indicators merged over one candle series.
type BatchResult struct {
	IndicatorsCalculated []string `json:"indicators_calculated"`
	Data                 []Row    `json:"data"`
}

type series struct {
	timestamps []int64
	open       []float64
	high       []float64
	low        []float64
	closes     []float64
	volume     []float64
}

func newSeries(klines []exchange.Kline) (*series, error) {
	if len(klines) == 0 {
		return nil, exchange.Validationf("klines data is empty")
	}
	s := &series{
		timestamps: make([]int64, len(klines)),
		open:       make([]float64, len(klines)),
		high:       make([]float64, len(klines)),
		low:        make([]float64, len(klines)),
		closes:     make([]float64, len(klines)),
		volume:     make([]float64, len(klines)),
	}
	for i, k := range klines {
		s.timestamps[i] = k.OpenTime
		var err error
		if s.open[i], err = parseField("open", k.Open); err != nil {
			return nil, err
		}
		if s.high[i], err = parseField("high", k.High); err != nil {
			return nil, err
		}
		if s.low[i], err = parseField("low", k.Low); err != nil {
			return nil, err
		}
		if s.closes[i], err = parseField("close", k.Close); err != nil {
			return nil, err
		}
		if s.volume[i], err = parseField("volume", k.Volume); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parseField(field, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, exchange.Validationf("invalid %s value %q in klines", field, v)
	}
	return f, nil
}

func (s *series) rows() []Row {
	rows := make([]Row, len(s.timestamps))
	for i := range rows {
		rows[i] = Row{
			Timestamp: s.timestamps[i],
			Open:      s.open[i],
			High:      s.high[i],
			Low:       s.low[i],
			Close:     s.closes[i],
			Volume:    s.volume[i],
		}
	}
	return rows
}

func attach(rows []Row, name string, values []float64) {
	for i := range rows {
		if i >= len(values) || math.IsNaN(values[i]) {
			continue
		}
		if rows[i].Values == nil {
			rows[i].Values = make(map[string]float64)
		}
		rows[i].Values[name] = values[i]
	}
}

func defaultPeriod(period, fallback int) int {
	if period > 0 {
		return period
	}
	return fallback
}

// Calculate computes one named indicator over the candle series. Names
// are case-insensitive; period falls back to the indicator's
// conventional default when zero. Indicators without a period parameter
// ignore it.
func Calculate(klines []exchange.Kline, name string, period int) (*Result, error) {
	s, err := newSeries(klines)
	if err != nil {
		return nil, err
	}

	rows := s.rows()
	result := &Result{Data: rows}

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "SMA":
		p := defaultPeriod(period, 20)
		result.Indicator = "SMA"
		result.Period = p
		result.Source = "close"
		attach(rows, fmt.Sprintf("SMA_%d", p), SMA(s.closes, p))
	case "EMA":
		p := defaultPeriod(period, 20)
		result.Indicator = "EMA"
		result.Period = p
		result.Source = "close"
		attach(rows, fmt.Sprintf("EMA_%d", p), EMA(s.closes, p))
	case "RSI":
		p := defaultPeriod(period, 14)
		result.Indicator = "RSI"
		result.Period = p
		result.Source = "close"
		result.Overbought, result.Oversold = 70, 30
		attach(rows, fmt.Sprintf("RSI_%d", p), RSI(s.closes, p))
	case "MACD":
		result.Indicator = "MACD"
		result.Parameters = map[string]any{"fast": 12, "slow": 26, "signal": 9}
		macd, signal, hist := MACD(s.closes)
		attach(rows, "MACD", macd)
		attach(rows, "MACD_SIGNAL", signal)
		attach(rows, "MACD_HIST", hist)
	case "BB":
		p := defaultPeriod(period, 20)
		result.Indicator = "Bollinger Bands"
		result.Parameters = map[string]any{"period": p, "std_dev": 2.0, "source": "close"}
		upper, middle, lower := BollingerBands(s.closes, p, 2.0)
		attach(rows, "BB_UPPER", upper)
		attach(rows, "BB_MIDDLE", middle)
		attach(rows, "BB_LOWER", lower)
	case "ATR":
		p := defaultPeriod(period, 14)
		result.Indicator = "ATR"
		result.Period = p
		attach(rows, fmt.Sprintf("ATR_%d", p), ATR(s.high, s.low, s.closes, p))
	case "STOCH":
		result.Indicator = "Stochastic"
		result.Parameters = map[string]any{"k_period": 14, "d_period": 3, "smooth_k": 3}
		result.Overbought, result.Oversold = 80, 20
		k, d := Stochastic(s.high, s.low, s.closes, 14, 3, 3)
		attach(rows, "STOCH_K", k)
		attach(rows, "STOCH_D", d)
	case "CCI":
		p := defaultPeriod(period, 20)
		result.Indicator = "CCI"
		result.Period = p
		result.Overbought, result.Oversold = 100, -100
		attach(rows, fmt.Sprintf("CCI_%d", p), CCI(s.high, s.low, s.closes, p))
	case "MFI":
		p := defaultPeriod(period, 14)
		result.Indicator = "MFI"
		result.Period = p
		result.Overbought, result.Oversold = 80, 20
		attach(rows, fmt.Sprintf("MFI_%d", p), MFI(s.high, s.low, s.closes, s.volume, p))
	case "OBV":
		result.Indicator = "OBV"
		attach(rows, "OBV", OBV(s.closes, s.volume))
	case "VWAP":
		result.Indicator = "VWAP"
		attach(rows, "VWAP", VWAP(s.timestamps, s.high, s.low, s.closes, s.volume))
	case "KC":
		p := defaultPeriod(period, 20)
		result.Indicator = "Keltner Channels"
		result.Parameters = map[string]any{"period": p, "atr_multiplier": 2.0}
		upper, middle, lower := KeltnerChannels(s.high, s.low, s.closes, p, 2.0)
		attach(rows, "KC_UPPER", upper)
		attach(rows, "KC_MIDDLE", middle)
		attach(rows, "KC_LOWER", lower)
	default:
		return nil, exchange.Validationf("unknown indicator: %s", name)
	}
	return result, nil
}

// batchIndicators enumerates the names accepted by CalculateMultiple,
// each bound to its conventional parameters.
var batchIndicators = map[string]func(*series, []Row){
	"RSI":     func(s *series, rows []Row) { attach(rows, "RSI_14", RSI(s.closes, 14)) },
	"RSI_14":  func(s *series, rows []Row) { attach(rows, "RSI_14", RSI(s.closes, 14)) },
	"SMA_20":  func(s *series, rows []Row) { attach(rows, "SMA_20", SMA(s.closes, 20)) },
	"SMA_50":  func(s *series, rows []Row) { attach(rows, "SMA_50", SMA(s.closes, 50)) },
	"SMA_200": func(s *series, rows []Row) { attach(rows, "SMA_200", SMA(s.closes, 200)) },
	"EMA_20":  func(s *series, rows []Row) { attach(rows, "EMA_20", EMA(s.closes, 20)) },
	"EMA_50":  func(s *series, rows []Row) { attach(rows, "EMA_50", EMA(s.closes, 50)) },
	"EMA_200": func(s *series, rows []Row) { attach(rows, "EMA_200", EMA(s.closes, 200)) },
	"MACD": func(s *series, rows []Row) {
		macd, signal, hist := MACD(s.closes)
		attach(rows, "MACD", macd)
		attach(rows, "MACD_SIGNAL", signal)
		attach(rows, "MACD_HIST", hist)
	},
	"BB": func(s *series, rows []Row) {
		upper, middle, lower := BollingerBands(s.closes, 20, 2.0)
		attach(rows, "BB_UPPER", upper)
		attach(rows, "BB_MIDDLE", middle)
		attach(rows, "BB_LOWER", lower)
	},
	"ATR": func(s *series, rows []Row) { attach(rows, "ATR_14", ATR(s.high, s.low, s.closes, 14)) },
	"STOCH": func(s *series, rows []Row) {
		k, d := Stochastic(s.high, s.low, s.closes, 14, 3, 3)
		attach(rows, "STOCH_K", k)
		attach(rows, "STOCH_D", d)
	},
	"OBV":  func(s *series, rows []Row) { attach(rows, "OBV", OBV(s.closes, s.volume)) },
	"VWAP": func(s *series, rows []Row) { attach(rows, "VWAP", VWAP(s.timestamps, s.high, s.low, s.closes, s.volume)) },
	"MFI":  func(s *series, rows []Row) { attach(rows, "MFI_14", MFI(s.high, s.low, s.closes, s.volume, 14)) },
	"CCI":  func(s *series, rows []Row) { attach(rows, "CCI_20", CCI(s.high, s.low, s.closes, 20)) },
}

// CalculateMultiple computes several indicators over one candle series,
// merging the columns into shared rows. Unknown names are logged and
// skipped rather than failing the batch.
func CalculateMultiple(ctx context.Context, klines []exchange.Kline, names []string) (*BatchResult, error) {
	s, err := newSeries(klines)
	if err != nil {
		return nil, err
	}

	rows := s.rows()
	calculated := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.ToUpper(strings.TrimSpace(raw))
		apply, ok := batchIndicators[name]
		if !ok {
			logx.WithContext(ctx).Errorf("indicators: unknown indicator %q, skipping", raw)
			continue
		}
		apply(s, rows)
		calculated = append(calculated, name)
	}

	return &BatchResult{IndicatorsCalculated: calculated, Data: rows}, nil
}
