// Package indicators computes technical-analysis series over candlestick
// data. Every function returns a slice aligned with its input; positions
// before an indicator's warm-up window hold NaN.
package indicators

import "math"

// SMA produces the simple moving average for the supplied prices.
func SMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	result := nanSlice(len(prices))
	for i := period - 1; i < len(prices); i++ {
		sum := 0.0
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(prices[j]) {
				valid = false
				break
			}
			sum += prices[j]
		}
		if valid {
			result[i] = sum / float64(period)
		}
	}
	return result
}

// EMA produces the exponential moving average for the supplied prices.
func EMA(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	result := nanSlice(len(prices))
	if len(prices) < period {
		return result
	}
	multiplier := 2.0 / float64(period+1)

	start := -1
	var seed float64
	for i := period - 1; i < len(prices); i++ {
		windowValid := true
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			if math.IsNaN(prices[j]) {
				windowValid = false
				break
			}
			sum += prices[j]
		}
		if windowValid {
			start = i
			seed = sum / float64(period)
			break
		}
	}
	if start == -1 {
		return result
	}
	result[start] = seed

	for i := start + 1; i < len(prices); i++ {
		if math.IsNaN(prices[i]) {
			result[i] = result[i-1]
			continue
		}
		prev := result[i-1]
		if math.IsNaN(prev) {
			prev = seed
		}
		result[i] = (prices[i]-prev)*multiplier + prev
	}
	return result
}

// MACD returns MACD, signal, and histogram series using the conventional
// 12/26/9 spans.
func MACD(prices []float64) ([]float64, []float64, []float64) {
	if len(prices) == 0 {
		return []float64{}, []float64{}, []float64{}
	}
	ema12 := EMA(prices, 12)
	ema26 := EMA(prices, 26)

	macd := make([]float64, len(prices))
	for i := range prices {
		if math.IsNaN(ema12[i]) || math.IsNaN(ema26[i]) {
			macd[i] = math.NaN()
		} else {
			macd[i] = ema12[i] - ema26[i]
		}
	}

	signal := EMA(macd, 9)
	hist := make([]float64, len(prices))
	for i := range hist {
		if math.IsNaN(macd[i]) || math.IsNaN(signal[i]) {
			hist[i] = math.NaN()
		} else {
			hist[i] = macd[i] - signal[i]
		}
	}
	return macd, signal, hist
}

// RSI computes the Relative Strength Index across the supplied prices.
func RSI(prices []float64, period int) []float64 {
	if period <= 0 || len(prices) == 0 {
		return []float64{}
	}
	rsi := nanSlice(len(prices))
	if len(prices) <= period {
		return rsi
	}

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
	}

	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)

	rsi[period] = computeRSI(avgGain, avgLoss)

	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		gain := math.Max(change, 0)
		loss := math.Max(-change, 0)

		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		rsi[i] = computeRSI(avgGain, avgLoss)
	}
	return rsi
}

// BollingerBands returns the upper, middle and lower bands: a simple
// moving average flanked at stdDev population standard deviations.
func BollingerBands(prices []float64, period int, stdDev float64) (upper, middle, lower []float64) {
	if period <= 0 || len(prices) == 0 {
		return []float64{}, []float64{}, []float64{}
	}
	middle = SMA(prices, period)
	upper = nanSlice(len(prices))
	lower = nanSlice(len(prices))

	for i := period - 1; i < len(prices); i++ {
		if math.IsNaN(middle[i]) {
			continue
		}
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := prices[j] - middle[i]
			variance += diff * diff
		}
		sd := math.Sqrt(variance / float64(period))
		upper[i] = middle[i] + stdDev*sd
		lower[i] = middle[i] - stdDev*sd
	}
	return upper, middle, lower
}

// ATR computes the Average True Range over the high/low/close series.
func ATR(high, low, closes []float64, period int) []float64 {
	if period <= 0 || len(closes) == 0 {
		return []float64{}
	}
	tr := make([]float64, len(closes))
	for i := range closes {
		if i == 0 {
			tr[i] = high[i] - low[i]
			continue
		}
		highLow := high[i] - low[i]
		highClose := math.Abs(high[i] - closes[i-1])
		lowClose := math.Abs(low[i] - closes[i-1])
		tr[i] = math.Max(highLow, math.Max(highClose, lowClose))
	}
	return EMA(tr, period)
}

// Stochastic returns the smoothed %K and %D oscillator series. A window
// with no price range yields NaN for that position.
func Stochastic(high, low, closes []float64, kPeriod, dPeriod, smoothK int) (k, d []float64) {
	if kPeriod <= 0 || dPeriod <= 0 || smoothK <= 0 || len(closes) == 0 {
		return []float64{}, []float64{}
	}
	raw := nanSlice(len(closes))
	for i := kPeriod - 1; i < len(closes); i++ {
		highest := math.Inf(-1)
		lowest := math.Inf(1)
		for j := i - kPeriod + 1; j <= i; j++ {
			highest = math.Max(highest, high[j])
			lowest = math.Min(lowest, low[j])
		}
		if spread := highest - lowest; spread > 0 {
			raw[i] = 100 * (closes[i] - lowest) / spread
		}
	}
	k = SMA(raw, smoothK)
	d = SMA(k, dPeriod)
	return k, d
}

// CCI computes the Commodity Channel Index from typical prices.
func CCI(high, low, closes []float64, period int) []float64 {
	if period <= 0 || len(closes) == 0 {
		return []float64{}
	}
	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (high[i] + low[i] + closes[i]) / 3
	}
	sma := SMA(tp, period)

	result := nanSlice(len(closes))
	for i := period - 1; i < len(closes); i++ {
		if math.IsNaN(sma[i]) {
			continue
		}
		meanDev := 0.0
		for j := i - period + 1; j <= i; j++ {
			meanDev += math.Abs(tp[j] - sma[i])
		}
		meanDev /= float64(period)
		if meanDev > 0 {
			result[i] = (tp[i] - sma[i]) / (0.015 * meanDev)
		}
	}
	return result
}

// MFI computes the Money Flow Index, a volume-weighted RSI analogue.
func MFI(high, low, closes, volume []float64, period int) []float64 {
	if period <= 0 || len(closes) == 0 {
		return []float64{}
	}
	result := nanSlice(len(closes))
	if len(closes) <= period {
		return result
	}

	tp := make([]float64, len(closes))
	for i := range closes {
		tp[i] = (high[i] + low[i] + closes[i]) / 3
	}

	for i := period; i < len(closes); i++ {
		var positive, negative float64
		for j := i - period + 1; j <= i; j++ {
			flow := tp[j] * volume[j]
			switch {
			case tp[j] > tp[j-1]:
				positive += flow
			case tp[j] < tp[j-1]:
				negative += flow
			}
		}
		result[i] = computeRSI(positive, negative)
	}
	return result
}

// OBV computes On-Balance Volume. The first position seeds the running
// total with its own volume.
func OBV(closes, volume []float64) []float64 {
	if len(closes) == 0 {
		return []float64{}
	}
	result := make([]float64, len(closes))
	result[0] = volume[0]
	for i := 1; i < len(closes); i++ {
		switch {
		case closes[i] > closes[i-1]:
			result[i] = result[i-1] + volume[i]
		case closes[i] < closes[i-1]:
			result[i] = result[i-1] - volume[i]
		default:
			result[i] = result[i-1]
		}
	}
	return result
}

// VWAP computes the volume-weighted average price, anchored per UTC day:
// the cumulative sums reset when the candle timestamp crosses a day
// boundary.
func VWAP(timestamps []int64, high, low, closes, volume []float64) []float64 {
	if len(closes) == 0 {
		return []float64{}
	}
	result := nanSlice(len(closes))

	const dayMs = 24 * 60 * 60 * 1000
	var cumPV, cumVol float64
	currentDay := int64(-1)

	for i := range closes {
		day := timestamps[i] / dayMs
		if day != currentDay {
			currentDay = day
			cumPV = 0
			cumVol = 0
		}
		tp := (high[i] + low[i] + closes[i]) / 3
		cumPV += tp * volume[i]
		cumVol += volume[i]
		if cumVol > 0 {
			result[i] = cumPV / cumVol
		}
	}
	return result
}

// KeltnerChannels returns the upper, middle and lower channels: an EMA
// of closes flanked at multiplier average true ranges.
func KeltnerChannels(high, low, closes []float64, period int, multiplier float64) (upper, middle, lower []float64) {
	if period <= 0 || len(closes) == 0 {
		return []float64{}, []float64{}, []float64{}
	}
	middle = EMA(closes, period)
	atr := ATR(high, low, closes, period)

	upper = nanSlice(len(closes))
	lower = nanSlice(len(closes))
	for i := range closes {
		if math.IsNaN(middle[i]) || math.IsNaN(atr[i]) {
			continue
		}
		upper[i] = middle[i] + multiplier*atr[i]
		lower[i] = middle[i] - multiplier*atr[i]
	}
	return upper, middle, lower
}

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func computeRSI(avgGain, avgLoss float64) float64 {
	switch {
	case avgLoss == 0 && avgGain == 0:
		return 50.0
	case avgLoss == 0:
		return 100.0
	case avgGain == 0:
		return 0.0
	default:
		rs := avgGain / avgLoss
		return 100.0 - (100.0 / (1.0 + rs))
	}
}
