package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	result := SMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 2.0, result[2], 1e-9)
	require.InDelta(t, 3.0, result[3], 1e-9)
	require.InDelta(t, 4.0, result[4], 1e-9)
}

func TestEMA(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	result := EMA(data, 3)
	require.Len(t, result, len(data))
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
	require.InDelta(t, 2.0, result[2], 1e-9)
	require.InDelta(t, 3.0, result[3], 1e-9)
	require.InDelta(t, 4.0, result[4], 1e-9)
	require.InDelta(t, 5.0, result[5], 1e-9)
}

func TestEMAShortInput(t *testing.T) {
	result := EMA([]float64{1, 2}, 3)
	require.Len(t, result, 2)
	require.True(t, math.IsNaN(result[0]))
	require.True(t, math.IsNaN(result[1]))
}

func TestMACD(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 105, 107, 106, 108, 110, 111, 112, 115, 117, 119, 118, 120, 121, 123, 125, 124, 126, 127, 129, 130, 132, 133, 134, 135, 136, 138, 139, 141, 140, 142, 144, 143, 145, 147, 149, 148, 150, 151, 149, 148, 150, 152, 151, 153, 154, 156, 155, 157, 158, 160, 161, 159, 158, 157, 159, 160}
	macd, signal, hist := MACD(closes)
	require.Len(t, macd, len(closes))
	require.Len(t, signal, len(closes))
	require.Len(t, hist, len(closes))

	last := len(closes) - 1
	require.InDelta(t, 5.582947, macd[last], 1e-6)
	require.InDelta(t, 6.307087, signal[last], 1e-6)
	require.InDelta(t, -0.724141, hist[last], 1e-6)
}

func TestRSI(t *testing.T) {
	closes := []float64{100, 101, 102, 103, 105, 107, 106, 108, 110, 111, 112, 115, 117, 119, 118, 120, 121, 123, 125, 124, 126, 127, 129, 130, 132, 133, 134, 135, 136, 138, 139, 141, 140, 142, 144, 143, 145, 147, 149, 148, 150, 151, 149, 148, 150, 152, 151, 153, 154, 156, 155, 157, 158, 160, 161, 159, 158, 157, 159, 160}
	rsi := RSI(closes, 14)
	require.Len(t, rsi, len(closes))
	require.True(t, math.IsNaN(rsi[13]))
	require.InDelta(t, 73.084185, rsi[len(rsi)-1], 1e-6)
}

func TestRSIAllGains(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}
	rsi := RSI(closes, 3)
	require.InDelta(t, 100.0, rsi[len(rsi)-1], 1e-9)
}

func TestBollingerBands(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}
	upper, middle, lower := BollingerBands(prices, 3, 2.0)
	require.Len(t, upper, len(prices))
	require.True(t, math.IsNaN(upper[1]))

	// population std of any 3-wide window here is sqrt(2/3)
	sd := math.Sqrt(2.0 / 3.0)
	require.InDelta(t, 4.0, middle[4], 1e-9)
	require.InDelta(t, 4.0+2*sd, upper[4], 1e-9)
	require.InDelta(t, 4.0-2*sd, lower[4], 1e-9)
}

func TestATR(t *testing.T) {
	closes := []float64{100, 101, 102, 104, 103, 105, 107, 106, 108, 110, 112, 111, 113, 115, 114, 116, 118, 117, 119, 121}
	high := make([]float64, len(closes))
	low := make([]float64, len(closes))
	for i, c := range closes {
		high[i] = c + 1.5
		low[i] = c - 1.5
	}

	atr := ATR(high, low, closes, 14)
	require.Len(t, atr, len(closes))
	require.True(t, math.IsNaN(atr[12]))
	require.InDelta(t, 3.326525, atr[len(atr)-1], 1e-6)
}

func TestStochastic(t *testing.T) {
	high := []float64{10, 11, 12, 13, 14}
	low := []float64{8, 9, 10, 11, 12}
	closes := []float64{9, 10, 11, 12, 13}

	k, d := Stochastic(high, low, closes, 3, 2, 1)
	require.Len(t, k, len(closes))
	require.Len(t, d, len(closes))
	require.True(t, math.IsNaN(k[1]))
	require.InDelta(t, 75.0, k[2], 1e-9)
	require.True(t, math.IsNaN(d[2]))
	require.InDelta(t, 75.0, d[3], 1e-9)
	require.InDelta(t, 75.0, d[4], 1e-9)
}

func TestStochasticFlatRange(t *testing.T) {
	flat := []float64{5, 5, 5, 5}
	k, _ := Stochastic(flat, flat, flat, 2, 2, 1)
	for i := range k {
		require.True(t, math.IsNaN(k[i]), "index %d", i)
	}
}

func TestCCI(t *testing.T) {
	high := []float64{2, 3, 4, 5, 6}
	low := []float64{0, 1, 2, 3, 4}
	closes := []float64{1, 2, 3, 4, 5}

	cci := CCI(high, low, closes, 3)
	require.Len(t, cci, len(closes))
	require.True(t, math.IsNaN(cci[1]))
	// a steady uptrend pins CCI at 100
	require.InDelta(t, 100.0, cci[2], 1e-9)
	require.InDelta(t, 100.0, cci[4], 1e-9)
}

func TestCCIFlatPrices(t *testing.T) {
	flat := []float64{1, 1, 1}
	cci := CCI(flat, flat, flat, 2)
	require.True(t, math.IsNaN(cci[1]))
	require.True(t, math.IsNaN(cci[2]))
}

func TestMFI(t *testing.T) {
	tp := []float64{1, 2, 3, 2, 2}
	volume := []float64{10, 10, 10, 10, 10}

	mfi := MFI(tp, tp, tp, volume, 2)
	require.Len(t, mfi, len(tp))
	require.True(t, math.IsNaN(mfi[1]))
	require.InDelta(t, 100.0, mfi[2], 1e-9)
	require.InDelta(t, 60.0, mfi[3], 1e-9)
	require.InDelta(t, 0.0, mfi[4], 1e-9)
}

func TestOBV(t *testing.T) {
	closes := []float64{10, 11, 10, 10, 12}
	volume := []float64{1, 2, 3, 4, 5}

	obv := OBV(closes, volume)
	require.Equal(t, []float64{1, 3, 0, 0, 5}, obv)
}

func TestVWAPResetsAtDayBoundary(t *testing.T) {
	timestamps := []int64{0, 3600000, 86400000, 90000000}
	high := []float64{12, 14, 10, 12}
	low := []float64{8, 10, 6, 8}
	closes := []float64{10, 12, 8, 10}
	volume := []float64{10, 30, 10, 10}

	vwap := VWAP(timestamps, high, low, closes, volume)
	require.InDelta(t, 10.0, vwap[0], 1e-9)
	require.InDelta(t, 11.5, vwap[1], 1e-9)
	require.InDelta(t, 8.0, vwap[2], 1e-9)
	require.InDelta(t, 9.0, vwap[3], 1e-9)
}

func TestKeltnerChannels(t *testing.T) {
	closes := []float64{100, 101, 102, 104, 103, 105, 107, 106, 108, 110, 112, 111, 113, 115, 114, 116, 118, 117, 119, 121}
	high := make([]float64, len(closes))
	low := make([]float64, len(closes))
	for i, c := range closes {
		high[i] = c + 1.5
		low[i] = c - 1.5
	}

	upper, middle, lower := KeltnerChannels(high, low, closes, 14, 2.0)
	require.Len(t, upper, len(closes))
	require.True(t, math.IsNaN(upper[12]))

	last := len(closes) - 1
	require.InDelta(t, 113.312643, middle[last], 1e-6)
	require.InDelta(t, 119.965694, upper[last], 1e-6)
	require.InDelta(t, 106.659592, lower[last], 1e-6)
}
