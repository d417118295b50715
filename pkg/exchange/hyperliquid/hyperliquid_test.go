package hyperliquid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-api/pkg/exchange"
)

const spotMetaResponse = `{
	"tokens": [
		{"name": "USDC", "index": 0},
		{"name": "PURR", "index": 1},
		{"name": "USDT0", "index": 2},
		{"name": "HYPE", "index": 3}
	],
	"universe": [
		{"name": "PURR/USDC", "tokens": [1, 0]},
		{"name": "@1", "tokens": [3, 2]},
		{"name": "@2", "tokens": [9, 0]}
	]
}`

const metaResponse = `{
	"universe": [
		{"name": "BTC", "szDecimals": 5, "maxLeverage": 40},
		{"name": "USDT0", "szDecimals": 1, "maxLeverage": 10},
		{"name": "LOOM", "szDecimals": 1, "maxLeverage": 3, "isDelisted": true}
	]
}`

const metaAndAssetCtxsResponse = `[
	{
		"universe": [
			{"name": "BTC", "szDecimals": 5, "maxLeverage": 40},
			{"name": "ETH", "szDecimals": 4, "maxLeverage": 25},
			{"name": "TRAILING", "szDecimals": 1, "maxLeverage": 10}
		]
	},
	[
		{
			"funding": "0.0000125",
			"openInterest": "9991.5",
			"prevDayPx": "102983.0",
			"dayNtlVlm": "1169046000.0",
			"dayBaseVlm": "11400.5",
			"premium": "0.00034",
			"oraclePx": "101500.0",
			"markPx": "101540.0",
			"midPx": "101539.5"
		},
		{
			"funding": "0.0000125",
			"openInterest": "120000.0",
			"prevDayPx": "0",
			"dayNtlVlm": "350000000.0",
			"dayBaseVlm": "98000.0",
			"premium": "0.0001",
			"oraclePx": "3300.0",
			"markPx": "3305.5",
			"midPx": null
		}
	]
]`

func TestFetchAllPairsSpot(t *testing.T) {
	server := newInfoServer(t, map[string]string{"spotMeta": spotMetaResponse})
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	pairs, err := adapter.FetchAllPairs(context.Background(), exchange.MarketSpot, false)
	require.NoError(t, err)

	// The third universe entry references an unknown token index and is
	// dropped.
	require.Len(t, pairs.Active, 2)
	assert.Empty(t, pairs.Inactive)

	assert.Equal(t, "PURR", pairs.Active[0].Symbol)
	assert.Equal(t, "PURR/USDC", pairs.Active[0].Pair)
	assert.Equal(t, "hyperliquid-spot", pairs.Active[0].Exchange)

	// The wrapped-stablecoin alias collapses in both the symbol and the
	// synthesized pair name.
	assert.Equal(t, "HYPE", pairs.Active[1].Symbol)
	assert.Equal(t, "HYPE/USDT", pairs.Active[1].Pair)
}

func TestFetchAllPairsFutures(t *testing.T) {
	server := newInfoServer(t, map[string]string{"meta": metaResponse})
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	pairs, err := adapter.FetchAllPairs(context.Background(), exchange.MarketFutures, false)
	require.NoError(t, err)
	require.Len(t, pairs.Active, 2)
	require.Len(t, pairs.Inactive, 1)

	assert.Equal(t, "BTC", pairs.Active[0].Symbol)
	assert.Equal(t, "BTC-USD", pairs.Active[0].Pair)
	assert.Equal(t, "hyperliquid-futures", pairs.Active[0].Exchange)
	assert.Equal(t, "USDT-USD", pairs.Active[1].Pair)

	assert.Equal(t, "LOOM", pairs.Inactive[0].Symbol)
	assert.False(t, pairs.Inactive[0].IsActive)
}

func TestFetchSymbolsUnknownTag(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	_, _, err := adapter.FetchSymbols(context.Background(), server.URL, "hyperliquid-margin")
	var vErr *exchange.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, calls)
}

func TestFetchMarketData(t *testing.T) {
	server := newInfoServer(t, map[string]string{"metaAndAssetCtxs": metaAndAssetCtxsResponse})
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)

	snapshots, err := adapter.FetchMarketData(context.Background(), "")
	require.NoError(t, err)

	// The universe has one more entry than the context array; zipping by
	// index stops at the shorter side.
	require.Len(t, snapshots, 2)

	btc := snapshots[0]
	assert.Equal(t, "BTC", btc.Symbol)
	assert.InDelta(t, 101540.0, btc.MarkPrice, 1e-9)
	assert.InDelta(t, 102983.0, btc.PrevDayPrice, 1e-9)
	assert.InDelta(t, -1.40, btc.PriceChange24h, 1e-9)
	assert.InDelta(t, 9991.5, btc.OpenInterest, 1e-9)
	assert.InDelta(t, 40, btc.MaxLeverage, 1e-9)
	assert.Equal(t, 5, btc.SizeDecimals)

	eth := snapshots[1]
	assert.Zero(t, eth.PriceChange24h, "zero previous-day price must not divide")
	assert.Zero(t, eth.MidPrice, "null mid price parses as zero")
}

func TestFetchMarketDataSymbolFilter(t *testing.T) {
	server := newInfoServer(t, map[string]string{"metaAndAssetCtxs": metaAndAssetCtxsResponse})
	defer server.Close()

	adapter := newTestAdapter(t, server.URL)
	ctx := context.Background()

	t.Run("exact_match", func(t *testing.T) {
		snapshots, err := adapter.FetchMarketData(ctx, "ETH")
		require.NoError(t, err)
		require.Len(t, snapshots, 1)
		assert.Equal(t, "ETH", snapshots[0].Symbol)
	})

	t.Run("unknown_symbol_empty", func(t *testing.T) {
		snapshots, err := adapter.FetchMarketData(ctx, "DOGE")
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})
}

func TestCapabilitySurface(t *testing.T) {
	adapter := New()
	defer adapter.Close()

	_, ok := any(adapter).(exchange.KlineProvider)
	assert.False(t, ok, "historical klines are not served by this vendor")
	_, ok = any(adapter).(exchange.MarketDataProvider)
	assert.True(t, ok)
	_, ok = any(adapter).(exchange.FundingHistoryProvider)
	assert.False(t, ok)
}

func TestMetaAndAssetCtxsSingleObjectShape(t *testing.T) {
	var payload metaAndAssetCtxs
	err := json.Unmarshal([]byte(`[{"universe": [{"name": "BTC"}], "assetCtxs": [{"markPx": "100.0"}]}]`), &payload)
	require.NoError(t, err)
	require.Len(t, payload.Universe, 1)
	require.Len(t, payload.AssetCtxs, 1)
	assert.Equal(t, "100.0", payload.AssetCtxs[0].MarkPx)
}

func newInfoServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		body, ok := responses[req.Type]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(body))
	}))
}

func newTestAdapter(t *testing.T, baseURL string) *Adapter {
	t.Helper()
	adapter := New(
		WithBaseURL(baseURL),
		WithFetcher(exchange.NewFetcher(exchange.WithBackoff(time.Millisecond, 2*time.Millisecond))),
	)
	t.Cleanup(func() { _ = adapter.Close() })
	return adapter
}
