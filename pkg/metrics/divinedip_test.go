package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-api/pkg/exchange"
)

func TestFetchDivineDipCEX(t *testing.T) {
	var gotQuery map[string]string
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`{"data":[
			{"t":"2024-01-01T00:00:00","dd":1},
			{"t":"2024-01-02T00:00:00","dd":0},
			{"t":"2024-01-03T00:00:00","dd":1},
			{"t":"2024-01-04T00:00:00","dd":0}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	resp, err := c.FetchDivineDip(context.Background(), DivineDipQuery{
		ExchangeType: "cex",
		Exchange:     "bybit-futures",
		Token:        "BTCUSDT",
		Timeframe:    "1D",
		StartEpoch:   1648923900,
		EndEpoch:     1763231400,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	assert.Equal(t, "divine_dip", gotQuery["metric"])
	assert.Equal(t, "4", gotQuery["version"])
	assert.Equal(t, "CEX", gotQuery["exchange_type"])
	assert.Equal(t, "bybit-futures", gotQuery["exchange"])
	assert.Equal(t, "BTCUSDT", gotQuery["token"])
	assert.Equal(t, "1D", gotQuery["timeframe"])
	assert.Equal(t, "1648923900", gotQuery["start_epoch"])

	assert.Equal(t, "divine_dip", resp.Metric)
	assert.Equal(t, 4, resp.Count)
	require.Len(t, resp.Data, 4)
	assert.Equal(t, "2024-01-01T00:00:00", resp.Data[0].Timestamp)
	assert.InDelta(t, 1.0, resp.Data[0].DivineDip, 1e-9)

	assert.Equal(t, 4, resp.Stats.TotalPeriods)
	assert.Equal(t, 2, resp.Stats.DivineDipSignals)
	assert.InDelta(t, 50.0, resp.Stats.SignalPercentage, 1e-9)
}

func TestFetchDivineDipDEX(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	resp, err := c.FetchDivineDip(context.Background(), DivineDipQuery{
		ExchangeType: "DEX",
		Chain:        "ethereum",
		PoolAddress:  "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640",
		Timeframe:    "4H",
		StartEpoch:   1648923900,
		EndEpoch:     1763231400,
	})
	require.NoError(t, err)

	assert.Equal(t, "DEX", gotQuery["exchange_type"])
	assert.Equal(t, "ethereum", gotQuery["chain"])
	assert.Equal(t, "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640", gotQuery["pool_address"])
	assert.Equal(t, 0, resp.Count)
	assert.Equal(t, 0, resp.Stats.TotalPeriods)
}

func TestFetchDivineDipValidation(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	cases := []struct {
		name    string
		query   DivineDipQuery
		wantMsg string
	}{
		{
			name: "unknown_cex_exchange",
			query: DivineDipQuery{
				ExchangeType: "CEX", Exchange: "kraken-spot", Token: "BTCUSDT",
				Timeframe: "1D", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "invalid CEX exchange",
		},
		{
			name: "unknown_cex_timeframe",
			query: DivineDipQuery{
				ExchangeType: "CEX", Exchange: "binance-spot", Token: "BTCUSDT",
				Timeframe: "2H", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "invalid CEX timeframe",
		},
		{
			name: "missing_token",
			query: DivineDipQuery{
				ExchangeType: "CEX", Exchange: "binance-spot",
				Timeframe: "1D", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "token is required",
		},
		{
			name: "dex_sub_hour_timeframe",
			query: DivineDipQuery{
				ExchangeType: "DEX", Chain: "ethereum",
				PoolAddress: "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640",
				Timeframe:   "15m", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "invalid DEX timeframe",
		},
		{
			name: "missing_chain",
			query: DivineDipQuery{
				ExchangeType: "DEX", PoolAddress: "0x88e6A0c2dDD26FEEb64F039a2c41296FcB3f5640",
				Timeframe: "1D", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "chain is required",
		},
		{
			name: "bad_pool_address",
			query: DivineDipQuery{
				ExchangeType: "DEX", Chain: "ethereum", PoolAddress: "not-an-address",
				Timeframe: "1D", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "invalid pool address",
		},
		{
			name: "epoch_order",
			query: DivineDipQuery{
				ExchangeType: "CEX", Exchange: "binance-spot", Token: "BTCUSDT",
				Timeframe: "1D", StartEpoch: 2, EndEpoch: 1,
			},
			wantMsg: "start_epoch must be less than end_epoch",
		},
		{
			name: "bad_exchange_type",
			query: DivineDipQuery{
				ExchangeType: "OTC", Timeframe: "1D", StartEpoch: 1, EndEpoch: 2,
			},
			wantMsg: "invalid exchange type",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := c.FetchDivineDip(context.Background(), tc.query)
			require.Error(t, err)

			var verr *exchange.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
	assert.Equal(t, 0, calls, "validation failures must not hit the backend")
}

func TestFetchDivineDipSolanaPoolSkipsHexCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	_, err := c.FetchDivineDip(context.Background(), DivineDipQuery{
		ExchangeType: "DEX",
		Chain:        "solana",
		PoolAddress:  "8sLbNZoA1cfnvMJLPfp98ZLAnFSYCFApfJKMbiXNLwxj",
		Timeframe:    "1D",
		StartEpoch:   1,
		EndEpoch:     2,
	})
	require.NoError(t, err)
}

func TestDivineDipStatistics(t *testing.T) {
	empty := DivineDipStatistics(nil)
	assert.Equal(t, 0, empty.TotalPeriods)
	assert.InDelta(t, 0.0, empty.SignalPercentage, 1e-9)

	points := []DivineDipPoint{
		{Timestamp: "a", DivineDip: 1},
		{Timestamp: "b", DivineDip: 0},
		{Timestamp: "c", DivineDip: 0},
	}
	stats := DivineDipStatistics(points)
	assert.Equal(t, 3, stats.TotalPeriods)
	assert.Equal(t, 1, stats.DivineDipSignals)
	assert.InDelta(t, 33.33, stats.SignalPercentage, 1e-9)
}
