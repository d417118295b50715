package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panda-api/internal/config"
	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/confkit"
	"panda-api/pkg/exchange"
)

const binanceSpotInfo = `{
	"symbols": [
		{"symbol": "BTCUSDT", "status": "TRADING", "baseAsset": "BTC", "quoteAsset": "USDT"},
		{"symbol": "ETHUSDT", "status": "TRADING", "baseAsset": "ETH", "quoteAsset": "USDT"},
		{"symbol": "LUNAUSDT", "status": "BREAK", "baseAsset": "LUNA", "quoteAsset": "USDT"}
	]
}`

func newTestContext(t *testing.T, exchanges map[string]*exchange.AdapterConfig) *svc.ServiceContext {
	t.Helper()
	cfg := config.Config{
		Env:    "test",
		Export: config.ExportConf{OutputDir: t.TempDir()},
		Exchange: confkit.Section[exchange.Config]{
			Value: &exchange.Config{Exchanges: exchanges},
		},
	}
	cfg.Name = "panda-api-test"
	sc := svc.NewServiceContext(cfg)
	t.Cleanup(sc.Close)
	return sc
}

func decodeErrorPayload(t *testing.T, w *httptest.ResponseRecorder) types.ErrorPayload {
	t.Helper()
	var payload types.ErrorPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestHealthHandler(t *testing.T) {
	sc := newTestContext(t, nil)

	w := httptest.NewRecorder()
	HealthHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "panda-api-test", resp.Service)
}

func TestExchangesHandler(t *testing.T) {
	sc := newTestContext(t, nil)

	w := httptest.NewRecorder()
	ExchangesHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/exchanges", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.ExchangesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	require.Len(t, resp.Exchanges, 3)
	assert.Equal(t, "binance", resp.Exchanges[0].Name)
	assert.Equal(t, "bybit", resp.Exchanges[1].Name)
	assert.Equal(t, "hyperliquid", resp.Exchanges[2].Name)
	assert.NotEmpty(t, resp.Exchanges[0].Description)
}

func TestPairsHandler(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(binanceSpotInfo))
	}))
	defer vendor.Close()

	sc := newTestContext(t, map[string]*exchange.AdapterConfig{
		"binance": {SpotBaseURL: vendor.URL, FuturesBaseURL: vendor.URL, MaxAttempts: 1},
	})

	w := httptest.NewRecorder()
	PairsHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/pairs?exchange=binance", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.PairsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "binance", resp.Exchange)
	assert.Equal(t, "spot", resp.Market)
	assert.Equal(t, "active", resp.StatusFilter)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Pairs, 2)
	assert.Equal(t, "BTC", resp.Pairs[0].Symbol)
	assert.Equal(t, "BTCUSDT", resp.Pairs[0].Pair)
}

func TestPairsHandlerMissingExchange(t *testing.T) {
	sc := newTestContext(t, nil)

	w := httptest.NewRecorder()
	PairsHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/pairs", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeErrorPayload(t, w)
	assert.Equal(t, "Invalid input", payload.Error)
	assert.Equal(t, "validation", payload.ErrorType)
	assert.Contains(t, payload.Message, "exchange")
}

func TestPairsHandlerUnknownExchange(t *testing.T) {
	sc := newTestContext(t, nil)

	w := httptest.NewRecorder()
	PairsHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/pairs?exchange=kraken", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeErrorPayload(t, w)
	assert.Equal(t, "validation", payload.ErrorType)
	assert.Contains(t, payload.Message, "kraken")
	assert.Contains(t, payload.Message, "binance")
}

func TestKlinesHandlerNotSupported(t *testing.T) {
	sc := newTestContext(t, nil)

	w := httptest.NewRecorder()
	KlinesHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/klines?exchange=hyperliquid&symbol=BTC&interval=1h", nil))

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeErrorPayload(t, w)
	assert.Equal(t, "Feature not supported", payload.Error)
	assert.Equal(t, "not_supported", payload.ErrorType)
	assert.Contains(t, payload.Message, "hyperliquid")
	assert.Contains(t, payload.Message, "market-data")
}

func TestKlinesHandlerVendorDown(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	vendorURL := vendor.URL
	vendor.Close()

	sc := newTestContext(t, map[string]*exchange.AdapterConfig{
		"binance": {SpotBaseURL: vendorURL, FuturesBaseURL: vendorURL, MaxAttempts: 1},
	})

	w := httptest.NewRecorder()
	KlinesHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/klines?exchange=binance&symbol=BTCUSDT&interval=1h", nil))

	require.Equal(t, http.StatusBadGateway, w.Code)
	payload := decodeErrorPayload(t, w)
	assert.Equal(t, "API request failed", payload.Error)
	assert.Equal(t, "transport", payload.ErrorType)

	params, ok := payload.Params.(map[string]any)
	require.True(t, ok, "params must echo the parsed request")
	assert.Equal(t, "binance", params["exchange"])
	assert.Equal(t, "BTCUSDT", params["symbol"])
	assert.Equal(t, float64(500), params["limit"], "defaults are applied before the fetch")
}

func TestKlinesHandler(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		w.Write([]byte(`[
			[1698768000000, "34500.1", "34800.5", "34200.0", "34650.2", "1250.5", 1698771599999, "43200000.0", 12345, "600.2", "20700000.0", "0"]
		]`))
	}))
	defer vendor.Close()

	sc := newTestContext(t, map[string]*exchange.AdapterConfig{
		"binance": {SpotBaseURL: vendor.URL, FuturesBaseURL: vendor.URL, MaxAttempts: 1},
	})

	w := httptest.NewRecorder()
	KlinesHandler(sc)(w, httptest.NewRequest(http.MethodGet, "/api/v1/klines?exchange=binance&symbol=BTCUSDT&interval=1h&limit=250", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.KlinesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "binance", resp.Exchange)
	assert.Equal(t, "1h", resp.Interval)
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Klines, 1)
	assert.Equal(t, "34500.1", resp.Klines[0].Open)
}

func TestExportPairsHandler(t *testing.T) {
	vendor := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(binanceSpotInfo))
	}))
	defer vendor.Close()

	sc := newTestContext(t, map[string]*exchange.AdapterConfig{
		"binance": {SpotBaseURL: vendor.URL, FuturesBaseURL: vendor.URL, MaxAttempts: 1},
	})

	body := strings.NewReader(`{"exchange": "binance", "market": "spot", "status": "all"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/export/pairs", body)
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	ExportPairsHandler(sc)(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp types.ExportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "json", resp.Format)
	assert.Equal(t, 3, resp.RecordsExported)
	assert.Equal(t, "all", resp.StatusFilter)

	assert.True(t, strings.HasPrefix(resp.FilePath, sc.Config.Export.OutputDir),
		"file must land in the configured output directory")
	info, err := os.Stat(resp.FilePath)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), resp.FileSizeBytes)
}

func TestExportPairsHandlerBadFormat(t *testing.T) {
	sc := newTestContext(t, nil)

	body := strings.NewReader(`{"exchange": "binance", "format": "parquet"}`)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/export/pairs", body)
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	ExportPairsHandler(sc)(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	payload := decodeErrorPayload(t, w)
	assert.Equal(t, "validation", payload.ErrorType)
}

func TestRegisterHandlersRoutes(t *testing.T) {
	// Handlers close over the service context at registration time; a nil
	// registry would panic on first request, so building them all is the
	// smoke test.
	sc := newTestContext(t, nil)
	for _, build := range []func(*svc.ServiceContext) http.HandlerFunc{
		HealthHandler, ExchangesHandler, PairsHandler, ComparePairsHandler,
		KlinesHandler, MarketDataHandler, FundingHistoryHandler, FundingInfoHandler,
		OpenInterestHandler, OpenInterestHistoryHandler, IndicatorHandler,
		BatchIndicatorsHandler, ExportKlinesHandler, ExportFundingHandler,
		ExportOpenInterestHandler, ExportPairsHandler, ExportIndicatorsHandler,
		DivineDipHandler, OrderbookHandler,
	} {
		assert.NotNil(t, build(sc))
	}
}
