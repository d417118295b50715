package hyperliquid

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"panda-api/pkg/exchange"
)

// universeEntry enumerates one tradable perpetual asset.
type universeEntry struct {
	Name         string  `json:"name"`
	SzDecimals   int     `json:"szDecimals"`
	MaxLeverage  float64 `json:"maxLeverage"`
	IsDelisted   bool    `json:"isDelisted"`
	OnlyIsolated bool    `json:"onlyIsolated"`
}

// assetCtx holds live per-asset context. The vendor encodes every number
// as a string; midPx may be null.
type assetCtx struct {
	Funding      string `json:"funding"`
	OpenInterest string `json:"openInterest"`
	PrevDayPx    string `json:"prevDayPx"`
	DayNtlVlm    string `json:"dayNtlVlm"`
	DayBaseVlm   string `json:"dayBaseVlm"`
	Premium      string `json:"premium"`
	OraclePx     string `json:"oraclePx"`
	MarkPx       string `json:"markPx"`
	MidPx        string `json:"midPx"`
}

// metaAndAssetCtxs carries the metadata universe and the parallel
// per-asset context array.
type metaAndAssetCtxs struct {
	Universe  []universeEntry
	AssetCtxs []assetCtx
}

// UnmarshalJSON accommodates both documented and live payload shapes: a
// two-element array of [meta, assetCtxs], or a single object carrying
// both fields.
func (m *metaAndAssetCtxs) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch len(raw) {
	case 0:
		return fmt.Errorf("unexpected metaAndAssetCtxs payload: empty array")
	case 1:
		var meta struct {
			Universe  []universeEntry `json:"universe"`
			AssetCtxs []assetCtx      `json:"assetCtxs"`
		}
		if err := json.Unmarshal(raw[0], &meta); err != nil {
			return err
		}
		m.Universe = meta.Universe
		m.AssetCtxs = meta.AssetCtxs
	default:
		var meta struct {
			Universe []universeEntry `json:"universe"`
		}
		if err := json.Unmarshal(raw[0], &meta); err != nil {
			return err
		}
		var ctxs []assetCtx
		if err := json.Unmarshal(raw[1], &ctxs); err != nil {
			return err
		}
		m.Universe = meta.Universe
		m.AssetCtxs = ctxs
	}
	return nil
}

// FetchMarketData returns live snapshots for every perpetual asset, or
// for a single asset when symbol is non-empty. An unknown symbol yields
// an empty slice. The universe and context arrays are parallel and are
// zipped by index.
func (a *Adapter) FetchMarketData(ctx context.Context, symbol string) ([]exchange.MarketSnapshot, error) {
	var payload metaAndAssetCtxs
	if err := a.fetcher.PostJSON(ctx, a.baseURL, infoRequest{Type: "metaAndAssetCtxs"}, &payload); err != nil {
		return nil, err
	}

	filter := ""
	if symbol != "" {
		filter = normalizeSymbol(symbol)
	}

	snapshots := make([]exchange.MarketSnapshot, 0, len(payload.Universe))
	for i, entry := range payload.Universe {
		if i >= len(payload.AssetCtxs) {
			break
		}
		name := normalizeSymbol(entry.Name)
		if filter != "" && name != filter {
			continue
		}

		snapshot, err := buildSnapshot(name, entry, payload.AssetCtxs[i])
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, nil
}

func buildSnapshot(name string, entry universeEntry, asset assetCtx) (exchange.MarketSnapshot, error) {
	var zero exchange.MarketSnapshot

	mark, err := parseFloat("mark price", asset.MarkPx)
	if err != nil {
		return zero, err
	}
	oracle, err := parseFloat("oracle price", asset.OraclePx)
	if err != nil {
		return zero, err
	}
	mid, err := parseFloat("mid price", asset.MidPx)
	if err != nil {
		return zero, err
	}
	prevDay, err := parseFloat("prev day price", asset.PrevDayPx)
	if err != nil {
		return zero, err
	}
	baseVolume, err := parseFloat("day base volume", asset.DayBaseVlm)
	if err != nil {
		return zero, err
	}
	usdVolume, err := parseFloat("day notional volume", asset.DayNtlVlm)
	if err != nil {
		return zero, err
	}
	funding, err := parseFloat("funding", asset.Funding)
	if err != nil {
		return zero, err
	}
	openInterest, err := parseFloat("open interest", asset.OpenInterest)
	if err != nil {
		return zero, err
	}
	premium, err := parseFloat("premium", asset.Premium)
	if err != nil {
		return zero, err
	}

	// 24h change from mark vs previous-day price; a zero or absent
	// previous-day price yields 0 rather than a division fault.
	change := 0.0
	if prevDay > 0 {
		change = math.Round((mark-prevDay)/prevDay*100*100) / 100
	}

	return exchange.MarketSnapshot{
		Symbol:         name,
		MarkPrice:      mark,
		OraclePrice:    oracle,
		MidPrice:       mid,
		PrevDayPrice:   prevDay,
		PriceChange24h: change,
		Volume24hBase:  baseVolume,
		Volume24hUSD:   usdVolume,
		FundingRate:    funding,
		OpenInterest:   openInterest,
		Premium:        premium,
		MaxLeverage:    entry.MaxLeverage,
		SizeDecimals:   entry.SzDecimals,
		IsDelisted:     entry.IsDelisted,
	}, nil
}

// parseFloat treats absent values as zero, matching vendor payloads where
// nullable fields arrive as empty strings.
func parseFloat(field, val string) (float64, error) {
	if val == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("hyperliquid: parse %s %q: %w", field, val, err)
	}
	return f, nil
}
