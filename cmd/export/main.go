// Command export pulls one dataset from an exchange adapter and writes it
// to disk, sharing the fetch and export paths with the HTTP service.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"panda-api/internal/cli"
	"panda-api/internal/config"
	"panda-api/internal/logic"
	"panda-api/internal/svc"
	"panda-api/internal/types"
)

const fetchTimeout = 60 * time.Second

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	configPath := flag.String("f", "etc/panda-api.yaml", "the config file")
	dataset := flag.String("data", "klines", "dataset: klines | funding | open-interest | pairs | indicators")
	exchangeName := flag.String("exchange", "binance", "exchange adapter to pull from")
	symbol := flag.String("symbol", "BTCUSDT", "trading pair symbol")
	market := flag.String("market", "spot", "market: spot | futures")
	interval := flag.String("interval", "1h", "kline or open-interest interval")
	indicators := flag.String("indicators", "rsi,macd", "comma separated indicator names")
	status := flag.String("status", "active", "pair status filter: active | inactive | all")
	limit := flag.Int("limit", 500, "maximum records to fetch")
	format := flag.String("format", "json", "output format: json | csv | msgpack")
	out := flag.String("out", "", "explicit output path, derived from the dataset when empty")
	flag.Parse()

	log.Println("[main] Starting exporter...")

	appCfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("[main] Warning: Failed to load app config: %v", err)
		log.Printf("[main] Using default configuration")
		appCfg = &config.Config{Env: "test", Export: config.ExportConf{OutputDir: "exports"}}
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	sc := svc.NewServiceContext(*appCfg)
	defer sc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	start := time.Now()
	resp, err := runExport(ctx, sc, *dataset, exportArgs{
		exchange:   *exchangeName,
		symbol:     *symbol,
		market:     *market,
		interval:   *interval,
		indicators: splitList(*indicators),
		status:     *status,
		limit:      *limit,
		format:     *format,
		out:        *out,
	})
	elapsed := time.Since(start)

	if err != nil {
		log.Fatalf("[export.%s] [ERROR] %v, took %dms", *dataset, err, elapsed.Milliseconds())
	}
	log.Printf("[export.%s] [OK] wrote %d records to %s (%d bytes), took %dms",
		*dataset, resp.RecordsExported, resp.FilePath, resp.FileSizeBytes, elapsed.Milliseconds())
}

type exportArgs struct {
	exchange   string
	symbol     string
	market     string
	interval   string
	indicators []string
	status     string
	limit      int
	format     string
	out        string
}

func runExport(ctx context.Context, sc *svc.ServiceContext, dataset string, args exportArgs) (*types.ExportResponse, error) {
	switch dataset {
	case "klines":
		return logic.NewExportKlinesLogic(ctx, sc).ExportKlines(&types.ExportKlinesReq{
			Exchange: args.exchange,
			Symbol:   args.symbol,
			Interval: args.interval,
			Market:   args.market,
			FilePath: args.out,
			Format:   args.format,
			Limit:    args.limit,
		})
	case "funding":
		return logic.NewExportFundingLogic(ctx, sc).ExportFunding(&types.ExportFundingReq{
			Exchange: args.exchange,
			Symbol:   args.symbol,
			FilePath: args.out,
			Format:   args.format,
			Limit:    args.limit,
		})
	case "open-interest":
		return logic.NewExportOpenInterestLogic(ctx, sc).ExportOpenInterest(&types.ExportOpenInterestReq{
			Exchange: args.exchange,
			Symbol:   args.symbol,
			Interval: args.interval,
			FilePath: args.out,
			Format:   args.format,
			Limit:    args.limit,
		})
	case "pairs":
		return logic.NewExportPairsLogic(ctx, sc).ExportPairs(&types.ExportPairsReq{
			Exchange: args.exchange,
			Market:   args.market,
			Status:   args.status,
			FilePath: args.out,
			Format:   args.format,
		})
	case "indicators":
		return logic.NewExportIndicatorsLogic(ctx, sc).ExportIndicators(&types.ExportIndicatorsReq{
			Exchange:   args.exchange,
			Symbol:     args.symbol,
			Interval:   args.interval,
			Indicators: args.indicators,
			Market:     args.market,
			FilePath:   args.out,
			Format:     args.format,
			Limit:      args.limit,
		})
	default:
		return nil, fmt.Errorf("unknown dataset %q, expected klines, funding, open-interest, pairs or indicators", dataset)
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
