// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/exchange"
	"panda-api/pkg/export"
	"panda-api/pkg/indicators"
)

type ExportKlinesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportKlinesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportKlinesLogic {
	return &ExportKlinesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportKlinesLogic) ExportKlines(req *types.ExportKlinesReq) (*types.ExportResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	provider, ok := ex.(exchange.KlineProvider)
	if !ok {
		return nil, notSupported(ex, "kline fetching")
	}

	klines, err := provider.FetchKlines(l.ctx, exchange.KlineQuery{
		Symbol:    req.Symbol,
		Interval:  req.Interval,
		Market:    exchange.MarketType(req.Market),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, err
	}

	path := l.exportPath(req.FilePath, ex.Name(), "klines_"+req.Interval, req.Symbol, req.Format)
	result, err := export.Write(klines, path)
	if err != nil {
		return nil, err
	}

	return &types.ExportResponse{
		Result:   *result,
		Exchange: ex.Name(),
		Symbol:   req.Symbol,
		Interval: req.Interval,
		Market:   req.Market,
	}, nil
}

func (l *ExportKlinesLogic) exportPath(explicit, exchangeName, dataType, symbol, format string) string {
	return resolveExportPath(l.svcCtx.Config.Export.OutputDir, explicit, exchangeName, dataType, symbol, format)
}

type ExportFundingLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportFundingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportFundingLogic {
	return &ExportFundingLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportFundingLogic) ExportFunding(req *types.ExportFundingReq) (*types.ExportResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	provider, ok := ex.(exchange.FundingHistoryProvider)
	if !ok {
		return nil, notSupported(ex, "funding rate history")
	}

	rates, err := provider.FetchFundingRateHistory(l.ctx, exchange.FundingHistoryQuery{
		Symbol:    req.Symbol,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Limit:     req.Limit,
	})
	if err != nil {
		return nil, err
	}

	path := resolveExportPath(l.svcCtx.Config.Export.OutputDir, req.FilePath, ex.Name(), "funding_rate", req.Symbol, req.Format)
	result, err := export.Write(rates, path)
	if err != nil {
		return nil, err
	}

	return &types.ExportResponse{
		Result:   *result,
		Exchange: ex.Name(),
		Symbol:   req.Symbol,
		DataType: "funding_rate",
	}, nil
}

type ExportOpenInterestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportOpenInterestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportOpenInterestLogic {
	return &ExportOpenInterestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportOpenInterestLogic) ExportOpenInterest(req *types.ExportOpenInterestReq) (*types.ExportResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	var records any
	dataType := "open_interest"

	if req.Interval != "" {
		dataType = "open_interest_" + req.Interval
		switch provider := ex.(type) {
		case exchange.OpenInterestHistoryProvider:
			history, err := provider.FetchOpenInterestHistory(l.ctx, exchange.OpenInterestHistoryQuery{
				Symbol:    req.Symbol,
				Period:    req.Interval,
				Limit:     req.Limit,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
			})
			if err != nil {
				return nil, err
			}
			records = history
		case exchange.OpenInterestSeriesProvider:
			points, err := provider.FetchOpenInterestSeries(l.ctx, exchange.OpenInterestSeriesQuery{
				Symbol:    req.Symbol,
				Interval:  req.Interval,
				StartTime: req.StartTime,
				EndTime:   req.EndTime,
				Limit:     req.Limit,
			})
			if err != nil {
				return nil, err
			}
			records = points
		default:
			return nil, notSupported(ex, "open interest")
		}
	} else {
		switch provider := ex.(type) {
		case exchange.OpenInterestProvider:
			oi, err := provider.FetchOpenInterest(l.ctx, req.Symbol)
			if err != nil {
				return nil, err
			}
			records = []exchange.OpenInterest{*oi}
		case exchange.OpenInterestSeriesProvider:
			// The vendor has no single-record endpoint; an empty interval
			// surfaces its own enumeration error.
			points, err := provider.FetchOpenInterestSeries(l.ctx, exchange.OpenInterestSeriesQuery{
				Symbol: req.Symbol,
				Limit:  req.Limit,
			})
			if err != nil {
				return nil, err
			}
			records = points
		default:
			return nil, notSupported(ex, "open interest")
		}
	}

	path := resolveExportPath(l.svcCtx.Config.Export.OutputDir, req.FilePath, ex.Name(), dataType, req.Symbol, req.Format)
	result, err := export.Write(records, path)
	if err != nil {
		return nil, err
	}

	return &types.ExportResponse{
		Result:   *result,
		Exchange: ex.Name(),
		Symbol:   req.Symbol,
		Interval: req.Interval,
		DataType: "open_interest",
	}, nil
}

type ExportPairsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportPairsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportPairsLogic {
	return &ExportPairsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportPairsLogic) ExportPairs(req *types.ExportPairsReq) (*types.ExportResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	list, err := ex.FetchAllPairs(l.ctx, exchange.MarketType(req.Market), true)
	if err != nil {
		return nil, err
	}
	pairs := filterPairs(list, req.Status)

	dataType := "trading_pairs_" + req.Market + "_" + req.Status
	path := resolveExportPath(l.svcCtx.Config.Export.OutputDir, req.FilePath, ex.Name(), dataType, "", req.Format)
	result, err := export.Write(pairs, path)
	if err != nil {
		return nil, err
	}

	return &types.ExportResponse{
		Result:       *result,
		Exchange:     ex.Name(),
		Market:       req.Market,
		StatusFilter: req.Status,
	}, nil
}

type ExportIndicatorsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExportIndicatorsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExportIndicatorsLogic {
	return &ExportIndicatorsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExportIndicatorsLogic) ExportIndicators(req *types.ExportIndicatorsReq) (*types.ExportResponse, error) {
	ex, klines, err := fetchIndicatorKlines(l.ctx, l.svcCtx, req.Exchange, req.Symbol, req.Interval, req.Market, req.Limit)
	if err != nil {
		return nil, err
	}

	batch, err := indicators.CalculateMultiple(l.ctx, klines, req.Indicators)
	if err != nil {
		return nil, err
	}

	names := req.Indicators
	if len(names) > 3 {
		names = names[:3]
	}
	dataType := "indicators_" + strings.Join(names, "_") + "_" + req.Interval

	path := resolveExportPath(l.svcCtx.Config.Export.OutputDir, req.FilePath, ex.Name(), dataType, req.Symbol, req.Format)
	result, err := export.Write(batch.Data, path)
	if err != nil {
		return nil, err
	}

	return &types.ExportResponse{
		Result:               *result,
		Exchange:             ex.Name(),
		Symbol:               req.Symbol,
		Interval:             req.Interval,
		Market:               req.Market,
		IndicatorsCalculated: batch.IndicatorsCalculated,
	}, nil
}

// resolveExportPath honors an explicit destination and otherwise derives a
// timestamped filename under the configured output directory.
func resolveExportPath(outputDir, explicit, exchangeName, dataType, symbol, format string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(outputDir, export.Filename(exchangeName, dataType, symbol, format))
}
