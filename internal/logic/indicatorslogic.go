// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/exchange"
	"panda-api/pkg/indicators"
)

type IndicatorLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewIndicatorLogic(ctx context.Context, svcCtx *svc.ServiceContext) *IndicatorLogic {
	return &IndicatorLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *IndicatorLogic) Indicator(req *types.IndicatorReq) (*types.IndicatorResponse, error) {
	ex, klines, err := fetchIndicatorKlines(l.ctx, l.svcCtx, req.Exchange, req.Symbol, req.Interval, req.Market, req.Limit)
	if err != nil {
		return nil, err
	}

	result, err := indicators.Calculate(klines, req.Indicator, req.Period)
	if err != nil {
		return nil, err
	}

	return &types.IndicatorResponse{
		Result:   *result,
		Exchange: ex.Name(),
		Symbol:   req.Symbol,
		Interval: req.Interval,
		Market:   req.Market,
	}, nil
}

type BatchIndicatorsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewBatchIndicatorsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BatchIndicatorsLogic {
	return &BatchIndicatorsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *BatchIndicatorsLogic) BatchIndicators(req *types.BatchIndicatorsReq) (*types.BatchIndicatorsResponse, error) {
	ex, klines, err := fetchIndicatorKlines(l.ctx, l.svcCtx, req.Exchange, req.Symbol, req.Interval, req.Market, req.Limit)
	if err != nil {
		return nil, err
	}

	batch, err := indicators.CalculateMultiple(l.ctx, klines, req.Indicators)
	if err != nil {
		return nil, err
	}

	return &types.BatchIndicatorsResponse{
		BatchResult: *batch,
		Exchange:    ex.Name(),
		Symbol:      req.Symbol,
		Interval:    req.Interval,
		Market:      req.Market,
		KlinesCount: len(klines),
	}, nil
}

func fetchIndicatorKlines(ctx context.Context, svcCtx *svc.ServiceContext, exchangeName, symbol, interval, market string, limit int) (exchange.Exchange, []exchange.Kline, error) {
	ex, err := svcCtx.Adapter(exchangeName)
	if err != nil {
		return nil, nil, err
	}

	provider, ok := ex.(exchange.KlineProvider)
	if !ok {
		return nil, nil, notSupported(ex, "kline fetching")
	}

	klines, err := provider.FetchKlines(ctx, exchange.KlineQuery{
		Symbol:   symbol,
		Interval: interval,
		Market:   exchange.MarketType(market),
		Limit:    limit,
	})
	if err != nil {
		return nil, nil, err
	}
	return ex, klines, nil
}
