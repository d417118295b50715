// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/exchange"
)

type KlinesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewKlinesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *KlinesLogic {
	return &KlinesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *KlinesLogic) Klines(req *types.KlinesReq) (*types.KlinesResponse, error) {
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
		Timezone:  req.Timezone,
	})
	if err != nil {
		return nil, err
	}

	return &types.KlinesResponse{
		Exchange:  ex.Name(),
		Symbol:    req.Symbol,
		Interval:  req.Interval,
		Market:    req.Market,
		Count:     len(klines),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Klines:    klines,
	}, nil
}

type MarketDataLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketDataLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketDataLogic {
	return &MarketDataLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MarketDataLogic) MarketData(req *types.MarketDataReq) (*types.MarketDataResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	provider, ok := ex.(exchange.MarketDataProvider)
	if !ok {
		return nil, &exchange.NotSupportedError{Exchange: ex.Name(), Feature: "live market data"}
	}

	markets, err := provider.FetchMarketData(l.ctx, req.Symbol)
	if err != nil {
		return nil, err
	}

	return &types.MarketDataResponse{
		Exchange:     ex.Name(),
		SymbolFilter: req.Symbol,
		Count:        len(markets),
		Markets:      markets,
	}, nil
}

// notSupported builds the capability error for adapters that lack a
// feature, pointing snapshot-only vendors at the market-data operation.
func notSupported(ex exchange.Exchange, feature string) error {
	err := &exchange.NotSupportedError{Exchange: ex.Name(), Feature: feature}
	if _, ok := ex.(exchange.MarketDataProvider); ok {
		err.Hint = "live market snapshots are available through the market-data operation"
	}
	return err
}
