// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/metrics"
)

type DivineDipLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewDivineDipLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DivineDipLogic {
	return &DivineDipLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *DivineDipLogic) DivineDip(req *types.DivineDipReq) (*types.DivineDipResponse, error) {
	client, err := l.svcCtx.Metrics()
	if err != nil {
		return nil, err
	}

	data, err := client.FetchDivineDip(l.ctx, metrics.DivineDipQuery{
		ExchangeType: req.ExchangeType,
		Exchange:     req.Exchange,
		Token:        req.Token,
		Chain:        req.Chain,
		PoolAddress:  req.PoolAddress,
		Timeframe:    req.Timeframe,
		StartEpoch:   req.StartEpoch,
		EndEpoch:     req.EndEpoch,
	})
	if err != nil {
		return nil, err
	}

	resp := &types.DivineDipResponse{
		Metric:       data.Metric,
		ExchangeType: strings.ToUpper(strings.TrimSpace(req.ExchangeType)),
		Exchange:     req.Exchange,
		Token:        req.Token,
		Chain:        req.Chain,
		PoolAddress:  req.PoolAddress,
		Timeframe:    req.Timeframe,
		Count:        data.Count,
		Data:         data.Data,
	}
	if req.IncludeStatistics {
		stats := data.Stats
		resp.Statistics = &stats
	}
	return resp, nil
}

type OrderbookLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOrderbookLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OrderbookLogic {
	return &OrderbookLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *OrderbookLogic) Orderbook(req *types.OrderbookReq) (*types.OrderbookResponse, error) {
	client, err := l.svcCtx.Metrics()
	if err != nil {
		return nil, err
	}

	data, err := client.FetchOrderbookMetric(l.ctx, metrics.OrderbookQuery{
		Metric:    req.Metric,
		Symbol:    req.Symbol,
		Exchange:  req.Exchange,
		Timeframe: req.Timeframe,
		Volume:    req.Volume,
		EpochLow:  req.EpochLow,
		EpochHigh: req.EpochHigh,
	})
	if err != nil {
		return nil, err
	}

	resp := &types.OrderbookResponse{
		Metric:    data.Metric,
		Symbol:    req.Symbol,
		Exchange:  req.Exchange,
		Timeframe: req.Timeframe,
		Volume:    req.Volume,
		Count:     data.Count,
		Data:      data.Data,
	}
	if req.IncludeStatistics {
		stats := data.Stats
		resp.Statistics = &stats
	}
	return resp, nil
}
