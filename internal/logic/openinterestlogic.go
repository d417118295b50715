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

type OpenInterestLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOpenInterestLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OpenInterestLogic {
	return &OpenInterestLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// OpenInterest returns whichever shape the vendor models: a single
// current record, or an interval series on vendors that have no
// single-record endpoint.
func (l *OpenInterestLogic) OpenInterest(req *types.OpenInterestReq) (*types.OpenInterestResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	switch provider := ex.(type) {
	case exchange.OpenInterestProvider:
		oi, err := provider.FetchOpenInterest(l.ctx, req.Symbol)
		if err != nil {
			return nil, err
		}
		return &types.OpenInterestResponse{
			Exchange:     ex.Name(),
			Symbol:       oi.Symbol,
			OpenInterest: oi.OpenInterest,
			Timestamp:    oi.Timestamp,
		}, nil

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
		return &types.OpenInterestResponse{
			Exchange: ex.Name(),
			Symbol:   req.Symbol,
			Interval: req.Interval,
			Count:    len(points),
			History:  points,
		}, nil

	default:
		return nil, notSupported(ex, "open interest")
	}
}

type OpenInterestHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOpenInterestHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OpenInterestHistoryLogic {
	return &OpenInterestHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *OpenInterestHistoryLogic) OpenInterestHistory(req *types.OpenInterestHistoryReq) (*types.OpenInterestHistoryResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	provider, ok := ex.(exchange.OpenInterestHistoryProvider)
	if !ok {
		return nil, notSupported(ex, "open interest history")
	}

	history, err := provider.FetchOpenInterestHistory(l.ctx, exchange.OpenInterestHistoryQuery{
		Symbol:    req.Symbol,
		Period:    req.Period,
		Limit:     req.Limit,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return nil, err
	}

	return &types.OpenInterestHistoryResponse{
		Exchange:  ex.Name(),
		Symbol:    req.Symbol,
		Period:    req.Period,
		Limit:     req.Limit,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Count:     len(history),
		History:   history,
	}, nil
}
