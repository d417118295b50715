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

type FundingHistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFundingHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FundingHistoryLogic {
	return &FundingHistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FundingHistoryLogic) FundingHistory(req *types.FundingHistoryReq) (*types.FundingHistoryResponse, error) {
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

	return &types.FundingHistoryResponse{
		Exchange:     ex.Name(),
		SymbolFilter: req.Symbol,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Limit:        req.Limit,
		Count:        len(rates),
		FundingRates: rates,
	}, nil
}

type FundingInfoLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewFundingInfoLogic(ctx context.Context, svcCtx *svc.ServiceContext) *FundingInfoLogic {
	return &FundingInfoLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *FundingInfoLogic) FundingInfo(req *types.FundingInfoReq) (*types.FundingInfoResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	provider, ok := ex.(exchange.FundingInfoProvider)
	if !ok {
		return nil, notSupported(ex, "funding rate info")
	}

	info, err := provider.FetchFundingRateInfo(l.ctx)
	if err != nil {
		return nil, err
	}

	return &types.FundingInfoResponse{
		Exchange:    ex.Name(),
		Count:       len(info),
		FundingInfo: info,
	}, nil
}
