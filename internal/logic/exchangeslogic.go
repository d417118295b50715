// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package logic

import (
	"context"
	"sort"

	"github.com/zeromicro/go-zero/core/logx"

	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/exchange"
)

type ExchangesLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExchangesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ExchangesLogic {
	return &ExchangesLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ExchangesLogic) Exchanges() (*types.ExchangesResponse, error) {
	infos := l.svcCtx.Registry.List()
	return &types.ExchangesResponse{
		Count:     len(infos),
		Exchanges: infos,
	}, nil
}

type PairsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewPairsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PairsLogic {
	return &PairsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *PairsLogic) Pairs(req *types.PairsReq) (*types.PairsResponse, error) {
	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	list, err := ex.FetchAllPairs(l.ctx, exchange.MarketType(req.Market), true)
	if err != nil {
		return nil, err
	}

	pairs := filterPairs(list, req.Status)
	return &types.PairsResponse{
		Exchange:     ex.Name(),
		Market:       req.Market,
		StatusFilter: req.Status,
		Count:        len(pairs),
		Pairs:        pairs,
	}, nil
}

type ComparePairsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewComparePairsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ComparePairsLogic {
	return &ComparePairsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ComparePairsLogic) ComparePairs(req *types.ComparePairsReq) (*types.ComparePairsResponse, error) {
	if len(req.Markets) < 2 {
		return nil, exchange.Validationf("at least two markets are required for comparison, got %d", len(req.Markets))
	}

	ex, err := l.svcCtx.Adapter(req.Exchange)
	if err != nil {
		return nil, err
	}

	marketPairs := make(map[string]map[string]struct{}, len(req.Markets))
	for _, market := range req.Markets {
		list, err := ex.FetchAllPairs(l.ctx, exchange.MarketType(market), true)
		if err != nil {
			return nil, err
		}
		set := make(map[string]struct{}, len(list.Active))
		for _, pair := range list.Active {
			set[pair.Pair] = struct{}{}
		}
		marketPairs[market] = set
	}

	resp := &types.ComparePairsResponse{
		Exchange:        ex.Name(),
		MarketsCompared: req.Markets,
		Counts:          make(map[string]int, len(req.Markets)+1),
	}

	if len(req.Markets) == 2 {
		first, second := req.Markets[0], req.Markets[1]
		resp.Only = map[string][]string{
			first:  sortedDiff(marketPairs[first], marketPairs[second]),
			second: sortedDiff(marketPairs[second], marketPairs[first]),
		}
		resp.BothMarkets = sortedIntersect(marketPairs[first], marketPairs[second])
		resp.Counts[first] = len(resp.Only[first])
		resp.Counts[second] = len(resp.Only[second])
		resp.Counts["both_markets"] = len(resp.BothMarkets)
		return resp, nil
	}

	for market, set := range marketPairs {
		resp.Counts[market] = len(set)
	}
	return resp, nil
}

func filterPairs(list *exchange.PairList, status string) []exchange.TradingPair {
	switch status {
	case "inactive":
		return list.Inactive
	case "all":
		merged := make([]exchange.TradingPair, 0, len(list.Active)+len(list.Inactive))
		merged = append(merged, list.Active...)
		return append(merged, list.Inactive...)
	default:
		return list.Active
	}
}

func sortedDiff(a, b map[string]struct{}) []string {
	out := make([]string, 0, len(a))
	for pair := range a {
		if _, ok := b[pair]; !ok {
			out = append(out, pair)
		}
	}
	sort.Strings(out)
	return out
}

func sortedIntersect(a, b map[string]struct{}) []string {
	out := make([]string, 0, len(a))
	for pair := range a {
		if _, ok := b[pair]; ok {
			out = append(out, pair)
		}
	}
	sort.Strings(out)
	return out
}
