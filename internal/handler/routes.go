// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"panda-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: HealthHandler(serverCtx),
			},
		},
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/exchanges",
				Handler: ExchangesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/pairs",
				Handler: PairsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/pairs/compare",
				Handler: ComparePairsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/klines",
				Handler: KlinesHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/market-data",
				Handler: MarketDataHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/funding/history",
				Handler: FundingHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/funding/info",
				Handler: FundingInfoHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/open-interest",
				Handler: OpenInterestHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/open-interest/history",
				Handler: OpenInterestHistoryHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/indicators",
				Handler: IndicatorHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/indicators/batch",
				Handler: BatchIndicatorsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/export/klines",
				Handler: ExportKlinesHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/export/funding",
				Handler: ExportFundingHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/export/open-interest",
				Handler: ExportOpenInterestHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/export/pairs",
				Handler: ExportPairsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/export/indicators",
				Handler: ExportIndicatorsHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/metrics/divine-dip",
				Handler: DivineDipHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/metrics/orderbook",
				Handler: OrderbookHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
