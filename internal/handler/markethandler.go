// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"panda-api/internal/logic"
	"panda-api/internal/svc"
	"panda-api/internal/types"
	"panda-api/pkg/exchange"
)

func KlinesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.KlinesReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewKlinesLogic(r.Context(), svcCtx)
		resp, err := l.Klines(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func MarketDataHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.MarketDataReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewMarketDataLogic(r.Context(), svcCtx)
		resp, err := l.MarketData(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
