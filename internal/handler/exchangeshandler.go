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

func ExchangesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := logic.NewExchangesLogic(r.Context(), svcCtx)
		resp, err := l.Exchanges()
		if err != nil {
			writeError(r.Context(), w, err, nil)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func PairsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.PairsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewPairsLogic(r.Context(), svcCtx)
		resp, err := l.Pairs(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ComparePairsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ComparePairsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewComparePairsLogic(r.Context(), svcCtx)
		resp, err := l.ComparePairs(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
