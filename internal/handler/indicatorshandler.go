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

func IndicatorHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IndicatorReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewIndicatorLogic(r.Context(), svcCtx)
		resp, err := l.Indicator(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func BatchIndicatorsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BatchIndicatorsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewBatchIndicatorsLogic(r.Context(), svcCtx)
		resp, err := l.BatchIndicators(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
