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

func ExportKlinesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportKlinesReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewExportKlinesLogic(r.Context(), svcCtx)
		resp, err := l.ExportKlines(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ExportFundingHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportFundingReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewExportFundingLogic(r.Context(), svcCtx)
		resp, err := l.ExportFunding(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ExportOpenInterestHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportOpenInterestReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewExportOpenInterestLogic(r.Context(), svcCtx)
		resp, err := l.ExportOpenInterest(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ExportPairsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportPairsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewExportPairsLogic(r.Context(), svcCtx)
		resp, err := l.ExportPairs(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}

func ExportIndicatorsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ExportIndicatorsReq
		if err := httpx.Parse(r, &req); err != nil {
			writeError(r.Context(), w, exchange.Validationf("%s", err.Error()), &req)
			return
		}

		l := logic.NewExportIndicatorsLogic(r.Context(), svcCtx)
		resp, err := l.ExportIndicators(&req)
		if err != nil {
			writeError(r.Context(), w, err, &req)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
