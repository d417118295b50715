// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpx"

	"panda-api/internal/types"
	"panda-api/pkg/exchange"
	"panda-api/pkg/metrics"
)

// writeError maps a domain error onto the wire payload. Params echoes the
// parsed request so callers can see what the server acted on.
func writeError(ctx context.Context, w http.ResponseWriter, err error, params any) {
	status, payload := classify(err)
	payload.Params = params
	if status >= http.StatusInternalServerError {
		logx.WithContext(ctx).Errorf("request failed: %v", err)
	}
	httpx.WriteJsonCtx(ctx, w, status, payload)
}

func classify(err error) (int, *types.ErrorPayload) {
	var (
		invalid     *exchange.ValidationError
		unsupported *exchange.NotSupportedError
		vendor      *exchange.VendorError
		transport   *exchange.TransportError
		misconfig   *metrics.ConfigError
	)
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, &types.ErrorPayload{
			Error:     "Invalid input",
			ErrorType: "validation",
			Message:   invalid.Msg,
		}
	case errors.As(err, &unsupported):
		return http.StatusBadRequest, &types.ErrorPayload{
			Error:     "Feature not supported",
			ErrorType: "not_supported",
			Message:   unsupported.Error(),
		}
	case errors.As(err, &vendor):
		return http.StatusBadGateway, &types.ErrorPayload{
			Error:     "Exchange error",
			ErrorType: "vendor",
			Message:   vendor.Error(),
		}
	case errors.As(err, &transport):
		return http.StatusBadGateway, &types.ErrorPayload{
			Error:     "API request failed",
			ErrorType: "transport",
			Message:   transport.Error(),
		}
	case errors.As(err, &misconfig):
		return http.StatusInternalServerError, &types.ErrorPayload{
			Error:     "Configuration error",
			ErrorType: "config",
			Message:   misconfig.Msg,
			Hint:      misconfig.Hint,
		}
	default:
		return http.StatusInternalServerError, &types.ErrorPayload{
			Error:     "Unexpected error",
			ErrorType: "internal",
			Message:   err.Error(),
		}
	}
}
