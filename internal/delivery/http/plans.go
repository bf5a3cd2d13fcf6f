package http

import (
	"net/http"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPlans(base *echo.Group) {
	v1 := base.Group("/v1/plans")
	{
		v1.POST("/compute", h.ComputeOrderPlan)
	}
}

// ComputeOrderPlan derives a risk-bounded order plan. Market fields left out
// of the request are filled from live market data for the symbol, so callers
// can either supply a full snapshot or just symbol plus account risk.
func (h *HttpAPIHandler) ComputeOrderPlan(c echo.Context) error {
	var req dto.ComputeOrderPlanRequest
	if resp := h.bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	ctx := c.Request().Context()

	snapshot := dto.MarketSnapshot{
		Symbol:            req.Symbol,
		NearestSupport:    req.NearestSupport,
		NearestResistance: req.NearestResistance,
		Signal:            req.Signal,
		Confidence:        req.Confidence,
	}

	if req.CurrentPrice != nil && req.ATR != nil {
		snapshot.CurrentPrice = *req.CurrentPrice
		snapshot.ATR = *req.ATR
	} else {
		marketCtx, err := h.service.MarketDataService.GetMarketContext(ctx, req.Symbol)
		if err != nil {
			resp := dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil)
			return c.JSON(resp.Code, resp)
		}
		live := marketCtx.Snapshot()
		snapshot.CurrentPrice = live.CurrentPrice
		snapshot.ATR = live.ATR
		if snapshot.NearestSupport == nil {
			snapshot.NearestSupport = live.NearestSupport
		}
		if snapshot.NearestResistance == nil {
			snapshot.NearestResistance = live.NearestResistance
		}
		if req.CurrentPrice != nil {
			snapshot.CurrentPrice = *req.CurrentPrice
		}
		if req.ATR != nil {
			snapshot.ATR = *req.ATR
		}
	}

	plan, err := h.service.RiskEngineService.ComputeOrderPlan(ctx, snapshot, dto.RiskParameters{
		AccountSize:    req.AccountSize,
		RiskPercentage: req.RiskPercentage,
	})
	if err != nil {
		resp := engineErrorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewSuccessResponse("Order plan computed", plan)
	return c.JSON(response.Code, response)
}
