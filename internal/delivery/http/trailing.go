package http

import (
	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupTrailingStops(base *echo.Group) {
	v1 := base.Group("/v1/trailing-stops")
	{
		v1.POST("/compute", h.ComputeTrailingStop)
	}
}

// ComputeTrailingStop runs one stateless ratchet update. When no prior state
// is supplied a fresh one is initialized from the entry price; the caller is
// responsible for storing the returned state and passing it back next call.
func (h *HttpAPIHandler) ComputeTrailingStop(c echo.Context) error {
	var req dto.ComputeTrailingStopRequest
	if resp := h.bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	ctx := c.Request().Context()
	engine := h.service.RiskEngineService

	state := dto.TrailingStopState{}
	if req.PriorState != nil {
		state = *req.PriorState
	} else {
		fresh, err := engine.NewTrailingStopState(req.Direction, req.EntryPrice, req.ATRMultiplier)
		if err != nil {
			resp := engineErrorResponse(err)
			return c.JSON(resp.Code, resp)
		}
		state = fresh
	}

	newState, result, err := engine.ComputeTrailingStop(ctx, state, req.CurrentPrice, req.ATR)
	if err != nil {
		resp := engineErrorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewSuccessResponse("Trailing stop computed", map[string]interface{}{
		"state":  newState,
		"result": result,
	})
	return c.JSON(response.Code, response)
}
