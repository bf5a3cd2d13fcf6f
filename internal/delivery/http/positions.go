package http

import (
	"net/http"
	"strconv"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPositions(base *echo.Group) {
	v1 := base.Group("/v1/positions")
	{
		v1.GET("", h.ListPositions)
		v1.POST("", h.OpenPosition)
		v1.GET("/:id", h.GetPosition)
		v1.POST("/:id/refresh", h.RefreshPosition)
		v1.POST("/:id/close", h.ClosePosition)
		v1.POST("/refresh", h.RefreshAllPositions)
	}
}

func (h *HttpAPIHandler) positionID(c echo.Context) (uint, *dto.BaseResponse) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, dto.NewBadRequestResponse("invalid position id")
	}
	return uint(id), nil
}

func (h *HttpAPIHandler) ListPositions(c echo.Context) error {
	activeOnly := c.QueryParam("active") != "false"
	positions, err := h.service.PositionService.List(c.Request().Context(), activeOnly)
	if err != nil {
		resp := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(resp.Code, resp)
	}
	response := dto.NewSuccessResponse("Positions", positions)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) OpenPosition(c echo.Context) error {
	var req dto.OpenPositionRequest
	if resp := h.bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	position, err := h.service.PositionService.Open(c.Request().Context(), req)
	if err != nil {
		resp := engineErrorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewBaseResponse(http.StatusCreated, "Position opened", position)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) GetPosition(c echo.Context) error {
	id, errResp := h.positionID(c)
	if errResp != nil {
		return c.JSON(errResp.Code, errResp)
	}

	position, history, err := h.service.PositionService.Get(c.Request().Context(), id)
	if err != nil {
		resp := dto.NewBaseResponse(http.StatusNotFound, err.Error(), nil)
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewSuccessResponse("Position detail", map[string]interface{}{
		"position":   position,
		"monitoring": history,
	})
	return c.JSON(response.Code, response)
}

// RefreshPosition recomputes the trailing stop from live market data and
// persists the ratcheted state.
func (h *HttpAPIHandler) RefreshPosition(c echo.Context) error {
	id, errResp := h.positionID(c)
	if errResp != nil {
		return c.JSON(errResp.Code, errResp)
	}

	result, err := h.service.PositionService.Refresh(c.Request().Context(), id)
	if err != nil {
		resp := engineErrorResponse(err)
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewSuccessResponse("Position refreshed", result)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) ClosePosition(c echo.Context) error {
	id, errResp := h.positionID(c)
	if errResp != nil {
		return c.JSON(errResp.Code, errResp)
	}

	var req dto.ClosePositionRequest
	if resp := h.bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	position, err := h.service.PositionService.Close(c.Request().Context(), id, req.ExitPrice)
	if err != nil {
		resp := dto.NewBadRequestResponse(err.Error())
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewSuccessResponse("Position closed", position)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) RefreshAllPositions(c echo.Context) error {
	response := dto.NewSuccessResponse("Refreshing all active positions", nil)
	if err := h.service.PositionService.RefreshAll(c.Request().Context()); err != nil {
		response.Code = http.StatusInternalServerError
		response.Message = err.Error()
	}
	return c.JSON(response.Code, response)
}
