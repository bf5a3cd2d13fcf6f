package http

import (
	"net/http"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupStocks(base *echo.Group) {
	v1 := base.Group("/v1/stocks")
	{
		v1.GET("", h.ListStocks)
		v1.POST("", h.TrackStock)
		v1.DELETE("/:symbol", h.UntrackStock)
		v1.GET("/:symbol/market", h.GetMarketContext)
	}
}

func (h *HttpAPIHandler) ListStocks(c echo.Context) error {
	stocks, err := h.service.StockService.List(c.Request().Context())
	if err != nil {
		resp := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(resp.Code, resp)
	}
	response := dto.NewSuccessResponse("Tracked stocks", stocks)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) TrackStock(c echo.Context) error {
	var req dto.TrackStockRequest
	if resp := h.bindAndValidate(c, &req); resp != nil {
		return c.JSON(resp.Code, resp)
	}

	stock, err := h.service.StockService.Track(c.Request().Context(), req.Symbol, req.Exchange)
	if err != nil {
		resp := dto.NewBadRequestResponse(err.Error())
		return c.JSON(resp.Code, resp)
	}

	response := dto.NewBaseResponse(http.StatusCreated, "Stock tracked", stock)
	return c.JSON(response.Code, response)
}

func (h *HttpAPIHandler) UntrackStock(c echo.Context) error {
	symbol := c.Param("symbol")
	if err := h.service.StockService.Untrack(c.Request().Context(), symbol); err != nil {
		resp := dto.NewBadRequestResponse(err.Error())
		return c.JSON(resp.Code, resp)
	}
	response := dto.NewSuccessResponse("Stock untracked", nil)
	return c.JSON(response.Code, response)
}

// GetMarketContext exposes the derived engine inputs for one symbol: last
// price, ATR and detected support/resistance levels.
func (h *HttpAPIHandler) GetMarketContext(c echo.Context) error {
	symbol := c.Param("symbol")
	marketCtx, err := h.service.MarketDataService.GetMarketContext(c.Request().Context(), symbol)
	if err != nil {
		resp := dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil)
		return c.JSON(resp.Code, resp)
	}
	response := dto.NewSuccessResponse("Market context", marketCtx)
	return c.JSON(response.Code, response)
}
