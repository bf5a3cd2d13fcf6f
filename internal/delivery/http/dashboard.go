package http

import (
	"net/http"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupDashboard(base *echo.Group) {
	v1 := base.Group("/v1/dashboard")
	{
		v1.GET("", h.GetDashboard)
	}
}

func (h *HttpAPIHandler) GetDashboard(c echo.Context) error {
	summary, err := h.service.DashboardService.Summary(c.Request().Context())
	if err != nil {
		resp := dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
		return c.JSON(resp.Code, resp)
	}
	response := dto.NewSuccessResponse("Dashboard summary", summary)
	return c.JSON(response.Code, response)
}
