package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/Charvi99/StockAnalyzer-sub001/internal/dto"
	"github.com/Charvi99/StockAnalyzer-sub001/internal/service"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	base := h.echo.Group("/api")
	h.SetupPlans(base)
	h.SetupTrailingStops(base)
	h.SetupStocks(base)
	h.SetupPositions(base)
	h.SetupDashboard(base)
}

// bindAndValidate decodes the JSON body and runs struct validation, returning
// a ready-made 400 response on failure.
func (h *HttpAPIHandler) bindAndValidate(c echo.Context, req interface{}) *dto.BaseResponse {
	if err := c.Bind(req); err != nil {
		return dto.NewBadRequestResponse("invalid request body: " + err.Error())
	}
	if err := h.validator.Struct(req); err != nil {
		return dto.NewBadRequestResponse(err.Error())
	}
	return nil
}

// engineErrorResponse maps the engine error taxonomy onto HTTP statuses.
// Invalid inputs are the caller's fault; a degenerate stop is a valid request
// the engine cannot size, surfaced distinctly.
func engineErrorResponse(err error) *dto.BaseResponse {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return dto.NewBaseResponse(http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrDegenerateStop):
		return dto.NewBaseResponse(http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		return dto.NewBaseResponse(http.StatusInternalServerError, err.Error(), nil)
	}
}
