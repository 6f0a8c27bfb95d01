package http

import (
	"errors"
	"net/http"
	"strconv"

	"tetrades/internal/dto"
	"tetrades/internal/repository"
	"tetrades/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupReports(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.POST("/reports", h.GenerateReport)
		v1.GET("/reports", h.ListReports)
		v1.GET("/predictions", h.ListPredictions)
	}
}

func (h *HttpAPIHandler) GenerateReport(c echo.Context) error {
	req := new(dto.GenerateReportRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	identity := IdentityFromContext(c)
	result, err := h.service.ReportService.Generate(c.Request().Context(), identity, req.Ticker)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTicker):
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid ticker"))
		case errors.Is(err, service.ErrMarketDataUnavailable):
			return c.JSON(http.StatusServiceUnavailable, dto.NewBaseResponse(http.StatusServiceUnavailable,
				"market data is unavailable for this ticker, please try again", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError,
				"failed to generate report", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("report generated", result))
}

func (h *HttpAPIHandler) ListReports(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	reports, err := h.service.ReportService.ListReports(c.Request().Context(), IdentityFromContext(c), limit)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "authentication required", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list reports", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("reports", reports))
}

func (h *HttpAPIHandler) ListPredictions(c echo.Context) error {
	identity := IdentityFromContext(c)
	if identity == nil {
		return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "authentication required", nil))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	predictions, err := h.service.ReportService.ListPredictions(c.Request().Context(), repository.ListPredictionsParam{
		ProfileID: identity.ID,
		Ticker:    c.QueryParam("ticker"),
		Limit:     limit,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to list predictions", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("predictions", predictions))
}
