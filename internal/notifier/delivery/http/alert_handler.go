package http

import (
	"net/http"
	"strconv"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AlertHandler handles HTTP requests for price and trading alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/price", h.CreatePriceAlert)
	g.GET("/price", h.ListPriceAlerts)
	g.DELETE("/price/:id", h.DeletePriceAlert)
	g.POST("/price/evaluate", h.EvaluatePrice)
	g.POST("/trading", h.CreateTradingAlert)
	g.GET("/trading", h.ListTradingAlerts)
}

// CreatePriceAlert godoc
// @Summary Create a price alert
// @Description Creates a one-shot alert that fires when the price crosses the target
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   alert  body    dto.CreatePriceAlertRequest   true    "Alert to create"
// @Success 200 {object} dto.PriceAlertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/price [post]
func (h *AlertHandler) CreatePriceAlert(c echo.Context) error {
	var req dto.CreatePriceAlertRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	alert, err := h.alertService.CreatePriceAlert(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.PriceAlertResponse{Success: true, Alert: *alert})
}

// ListPriceAlerts godoc
// @Summary List price alerts
// @Tags alerts
// @Produce  json
// @Success 200 {object} dto.PriceAlertListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/price [get]
func (h *AlertHandler) ListPriceAlerts(c echo.Context) error {
	alerts, err := h.alertService.ListPriceAlerts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get price alerts"})
	}
	if alerts == nil {
		alerts = []entity.PriceAlert{}
	}
	return c.JSON(http.StatusOK, dto.PriceAlertListResponse{Alerts: alerts})
}

// DeletePriceAlert godoc
// @Summary Delete a price alert
// @Description Deleting an unknown id succeeds
// @Tags alerts
// @Produce  json
// @Param   id  path    int true    "Alert ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/price/{id} [delete]
func (h *AlertHandler) DeletePriceAlert(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid alert ID"})
	}

	if err := h.alertService.DeletePriceAlert(c.Request().Context(), id); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Alert deleted"})
}

// EvaluatePrice godoc
// @Summary Evaluate price alerts for a symbol
// @Description Fires matching alerts at the live quote, or at current_price when manual prices are enabled
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   request  body    dto.EvaluatePriceRequest   true    "Symbol and optional price"
// @Success 200 {object} dto.EvaluatePriceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/price/evaluate [post]
func (h *AlertHandler) EvaluatePrice(c echo.Context) error {
	var req dto.EvaluatePriceRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.alertService.EvaluatePrice(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// CreateTradingAlert godoc
// @Summary Create a trading alert
// @Description Stores the alert and broadcasts it to every registered device
// @Tags alerts
// @Accept  json
// @Produce  json
// @Param   alert  body    dto.CreateTradingAlertRequest   true    "Trading alert"
// @Success 200 {object} dto.TradingAlertResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/trading [post]
func (h *AlertHandler) CreateTradingAlert(c echo.Context) error {
	var req dto.CreateTradingAlertRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.alertService.CreateTradingAlert(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ListTradingAlerts godoc
// @Summary List trading alert history
// @Tags alerts
// @Produce  json
// @Success 200 {object} dto.TradingAlertListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/trading [get]
func (h *AlertHandler) ListTradingAlerts(c echo.Context) error {
	alerts, err := h.alertService.ListTradingAlerts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to get trading alerts"})
	}
	if alerts == nil {
		alerts = []entity.TradingAlert{}
	}
	return c.JSON(http.StatusOK, dto.TradingAlertListResponse{Alerts: alerts})
}
