package http

import (
	"net/http"
	"time"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/common"

	"github.com/labstack/echo/v4"
)

// errorJSON writes err with the status its kind maps to.
func errorJSON(c echo.Context, err error) error {
	return c.JSON(apperror.StatusCode(err), dto.ErrorResponse{Error: err.Error()})
}

func invalidPayload(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
}

// HealthCheck godoc
// @Summary Health check
// @Tags health
// @Produce  json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   common.ServiceVersion,
	})
}
