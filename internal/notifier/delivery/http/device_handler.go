package http

import (
	"net/http"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DeviceHandler handles HTTP requests for device tokens.
type DeviceHandler struct {
	deviceService service.DeviceService
	logger        *logger.Logger
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(deviceService service.DeviceService, logger *logger.Logger) *DeviceHandler {
	return &DeviceHandler{deviceService: deviceService, logger: logger}
}

// RegisterRoutes registers the device routes to the Echo group.
func (h *DeviceHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/unregister", h.Unregister)
}

// Register godoc
// @Summary Register a device token
// @Description Registers or replaces a device token for push notifications
// @Tags devices
// @Accept  json
// @Produce  json
// @Param   device  body    dto.RegisterDeviceRequest   true    "Device to register"
// @Success 200 {object} dto.DeviceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /devices/register [post]
func (h *DeviceHandler) Register(c echo.Context) error {
	var req dto.RegisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	device, err := h.deviceService.Register(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeviceResponse{Success: true, Device: *device})
}

// Unregister godoc
// @Summary Unregister a device token
// @Tags devices
// @Accept  json
// @Produce  json
// @Param   device  body    dto.UnregisterDeviceRequest   true    "Device to remove"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /devices/unregister [post]
func (h *DeviceHandler) Unregister(c echo.Context) error {
	var req dto.UnregisterDeviceRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	if err := h.deviceService.Unregister(c.Request().Context(), &req); err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Device unregistered"})
}
