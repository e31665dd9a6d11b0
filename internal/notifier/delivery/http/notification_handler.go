package http

import (
	"net/http"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/logger"

	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for ad-hoc notifications and Live Activities.
type NotificationHandler struct {
	notificationService service.NotificationService
	liveActivityService service.LiveActivityService
	logger              *logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService service.NotificationService, liveActivityService service.LiveActivityService, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		liveActivityService: liveActivityService,
		logger:              logger,
	}
}

// RegisterRoutes registers the notification routes to the Echo group.
func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/send", h.Send)
	g.POST("/broadcast", h.Broadcast)
}

// RegisterLiveActivityRoutes registers the Live Activity routes to the Echo group.
func (h *NotificationHandler) RegisterLiveActivityRoutes(g *echo.Group) {
	g.POST("/update", h.UpdateLiveActivity)
}

// Send godoc
// @Summary Send a notification to one device
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   notification  body    dto.SendNotificationRequest   true    "Notification"
// @Success 200 {object} dto.SendNotificationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /notifications/send [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	var req dto.SendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.notificationService.Send(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// Broadcast godoc
// @Summary Broadcast a notification to every registered device
// @Tags notifications
// @Accept  json
// @Produce  json
// @Param   notification  body    dto.BroadcastRequest   true    "Notification"
// @Success 200 {object} dto.BroadcastResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c echo.Context) error {
	var req dto.BroadcastRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	resp, err := h.notificationService.Broadcast(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// UpdateLiveActivity godoc
// @Summary Build a Live Activity update
// @Description Fetches the live quote and returns the content-state payload for the push token
// @Tags liveactivity
// @Accept  json
// @Produce  json
// @Param   request  body    dto.LiveActivityRequest   true    "Push token and symbol"
// @Success 200 {object} dto.LiveActivityResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /liveactivity/update [post]
func (h *NotificationHandler) UpdateLiveActivity(c echo.Context) error {
	var req dto.LiveActivityRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload(c)
	}

	update, err := h.liveActivityService.Update(c.Request().Context(), &req)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(http.StatusOK, dto.LiveActivityResponse{Success: true, LiveActivityUpdate: *update})
}
