package http

import (
	"github.com/labstack/echo/v4"
	swagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the handlers mounted by RegisterRoutes.
type Handlers struct {
	Device       *DeviceHandler
	Alert        *AlertHandler
	Notification *NotificationHandler
	Quote        *QuoteHandler
}

// RegisterRoutes mounts every route of the service on e.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", HealthCheck)

	api := e.Group("/api")
	h.Device.RegisterRoutes(api.Group("/devices"))
	h.Alert.RegisterRoutes(api.Group("/alerts"))
	h.Notification.RegisterRoutes(api.Group("/notifications"))
	h.Notification.RegisterLiveActivityRoutes(api.Group("/liveactivity"))
	h.Quote.RegisterRoutes(api)

	e.GET("/swagger/*", swagger.WrapHandler)
}
