package dto

import "golang-stock-notifier/internal/entity"

// RegisterDeviceRequest is the DTO for registering a device token.
type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Platform string `json:"platform"` // ios, android, web, other
}

// UnregisterDeviceRequest is the DTO for removing a device token.
type UnregisterDeviceRequest struct {
	Token string `json:"token"`
}

// DeviceResponse is returned after a device token is registered.
type DeviceResponse struct {
	Success bool               `json:"success"`
	Device  entity.DeviceToken `json:"device"`
}
