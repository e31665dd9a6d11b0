package dto

import "time"

// Notification is the content delivered to a device.
type Notification struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data"`
}

// DeliveryResult is the outcome of one delivery attempt to one device.
type DeliveryResult struct {
	Token     string        `json:"token"`
	Delivered bool          `json:"delivered"`
	Skipped   bool          `json:"skipped,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"-"`
	Err       error         `json:"-"`
}

// BroadcastResult aggregates the outcome of a fan-out.
type BroadcastResult struct {
	SentCount   int              `json:"sent_count"`
	FailedCount int              `json:"failed_count"`
	Results     []DeliveryResult `json:"results"`
}

// SendNotificationRequest is the DTO for sending to a single device.
type SendNotificationRequest struct {
	Token string         `json:"token"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data"`
}

// SentNotification echoes what was sent.
type SentNotification struct {
	Token  string         `json:"token"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Data   map[string]any `json:"data"`
	SentAt time.Time      `json:"sent_at"`
}

// SendNotificationResponse is returned by the single-device send endpoint.
type SendNotificationResponse struct {
	Success      bool             `json:"success"`
	Notification SentNotification `json:"notification"`
	Error        string           `json:"error,omitempty"`
}

// BroadcastRequest is the DTO for broadcasting to every registered device.
type BroadcastRequest struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data"`
}

// BroadcastResponse is returned by the broadcast endpoint.
type BroadcastResponse struct {
	Success bool `json:"success"`
	BroadcastResult
}
