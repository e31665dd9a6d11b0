package entity

import (
	"strings"
	"time"
)

// Platform identifies the kind of device behind a token.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformWeb     Platform = "web"
	PlatformOther   Platform = "other"
)

// ParsePlatform normalizes a client supplied platform. Empty input defaults to ios.
func ParsePlatform(s string) Platform {
	switch Platform(strings.ToLower(strings.TrimSpace(s))) {
	case "", PlatformIOS:
		return PlatformIOS
	case PlatformAndroid:
		return PlatformAndroid
	case PlatformWeb:
		return PlatformWeb
	default:
		return PlatformOther
	}
}

// DeviceToken is a device eligible to receive notifications.
type DeviceToken struct {
	Token        string    `json:"token"`
	Owner        string    `json:"user_id"`
	Platform     Platform  `json:"platform"`
	RegisteredAt time.Time `json:"registered_at"`
}
