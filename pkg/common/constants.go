package common

const (
	DefaultNotificationTitle = "MyStocksApp"
	DefaultOwner             = "anonymous"

	RedisKeyDeviceTokens = "device_tokens"

	ServiceVersion = "1.0.0"
)
