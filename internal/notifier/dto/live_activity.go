package dto

// LiveActivityRequest asks for a content-state refresh of a Live Activity.
type LiveActivityRequest struct {
	PushToken string `json:"push_token"`
	Symbol    string `json:"symbol"`
}

// LiveActivityContentState is the bounded state rendered by the client widget.
type LiveActivityContentState struct {
	CurrentPrice       float64 `json:"currentPrice"`
	PriceChange        float64 `json:"priceChange"`
	PriceChangePercent float64 `json:"priceChangePercent"`
	LastUpdated        string  `json:"lastUpdated"`
}

// LiveActivityAPS is the aps dictionary of a liveactivity push.
type LiveActivityAPS struct {
	Timestamp    int64                    `json:"timestamp"`
	Event        string                   `json:"event"`
	ContentState LiveActivityContentState `json:"content-state"`
}

// LiveActivityPayload is the push body.
type LiveActivityPayload struct {
	APS LiveActivityAPS `json:"aps"`
}

// LiveActivityUpdate is a derived, non-persisted update for one push token.
type LiveActivityUpdate struct {
	PushToken string              `json:"push_token"`
	Symbol    string              `json:"symbol"`
	Payload   LiveActivityPayload `json:"payload"`
}

// LiveActivityResponse is returned by the live activity endpoint.
type LiveActivityResponse struct {
	Success bool `json:"success"`
	LiveActivityUpdate
}
