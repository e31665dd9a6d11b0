package dto

import (
	"encoding/json"

	"golang-stock-notifier/internal/entity"
)

// CreatePriceAlertRequest is the DTO for creating a price alert.
// TargetPrice accepts a JSON number or a numeric string.
type CreatePriceAlertRequest struct {
	Symbol      string      `json:"symbol"`
	TargetPrice json.Number `json:"target_price" swaggertype:"number"`
	Direction   string      `json:"direction"` // above or below
	DeviceToken *string     `json:"device_token"`
}

// PriceAlertResponse wraps a single price alert.
type PriceAlertResponse struct {
	Success bool              `json:"success"`
	Alert   entity.PriceAlert `json:"alert"`
}

// PriceAlertListResponse lists price alerts in creation order.
type PriceAlertListResponse struct {
	Alerts []entity.PriceAlert `json:"alerts"`
}

// EvaluatePriceRequest runs the evaluator for a symbol. When CurrentPrice is
// omitted the price is fetched from the market data source.
type EvaluatePriceRequest struct {
	Symbol       string   `json:"symbol"`
	CurrentPrice *float64 `json:"current_price"`
}

// EvaluatePriceResponse reports the alerts fired by one evaluation and their deliveries.
type EvaluatePriceResponse struct {
	Symbol       string              `json:"symbol"`
	CurrentPrice float64             `json:"current_price"`
	Fired        []entity.PriceAlert `json:"fired"`
	Deliveries   []DeliveryResult    `json:"deliveries"`
}

// TradingAlertInput carries the raw fields of a trading alert to the store,
// which owns their validation.
type TradingAlertInput struct {
	Symbol          string
	AlertType       string
	Confidence      string
	Reason          string
	CurrentPrice    *float64
	TargetPrice     *float64
	StopLoss        *float64
	SuggestedShares *float64
	SuggestedAmount *float64
}

// CreateTradingAlertRequest is the DTO for creating a trading alert.
type CreateTradingAlertRequest struct {
	Symbol          string      `json:"symbol"`
	AlertType       string      `json:"alert_type"`
	Confidence      json.Number `json:"confidence" swaggertype:"integer"`
	Reason          string      `json:"reason"`
	CurrentPrice    *float64    `json:"current_price"`
	TargetPrice     *float64    `json:"target_price"`
	StopLoss        *float64    `json:"stop_loss"`
	SuggestedShares *float64    `json:"suggested_shares"`
	SuggestedAmount *float64    `json:"suggested_amount"`
}

// ToInput converts the request into the store input.
func (r CreateTradingAlertRequest) ToInput() TradingAlertInput {
	return TradingAlertInput{
		Symbol:          r.Symbol,
		AlertType:       r.AlertType,
		Confidence:      r.Confidence.String(),
		Reason:          r.Reason,
		CurrentPrice:    r.CurrentPrice,
		TargetPrice:     r.TargetPrice,
		StopLoss:        r.StopLoss,
		SuggestedShares: r.SuggestedShares,
		SuggestedAmount: r.SuggestedAmount,
	}
}

// TradingAlertResponse is returned after a trading alert is created and broadcast.
type TradingAlertResponse struct {
	Success     bool                `json:"success"`
	Alert       entity.TradingAlert `json:"alert"`
	SentCount   int                 `json:"sent_count"`
	FailedCount int                 `json:"failed_count"`
}

// TradingAlertListResponse lists trading alert history in creation order.
type TradingAlertListResponse struct {
	Alerts []entity.TradingAlert `json:"alerts"`
}
