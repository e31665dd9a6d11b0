package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/apperror"

	"gorm.io/datatypes"
)

const tradingAlertIDLayout = "20060102150405"

// NormalizeSymbol upper-cases and trims a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func newPriceAlert(symbol string, targetPrice float64, direction entity.Direction, deviceToken *string, now time.Time) (*entity.PriceAlert, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}
	if math.IsNaN(targetPrice) || math.IsInf(targetPrice, 0) || targetPrice <= 0 {
		return nil, apperror.NewValidation("target_price", "must be a positive number")
	}
	direction = entity.Direction(strings.ToLower(strings.TrimSpace(string(direction))))
	if !direction.Valid() {
		return nil, apperror.NewValidation("direction", "must be 'above' or 'below'")
	}

	if deviceToken != nil {
		token := strings.TrimSpace(*deviceToken)
		if token == "" {
			deviceToken = nil
		} else {
			deviceToken = &token
		}
	}

	return &entity.PriceAlert{
		Symbol:      symbol,
		TargetPrice: targetPrice,
		Direction:   direction,
		DeviceToken: deviceToken,
		CreatedAt:   now,
	}, nil
}

func newTradingAlert(input dto.TradingAlertInput, now time.Time) (*entity.TradingAlert, error) {
	symbol := NormalizeSymbol(input.Symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}
	alertType := strings.TrimSpace(input.AlertType)
	if alertType == "" {
		return nil, apperror.NewValidation("alert_type", "alert_type required")
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, apperror.NewValidation("reason", "reason required")
	}
	confidenceRaw := strings.TrimSpace(input.Confidence)
	if confidenceRaw == "" {
		return nil, apperror.NewValidation("confidence", "confidence required")
	}
	confidence, err := strconv.Atoi(confidenceRaw)
	if err != nil {
		return nil, apperror.NewValidation("confidence", "must be an integer")
	}
	if confidence < 0 || confidence > 100 {
		return nil, apperror.NewValidation("confidence", "must be between 0 and 100")
	}

	alert := &entity.TradingAlert{
		Symbol:          symbol,
		AlertType:       entity.TradingAlertType(alertType),
		Confidence:      confidence,
		Reason:          reason,
		TargetPrice:     input.TargetPrice,
		StopLoss:        input.StopLoss,
		SuggestedShares: input.SuggestedShares,
		SuggestedAmount: input.SuggestedAmount,
		CreatedAt:       now,
	}
	if input.CurrentPrice != nil {
		alert.CurrentPrice = *input.CurrentPrice
	}
	return alert, nil
}

// tradingAlertID derives the id for the n-th alert created in the same second.
// The first one keeps the bare timestamp form.
func tradingAlertID(createdAt time.Time, n int) string {
	base := "alert_" + createdAt.Format(tradingAlertIDLayout)
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d", base, n)
}

func assignTradingAlertID(alert *entity.TradingAlert, id string) {
	alert.ID = id
	alert.Data = datatypes.JSONMap{
		"alert_id": id,
		"symbol":   alert.Symbol,
	}
}
