package entity

import (
	"time"

	"gorm.io/datatypes"
)

// TradingAlertType is the recommendation carried by a trading alert.
// Values outside the known set are accepted and rendered with a fallback icon.
type TradingAlertType string

const (
	TradingAlertNoBrainerBuy TradingAlertType = "NO-BRAINER BUY"
	TradingAlertStrongBuy    TradingAlertType = "STRONG BUY"
	TradingAlertBuy          TradingAlertType = "BUY"
	TradingAlertHold         TradingAlertType = "HOLD"
	TradingAlertReduce       TradingAlertType = "REDUCE"
	TradingAlertSell         TradingAlertType = "SELL"
)

// TradingAlert is an immutable buy/sell recommendation broadcast at creation.
type TradingAlert struct {
	ID              string            `gorm:"primaryKey" json:"id"`
	Symbol          string            `gorm:"not null;index" json:"symbol"`
	AlertType       TradingAlertType  `gorm:"not null" json:"alert_type"`
	Confidence      int               `gorm:"not null" json:"confidence"`
	Reason          string            `gorm:"not null" json:"reason"`
	CurrentPrice    float64           `json:"current_price"`
	TargetPrice     *float64          `json:"target_price"`
	StopLoss        *float64          `json:"stop_loss"`
	SuggestedShares *float64          `json:"suggested_shares"`
	SuggestedAmount *float64          `json:"suggested_amount"`
	Data            datatypes.JSONMap `gorm:"type:jsonb" json:"data,omitempty"`
	CreatedAt       time.Time         `gorm:"not null" json:"created_at"`
}

func (TradingAlert) TableName() string {
	return "trading_alerts"
}
