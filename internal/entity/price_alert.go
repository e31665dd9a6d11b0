package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of the target price that fires an alert.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	return d == DirectionAbove || d == DirectionBelow
}

// PriceAlert fires once when a symbol's price crosses TargetPrice.
type PriceAlert struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	Symbol         string     `gorm:"not null;index" json:"symbol"`
	TargetPrice    float64    `gorm:"not null" json:"target_price"`
	Direction      Direction  `gorm:"not null" json:"direction"`
	DeviceToken    *string    `json:"device_token"`
	Triggered      bool       `gorm:"not null;default:false;index" json:"triggered"`
	TriggeredAt    *time.Time `json:"triggered_at,omitempty"`
	TriggeredPrice *float64   `json:"triggered_price,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (PriceAlert) TableName() string {
	return "price_alerts"
}

// Matches reports whether price satisfies the alert condition. Equality fires.
func (a PriceAlert) Matches(price float64) bool {
	current := decimal.NewFromFloat(price)
	target := decimal.NewFromFloat(a.TargetPrice)
	switch a.Direction {
	case DirectionAbove:
		return current.GreaterThanOrEqual(target)
	case DirectionBelow:
		return current.LessThanOrEqual(target)
	default:
		return false
	}
}
