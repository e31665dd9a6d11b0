package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"

	"gorm.io/gorm"
)

// NewSQLAlertStore creates a gorm-backed AlertStore. Price alert ids come from the
// table's identity column, which never hands out a deleted id again.
func NewSQLAlertStore(db *gorm.DB) AlertStore {
	return &sqlAlertStore{db: db, now: time.Now}
}

type sqlAlertStore struct {
	db *gorm.DB
	// serialises trading alert id allocation inside this process
	idMu sync.Mutex
	now  func() time.Time
}

func (s *sqlAlertStore) CreatePriceAlert(ctx context.Context, symbol string, targetPrice float64, direction entity.Direction, deviceToken *string) (*entity.PriceAlert, error) {
	alert, err := newPriceAlert(symbol, targetPrice, direction, deviceToken, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create price alert: %w", err)
	}
	return alert, nil
}

func (s *sqlAlertStore) ListPriceAlerts(ctx context.Context) ([]entity.PriceAlert, error) {
	var alerts []entity.PriceAlert
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list price alerts: %w", err)
	}
	return alerts, nil
}

func (s *sqlAlertStore) DeletePriceAlert(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&entity.PriceAlert{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete price alert: %w", err)
	}
	return nil
}

func (s *sqlAlertStore) PendingSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	err := s.db.WithContext(ctx).
		Model(&entity.PriceAlert{}).
		Where("triggered = ?", false).
		Distinct().
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending symbols: %w", err)
	}
	return symbols, nil
}

func (s *sqlAlertStore) TriggerMatching(ctx context.Context, symbol string, price float64, at time.Time) ([]entity.PriceAlert, error) {
	var candidates []entity.PriceAlert
	err := s.db.WithContext(ctx).
		Where("symbol = ? AND triggered = ?", NormalizeSymbol(symbol), false).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load pending alerts: %w", err)
	}

	var fired []entity.PriceAlert
	for _, alert := range candidates {
		if !alert.Matches(price) {
			continue
		}

		// the conditional update is the compare-and-set; only one caller sees RowsAffected == 1
		res := s.db.WithContext(ctx).
			Model(&entity.PriceAlert{}).
			Where("id = ? AND triggered = ?", alert.ID, false).
			Updates(map[string]interface{}{
				"triggered":       true,
				"triggered_at":    at,
				"triggered_price": price,
			})
		if res.Error != nil {
			return fired, fmt.Errorf("failed to trigger price alert %d: %w", alert.ID, res.Error)
		}
		if res.RowsAffected != 1 {
			continue
		}

		triggeredAt := at
		triggeredPrice := price
		alert.Triggered = true
		alert.TriggeredAt = &triggeredAt
		alert.TriggeredPrice = &triggeredPrice
		fired = append(fired, alert)
	}
	return fired, nil
}

func (s *sqlAlertStore) CreateTradingAlert(ctx context.Context, input dto.TradingAlertInput) (*entity.TradingAlert, error) {
	alert, err := newTradingAlert(input, s.now())
	if err != nil {
		return nil, err
	}

	s.idMu.Lock()
	defer s.idMu.Unlock()

	for n := 1; ; n++ {
		id := tradingAlertID(alert.CreatedAt, n)
		var existing entity.TradingAlert
		err := s.db.WithContext(ctx).Select("id").Where("id = ?", id).Take(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			assignTradingAlertID(alert, id)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to allocate trading alert id: %w", err)
		}
	}

	if err := s.db.WithContext(ctx).Create(alert).Error; err != nil {
		return nil, fmt.Errorf("failed to create trading alert: %w", err)
	}
	return alert, nil
}

func (s *sqlAlertStore) ListTradingAlerts(ctx context.Context) ([]entity.TradingAlert, error) {
	var alerts []entity.TradingAlert
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to list trading alerts: %w", err)
	}
	return alerts, nil
}
