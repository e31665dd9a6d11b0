package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
)

// AlertStore owns price alerts and trading alert history.
type AlertStore interface {
	CreatePriceAlert(ctx context.Context, symbol string, targetPrice float64, direction entity.Direction, deviceToken *string) (*entity.PriceAlert, error)
	// ListPriceAlerts returns every price alert in creation order.
	ListPriceAlerts(ctx context.Context) ([]entity.PriceAlert, error)
	// DeletePriceAlert removes the alert. Unknown ids are a no-op.
	DeletePriceAlert(ctx context.Context, id int64) error
	// PendingSymbols lists the symbols that still have untriggered alerts.
	PendingSymbols(ctx context.Context) ([]string, error)
	// TriggerMatching flips every untriggered alert of symbol whose condition holds
	// at price and returns exactly the alerts this call flipped. Alerts already
	// committed are returned even when err is non-nil.
	TriggerMatching(ctx context.Context, symbol string, price float64, at time.Time) ([]entity.PriceAlert, error)

	CreateTradingAlert(ctx context.Context, input dto.TradingAlertInput) (*entity.TradingAlert, error)
	// ListTradingAlerts returns trading alert history in creation order.
	ListTradingAlerts(ctx context.Context) ([]entity.TradingAlert, error)
}

// NewAlertStore creates an in-memory AlertStore.
func NewAlertStore() AlertStore {
	return newMemoryAlertStore(time.Now)
}

func newMemoryAlertStore(now func() time.Time) *alertStore {
	return &alertStore{
		tradingIDs: make(map[string]struct{}),
		now:        now,
	}
}

type alertStore struct {
	mu            sync.RWMutex
	lastID        atomic.Int64
	priceAlerts   []*entity.PriceAlert
	tradingAlerts []entity.TradingAlert
	tradingIDs    map[string]struct{}
	now           func() time.Time
}

func (s *alertStore) CreatePriceAlert(ctx context.Context, symbol string, targetPrice float64, direction entity.Direction, deviceToken *string) (*entity.PriceAlert, error) {
	alert, err := newPriceAlert(symbol, targetPrice, direction, deviceToken, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	alert.ID = s.lastID.Add(1)
	s.priceAlerts = append(s.priceAlerts, alert)
	created := *alert
	s.mu.Unlock()

	return &created, nil
}

func (s *alertStore) ListPriceAlerts(ctx context.Context) ([]entity.PriceAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]entity.PriceAlert, 0, len(s.priceAlerts))
	for _, alert := range s.priceAlerts {
		alerts = append(alerts, *alert)
	}
	return alerts, nil
}

func (s *alertStore) DeletePriceAlert(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, alert := range s.priceAlerts {
		if alert.ID == id {
			s.priceAlerts = append(s.priceAlerts[:i], s.priceAlerts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *alertStore) PendingSymbols(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var symbols []string
	for _, alert := range s.priceAlerts {
		if alert.Triggered {
			continue
		}
		if _, ok := seen[alert.Symbol]; ok {
			continue
		}
		seen[alert.Symbol] = struct{}{}
		symbols = append(symbols, alert.Symbol)
	}
	return symbols, nil
}

func (s *alertStore) TriggerMatching(ctx context.Context, symbol string, price float64, at time.Time) ([]entity.PriceAlert, error) {
	symbol = NormalizeSymbol(symbol)

	// check and flip happen under one write lock, which makes the flip a compare-and-set
	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []entity.PriceAlert
	for _, alert := range s.priceAlerts {
		if alert.Symbol != symbol || alert.Triggered || !alert.Matches(price) {
			continue
		}
		triggeredAt := at
		triggeredPrice := price
		alert.Triggered = true
		alert.TriggeredAt = &triggeredAt
		alert.TriggeredPrice = &triggeredPrice
		fired = append(fired, *alert)
	}
	return fired, nil
}

func (s *alertStore) CreateTradingAlert(ctx context.Context, input dto.TradingAlertInput) (*entity.TradingAlert, error) {
	alert, err := newTradingAlert(input, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for n := 1; ; n++ {
		id := tradingAlertID(alert.CreatedAt, n)
		if _, taken := s.tradingIDs[id]; !taken {
			assignTradingAlertID(alert, id)
			break
		}
	}
	s.tradingIDs[alert.ID] = struct{}{}
	s.tradingAlerts = append(s.tradingAlerts, *alert)

	return alert, nil
}

func (s *alertStore) ListTradingAlerts(ctx context.Context) ([]entity.TradingAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alerts := make([]entity.TradingAlert, len(s.tradingAlerts))
	copy(alerts, s.tradingAlerts)
	return alerts, nil
}
