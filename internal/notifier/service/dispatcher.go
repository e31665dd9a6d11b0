package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"
	"golang-stock-notifier/pkg/push"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDeliveryTimeout = 5 * time.Second
	defaultMaxConcurrency  = 32
)

var tradingAlertIcons = map[entity.TradingAlertType]string{
	entity.TradingAlertNoBrainerBuy: "🚨",
	entity.TradingAlertStrongBuy:    "🟢",
	entity.TradingAlertBuy:          "🟡",
	entity.TradingAlertHold:         "⚪",
	entity.TradingAlertReduce:       "🟠",
	entity.TradingAlertSell:         "🔴",
}

const fallbackTradingAlertIcon = "📊"

// Dispatcher turns notifications into transport calls and reports the outcome per device.
type Dispatcher interface {
	// NotifyOne delivers n to a single token within the per-device timeout.
	NotifyOne(ctx context.Context, token string, n dto.Notification) dto.DeliveryResult
	// Broadcast delivers n to every device in one registry snapshot.
	Broadcast(ctx context.Context, n dto.Notification) (dto.BroadcastResult, error)
	DispatchTradingAlert(ctx context.Context, alert entity.TradingAlert) (dto.BroadcastResult, error)
	// DispatchPriceAlerts notifies the device linked to each fired alert, in
	// parallel, and returns results in alert order. Alerts without a registered
	// device are reported as skipped. Cancelling ctx does not abort deliveries.
	DispatchPriceAlerts(ctx context.Context, alerts []entity.PriceAlert) []dto.DeliveryResult
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(registry repository.DeviceRegistry, transport push.Transport, cfg *config.Config, log *logger.Logger) Dispatcher {
	timeout := cfg.Dispatcher.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	concurrency := cfg.Dispatcher.MaxConcurrency
	if concurrency <= 0 {
		concurrency = defaultMaxConcurrency
	}
	return &dispatcher{
		registry:        registry,
		transport:       transport,
		logger:          log,
		deliveryTimeout: timeout,
		maxConcurrency:  concurrency,
	}
}

type dispatcher struct {
	registry        repository.DeviceRegistry
	transport       push.Transport
	logger          *logger.Logger
	deliveryTimeout time.Duration
	maxConcurrency  int
}

func (d *dispatcher) NotifyOne(ctx context.Context, token string, n dto.Notification) dto.DeliveryResult {
	started := time.Now()
	result := dto.DeliveryResult{Token: token}

	err := d.send(ctx, token, n)
	result.Duration = time.Since(started)

	fields := []zap.Field{
		logger.StringField("token", token),
		logger.StringField("transport", d.transport.Name()),
		logger.StringField("title", n.Title),
		zap.Duration("duration", result.Duration),
	}
	if err != nil {
		deliveryErr := &apperror.DeliveryError{Token: token, Cause: err}
		result.Err = deliveryErr
		result.Error = deliveryErr.Error()
		d.logger.WarnContext(ctx, "Notification delivery failed", append(fields, logger.ErrorField(err))...)
		return result
	}

	result.Delivered = true
	d.logger.InfoContext(ctx, "Notification delivered", fields...)
	return result
}

// send bounds the transport call by the delivery timeout even when the
// transport ignores ctx.
func (d *dispatcher) send(ctx context.Context, token string, n dto.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, d.deliveryTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errCh <- fmt.Errorf("transport panic: %v", r)
			}
		}()
		errCh <- d.transport.Send(ctx, token, n.Title, n.Body, n.Data)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s: %w", d.deliveryTimeout, ctx.Err())
		}
		return ctx.Err()
	}
}

func (d *dispatcher) Broadcast(ctx context.Context, n dto.Notification) (dto.BroadcastResult, error) {
	devices, err := d.registry.ListEligible(ctx)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to snapshot device registry", logger.ErrorField(err))
		return dto.BroadcastResult{}, fmt.Errorf("failed to list devices: %w", err)
	}

	results := make([]dto.DeliveryResult, len(devices))

	// a failed delivery never cancels its siblings, so the group error is always nil
	g := new(errgroup.Group)
	g.SetLimit(d.maxConcurrency)
	for i, device := range devices {
		g.Go(func() error {
			results[i] = d.NotifyOne(ctx, device.Token, n)
			return nil
		})
	}
	_ = g.Wait()

	out := dto.BroadcastResult{
		SentCount: lo.CountBy(results, func(r dto.DeliveryResult) bool { return r.Delivered }),
		Results:   results,
	}
	out.FailedCount = len(results) - out.SentCount

	d.logger.InfoContext(ctx, "Broadcast finished",
		logger.StringField("title", n.Title),
		logger.IntField("devices", len(devices)),
		logger.IntField("sent", out.SentCount),
		logger.IntField("failed", out.FailedCount))
	return out, nil
}

// DispatchTradingAlert runs detached from ctx cancellation: the alert is already
// stored, so only the per-device timeout bounds its deliveries.
func (d *dispatcher) DispatchTradingAlert(ctx context.Context, alert entity.TradingAlert) (dto.BroadcastResult, error) {
	return d.Broadcast(context.WithoutCancel(ctx), TradingAlertNotification(alert))
}

func (d *dispatcher) DispatchPriceAlerts(ctx context.Context, alerts []entity.PriceAlert) []dto.DeliveryResult {
	// fired alerts never fire again, so their deliveries must outlive the caller
	ctx = context.WithoutCancel(ctx)

	slots := make([]*dto.DeliveryResult, len(alerts))

	g := new(errgroup.Group)
	g.SetLimit(d.maxConcurrency)
	for i, alert := range alerts {
		if alert.DeviceToken == nil {
			d.logger.InfoContext(ctx, "Price alert has no linked device", logger.Field("alert_id", alert.ID))
			continue
		}
		g.Go(func() error {
			result := d.dispatchPriceAlert(ctx, alert)
			slots[i] = &result
			return nil
		})
	}
	_ = g.Wait()

	return lo.FilterMap(slots, func(r *dto.DeliveryResult, _ int) (dto.DeliveryResult, bool) {
		if r == nil {
			return dto.DeliveryResult{}, false
		}
		return *r, true
	})
}

func (d *dispatcher) dispatchPriceAlert(ctx context.Context, alert entity.PriceAlert) dto.DeliveryResult {
	token := *alert.DeviceToken
	_, ok, err := d.registry.Get(ctx, token)
	if err != nil {
		d.logger.ErrorContext(ctx, "Failed to look up device", logger.ErrorField(err), logger.StringField("token", token))
		return dto.DeliveryResult{Token: token, Err: err, Error: err.Error()}
	}
	if !ok {
		d.logger.InfoContext(ctx, "Skipping price alert for unregistered device",
			logger.Field("alert_id", alert.ID),
			logger.StringField("token", token))
		return dto.DeliveryResult{Token: token, Skipped: true}
	}
	return d.NotifyOne(ctx, token, PriceAlertNotification(alert))
}

// TradingAlertNotification renders the broadcast content for a trading alert.
func TradingAlertNotification(alert entity.TradingAlert) dto.Notification {
	icon, ok := tradingAlertIcons[alert.AlertType]
	if !ok {
		icon = fallbackTradingAlertIcon
	}
	return dto.Notification{
		Title: fmt.Sprintf("%s %s: %s", icon, alert.AlertType, alert.Symbol),
		Body:  fmt.Sprintf("%s (Confidence: %d%%)", alert.Reason, alert.Confidence),
		Data: map[string]any{
			"alert_id": alert.ID,
			"symbol":   alert.Symbol,
		},
	}
}

// PriceAlertNotification renders the content sent when a price alert fires.
func PriceAlertNotification(alert entity.PriceAlert) dto.Notification {
	target := decimal.NewFromFloat(alert.TargetPrice).String()
	price := target
	if alert.TriggeredPrice != nil {
		price = decimal.NewFromFloat(*alert.TriggeredPrice).String()
	}
	return dto.Notification{
		Title: fmt.Sprintf("🔔 %s %s %s", alert.Symbol, alert.Direction, target),
		Body:  fmt.Sprintf("%s is now %s (target %s %s)", alert.Symbol, price, alert.Direction, target),
		Data: map[string]any{
			"alert_id":     alert.ID,
			"symbol":       alert.Symbol,
			"target_price": alert.TargetPrice,
			"direction":    string(alert.Direction),
		},
	}
}
