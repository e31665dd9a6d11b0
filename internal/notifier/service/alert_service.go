package service

import (
	"context"
	"strings"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AlertService defines the interface for managing price and trading alerts.
type AlertService interface {
	CreatePriceAlert(ctx context.Context, req *dto.CreatePriceAlertRequest) (*entity.PriceAlert, error)
	ListPriceAlerts(ctx context.Context) ([]entity.PriceAlert, error)
	DeletePriceAlert(ctx context.Context, id int64) error
	// EvaluatePrice runs the evaluator for one symbol and notifies the devices
	// linked to the alerts that fired. An explicit current_price is only
	// accepted when monitor.allow_manual_price is set.
	EvaluatePrice(ctx context.Context, req *dto.EvaluatePriceRequest) (*dto.EvaluatePriceResponse, error)
	// CreateTradingAlert stores the alert and broadcasts it to every registered device.
	CreateTradingAlert(ctx context.Context, req *dto.CreateTradingAlertRequest) (*dto.TradingAlertResponse, error)
	ListTradingAlerts(ctx context.Context) ([]entity.TradingAlert, error)
}

// NewAlertService creates a new alert service.
func NewAlertService(store repository.AlertStore, evaluator Evaluator, dispatcher Dispatcher, log *logger.Logger, cfg *config.Config) AlertService {
	return &alertService{
		store:            store,
		evaluator:        evaluator,
		dispatcher:       dispatcher,
		logger:           log,
		allowManualPrice: cfg.Monitor.AllowManualPrice,
	}
}

type alertService struct {
	store            repository.AlertStore
	evaluator        Evaluator
	dispatcher       Dispatcher
	logger           *logger.Logger
	allowManualPrice bool
}

func (s *alertService) CreatePriceAlert(ctx context.Context, req *dto.CreatePriceAlertRequest) (*entity.PriceAlert, error) {
	raw := strings.TrimSpace(req.TargetPrice.String())
	if raw == "" {
		return nil, apperror.NewValidation("target_price", "target_price required")
	}
	target, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, apperror.NewValidation("target_price", "must be a number")
	}

	alert, err := s.store.CreatePriceAlert(ctx, req.Symbol, target.InexactFloat64(), entity.Direction(req.Direction), req.DeviceToken)
	if err != nil {
		if !apperror.IsValidation(err) {
			s.logger.ErrorContext(ctx, "Failed to create price alert", logger.ErrorField(err))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Price alert created",
		logger.Field("alert_id", alert.ID),
		logger.StringField("symbol", alert.Symbol),
		logger.StringField("direction", string(alert.Direction)),
		logger.Float64Field("target_price", alert.TargetPrice))
	return alert, nil
}

func (s *alertService) ListPriceAlerts(ctx context.Context) ([]entity.PriceAlert, error) {
	alerts, err := s.store.ListPriceAlerts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list price alerts", logger.ErrorField(err))
		return nil, err
	}
	return alerts, nil
}

func (s *alertService) DeletePriceAlert(ctx context.Context, id int64) error {
	if err := s.store.DeletePriceAlert(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete price alert", logger.ErrorField(err), logger.Field("alert_id", id))
		return err
	}
	s.logger.InfoContext(ctx, "Price alert deleted", logger.Field("alert_id", id))
	return nil
}

func (s *alertService) EvaluatePrice(ctx context.Context, req *dto.EvaluatePriceRequest) (*dto.EvaluatePriceResponse, error) {
	symbol := repository.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}
	if req.CurrentPrice != nil && !s.allowManualPrice {
		return nil, apperror.NewValidation("current_price", "manual prices are disabled, omit current_price to use the live quote")
	}

	var (
		price float64
		fired []entity.PriceAlert
		err   error
	)
	if req.CurrentPrice != nil {
		price = *req.CurrentPrice
		fired, err = s.evaluator.Evaluate(ctx, symbol, price)
	} else {
		var quote *dto.Quote
		quote, fired, err = s.evaluator.EvaluateQuote(ctx, symbol)
		if quote != nil {
			price = quote.CurrentPrice
		}
	}

	// alerts already flipped are dispatched even when the evaluation reported an error
	deliveries := s.dispatcher.DispatchPriceAlerts(ctx, fired)
	if err != nil {
		return nil, err
	}

	return &dto.EvaluatePriceResponse{
		Symbol:       symbol,
		CurrentPrice: price,
		Fired:        lo.Ternary(fired == nil, []entity.PriceAlert{}, fired),
		Deliveries:   deliveries,
	}, nil
}

func (s *alertService) CreateTradingAlert(ctx context.Context, req *dto.CreateTradingAlertRequest) (*dto.TradingAlertResponse, error) {
	alert, err := s.store.CreateTradingAlert(ctx, req.ToInput())
	if err != nil {
		if !apperror.IsValidation(err) {
			s.logger.ErrorContext(ctx, "Failed to create trading alert", logger.ErrorField(err))
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "Trading alert created",
		logger.StringField("alert_id", alert.ID),
		logger.StringField("symbol", alert.Symbol),
		logger.StringField("alert_type", string(alert.AlertType)),
		logger.IntField("confidence", alert.Confidence))

	result, err := s.dispatcher.DispatchTradingAlert(ctx, *alert)
	if err != nil {
		// the alert is stored; report it with nothing delivered
		s.logger.ErrorContext(ctx, "Failed to broadcast trading alert", logger.ErrorField(err), logger.StringField("alert_id", alert.ID))
	}

	return &dto.TradingAlertResponse{
		Success:     true,
		Alert:       *alert,
		SentCount:   result.SentCount,
		FailedCount: result.FailedCount,
	}, nil
}

func (s *alertService) ListTradingAlerts(ctx context.Context) ([]entity.TradingAlert, error) {
	alerts, err := s.store.ListTradingAlerts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list trading alerts", logger.ErrorField(err))
		return nil, err
	}
	return alerts, nil
}
