package service

import (
	"context"
	"math"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"
)

// Evaluator fires price alerts whose condition holds at the observed price.
type Evaluator interface {
	// Evaluate flips every matching untriggered alert of symbol and returns the
	// alerts flipped by this call. A given alert is returned to exactly one caller.
	Evaluate(ctx context.Context, symbol string, currentPrice float64) ([]entity.PriceAlert, error)
	// EvaluateQuote fetches the latest quote for symbol and evaluates against it.
	// When no quote is available nothing is flipped.
	EvaluateQuote(ctx context.Context, symbol string) (*dto.Quote, []entity.PriceAlert, error)
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(store repository.AlertStore, marketData repository.MarketDataRepository, log *logger.Logger) Evaluator {
	return &evaluator{
		store:      store,
		marketData: marketData,
		logger:     log,
		now:        time.Now,
	}
}

type evaluator struct {
	store      repository.AlertStore
	marketData repository.MarketDataRepository
	logger     *logger.Logger
	now        func() time.Time
}

func (e *evaluator) Evaluate(ctx context.Context, symbol string, currentPrice float64) ([]entity.PriceAlert, error) {
	symbol = repository.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}
	if math.IsNaN(currentPrice) || math.IsInf(currentPrice, 0) || currentPrice <= 0 {
		return nil, apperror.NewValidation("current_price", "must be a positive number")
	}

	fired, err := e.store.TriggerMatching(ctx, symbol, currentPrice, e.now())
	for _, alert := range fired {
		e.logger.InfoContext(ctx, "Price alert triggered",
			logger.Field("alert_id", alert.ID),
			logger.StringField("symbol", alert.Symbol),
			logger.StringField("direction", string(alert.Direction)),
			logger.Float64Field("target_price", alert.TargetPrice),
			logger.Float64Field("current_price", currentPrice))
	}
	if err != nil {
		e.logger.ErrorContext(ctx, "Failed to evaluate price alerts", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return fired, err
	}

	e.logger.DebugContext(ctx, "Evaluated price alerts",
		logger.StringField("symbol", symbol),
		logger.Float64Field("current_price", currentPrice),
		logger.IntField("fired", len(fired)))
	return fired, nil
}

func (e *evaluator) EvaluateQuote(ctx context.Context, symbol string) (*dto.Quote, []entity.PriceAlert, error) {
	quote, err := e.marketData.GetQuote(ctx, symbol)
	if err != nil {
		e.logger.WarnContext(ctx, "Skipping evaluation, no quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, nil, err
	}

	fired, err := e.Evaluate(ctx, quote.Symbol, quote.CurrentPrice)
	return quote, fired, err
}
