package service

import (
	"context"
	"strings"
	"time"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"
)

const liveActivityEventUpdate = "update"

// ProjectLiveActivity derives the Live Activity content-state for a quote.
// The percent change is zero when previousClose is not positive.
func ProjectLiveActivity(pushToken, symbol string, currentPrice, previousClose float64, now time.Time) dto.LiveActivityUpdate {
	change, percent := repository.PriceChange(currentPrice, previousClose)
	return dto.LiveActivityUpdate{
		PushToken: pushToken,
		Symbol:    symbol,
		Payload: dto.LiveActivityPayload{
			APS: dto.LiveActivityAPS{
				Timestamp: now.Unix(),
				Event:     liveActivityEventUpdate,
				ContentState: dto.LiveActivityContentState{
					CurrentPrice:       currentPrice,
					PriceChange:        change,
					PriceChangePercent: percent,
					LastUpdated:        now.UTC().Format(time.RFC3339),
				},
			},
		},
	}
}

// LiveActivityService builds Live Activity updates from live quotes.
type LiveActivityService interface {
	Update(ctx context.Context, req *dto.LiveActivityRequest) (*dto.LiveActivityUpdate, error)
}

// NewLiveActivityService creates a new live activity service.
func NewLiveActivityService(marketData repository.MarketDataRepository, log *logger.Logger) LiveActivityService {
	return &liveActivityService{
		marketData: marketData,
		logger:     log,
		now:        time.Now,
	}
}

type liveActivityService struct {
	marketData repository.MarketDataRepository
	logger     *logger.Logger
	now        func() time.Time
}

func (s *liveActivityService) Update(ctx context.Context, req *dto.LiveActivityRequest) (*dto.LiveActivityUpdate, error) {
	pushToken := strings.TrimSpace(req.PushToken)
	if pushToken == "" {
		return nil, apperror.NewValidation("push_token", "push_token required")
	}
	symbol := repository.NormalizeSymbol(req.Symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}

	quote, err := s.marketData.GetQuote(ctx, symbol)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get quote for live activity", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, err
	}

	update := ProjectLiveActivity(pushToken, symbol, quote.CurrentPrice, quote.PreviousClose, s.now())
	s.logger.InfoContext(ctx, "Live activity update prepared",
		logger.StringField("symbol", symbol),
		logger.Float64Field("current_price", quote.CurrentPrice))
	return &update, nil
}
