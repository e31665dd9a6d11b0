package service

import (
	"context"

	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentQuotes = 8

// QuoteService exposes market quotes to clients.
type QuoteService interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
	// GetQuotes fetches several symbols. Symbols with no data are omitted.
	GetQuotes(ctx context.Context, req *dto.QuotesRequest) (*dto.QuotesResponse, error)
}

// NewQuoteService creates a new quote service.
func NewQuoteService(marketData repository.MarketDataRepository, log *logger.Logger) QuoteService {
	return &quoteService{
		marketData: marketData,
		logger:     log,
	}
}

type quoteService struct {
	marketData repository.MarketDataRepository
	logger     *logger.Logger
}

func (s *quoteService) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	quote, err := s.marketData.GetQuote(ctx, symbol)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, err
	}
	return quote, nil
}

func (s *quoteService) GetQuotes(ctx context.Context, req *dto.QuotesRequest) (*dto.QuotesResponse, error) {
	symbols := lo.Uniq(lo.Compact(lo.Map(req.Symbols, func(symbol string, _ int) string {
		return repository.NormalizeSymbol(symbol)
	})))
	if len(symbols) == 0 {
		return nil, apperror.NewValidation("symbols", "symbols required")
	}

	quotes := make([]*dto.Quote, len(symbols))
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentQuotes)
	for i, symbol := range symbols {
		g.Go(func() error {
			quote, err := s.marketData.GetQuote(ctx, symbol)
			if err != nil {
				s.logger.WarnContext(ctx, "Omitting symbol without quote", logger.ErrorField(err), logger.StringField("symbol", symbol))
				return nil
			}
			quotes[i] = quote
			return nil
		})
	}
	_ = g.Wait()

	return &dto.QuotesResponse{
		Quotes: lo.FilterMap(quotes, func(q *dto.Quote, _ int) (dto.Quote, bool) {
			if q == nil {
				return dto.Quote{}, false
			}
			return *q, true
		}),
	}, nil
}
