package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// MarketDataRepository is the quote source consumed by the evaluator and the quote endpoints.
type MarketDataRepository interface {
	// GetQuote returns the latest quote, or a *apperror.DataUnavailableError.
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
}

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				ShortName            string  `json:"shortName"`
				LongName             string  `json:"longName"`
				Currency             string  `json:"currency"`
				ExchangeName         string  `json:"exchangeName"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  int64   `json:"regularMarketVolume"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
				PreviousClose        float64 `json:"previousClose"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				FiftyTwoWeekHigh     float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow      float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Open []*float64 `json:"open"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	quoteCache     *cache.Cache
}

// NewYahooFinanceRepository creates a MarketDataRepository backed by the Yahoo Finance chart API.
// Quotes are cached for MarketData.CacheDuration so that a monitor sweep and
// concurrent HTTP requests for the same symbol share one upstream call.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) MarketDataRepository {
	perMinute := cfg.MarketData.MaxRequestPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	timeout := cfg.MarketData.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		quoteCache:     cache.New(cfg.MarketData.CacheDuration, 2*time.Minute),
	}
}

func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperror.NewValidation("symbol", "symbol required")
	}

	if cached, ok := r.quoteCache.Get(symbol); ok {
		quote := cached.(dto.Quote)
		return &quote, nil
	}

	quote, err := r.fetchQuote(ctx, symbol)
	if err != nil {
		return nil, apperror.NewDataUnavailable(symbol, err)
	}

	if r.cfg.MarketData.CacheDuration > 0 {
		r.quoteCache.Set(symbol, *quote, r.cfg.MarketData.CacheDuration)
	}
	return quote, nil
}

func (r *yahooFinanceRepository) fetchQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=1d", r.cfg.MarketData.BaseURL, url.PathEscape(symbol))
	fields := []zap.Field{
		zap.String("url", endpoint),
		zap.String("symbol", symbol),
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to wait for request limit", fields...)
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-notifier/1.0)")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		fields = append(fields, zap.Error(err))
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance", fields...)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var chart yahooChartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		fields = append(fields, zap.Int("status_code", resp.StatusCode))
		r.log.ErrorContext(ctx, "Failed to decode Yahoo Finance response", fields...)
		return nil, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%s: %s", chart.Chart.Error.Code, chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, errors.New("empty chart result")
	}

	result := chart.Chart.Result[0]
	meta := result.Meta
	if meta.RegularMarketPrice <= 0 {
		return nil, errors.New("no market price in response")
	}

	previousClose := meta.PreviousClose
	if previousClose <= 0 {
		previousClose = meta.ChartPreviousClose
	}

	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}
	if name == "" {
		name = symbol
	}

	var open float64
	if len(result.Indicators.Quote) > 0 && len(result.Indicators.Quote[0].Open) > 0 && result.Indicators.Quote[0].Open[0] != nil {
		open = *result.Indicators.Quote[0].Open[0]
	}

	timestamp := time.Now()
	if meta.RegularMarketTime > 0 {
		timestamp = time.Unix(meta.RegularMarketTime, 0)
	}

	currency := meta.Currency
	if currency == "" {
		currency = "USD"
	}
	exchange := meta.ExchangeName
	if exchange == "" {
		exchange = "UNKNOWN"
	}

	change, changePercent := QuoteChange(meta.RegularMarketPrice, previousClose)

	r.log.DebugContext(ctx, "Fetched quote", fields...)

	return &dto.Quote{
		Symbol:        symbol,
		Name:          name,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: previousClose,
		Open:          open,
		High:          meta.RegularMarketDayHigh,
		Low:           meta.RegularMarketDayLow,
		Volume:        meta.RegularMarketVolume,
		High52Week:    meta.FiftyTwoWeekHigh,
		Low52Week:     meta.FiftyTwoWeekLow,
		Currency:      currency,
		Exchange:      exchange,
		Change:        change,
		ChangePercent: changePercent,
		Timestamp:     timestamp,
	}, nil
}

// PriceChange returns the absolute and percent change from previousClose.
// The percent is zero when previousClose is not positive.
func PriceChange(current, previousClose float64) (float64, float64) {
	change := current - previousClose
	if previousClose <= 0 {
		return change, 0
	}
	return change, change / previousClose * 100
}

// QuoteChange is the change reported on quotes: both values are zero when
// previousClose is not positive.
func QuoteChange(current, previousClose float64) (float64, float64) {
	if previousClose <= 0 {
		return 0, 0
	}
	return PriceChange(current, previousClose)
}
