package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/internal/notifier/service"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMarketData struct {
	quotes map[string]dto.Quote
}

func (s *stubMarketData) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	symbol = repository.NormalizeSymbol(symbol)
	quote, ok := s.quotes[symbol]
	if !ok {
		return nil, apperror.NewDataUnavailable(symbol, errors.New("symbol not found"))
	}
	return &quote, nil
}

type stubTransport struct {
	mu     sync.Mutex
	tokens []string
	failOn map[string]bool
}

func (t *stubTransport) Name() string { return "stub" }

func (t *stubTransport) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	if t.failOn[token] {
		return errors.New("device unreachable")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tokens = append(t.tokens, token)
	return nil
}

type testServer struct {
	echo      *echo.Echo
	transport *stubTransport
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNop()
	cfg := &config.Config{Dispatcher: config.Dispatcher{DeliveryTimeout: time.Second, MaxConcurrency: 4}}

	marketData := &stubMarketData{quotes: map[string]dto.Quote{
		"AAPL": {Symbol: "AAPL", CurrentPrice: 151, PreviousClose: 150},
		"NEW":  {Symbol: "NEW", CurrentPrice: 20, PreviousClose: 0},
	}}
	transport := &stubTransport{failOn: map[string]bool{}}

	store := repository.NewAlertStore()
	registry := repository.NewDeviceRegistry()
	dispatcher := service.NewDispatcher(registry, transport, cfg, log)
	evaluator := service.NewEvaluator(store, marketData, log)

	e := NewServer(log)
	RegisterRoutes(e, Handlers{
		Device:       NewDeviceHandler(service.NewDeviceService(registry, log), log),
		Alert:        NewAlertHandler(service.NewAlertService(store, evaluator, dispatcher, log, cfg), log),
		Notification: NewNotificationHandler(service.NewNotificationService(dispatcher), service.NewLiveActivityService(marketData, log), log),
		Quote:        NewQuoteHandler(service.NewQuoteService(marketData, log), log),
	})
	return &testServer{echo: e, transport: transport}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	health := decode[dto.HealthResponse](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "1.0.0", health.Version)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestDeviceRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/devices/register", `{"token":"tok-1","user_id":"alice","platform":"ios"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	device := decode[dto.DeviceResponse](t, rec)
	assert.True(t, device.Success)
	assert.Equal(t, "alice", device.Device.Owner)

	rec = s.do(t, http.MethodPost, "/api/devices/register", `{"user_id":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode[dto.ErrorResponse](t, rec).Error, "token")

	rec = s.do(t, http.MethodPost, "/api/devices/unregister", `{"token":"tok-1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/devices/unregister", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/devices/register", `{"token":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPriceAlertRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/devices/register", `{"token":"tok-1"}`)

	rec := s.do(t, http.MethodPost, "/api/alerts/price", `{"symbol":"aapl","target_price":150,"direction":"above","device_token":"tok-1"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decode[dto.PriceAlertResponse](t, rec)
	assert.Equal(t, int64(1), created.Alert.ID)
	assert.Equal(t, "AAPL", created.Alert.Symbol)

	rec = s.do(t, http.MethodPost, "/api/alerts/price", `{"symbol":"AAPL","target_price":"150.5","direction":"below"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/alerts/price", `{"symbol":"AAPL","target_price":-1,"direction":"above"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/alerts/price", `{"symbol":"AAPL","target_price":10,"direction":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/alerts/price", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.PriceAlertListResponse](t, rec).Alerts, 2)

	rec = s.do(t, http.MethodPost, "/api/alerts/price/evaluate", `{"symbol":"AAPL"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	evaluated := decode[dto.EvaluatePriceResponse](t, rec)
	assert.Equal(t, 151.0, evaluated.CurrentPrice)
	require.Len(t, evaluated.Fired, 1)
	assert.Equal(t, int64(1), evaluated.Fired[0].ID)
	require.Len(t, evaluated.Deliveries, 1)
	assert.True(t, evaluated.Deliveries[0].Delivered)

	rec = s.do(t, http.MethodPost, "/api/alerts/price/evaluate", `{"symbol":"ZZZ"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/alerts/price/evaluate", `{"symbol":"AAPL","current_price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/alerts/price/2", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/alerts/price/999", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/alerts/price/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/alerts/price", "")
	assert.Len(t, decode[dto.PriceAlertListResponse](t, rec).Alerts, 1)
}

func TestTradingAlertRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/devices/register", `{"token":"device-a"}`)
	s.do(t, http.MethodPost, "/api/devices/register", `{"token":"device-b"}`)
	s.transport.failOn["device-a"] = true

	rec := s.do(t, http.MethodPost, "/api/alerts/trading", `{"symbol":"NVDA","alert_type":"STRONG BUY","confidence":88,"reason":"Breakout","target_price":1000}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.TradingAlertResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.SentCount)
	assert.Equal(t, 1, resp.FailedCount)
	assert.True(t, strings.HasPrefix(resp.Alert.ID, "alert_"))
	assert.Equal(t, 1000.0, *resp.Alert.TargetPrice)

	rec = s.do(t, http.MethodPost, "/api/alerts/trading", `{"symbol":"NVDA","alert_type":"BUY","confidence":"high","reason":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/alerts/trading", `{"symbol":"NVDA","alert_type":"BUY","confidence":150,"reason":"r"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/alerts/trading", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.TradingAlertListResponse](t, rec).Alerts, 1)
}

func TestNotificationRoutes(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodPost, "/api/devices/register", `{"token":"device-a"}`)

	rec := s.do(t, http.MethodPost, "/api/notifications/send", `{"token":"device-a","body":"hi"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	sent := decode[dto.SendNotificationResponse](t, rec)
	assert.True(t, sent.Success)
	assert.Equal(t, "MyStocksApp", sent.Notification.Title)

	rec = s.do(t, http.MethodPost, "/api/notifications/send", `{"body":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/notifications/broadcast", `{"title":"Hello","body":"World"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decode[dto.BroadcastResponse](t, rec).SentCount)

	rec = s.do(t, http.MethodPost, "/api/notifications/broadcast", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLiveActivityRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/liveactivity/update", `{"push_token":"p-1","symbol":"NEW"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[dto.LiveActivityResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "update", resp.Payload.APS.Event)
	assert.Equal(t, 0.0, resp.Payload.APS.ContentState.PriceChangePercent)

	rec = s.do(t, http.MethodPost, "/api/liveactivity/update", `{"symbol":"AAPL"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/liveactivity/update", `{"push_token":"p-1","symbol":"ZZZ"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestQuoteRoutes(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/quote/aapl", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 151.0, decode[dto.Quote](t, rec).CurrentPrice)

	rec = s.do(t, http.MethodGet, "/api/quote/ZZZ", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/quotes", `{"symbols":["AAPL","ZZZ"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.QuotesResponse](t, rec).Quotes, 1)

	rec = s.do(t, http.MethodPost, "/api/quotes", `{"symbols":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
