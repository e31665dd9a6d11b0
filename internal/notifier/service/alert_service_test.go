package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type alertServiceFixture struct {
	store      repository.AlertStore
	registry   repository.DeviceRegistry
	transport  *recordingTransport
	marketData *mockMarketData
	svc        AlertService
}

func newAlertServiceFixture() *alertServiceFixture {
	cfg := testConfig()
	cfg.Monitor.AllowManualPrice = true
	return newAlertServiceFixtureWithConfig(cfg)
}

func newAlertServiceFixtureWithConfig(cfg *config.Config) *alertServiceFixture {
	f := &alertServiceFixture{
		store:      repository.NewAlertStore(),
		registry:   repository.NewDeviceRegistry(),
		transport:  &recordingTransport{},
		marketData: &mockMarketData{},
	}
	dispatcher := NewDispatcher(f.registry, f.transport, cfg, testLogger())
	evaluator := NewEvaluator(f.store, f.marketData, testLogger())
	f.svc = NewAlertService(f.store, evaluator, dispatcher, testLogger(), cfg)
	return f
}

func TestAlertService_CreatePriceAlert(t *testing.T) {
	tests := []struct {
		name    string
		target  json.Number
		wantErr bool
		want    float64
	}{
		{"number", "150", false, 150},
		{"decimal string", "150.25", false, 150.25},
		{"empty", "", true, 0},
		{"not a number", "abc", true, 0},
		{"zero", "0", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAlertServiceFixture()
			alert, err := f.svc.CreatePriceAlert(context.Background(), &dto.CreatePriceAlertRequest{
				Symbol:      "aapl",
				TargetPrice: tt.target,
				Direction:   "ABOVE",
			})
			if tt.wantErr {
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, alert.TargetPrice)
			assert.Equal(t, entity.DirectionAbove, alert.Direction)
		})
	}
}

func TestAlertService_EvaluatePriceNotifiesLinkedDevice(t *testing.T) {
	ctx := context.Background()
	f := newAlertServiceFixture()
	_, err := f.registry.Register(ctx, "tok-1", "alice", entity.PlatformIOS)
	require.NoError(t, err)
	_, err = f.svc.CreatePriceAlert(ctx, &dto.CreatePriceAlertRequest{
		Symbol: "AAPL", TargetPrice: "150", Direction: "above", DeviceToken: utils.ToPointer("tok-1"),
	})
	require.NoError(t, err)

	resp, err := f.svc.EvaluatePrice(ctx, &dto.EvaluatePriceRequest{Symbol: "aapl", CurrentPrice: utils.ToPointer(150.0)})

	require.NoError(t, err)
	assert.Equal(t, "AAPL", resp.Symbol)
	require.Len(t, resp.Fired, 1)
	require.Len(t, resp.Deliveries, 1)
	assert.True(t, resp.Deliveries[0].Delivered)

	sent := f.transport.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "tok-1", sent[0].Token)

	resp, err = f.svc.EvaluatePrice(ctx, &dto.EvaluatePriceRequest{Symbol: "AAPL", CurrentPrice: utils.ToPointer(151.0)})
	require.NoError(t, err)
	assert.Empty(t, resp.Fired)
	assert.Len(t, f.transport.messages(), 1)
}

func TestAlertService_EvaluatePriceFromQuote(t *testing.T) {
	ctx := context.Background()
	f := newAlertServiceFixture()
	_, _ = f.store.CreatePriceAlert(ctx, "MSFT", 400, entity.DirectionBelow, nil)
	f.marketData.On("GetQuote", mock.Anything, "MSFT").Return(&dto.Quote{Symbol: "MSFT", CurrentPrice: 390}, nil)

	resp, err := f.svc.EvaluatePrice(ctx, &dto.EvaluatePriceRequest{Symbol: "MSFT"})

	require.NoError(t, err)
	assert.Equal(t, 390.0, resp.CurrentPrice)
	assert.Len(t, resp.Fired, 1)
	assert.Empty(t, resp.Deliveries)
}

func TestAlertService_EvaluatePriceUnavailable(t *testing.T) {
	f := newAlertServiceFixture()
	f.marketData.On("GetQuote", mock.Anything, "ZZZ").Return(nil, apperror.NewDataUnavailable("ZZZ", errors.New("timeout")))

	_, err := f.svc.EvaluatePrice(context.Background(), &dto.EvaluatePriceRequest{Symbol: "ZZZ"})
	assert.True(t, apperror.IsDataUnavailable(err))

	_, err = f.svc.EvaluatePrice(context.Background(), &dto.EvaluatePriceRequest{})
	assert.True(t, apperror.IsValidation(err))
}

func TestAlertService_CreateTradingAlertBroadcasts(t *testing.T) {
	ctx := context.Background()
	f := newAlertServiceFixture()
	_, _ = f.registry.Register(ctx, "device-a", "", entity.PlatformIOS)
	_, _ = f.registry.Register(ctx, "device-b", "", entity.PlatformAndroid)
	f.transport.failOn = map[string]error{"device-a": errors.New("gone")}

	resp, err := f.svc.CreateTradingAlert(ctx, &dto.CreateTradingAlertRequest{
		Symbol:     "NVDA",
		AlertType:  "NO-BRAINER BUY",
		Confidence: "97",
		Reason:     "Golden cross",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.SentCount)
	assert.Equal(t, 1, resp.FailedCount)
	assert.Equal(t, 97, resp.Alert.Confidence)

	history, err := f.svc.ListTradingAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, resp.Alert.ID, history[0].ID)
}

func TestAlertService_CreateTradingAlertValidation(t *testing.T) {
	f := newAlertServiceFixture()

	_, err := f.svc.CreateTradingAlert(context.Background(), &dto.CreateTradingAlertRequest{
		Symbol: "NVDA", AlertType: "BUY", Confidence: "120", Reason: "r",
	})

	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, f.transport.messages())
}

func TestAlertService_DeletePriceAlert(t *testing.T) {
	ctx := context.Background()
	f := newAlertServiceFixture()
	alert, _ := f.store.CreatePriceAlert(ctx, "AAPL", 1, entity.DirectionAbove, nil)

	require.NoError(t, f.svc.DeletePriceAlert(ctx, alert.ID))
	require.NoError(t, f.svc.DeletePriceAlert(ctx, alert.ID))

	alerts, err := f.svc.ListPriceAlerts(ctx)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestAlertService_EvaluatePriceRejectsManualPriceByDefault(t *testing.T) {
	ctx := context.Background()
	f := newAlertServiceFixtureWithConfig(testConfig())
	_, err := f.store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, nil)
	require.NoError(t, err)

	_, err = f.svc.EvaluatePrice(ctx, &dto.EvaluatePriceRequest{Symbol: "AAPL", CurrentPrice: utils.ToPointer(1000.0)})

	assert.True(t, apperror.IsValidation(err))
	symbols, err := f.store.PendingSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL"}, symbols)
	f.marketData.AssertNotCalled(t, "GetQuote", mock.Anything, mock.Anything)
}
