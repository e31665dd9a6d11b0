package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_ThresholdScenario(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	alert, err := store.CreatePriceAlert(ctx, "AAPL", 150.00, entity.DirectionAbove, nil)
	require.NoError(t, err)

	e := NewEvaluator(store, &mockMarketData{}, testLogger())

	fired, err := e.Evaluate(ctx, "AAPL", 149.99)
	require.NoError(t, err)
	assert.Empty(t, fired)

	fired, err = e.Evaluate(ctx, "AAPL", 150.00)
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.Equal(t, alert.ID, fired[0].ID)
	assert.True(t, fired[0].Triggered)
	assert.Equal(t, 150.00, *fired[0].TriggeredPrice)

	fired, err = e.Evaluate(ctx, "AAPL", 151.00)
	require.NoError(t, err)
	assert.Empty(t, fired)
}

func TestEvaluator_BelowDirection(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	_, _ = store.CreatePriceAlert(ctx, "TSLA", 200, entity.DirectionBelow, nil)
	e := NewEvaluator(store, &mockMarketData{}, testLogger())

	fired, err := e.Evaluate(ctx, "tsla", 200.01)
	require.NoError(t, err)
	assert.Empty(t, fired)

	fired, err = e.Evaluate(ctx, "tsla", 199.5)
	require.NoError(t, err)
	assert.Len(t, fired, 1)
}

func TestEvaluator_RejectsInvalidInput(t *testing.T) {
	e := NewEvaluator(repository.NewAlertStore(), &mockMarketData{}, testLogger())

	_, err := e.Evaluate(context.Background(), "AAPL", 0)
	assert.True(t, apperror.IsValidation(err))

	_, err = e.Evaluate(context.Background(), "", 10)
	assert.True(t, apperror.IsValidation(err))
}

func TestEvaluator_ConcurrentEvaluationFiresOnce(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	_, _ = store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, nil)
	e := NewEvaluator(store, &mockMarketData{}, testLogger())

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fired, err := e.Evaluate(ctx, "AAPL", 155)
			assert.NoError(t, err)
			mu.Lock()
			total += len(fired)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, total)
}

func TestEvaluator_EvaluateQuote(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	_, _ = store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, nil)

	marketData := &mockMarketData{}
	marketData.On("GetQuote", mock.Anything, "AAPL").Return(&dto.Quote{Symbol: "AAPL", CurrentPrice: 152.3}, nil)
	e := NewEvaluator(store, marketData, testLogger())

	quote, fired, err := e.EvaluateQuote(ctx, "AAPL")

	require.NoError(t, err)
	assert.Equal(t, 152.3, quote.CurrentPrice)
	assert.Len(t, fired, 1)
	marketData.AssertExpectations(t)
}

func TestEvaluator_EvaluateQuoteUnavailableLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	_, _ = store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, nil)

	marketData := &mockMarketData{}
	marketData.On("GetQuote", mock.Anything, "AAPL").Return(nil, apperror.NewDataUnavailable("AAPL", errors.New("timeout")))
	e := NewEvaluator(store, marketData, testLogger())

	_, fired, err := e.EvaluateQuote(ctx, "AAPL")

	assert.True(t, apperror.IsDataUnavailable(err))
	assert.Empty(t, fired)

	alerts, err := store.ListPriceAlerts(ctx)
	require.NoError(t, err)
	assert.False(t, alerts[0].Triggered)
}
