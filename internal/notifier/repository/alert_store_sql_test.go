package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/database"
	"golang-stock-notifier/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLAlertStore(t *testing.T) *sqlAlertStore {
	t.Helper()
	db, err := database.NewDB(database.Config{
		Driver:       database.DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "alerts.db"),
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, db.DB.AutoMigrate(&entity.PriceAlert{}, &entity.TradingAlert{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewSQLAlertStore(db.DB).(*sqlAlertStore)
}

func TestSQLAlertStore_PriceAlertLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLAlertStore(t)

	aapl, err := store.CreatePriceAlert(ctx, " aapl ", 150, entity.DirectionAbove, utils.ToPointer("tok-1"))
	require.NoError(t, err)
	msft, err := store.CreatePriceAlert(ctx, "MSFT", 400, entity.DirectionBelow, nil)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.NotEqual(t, aapl.ID, msft.ID)

	_, err = store.CreatePriceAlert(ctx, "AAPL", -1, entity.DirectionAbove, nil)
	assert.True(t, apperror.IsValidation(err))

	symbols, err := store.PendingSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)

	require.NoError(t, store.DeletePriceAlert(ctx, msft.ID))
	require.NoError(t, store.DeletePriceAlert(ctx, msft.ID))

	alerts, err := store.ListPriceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, aapl.ID, alerts[0].ID)
	assert.Equal(t, "tok-1", *alerts[0].DeviceToken)
}

func TestSQLAlertStore_TriggerMatchingFiresOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLAlertStore(t)
	_, err := store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, nil)
	require.NoError(t, err)
	_, err = store.CreatePriceAlert(ctx, "AAPL", 140, entity.DirectionBelow, nil)
	require.NoError(t, err)

	fired, err := store.TriggerMatching(ctx, "aapl", 149.99, time.Now())
	require.NoError(t, err)
	assert.Empty(t, fired)

	at := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	fired, err = store.TriggerMatching(ctx, "AAPL", 150, at)
	require.NoError(t, err)
	require.Len(t, fired, 1)
	assert.True(t, fired[0].Triggered)
	assert.Equal(t, 150.0, *fired[0].TriggeredPrice)

	fired, err = store.TriggerMatching(ctx, "AAPL", 151, time.Now())
	require.NoError(t, err)
	assert.Empty(t, fired)

	alerts, err := store.ListPriceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.True(t, alerts[0].Triggered)
	assert.True(t, at.Equal(*alerts[0].TriggeredAt))
	assert.False(t, alerts[1].Triggered)
}

func TestSQLAlertStore_ConcurrentTriggerIsExactlyOnce(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLAlertStore(t)
	const alerts = 10
	for i := 0; i < alerts; i++ {
		_, err := store.CreatePriceAlert(ctx, "NVDA", float64(100+i), entity.DirectionAbove, nil)
		require.NoError(t, err)
	}

	const callers = 8
	results := make([][]entity.PriceAlert, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			fired, err := store.TriggerMatching(ctx, "NVDA", 500, time.Now())
			assert.NoError(t, err)
			results[i] = fired
		}(i)
	}
	close(start)
	wg.Wait()

	seen := make(map[int64]int)
	for _, fired := range results {
		for _, alert := range fired {
			seen[alert.ID]++
		}
	}
	assert.Len(t, seen, alerts)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "alert %d fired %d times", id, n)
	}

	symbols, err := store.PendingSymbols(ctx)
	require.NoError(t, err)
	assert.Empty(t, symbols)
}

func TestSQLAlertStore_TradingAlertIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLAlertStore(t)
	now := time.Date(2024, 3, 1, 14, 30, 5, 0, time.UTC)
	store.now = func() time.Time { return now }

	input := dto.TradingAlertInput{Symbol: "nvda", AlertType: "BUY", Confidence: "70", Reason: "Volume spike"}
	first, err := store.CreateTradingAlert(ctx, input)
	require.NoError(t, err)
	second, err := store.CreateTradingAlert(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, "alert_20240301143005", first.ID)
	assert.Equal(t, "alert_20240301143005_2", second.ID)

	history, err := store.ListTradingAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "NVDA", history[0].Symbol)
	assert.Equal(t, "alert_20240301143005", history[0].Data["alert_id"])
}
