package service

import (
	"context"
	"errors"
	"maps"
	"sync"
	"testing"
	"time"

	"golang-stock-notifier/internal/entity"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMonitorService_Sweep(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	registry := repository.NewDeviceRegistry()
	_, _ = registry.Register(ctx, "tok-1", "", entity.PlatformIOS)
	_, _ = store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, utils.ToPointer("tok-1"))
	_, _ = store.CreatePriceAlert(ctx, "AAPL", 200, entity.DirectionAbove, nil)
	_, _ = store.CreatePriceAlert(ctx, "ZZZ", 10, entity.DirectionBelow, nil)

	marketData := &mockMarketData{}
	marketData.On("GetQuote", mock.Anything, "AAPL").Return(&dto.Quote{Symbol: "AAPL", CurrentPrice: 160}, nil)
	marketData.On("GetQuote", mock.Anything, "ZZZ").Return(nil, apperror.NewDataUnavailable("ZZZ", errors.New("delisted")))

	transport := &recordingTransport{}
	dispatcher := NewDispatcher(registry, transport, testConfig(), testLogger())
	monitor, err := NewMonitorService(store, NewEvaluator(store, marketData, testLogger()), dispatcher, testLogger(), testConfig())
	require.NoError(t, err)

	fired := monitor.Sweep(ctx)

	assert.Equal(t, 1, fired)
	assert.Len(t, transport.messages(), 1)
	marketData.AssertExpectations(t)

	symbols, err := store.PendingSymbols(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAPL", "ZZZ"}, symbols)

	assert.Zero(t, monitor.Sweep(ctx))
}

func TestMonitorService_InvalidCron(t *testing.T) {
	cfg := testConfig()
	cfg.Monitor.CronExpression = "every now and then"

	_, err := NewMonitorService(repository.NewAlertStore(), nil, nil, testLogger(), cfg)

	assert.Error(t, err)
}

func TestMonitorService_StartStopsWithContext(t *testing.T) {
	monitor, err := NewMonitorService(repository.NewAlertStore(), nil, nil, testLogger(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		monitor.Start(ctx)
		close(done)
	}()
	cancel()

	<-done
}

type slowMarketData struct {
	delay time.Duration
	price float64

	mu      sync.Mutex
	fetches map[string]int
}

func (s *slowMarketData) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	time.Sleep(s.delay)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetches == nil {
		s.fetches = map[string]int{}
	}
	s.fetches[symbol]++
	return &dto.Quote{Symbol: symbol, CurrentPrice: s.price}, nil
}

func (s *slowMarketData) counts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.fetches)
}

// ctxTransport refuses to send once ctx is done, like a real network client.
type ctxTransport struct {
	recordingTransport
}

func (t *ctxTransport) Send(ctx context.Context, token, title, body string, data map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.recordingTransport.Send(ctx, token, title, body, data)
}

func TestMonitorService_SweepTimeoutStillDeliversFiredAlerts(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	registry := repository.NewDeviceRegistry()
	registerDevices(t, registry, "tok-1")
	_, err := store.CreatePriceAlert(ctx, "AAPL", 150, entity.DirectionAbove, utils.ToPointer("tok-1"))
	require.NoError(t, err)

	marketData := &slowMarketData{delay: 60 * time.Millisecond, price: 155}
	transport := &ctxTransport{}
	cfg := testConfig()
	cfg.Monitor.SweepTimeout = 30 * time.Millisecond

	dispatcher := NewDispatcher(registry, transport, cfg, testLogger())
	svc, err := NewMonitorService(store, NewEvaluator(store, marketData, testLogger()), dispatcher, testLogger(), cfg)
	require.NoError(t, err)

	svc.(*monitorService).runSweep(ctx)

	alerts, err := store.ListPriceAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.True(t, alerts[0].Triggered)

	sent := transport.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "tok-1", sent[0].Token)
}

func TestMonitorService_InterruptedSweepsCoverEverySymbol(t *testing.T) {
	ctx := context.Background()
	store := repository.NewAlertStore()
	symbols := []string{"AAA", "BBB", "CCC", "DDD"}
	for _, symbol := range symbols {
		_, err := store.CreatePriceAlert(ctx, symbol, 1000, entity.DirectionAbove, nil)
		require.NoError(t, err)
	}

	marketData := &slowMarketData{delay: 30 * time.Millisecond, price: 10}
	cfg := testConfig()
	cfg.Monitor.SweepTimeout = 45 * time.Millisecond

	dispatcher := NewDispatcher(repository.NewDeviceRegistry(), &recordingTransport{}, cfg, testLogger())
	svc, err := NewMonitorService(store, NewEvaluator(store, marketData, testLogger()), dispatcher, testLogger(), cfg)
	require.NoError(t, err)

	for i := 0; i < len(symbols); i++ {
		svc.(*monitorService).runSweep(ctx)
	}

	counts := marketData.counts()
	for _, symbol := range symbols {
		assert.Positive(t, counts[symbol], "symbol %s never evaluated", symbol)
	}
}

func TestRotateAfter(t *testing.T) {
	tests := []struct {
		name  string
		after string
		want  []string
	}{
		{"from start", "", []string{"AAA", "BBB", "CCC"}},
		{"after middle", "BBB", []string{"CCC", "AAA", "BBB"}},
		{"after last", "CCC", []string{"AAA", "BBB", "CCC"}},
		{"removed symbol", "BAA", []string{"BBB", "CCC", "AAA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rotateAfter([]string{"CCC", "AAA", "BBB"}, tt.after))
		})
	}
}
