package service

import (
	"context"
	"time"

	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/dto"
	"golang-stock-notifier/pkg/logger"

	"github.com/stretchr/testify/mock"
)

type mockMarketData struct {
	mock.Mock
}

func (m *mockMarketData) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	args := m.Called(ctx, symbol)
	quote, _ := args.Get(0).(*dto.Quote)
	return quote, args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Dispatcher: config.Dispatcher{
			DeliveryTimeout: time.Second,
			MaxConcurrency:  4,
		},
		Monitor: config.Monitor{
			CronExpression: "@every 1m",
			SweepTimeout:   time.Second,
		},
	}
}

func testLogger() *logger.Logger {
	return logger.NewNop()
}
