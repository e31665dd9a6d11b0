package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"golang-stock-notifier/internal/notifier/config"
	"golang-stock-notifier/internal/notifier/repository"
	"golang-stock-notifier/pkg/apperror"
	"golang-stock-notifier/pkg/logger"

	"github.com/robfig/cron/v3"
)

// MonitorService periodically evaluates every symbol that still has pending price alerts.
type MonitorService interface {
	// Start runs sweeps on the configured cron schedule until ctx is done.
	Start(ctx context.Context)
	// Sweep evaluates all pending symbols once and returns how many alerts fired.
	// A sweep cut short by ctx resumes after the last evaluated symbol next time.
	Sweep(ctx context.Context) int
}

// NewMonitorService creates a new monitor service.
func NewMonitorService(store repository.AlertStore, evaluator Evaluator, dispatcher Dispatcher, log *logger.Logger, cfg *config.Config) (MonitorService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(cfg.Monitor.CronExpression)
	if err != nil {
		return nil, fmt.Errorf("invalid monitor cron expression %q: %w", cfg.Monitor.CronExpression, err)
	}

	return &monitorService{
		store:        store,
		evaluator:    evaluator,
		dispatcher:   dispatcher,
		logger:       log,
		schedule:     schedule,
		sweepTimeout: cfg.Monitor.SweepTimeout,
		now:          time.Now,
	}, nil
}

type monitorService struct {
	store        repository.AlertStore
	evaluator    Evaluator
	dispatcher   Dispatcher
	logger       *logger.Logger
	schedule     cron.Schedule
	sweepTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	resumeAfter string
}

func (m *monitorService) Start(ctx context.Context) {
	m.logger.Info("Price alert monitor started")
	for {
		next := m.schedule.Next(m.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			m.logger.Info("Price alert monitor stopping")
			return
		case <-timer.C:
			m.runSweep(ctx)
		}
	}
}

func (m *monitorService) runSweep(ctx context.Context) {
	if m.sweepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.sweepTimeout)
		defer cancel()
	}
	m.Sweep(ctx)
}

func (m *monitorService) Sweep(ctx context.Context) int {
	symbols, err := m.store.PendingSymbols(ctx)
	if err != nil {
		m.logger.Error("Failed to list symbols with pending alerts", logger.ErrorField(err))
		return 0
	}

	m.mu.Lock()
	order := rotateAfter(symbols, m.resumeAfter)
	m.mu.Unlock()

	total := 0
	lastDone := ""
	for _, symbol := range order {
		if ctx.Err() != nil {
			m.logger.Warn("Monitor sweep interrupted",
				logger.ErrorField(ctx.Err()),
				logger.IntField("fired", total),
				logger.StringField("resume_after", lastDone))
			if lastDone != "" {
				m.setResumeAfter(lastDone)
			}
			return total
		}

		_, fired, err := m.evaluator.EvaluateQuote(ctx, symbol)
		if len(fired) > 0 {
			m.dispatcher.DispatchPriceAlerts(ctx, fired)
			total += len(fired)
		}
		if err == nil || ctx.Err() == nil {
			lastDone = symbol
		}
		if err != nil && !apperror.IsDataUnavailable(err) {
			m.logger.Error("Failed to evaluate symbol", logger.ErrorField(err), logger.StringField("symbol", symbol))
		}
	}

	m.setResumeAfter("")
	m.logger.Info("Monitor sweep finished",
		logger.IntField("symbols", len(symbols)),
		logger.IntField("fired", total))
	return total
}

func (m *monitorService) setResumeAfter(symbol string) {
	m.mu.Lock()
	m.resumeAfter = symbol
	m.mu.Unlock()
}

// rotateAfter returns symbols sorted and rotated so the first entry is the
// smallest symbol greater than after.
func rotateAfter(symbols []string, after string) []string {
	sorted := slices.Clone(symbols)
	slices.Sort(sorted)
	if after == "" {
		return sorted
	}
	idx := sort.Search(len(sorted), func(i int) bool { return sorted[i] > after })
	return slices.Concat(sorted[idx:], sorted[:idx])
}
