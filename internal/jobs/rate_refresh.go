// Package jobs holds background work scheduled with robfig/cron.
package jobs

import (
	"context"
	"log/slog"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic rate refresh.
type Scheduler struct {
	cron   *cron.Cron
	rates  portssvc.RateProviderSvc
	logger *slog.Logger
}

// NewRateRefreshScheduler registers a forced rate refresh on schedule, which
// accepts standard cron expressions and descriptors such as "@every 1h".
func NewRateRefreshScheduler(schedule string, rates portssvc.RateProviderSvc, logger *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(cron.WithLogger(cl), cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		rates:  rates,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.RefreshRates); err != nil {
		return nil, err
	}
	return s, nil
}

// RefreshRates forces one refresh. Failures are logged; the provider keeps serving its last table.
// The provider detaches its load from the caller's context, so the rate source's
// HTTP client timeout and retry budget are what bound a run.
func (s *Scheduler) RefreshRates() {
	ctx := middleware.WithLogger(context.Background(), s.logger.With(slog.String("job", "rate_refresh")))

	table, err := s.rates.GetRates(ctx, true)
	if err != nil {
		s.logger.Error("Scheduled rate refresh failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Scheduled rate refresh complete",
		slog.String("base", table.BaseCurrency),
		slog.Time("fetched_at", table.FetchedAt),
		slog.Int("currencies", len(table.Rates)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running refresh until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
