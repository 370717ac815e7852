package usecase

import (
	"context"
	"fmt"
	"time"

	applogger "Traxor/pkg/logger"

	"github.com/robfig/cron/v3"
)

// PriceWarmer refreshes cached prices in bulk.
type PriceWarmer interface {
	Warm(ctx context.Context, symbols []string) (int, error)
}

// Sweeper drops idle state and reports how much went.
type Sweeper interface {
	Sweep() int
}

// Scheduler runs background maintenance jobs on cron specs. Jobs do not
// overlap with themselves.
type Scheduler struct {
	cron    *cron.Cron
	log     *applogger.Logger
	timeout time.Duration
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewScheduler(l *applogger.Logger, jobTimeout time.Duration) *Scheduler {
	if jobTimeout <= 0 {
		jobTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger))),
		log:     l.With(applogger.String("component", "scheduler")),
		timeout: jobTimeout,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// AddJob registers fn under spec, e.g. "@every 1m" or "*/5 * * * *".
func (s *Scheduler) AddJob(name, spec string, fn func(ctx context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Warn("job failed", applogger.String("job", name), applogger.Error(err))
			return
		}
		s.log.Debug("job done", applogger.String("job", name), applogger.Duration("took", time.Since(start)))
	})
	if err != nil {
		return fmt.Errorf("schedule %s %q: %w", name, spec, err)
	}
	return nil
}

// Len is the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Run starts the jobs and blocks until ctx is done, then waits for running
// jobs to return.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started", applogger.Int("jobs", s.Len()))
	<-ctx.Done()
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
	return nil
}

// WarmPricesJob keeps symbols hot in the price cache.
func WarmPricesJob(w PriceWarmer, symbols []string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := w.Warm(ctx, symbols)
		return err
	}
}

// SweepJob evicts idle entries from sw.
func SweepJob(sw Sweeper) func(ctx context.Context) error {
	return func(context.Context) error {
		sw.Sweep()
		return nil
	}
}
