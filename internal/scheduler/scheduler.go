package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"jobverse/internal/domain"
)

const defaultRunTimeout = 5 * time.Minute

// Runner executes one pipeline run. A nil userID marks a scheduled run.
type Runner interface {
	Execute(ctx context.Context, userID *string) (*domain.RunResult, error)
}

type Config struct {
	// Time is the daily wall-clock trigger in HH:MM.
	Time       string
	Timezone   string
	RunTimeout time.Duration
}

type Scheduler struct {
	runner     Runner
	cron       *cron.Cron
	ctx        context.Context
	cancel     context.CancelFunc
	entryID    cron.EntryID
	location   *time.Location
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(runner Runner, cfg Config, logger *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	hour, minute, err := parseTime(cfg.Time)
	if err != nil {
		return nil, err
	}

	timeout := cfg.RunTimeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		runner:     runner,
		ctx:        ctx,
		cancel:     cancel,
		cron:       cron.New(cron.WithLocation(loc)),
		location:   loc,
		runTimeout: timeout,
		logger:     logger,
	}

	expr := fmt.Sprintf("%d %d * * *", minute, hour)
	s.entryID, err = s.cron.AddFunc(expr, func() { s.run(s.ctx) })
	if err != nil {
		cancel()
		return nil, fmt.Errorf("add cron entry: %w", err)
	}

	logger.Info("workflow scheduled", "time", cfg.Time, "cron", expr, "timezone", loc.String())
	return s, nil
}

// Start runs the cron loop until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron.Start()
	s.logger.Info("scheduler started", "next_run", s.NextRun())

	<-ctx.Done()
	s.Stop()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// Stop halts the cron loop, cancels an in-flight run and waits for it to
// return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// NextRun returns the next trigger time, or the zero time before Start.
func (s *Scheduler) NextRun() time.Time {
	return s.cron.Entry(s.entryID).Next
}

func (s *Scheduler) run(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	_, err := s.runner.Execute(runCtx, nil)
	switch {
	case errors.Is(err, domain.ErrAlreadyRunning):
		s.logger.Info("scheduled run skipped, workflow already running")
	case err != nil:
		s.logger.Error("scheduled run failed", "error", err)
	}
}

func parseTime(v string) (int, int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q: must be HH:MM", v)
	}
	return t.Hour(), t.Minute(), nil
}
