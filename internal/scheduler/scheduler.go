package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Jobs is the credit-score maintenance work run on a schedule.
type Jobs interface {
	MarkOverdue(ctx context.Context) (int64, error)
	PenalizeLate(ctx context.Context) (int, error)
}

type Specs struct {
	LateFlag    string
	LatePenalty string
}

// Scheduler runs the late-flag and late-penalty jobs in-process.
type Scheduler struct {
	cron    *cron.Cron
	jobs    Jobs
	log     *zap.Logger
	timeout time.Duration
}

// New registers both jobs. Specs use the standard five-field cron syntax
// or descriptors such as "@every 1m".
func New(jobs Jobs, specs Specs, log *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		jobs:    jobs,
		log:     log.Named("scheduler"),
		timeout: 30 * time.Second,
	}
	if _, err := s.cron.AddFunc(specs.LateFlag, s.FlagOverdue); err != nil {
		return nil, fmt.Errorf("late flag schedule %q: %w", specs.LateFlag, err)
	}
	if _, err := s.cron.AddFunc(specs.LatePenalty, s.PenalizeLate); err != nil {
		return nil, fmt.Errorf("late penalty schedule %q: %w", specs.LatePenalty, err)
	}
	return s, nil
}

// FlagOverdue marks accepted loans past their due date as late.
func (s *Scheduler) FlagOverdue() {
	s.runWithRecovery("FlagOverdue", func(ctx context.Context) {
		n, err := s.jobs.MarkOverdue(ctx)
		if err != nil {
			s.log.Error("flag overdue loans failed", zap.Error(err))
			return
		}
		if n > 0 {
			s.log.Info("flagged overdue loans", zap.Int64("count", n))
		}
	})
}

// PenalizeLate lowers the score of every user with a late loan.
func (s *Scheduler) PenalizeLate() {
	s.runWithRecovery("PenalizeLate", func(ctx context.Context) {
		n, err := s.jobs.PenalizeLate(ctx)
		if err != nil {
			s.log.Error("late penalty failed", zap.Int("penalized", n), zap.Error(err))
			return
		}
		if n > 0 {
			s.log.Info("late penalty applied", zap.Int("users", n))
		}
	})
}

func (s *Scheduler) runWithRecovery(name string, fn func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked", zap.String("job", name), zap.Any("panic", r), zap.Stack("stack"))
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	fn(ctx)
	s.log.Debug("job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.log.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
