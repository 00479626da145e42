package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"pgmaint/internal/metrics"
	"pgmaint/internal/sessions"
)

// sweepable is implemented by stores that hold expired records until told
// otherwise. Redis expires keys itself and only needs counting.
type sweepable interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweeper periodically evicts expired sessions and publishes the
// live session count.
type SessionSweeper struct {
	scheduler gocron.Scheduler
	store     sessions.Store
	metrics   *metrics.Metrics
	logger    *zap.Logger
	interval  time.Duration
}

// NewSessionSweeper creates the scheduler and registers the sweep job. It
// does not start running until Start is called.
func NewSessionSweeper(store sessions.Store, interval time.Duration, m *metrics.Metrics, clock clockwork.Clock, logger *zap.Logger) (*SessionSweeper, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	scheduler, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(schedulerLogger{logger.Sugar()}),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	s := &SessionSweeper{
		scheduler: scheduler,
		store:     store,
		metrics:   m,
		logger:    logger,
		interval:  interval,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.RunOnce),
		gocron.WithName("session-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("register session sweep job: %w", err)
	}
	return s, nil
}

// Start starts the scheduler
func (s *SessionSweeper) Start() {
	s.logger.Info("Starting session sweeper", zap.Duration("interval", s.interval))
	s.scheduler.Start()
}

// Stop waits for a running sweep to finish and stops the scheduler
func (s *SessionSweeper) Stop() error {
	s.logger.Info("Stopping session sweeper")
	return s.scheduler.Shutdown()
}

// RunOnce performs a single sweep. The job context is cancelled on shutdown.
func (s *SessionSweeper) RunOnce(ctx context.Context) error {
	removed := 0
	if sw, ok := s.store.(sweepable); ok {
		n, err := sw.Sweep(ctx)
		if err != nil {
			s.logger.Error("Session sweep failed", zap.Error(err))
			return err
		}
		removed = n
	}

	remaining, err := s.store.Len(ctx)
	if err != nil {
		s.logger.Error("Failed to count sessions", zap.Error(err))
		return err
	}

	s.metrics.RecordSweep(removed, remaining)
	if removed > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("removed", removed), zap.Int("active", remaining))
	} else {
		s.logger.Debug("Session sweep completed", zap.Int("active", remaining))
	}
	return nil
}

// schedulerLogger routes gocron's key/value logging through zap.
type schedulerLogger struct {
	l *zap.SugaredLogger
}

func (s schedulerLogger) Debug(msg string, args ...any) { s.l.Debugw(msg, args...) }
func (s schedulerLogger) Info(msg string, args ...any)  { s.l.Infow(msg, args...) }
func (s schedulerLogger) Warn(msg string, args ...any)  { s.l.Warnw(msg, args...) }
func (s schedulerLogger) Error(msg string, args ...any) { s.l.Errorw(msg, args...) }
