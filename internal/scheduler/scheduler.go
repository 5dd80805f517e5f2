package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/logging"
)

type taskFn func(ctx context.Context) error

// Scheduler runs background jobs on cron schedules.
// Runs of the same job never overlap; a run that is still busy when its next
// tick fires causes that tick to be skipped.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler. Jobs receive a context derived from ctx,
// which is cancelled by Stop.
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	logger := cronLogger{}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.SkipIfStillRunning(logger)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers fn under name on the given cron spec. Besides the five
// field format, descriptors such as "@every 15s" are accepted.
func (s *Scheduler) AddJob(name, spec string, fn taskFn) error {
	if _, err := s.cron.AddFunc(spec, s.taskWithRecover(fn, name)); err != nil {
		slog.Error("scheduler creating job error", slog.String("jobName", name), slog.String("spec", spec), slog.String("err", err.Error()))
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}
	slog.Info("scheduled job", slog.String("jobName", name), slog.String("spec", spec))
	return nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		slog.Warn("scheduler stop timed out, abandoning running jobs")
	}
}

func (s *Scheduler) taskWithRecover(fn taskFn, jobName string) func() {
	return func() {
		ctx := logging.WithRequestID(s.ctx, uuid.NewString())
		rqID := logging.RequestID(ctx)

		defer func() {
			if r := recover(); r != nil {
				slog.Error(
					"panic recovered in scheduler job",
					slog.String("rqID", rqID),
					slog.String("jobName", jobName),
					slog.Any("panic", r),
					slog.String("stacktrace", string(debug.Stack())),
				)
			}
		}()

		start := time.Now()
		slog.Debug("job start", slog.String("rqID", rqID), slog.String("jobName", jobName))

		err := fn(ctx)
		if err != nil {
			slog.Error("job failed", slog.String("rqID", rqID), slog.String("jobName", jobName), slog.Any("error", err))
		} else {
			slog.Debug("job completed", slog.String("rqID", rqID), slog.String("jobName", jobName), slog.Duration("took", time.Since(start)))
		}
	}
}

// cronLogger routes the cron library's own messages to slog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]any{slog.String("err", err.Error())}, keysAndValues...)...)
}
