package scheduler

import (
	"context"
	"fmt"
	"time"

	"church-app-go/pkg/logger"
	"github.com/robfig/cron/v3"
)

const defaultJobTimeout = 5 * time.Minute

// Job is a unit of periodic work. The context is cancelled after the job
// timeout or when the scheduler stops.
type Job func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	log     logger.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

func New(log logger.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	cronLog := cronLogger{log: log}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog))),
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		timeout: defaultJobTimeout,
	}
}

// Add registers job under a standard cron spec or a descriptor like
// "@hourly".
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		defer cancel()

		started := time.Now()
		if err := job(ctx); err != nil {
			s.log.InternalError("scheduler: job failed", err, "job", name)
			return
		}
		s.log.Info("scheduler: job finished", "job", name, "duration", time.Since(started).String())
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.log.Info("scheduler: job registered", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("scheduler: stop timed out")
	}
}

// Len reports the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// cronLogger adapts the app logger to cron.Logger.
type cronLogger struct {
	log logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.InternalError("cron: "+msg, err, keysAndValues...)
}
