package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

// Service is one long-running unit of the process.
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner supervises a set of services.
type Runner struct {
	services []Service
}

// NewRunner creates a runner.
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// RunWithOptions runs the services and honors shutdown signals.
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)

	ctx := context.Background()
	if len(opts.Signals) > 0 {
		signalCtx, stop := signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
		ctx = signalCtx
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run starts every service and blocks until the first one exits or ctx
// ends, then stops the rest within stopTimeout. A shutdown triggered
// by a signal is a clean exit.
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.S()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	firstErr := make(chan error, len(r.services))
	for _, service := range r.services {
		go r.startService(runCtx, service, log, firstErr)
	}

	var runErr error
	select {
	case <-runCtx.Done():
		runErr = runCtx.Err()
	case err := <-firstErr:
		runErr = err
	}
	cancel()

	r.stopAll(stopTimeout, log)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func (r *Runner) startService(ctx context.Context, service Service, log *zap.SugaredLogger, result chan<- error) {
	if service == nil {
		result <- errors.New("service is nil")
		return
	}
	log.Infow("service_start", "service", service.Name())
	result <- service.Start(ctx)
	log.Infow("service_exit", "service", service.Name())
}

func (r *Runner) stopAll(timeout time.Duration, log *zap.SugaredLogger) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	for _, service := range r.services {
		if service == nil {
			continue
		}
		if err := service.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", service.Name(), "error", err)
		}
	}
}
