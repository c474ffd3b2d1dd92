package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Runner executes a single pass over its scrapers in a background goroutine.
type Runner struct {
	scrapers []Scraper
	logger   *slog.Logger
	onDone   func(err error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewRunner creates a Runner. The onDone callback, if non-nil, is called
// with the joined scraper errors once a pass completes without being
// stopped.
func NewRunner(scrapers []Scraper, logger *slog.Logger, onDone func(err error)) *Runner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		scrapers: append([]Scraper(nil), scrapers...),
		logger:   logger,
		onDone:   onDone,
	}
}

// Start launches the pass. The context only bounds startup; the pass runs
// until it finishes or Stop is called.
func (r *Runner) Start(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done != nil {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	r.logger.Info("starting scrapers", slog.Int("count", len(r.scrapers)))

	go r.run(ctx)

	return nil
}

func (r *Runner) run(ctx context.Context) {
	var errs []error

	for _, s := range r.scrapers {
		if ctx.Err() != nil {
			break
		}

		err := s.Scrape(ctx)
		if err != nil {
			r.logger.Error("scraper failed", slog.String("name", s.Name()), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))

			continue
		}

		r.logger.Info("scraper finished", slog.String("name", s.Name()))
	}

	err := errors.Join(errs...)
	stopped := ctx.Err() != nil

	r.mu.Lock()
	r.err = err
	r.mu.Unlock()

	close(r.done)

	if !stopped && r.onDone != nil {
		r.onDone(err)
	}
}

// Done is closed when the pass has finished. It is nil before Start.
func (r *Runner) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.done
}

// Err returns the joined scraper errors of a finished pass.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.err
}

// Stop cancels the pass and waits for it to return.
func (r *Runner) Stop(ctx context.Context) error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if done == nil {
		return nil
	}

	r.logger.Info("stopping scrapers")
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		r.logger.Error("scrapers did not stop in time", slog.String("error", ctx.Err().Error()))

		return fmt.Errorf("%w: %w", ErrStopTimeout, ctx.Err())
	}
}
