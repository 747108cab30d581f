// Package service owns the long-running event loop shared by the Windows
// service entry point and the foreground watch mode. The two differ only in
// process lifecycle: an SCM stop control versus Ctrl+C.
package service

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/colorkeep/colorkeep/internal/config"
	"github.com/colorkeep/colorkeep/internal/debounce"
	"github.com/colorkeep/colorkeep/pkg/types"
)

// Source delivers normalized OS events to record until ctx is cancelled.
// The Windows implementation owns a message-loop thread; tests use fakes.
type Source interface {
	Run(ctx context.Context, record func(types.EventKind)) error
}

// Runner executes one reapply cycle. Satisfied by *pipeline.Runner.
type Runner interface {
	Run(ctx context.Context, cfg config.Config, mask types.EventMask, epoch uint64) types.CycleSummary
}

// Dependencies wires the loop's collaborators. LoadConfig is called between
// cycles so config edits take effect without a restart; it must always
// return a usable config (defaults on failure).
type Dependencies struct {
	Source     Source
	Logger     *log.Logger
	LoadConfig func() config.Config
}

// Loop owns the debounce accumulator and the pipeline worker goroutine.
// Blocking work (rate-limiter waits, toggle sleeps) happens only on the
// worker; Record is safe to call from the notification thread.
type Loop struct {
	deps    Dependencies
	acc     *debounce.Accumulator
	limiter *rate.Limiter
	runner  Runner
	paused  atomic.Bool
}

type Option func(*Loop)

// WithCycleSpacing overrides the storm-guard spacing between consecutive
// reapply cycles.
func WithCycleSpacing(d time.Duration) Option {
	return func(l *Loop) {
		if d > 0 {
			l.limiter = rate.NewLimiter(rate.Every(d), 1)
		}
	}
}

// Minimum spacing between cycles. The debounce window already coalesces
// normal bursts; this guards against pathological drivers that emit device
// notifications continuously.
const defaultCycleSpacing = 2 * time.Second

func NewLoop(cfg config.Config, deps Dependencies, opts ...Option) *Loop {
	if deps.LoadConfig == nil {
		deps.LoadConfig = func() config.Config { return cfg }
	}
	l := &Loop{
		deps:    deps,
		acc:     debounce.New(cfg.StabilizeDelay()),
		limiter: rate.NewLimiter(rate.Every(defaultCycleSpacing), 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetRunner attaches the pipeline runner. Called once during wiring, after
// the runner has been built with Epoch as its supersession source.
func (l *Loop) SetRunner(r Runner) {
	l.runner = r
}

// Epoch exposes the accumulator epoch for the pipeline's supersession check.
func (l *Loop) Epoch() uint64 {
	return l.acc.Epoch()
}

// Record feeds one normalized event into the debounce accumulator. Events
// arriving while the service is paused are dropped.
func (l *Loop) Record(kind types.EventKind) {
	if l.paused.Load() {
		return
	}
	l.acc.Record(kind)
}

// SetPaused gates event recording; used by the SCM pause/continue controls.
func (l *Loop) SetPaused(paused bool) {
	l.paused.Store(paused)
}

// Run blocks until ctx is cancelled, managing the event source and the
// pipeline worker. The debounce timer is stopped and both goroutines have
// exited by the time Run returns.
func (l *Loop) Run(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)

	if l.deps.Source != nil {
		grp.Go(func() error {
			return l.deps.Source.Run(ctx, l.Record)
		})
	}
	grp.Go(func() error {
		l.work(ctx)
		return nil
	})

	err := grp.Wait()
	l.acc.Stop()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (l *Loop) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.acc.Fired():
			if err := l.limiter.Wait(ctx); err != nil {
				return
			}
			mask, epoch := l.acc.Drain()
			if mask == 0 || l.runner == nil {
				continue
			}
			cfg := l.deps.LoadConfig()
			l.runner.Run(ctx, cfg, mask, epoch)
		}
	}
}
