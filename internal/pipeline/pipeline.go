// Package pipeline drives the disassociate/reassociate sequence that forces
// Windows to reload a monitor's color profile.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/colorkeep/colorkeep/internal/config"
	"github.com/colorkeep/colorkeep/internal/display"
	"github.com/colorkeep/colorkeep/internal/events"
	"github.com/colorkeep/colorkeep/internal/notify"
	"github.com/colorkeep/colorkeep/internal/profile"
	"github.com/colorkeep/colorkeep/internal/refresh"
	"github.com/colorkeep/colorkeep/pkg/types"
)

// Dependencies are the collaborators a Runner drives. Logger is required;
// the rest default to no-ops where that is safe.
type Dependencies struct {
	Directory display.Directory
	Store     profile.Store
	Refresher refresh.Refresher
	Recorder  events.Recorder
	Sink      notify.Sink
	Logger    *log.Logger

	// CurrentEpoch reads the debounce accumulator's epoch. A cycle whose
	// captured epoch no longer matches aborts before its first toggle.
	// Nil means supersession never happens (one-shot runs).
	CurrentEpoch func() uint64
}

// Runner executes reapply cycles. A cycle that has passed its single epoch
// check runs to completion; there is no mid-sequence cancellation, so a
// monitor is never left with its profile disassociated because of a newer
// event.
type Runner struct {
	deps Dependencies

	sleep func(time.Duration)
	now   func() time.Time
	newID func() string
}

type Option func(*Runner)

// WithSleep replaces the blocking delay between toggle steps. Tests inject
// a recording no-op.
func WithSleep(fn func(time.Duration)) Option {
	return func(r *Runner) {
		if fn != nil {
			r.sleep = fn
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) {
		if fn != nil {
			r.newID = fn
		}
	}
}

func New(deps Dependencies, opts ...Option) *Runner {
	if deps.Recorder == nil {
		deps.Recorder = events.NoopRecorder{}
	}
	if deps.CurrentEpoch == nil {
		deps.CurrentEpoch = func() uint64 { return 0 }
	}
	r := &Runner{
		deps:  deps,
		sleep: time.Sleep,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one reapply cycle for the drained mask. epoch is the value
// captured at drain time; if the accumulator has advanced past it by the
// time the toggle sequence would start, the whole cycle aborts ("last storm
// wins"). The returned summary is also logged and recorded.
func (r *Runner) Run(ctx context.Context, cfg config.Config, mask types.EventMask, epoch uint64) types.CycleSummary {
	summary := types.CycleSummary{CycleID: r.newID(), Mask: mask}

	if mask == 0 {
		// Spurious wake; nothing was accumulated.
		return summary
	}
	if ctx.Err() != nil {
		summary.Superseded = true
		return summary
	}

	logger := r.deps.Logger
	logger.Printf("cycle %s: starting (events=%s)", summary.CycleID, mask)
	r.record(types.CycleEvent{Type: types.EventCycleStart, CycleID: summary.CycleID, Mask: mask})

	monitors, err := display.Resolve(r.deps.Directory, cfg.MonitorMatch)
	if err != nil {
		logger.Printf("cycle %s: resolve failed: %v", summary.CycleID, err)
		r.record(types.CycleEvent{
			Type:    types.EventCycleComplete,
			CycleID: summary.CycleID,
			Details: "resolve failed: " + err.Error(),
		})
		return summary
	}
	if len(monitors) == 0 {
		logger.Printf("cycle %s: no monitors match %q, nothing to do", summary.CycleID, cfg.MonitorMatch)
		r.record(types.CycleEvent{Type: types.EventCycleEmpty, CycleID: summary.CycleID, Mask: mask})
		return summary
	}

	// Single supersession check, at pipeline entry rather than per monitor,
	// to bound added latency. Past this point the cycle runs to completion.
	if cur := r.deps.CurrentEpoch(); cur != epoch {
		logger.Printf("cycle %s: superseded (epoch %d -> %d), aborting before toggle", summary.CycleID, epoch, cur)
		r.record(types.CycleEvent{Type: types.EventCycleSuperseded, CycleID: summary.CycleID, Mask: mask})
		summary.Superseded = true
		return summary
	}

	profilePath := r.deps.Store.ResolvePath(cfg.ProfileName)

	for _, mon := range monitors {
		outcome := r.toggle(cfg, mon, profilePath)
		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Kind == types.OutcomeSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	if summary.Succeeded > 0 {
		r.sleep(cfg.ReapplyDelay())
		r.refresh(cfg, &summary)
	}

	logger.Printf("cycle %s: complete, %d succeeded, %d failed", summary.CycleID, summary.Succeeded, summary.Failed)
	for _, o := range summary.Outcomes {
		logger.Printf("cycle %s: %s", summary.CycleID, o)
	}
	r.record(types.CycleEvent{
		Type:    types.EventCycleComplete,
		CycleID: summary.CycleID,
		Mask:    mask,
		Details: summaryLine(summary),
	})

	if summary.Succeeded > 0 {
		r.deps.Sink.Report(cfg.ToastEnabled, cfg.ToastTitle, cfg.ToastBody, cfg.Verbose)
	}
	return summary
}

// toggle runs the per-monitor disassociate/delay/reassociate sequence.
// Monitors are handled sequentially: the profile store API is process
// global and not proven safe under concurrent mutation, and sequential
// execution keeps the logs reviewable.
func (r *Runner) toggle(cfg config.Config, mon types.MatchedMonitor, profilePath string) types.MonitorOutcome {
	logger := r.deps.Logger

	if !r.deps.Store.Exists(profilePath) {
		r.record(types.CycleEvent{
			Type:    types.EventMonitorSkipped,
			Monitor: mon.Name,
			Details: "profile not found: " + profilePath,
		})
		return types.MonitorOutcome{
			Monitor: mon,
			Kind:    types.OutcomeProfileNotFound,
			Reason:  profilePath,
		}
	}

	if cfg.Verbose {
		logger.Printf("toggling %q (device %s, profile %s)", mon.Name, mon.DeviceKey, profilePath)
	}

	if err := r.deps.Store.Disassociate(mon.DeviceKey, profilePath); err != nil {
		return types.MonitorOutcome{
			Monitor: mon,
			Kind:    types.OutcomeToggleFailed,
			Reason:  "disassociate: " + err.Error(),
		}
	}

	r.sleep(cfg.ToggleDelay())

	if err := r.deps.Store.AssociateDefault(mon.DeviceKey, profilePath); err != nil {
		return types.MonitorOutcome{
			Monitor: mon,
			Kind:    types.OutcomeToggleFailed,
			Reason:  "associate: " + err.Error(),
		}
	}

	r.record(types.CycleEvent{Type: types.EventMonitorToggled, Monitor: mon.Name})
	return types.MonitorOutcome{Monitor: mon, Kind: types.OutcomeSuccess}
}

func (r *Runner) refresh(cfg config.Config, summary *types.CycleSummary) {
	methods := refresh.Enabled(
		cfg.RefreshDisplaySettings,
		cfg.RefreshBroadcastColor,
		cfg.RefreshInvalidate,
		cfg.RefreshCalibrationLoader,
	)
	if len(methods) == 0 || r.deps.Refresher == nil {
		return
	}
	for _, failure := range refresh.Apply(r.deps.Refresher, methods) {
		r.deps.Logger.Printf("cycle %s: refresh %s failed: %v", summary.CycleID, failure.Method, failure.Err)
		r.record(types.CycleEvent{
			Type:    types.EventRefreshFailed,
			CycleID: summary.CycleID,
			Details: string(failure.Method) + ": " + failure.Err.Error(),
		})
	}
}

func (r *Runner) record(event types.CycleEvent) {
	event.Timestamp = r.now()
	r.deps.Recorder.Record(event)
}

func summaryLine(s types.CycleSummary) string {
	return fmt.Sprintf("succeeded=%d failed=%d", s.Succeeded, s.Failed)
}
