// Package debounce coalesces bursts of OS notifications into single reapply
// triggers. Pending event bits and the epoch counter are the only state
// shared between the notification thread and the pipeline worker; both are
// plain atomics, and the short mutex around the timer is never held across
// a sleep.
package debounce

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/colorkeep/colorkeep/pkg/types"
)

// Accumulator gathers event kinds into a pending mask and arms a single-shot
// quiet-period timer. Each Record re-arms the timer and advances the epoch,
// so a storm of events collapses into one fire and invalidates any reapply
// attempt scheduled against an older epoch.
type Accumulator struct {
	quiet time.Duration

	pending atomic.Uint32
	epoch   atomic.Uint64

	// fire receives one signal per elapsed quiet period. Buffered so the
	// timer goroutine never blocks; a signal that finds the buffer full is
	// redundant because the worker drains everything pending on wake.
	fire chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates an accumulator with the given quiet period.
func New(quiet time.Duration) *Accumulator {
	return &Accumulator{
		quiet: quiet,
		fire:  make(chan struct{}, 1),
	}
}

// Record unions kind into the pending mask, advances the epoch and (re)arms
// the quiet timer. It never blocks and is safe from any goroutine.
func (a *Accumulator) Record(kind types.EventKind) {
	a.pending.Or(uint32(kind))
	a.epoch.Add(1)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.quiet, a.signal)
}

func (a *Accumulator) signal() {
	select {
	case a.fire <- struct{}{}:
	default:
	}
}

// Drain atomically swaps the pending mask to empty and returns it together
// with the epoch at drain time. Events recorded between two drains are
// delivered to exactly one drain.
func (a *Accumulator) Drain() (types.EventMask, uint64) {
	mask := types.EventMask(a.pending.Swap(0))
	return mask, a.epoch.Load()
}

// Epoch returns the current epoch. A pipeline cycle holding an older epoch
// has been superseded and must abort before its first toggle.
func (a *Accumulator) Epoch() uint64 {
	return a.epoch.Load()
}

// Fired returns the channel signalled each time a quiet period elapses.
// The receiver is expected to Drain and act on the result.
func (a *Accumulator) Fired() <-chan struct{} {
	return a.fire
}

// Stop cancels any armed timer. Record calls after Stop still accumulate
// bits but no longer arm timers.
func (a *Accumulator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
