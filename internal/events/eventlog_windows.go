//go:build windows

package events

import (
	"golang.org/x/sys/windows/svc/eventlog"

	"github.com/colorkeep/colorkeep/pkg/types"
)

// Windows event IDs for the colorkeep source.
const (
	eventIDCycle   = 1
	eventIDFailure = 2
)

// EventLogRecorder mirrors cycle outcomes into the Windows event log.
// Recording is best-effort: a service running without a registered event
// source just drops entries.
type EventLogRecorder struct {
	elog *eventlog.Log
}

// OpenEventLog opens the named event log source. A nil recorder (with nil
// error semantics handled by the caller) is returned when the source cannot
// be opened; the service keeps running without event-log mirroring.
func OpenEventLog(source string) (*EventLogRecorder, error) {
	elog, err := eventlog.Open(source)
	if err != nil {
		return nil, err
	}
	return &EventLogRecorder{elog: elog}, nil
}

func (r *EventLogRecorder) Record(event types.CycleEvent) {
	if r == nil || r.elog == nil {
		return
	}
	msg := string(event.Type)
	if event.Details != "" {
		msg += ": " + event.Details
	}
	switch event.Type {
	case types.EventRefreshFailed, types.EventMonitorSkipped:
		_ = r.elog.Warning(eventIDFailure, msg)
	default:
		_ = r.elog.Info(eventIDCycle, msg)
	}
}

// Close releases the event log handle.
func (r *EventLogRecorder) Close() error {
	if r == nil || r.elog == nil {
		return nil
	}
	return r.elog.Close()
}
