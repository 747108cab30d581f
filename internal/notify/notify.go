// Package notify reports reapply outcomes to the user. Notification is
// best-effort: a failed toast never aborts or delays the pipeline.
package notify

import "log"

// Notifier displays a transient system notification.
type Notifier interface {
	Notify(title, body string) error
}

// Sink wraps a Notifier with the pipeline's fire-and-forget policy.
type Sink struct {
	Notifier Notifier
	Logger   *log.Logger
}

// Report shows a notification when enabled. Failures are expected under a
// non-interactive service session and are logged only when verbose; they
// are never propagated.
func (s Sink) Report(enabled bool, title, body string, verbose bool) {
	if !enabled || s.Notifier == nil {
		return
	}
	if err := s.Notifier.Notify(title, body); err != nil && verbose && s.Logger != nil {
		s.Logger.Printf("notification failed: %v", err)
	}
}
