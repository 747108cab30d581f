package types

import "fmt"

// OutcomeKind classifies the result of toggling one monitor's profile.
type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "Success"
	OutcomeProfileNotFound OutcomeKind = "ProfileNotFound"
	OutcomeToggleFailed    OutcomeKind = "ToggleFailed"
	OutcomeRefreshFailed   OutcomeKind = "RefreshFailed"
)

// MonitorOutcome is the per-monitor result of one reapply cycle.
type MonitorOutcome struct {
	Monitor MatchedMonitor
	Kind    OutcomeKind
	Reason  string
}

func (o MonitorOutcome) String() string {
	if o.Reason == "" {
		return fmt.Sprintf("%s: %s", o.Monitor.Name, o.Kind)
	}
	return fmt.Sprintf("%s: %s (%s)", o.Monitor.Name, o.Kind, o.Reason)
}

// CycleSummary aggregates the outcomes of one reapply cycle.
type CycleSummary struct {
	CycleID    string
	Mask       EventMask
	Superseded bool
	Outcomes   []MonitorOutcome
	Succeeded  int
	Failed     int
}

// Empty reports whether the cycle matched no monitors (a logged no-op).
func (s CycleSummary) Empty() bool {
	return len(s.Outcomes) == 0 && !s.Superseded
}
