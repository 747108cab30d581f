package types

import "time"

// EventKind is a single-bit flag identifying one class of OS notification
// that can trigger a profile reapply. Kinds are combined into an EventMask
// by the debounce accumulator.
type EventKind uint32

const (
	// KindDeviceArrival fires when a monitor device interface arrives.
	KindDeviceArrival EventKind = 1 << iota
	// KindDevNodesChanged fires when the device tree changes.
	KindDevNodesChanged
	// KindSessionLogon fires when a user logs on.
	KindSessionLogon
	// KindSessionUnlock fires when the session is unlocked.
	KindSessionUnlock
	// KindConsoleConnect fires when a session attaches to the console.
	KindConsoleConnect
)

// EventMask is a union of EventKind bits accumulated between two drains.
type EventMask uint32

const (
	// MaskDevice covers hot-plug style device notifications.
	MaskDevice = EventMask(KindDeviceArrival | KindDevNodesChanged)
	// MaskSession covers user session state transitions.
	MaskSession = EventMask(KindSessionLogon | KindSessionUnlock | KindConsoleConnect)
)

// Has reports whether the mask contains the given kind.
func (m EventMask) Has(kind EventKind) bool {
	return m&EventMask(kind) != 0
}

func (k EventKind) String() string {
	switch k {
	case KindDeviceArrival:
		return "DeviceArrival"
	case KindDevNodesChanged:
		return "DevNodesChanged"
	case KindSessionLogon:
		return "SessionLogon"
	case KindSessionUnlock:
		return "SessionUnlock"
	case KindConsoleConnect:
		return "ConsoleConnect"
	}
	return "Unknown"
}

// String renders the mask as a +-joined list of kind names, "none" when empty.
func (m EventMask) String() string {
	if m == 0 {
		return "none"
	}
	kinds := []EventKind{
		KindDeviceArrival,
		KindDevNodesChanged,
		KindSessionLogon,
		KindSessionUnlock,
		KindConsoleConnect,
	}
	s := ""
	for _, k := range kinds {
		if !m.Has(k) {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += k.String()
	}
	return s
}

// CycleEventType classifies entries in the cycle event stream.
type CycleEventType string

const (
	EventCycleStart      CycleEventType = "CycleStart"
	EventCycleComplete   CycleEventType = "CycleComplete"
	EventCycleSuperseded CycleEventType = "CycleSuperseded"
	EventCycleEmpty      CycleEventType = "CycleEmpty"
	EventMonitorToggled  CycleEventType = "MonitorToggled"
	EventMonitorSkipped  CycleEventType = "MonitorSkipped"
	EventRefreshFailed   CycleEventType = "RefreshFailed"
)

// CycleEvent is one entry in the reapply cycle event stream, consumed by
// recorders (log, Windows event log).
type CycleEvent struct {
	Type      CycleEventType `json:"type"`
	Timestamp time.Time      `json:"ts"`
	CycleID   string         `json:"cycle_id,omitempty"`
	Monitor   string         `json:"monitor,omitempty"`
	Mask      EventMask      `json:"mask,omitempty"`
	Details   string         `json:"details,omitempty"`
}
