package types

// RawMonitor is one attached display as reported by the monitor directory,
// before name decoding and pattern matching.
type RawMonitor struct {
	// FriendlyNameRaw is the UTF-16 friendly name as stored by the OS: a
	// NUL-terminated code unit sequence, possibly with no terminator at all.
	FriendlyNameRaw []uint16
	// InstanceID is the raw device instance identifier, e.g.
	// "DISPLAY\GSM5BC0\4&2e490da1&0&UID4352_0".
	InstanceID string
}

// MatchedMonitor is a display that matched the configured pattern. It is
// derived fresh on every reapply cycle; monitors can be hot-plugged, so
// matches are never cached across cycles.
type MatchedMonitor struct {
	// Name is the decoded friendly name, e.g. "LG ULTRAGEAR 27GP950".
	Name string
	// DeviceKey is the instance ID with a single trailing "_0" stripped,
	// the form the color management API addresses devices by.
	DeviceKey string
}
