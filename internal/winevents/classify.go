package winevents

import "github.com/colorkeep/colorkeep/pkg/types"

// WM_DEVICECHANGE wParam values.
const (
	dbtDeviceArrival   = 0x8000
	dbtDevNodesChanged = 0x0007

	// DEV_BROADCAST_HDR device types.
	dbtDevTypDeviceInterface = 5
)

// WM_WTSSESSION_CHANGE wParam values.
const (
	wtsConsoleConnect = 0x1
	wtsSessionLogon   = 0x5
	wtsSessionUnlock  = 0x8
)

// guid mirrors the Windows GUID layout.
type guid struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUID_DEVINTERFACE_MONITOR: the device interface class all display
// monitors register under. Notifications for any other class are foreign
// and dropped before classification.
var monitorInterfaceGUID = guid{
	Data1: 0xE6F07B5F,
	Data2: 0xEE97,
	Data3: 0x4A90,
	Data4: [8]byte{0xB0, 0x76, 0x33, 0xF5, 0x7B, 0xF4, 0xEA, 0xA7},
}

// classifyDeviceChange maps the decoded fields of a WM_DEVICECHANGE into an
// event kind. hasHeader reports whether a broadcast header accompanied the
// message; arrivals without one, with a non-interface device type, or for a
// foreign device class are dropped.
func classifyDeviceChange(wParam uintptr, hasHeader bool, deviceType uint32, class guid) (types.EventKind, bool) {
	switch wParam {
	case dbtDeviceArrival:
		if !hasHeader || deviceType != dbtDevTypDeviceInterface || class != monitorInterfaceGUID {
			return 0, false
		}
		return types.KindDeviceArrival, true
	case dbtDevNodesChanged:
		return types.KindDevNodesChanged, true
	}
	return 0, false
}

// classifySessionChange maps a WM_WTSSESSION_CHANGE wParam into an event
// kind. Transitions the service does not react to (disconnects, locks,
// remote connects) are dropped.
func classifySessionChange(wParam uintptr) (types.EventKind, bool) {
	switch wParam {
	case wtsSessionLogon:
		return types.KindSessionLogon, true
	case wtsSessionUnlock:
		return types.KindSessionUnlock, true
	case wtsConsoleConnect:
		return types.KindConsoleConnect, true
	}
	return 0, false
}
