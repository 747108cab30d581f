//go:build windows

package display

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/colorkeep/colorkeep/pkg/types"
)

// wmiMonitorID mirrors the WmiMonitorID class from the root\wmi namespace.
// UserFriendlyName is a NUL-terminated UTF-16 code unit array; inactive
// entries linger for recently detached monitors.
type wmiMonitorID struct {
	InstanceName     string
	UserFriendlyName []uint16
	Active           bool
}

// WMIDirectory enumerates monitors through the WmiMonitorID WMI class.
type WMIDirectory struct{}

// NewWMIDirectory returns the production monitor directory.
func NewWMIDirectory() *WMIDirectory {
	return &WMIDirectory{}
}

func (d *WMIDirectory) ListMonitors() ([]types.RawMonitor, error) {
	var rows []wmiMonitorID
	query := "SELECT InstanceName, UserFriendlyName, Active FROM WmiMonitorID"
	if err := wmi.QueryNamespace(query, &rows, `root\wmi`); err != nil {
		return nil, fmt.Errorf("query WmiMonitorID: %w", err)
	}

	monitors := make([]types.RawMonitor, 0, len(rows))
	for _, row := range rows {
		if !row.Active {
			continue
		}
		monitors = append(monitors, types.RawMonitor{
			FriendlyNameRaw: row.UserFriendlyName,
			InstanceID:      row.InstanceName,
		})
	}
	return monitors, nil
}
