// Package display enumerates attached monitors and matches them against the
// configured pattern. The real directory queries WMI; the fake allows
// testing without hardware.
package display

import "github.com/colorkeep/colorkeep/pkg/types"

// Directory lists currently attached monitors. It is a snapshot query; the
// event source adapter owns its own notification channel, so no subscription
// is needed here.
type Directory interface {
	ListMonitors() ([]types.RawMonitor, error)
}
