package display

import (
	"unicode/utf16"

	"github.com/colorkeep/colorkeep/pkg/types"
)

// FakeDirectory returns a fixed monitor list for tests.
type FakeDirectory struct {
	Monitors []types.RawMonitor
	Err      error
	Calls    int
}

func (f *FakeDirectory) ListMonitors() ([]types.RawMonitor, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]types.RawMonitor, len(f.Monitors))
	copy(out, f.Monitors)
	return out, nil
}

// EncodeName converts a string into the UTF-16 array form ListMonitors
// returns, appending a NUL terminator.
func EncodeName(name string) []uint16 {
	return append(utf16.Encode([]rune(name)), 0)
}
