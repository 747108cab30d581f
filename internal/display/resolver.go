package display

import (
	"fmt"
	"strings"
	"unicode/utf16"

	"github.com/colorkeep/colorkeep/pkg/types"
)

// Resolve queries dir for all attached monitors and returns those whose
// decoded friendly name contains pattern, case-insensitively. An empty
// pattern matches every monitor; that is documented behaviour, not an
// accident. Matches are derived fresh on every call.
func Resolve(dir Directory, pattern string) ([]types.MatchedMonitor, error) {
	raw, err := dir.ListMonitors()
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}

	want := strings.ToUpper(pattern)

	var matched []types.MatchedMonitor
	for _, m := range raw {
		name := DecodeFriendlyName(m.FriendlyNameRaw)
		if !strings.Contains(strings.ToUpper(name), want) {
			continue
		}
		key := TrimDeviceKey(m.InstanceID)
		if key == "" {
			// Nothing left to address the color API with.
			continue
		}
		matched = append(matched, types.MatchedMonitor{
			Name:      name,
			DeviceKey: key,
		})
	}
	return matched, nil
}

// DecodeFriendlyName converts a UTF-16 code unit array into a string,
// stopping at the first NUL. Arrays with no terminator are consumed whole.
func DecodeFriendlyName(raw []uint16) string {
	end := len(raw)
	for i, u := range raw {
		if u == 0 {
			end = i
			break
		}
	}
	return string(utf16.Decode(raw[:end]))
}

// TrimDeviceKey strips a single trailing "_0" suffix from a raw instance
// identifier. Only one occurrence is removed per call; repeated suffixes are
// left intact, matching the color API's device naming.
func TrimDeviceKey(instanceID string) string {
	return strings.TrimSuffix(instanceID, "_0")
}
