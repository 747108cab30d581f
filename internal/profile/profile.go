// Package profile wraps the OS color-management association calls. The real
// store talks to mscms.dll; the fake records calls for tests.
package profile

// Store associates and disassociates ICC profiles with display devices.
// Scope is always system-wide. The disassociate/reassociate pair is a
// forward-only side-effecting sequence on an OS-owned resource; there is no
// rollback primitive, so callers capture per-step results instead of
// modelling a transaction.
type Store interface {
	// Exists reports whether the profile file is present in the store.
	Exists(profilePath string) bool
	// Disassociate removes the profile association from the device.
	Disassociate(deviceKey, profilePath string) error
	// AssociateDefault reassociates the profile with the device as its
	// default.
	AssociateDefault(deviceKey, profilePath string) error
	// ResolvePath expands a bare profile file name against the system
	// color directory. Absolute paths pass through unchanged.
	ResolvePath(profileName string) string
}
