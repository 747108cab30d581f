//go:build windows

package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

// WCS_PROFILE_MANAGEMENT_SCOPE_SYSTEM_WIDE. The service always operates
// system-wide; per-user scope would silently diverge from what the logon
// screen and other sessions see.
const scopeSystemWide = 0

var (
	mscms = windows.NewLazySystemDLL("mscms.dll")

	procGetColorDirectoryW          = mscms.NewProc("GetColorDirectoryW")
	procWcsAssociateColorProfile    = mscms.NewProc("WcsAssociateColorProfileWithDevice")
	procWcsDisassociateColorProfile = mscms.NewProc("WcsDisassociateColorProfileFromDevice")
)

// MscmsStore is the production profile store backed by mscms.dll.
type MscmsStore struct {
	colorDir string
}

// NewMscmsStore returns the production store. The system color directory is
// resolved once; a lookup failure falls back to the conventional location.
func NewMscmsStore() *MscmsStore {
	return &MscmsStore{colorDir: colorDirectory()}
}

func colorDirectory() string {
	var size uint32
	// First call sizes the buffer.
	procGetColorDirectoryW.Call(0, 0, uintptr(unsafe.Pointer(&size)))
	if size > 0 {
		buf := make([]uint16, size/2+1)
		ret, _, _ := procGetColorDirectoryW.Call(
			0,
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(unsafe.Pointer(&size)),
		)
		if ret != 0 {
			return windows.UTF16ToString(buf)
		}
	}
	root := os.Getenv("SystemRoot")
	if root == "" {
		root = `C:\Windows`
	}
	return filepath.Join(root, "System32", "spool", "drivers", "color")
}

func (s *MscmsStore) ResolvePath(profileName string) string {
	if filepath.IsAbs(profileName) {
		return profileName
	}
	return filepath.Join(s.colorDir, profileName)
}

func (s *MscmsStore) Exists(profilePath string) bool {
	info, err := os.Stat(profilePath)
	return err == nil && !info.IsDir()
}

func (s *MscmsStore) Disassociate(deviceKey, profilePath string) error {
	return s.call(procWcsDisassociateColorProfile, deviceKey, profilePath)
}

func (s *MscmsStore) AssociateDefault(deviceKey, profilePath string) error {
	// Association places the profile at the top of the device's profile
	// list, which makes it the default for the device.
	return s.call(procWcsAssociateColorProfile, deviceKey, profilePath)
}

func (s *MscmsStore) call(proc *windows.LazyProc, deviceKey, profilePath string) error {
	// The Wcs association calls address profiles by file name, not path.
	name, err := windows.UTF16PtrFromString(filepath.Base(profilePath))
	if err != nil {
		return fmt.Errorf("profile name: %w", err)
	}
	device, err := windows.UTF16PtrFromString(deviceKey)
	if err != nil {
		return fmt.Errorf("device key: %w", err)
	}

	ret, _, callErr := proc.Call(
		scopeSystemWide,
		uintptr(unsafe.Pointer(name)),
		uintptr(unsafe.Pointer(device)),
	)
	if ret == 0 {
		return fmt.Errorf("%s(%q, %q): %w", proc.Name, filepath.Base(profilePath), deviceKey, callErr)
	}
	return nil
}
