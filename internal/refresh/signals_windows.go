//go:build windows

package refresh

import (
	"fmt"
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

const (
	hwndBroadcast     = 0xFFFF
	wmSysColorChange  = 0x0015
	dispChangeSuccess = 0

	createNoWindow = 0x08000000

	// Scheduled task Windows runs at logon to load display calibration.
	calibrationLoaderTask = `\Microsoft\Windows\WindowsColorSystem\Calibration Loader`
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procChangeDisplaySettingsExW = user32.NewProc("ChangeDisplaySettingsExW")
	procSendNotifyMessageW       = user32.NewProc("SendNotifyMessageW")
	procInvalidateRect           = user32.NewProc("InvalidateRect")
)

// Signals is the production refresher, firing real user32 calls and the
// calibration loader scheduled task.
type Signals struct{}

func NewSignals() *Signals {
	return &Signals{}
}

func (s *Signals) Refresh(method Method) error {
	switch method {
	case MethodDisplaySettings:
		return s.displaySettings()
	case MethodBroadcastColor:
		return s.broadcastColor()
	case MethodInvalidate:
		return s.invalidate()
	case MethodCalibrationLoader:
		return s.calibrationLoader()
	}
	return fmt.Errorf("unknown refresh method %q", method)
}

// displaySettings re-applies the current registry display mode, which forces
// the color pipeline to re-read device associations.
func (s *Signals) displaySettings() error {
	ret, _, _ := procChangeDisplaySettingsExW.Call(0, 0, 0, 0, 0)
	if int32(ret) != dispChangeSuccess {
		return fmt.Errorf("ChangeDisplaySettingsExW: code %d", int32(ret))
	}
	return nil
}

func (s *Signals) broadcastColor() error {
	ret, _, err := procSendNotifyMessageW.Call(hwndBroadcast, wmSysColorChange, 0, 0)
	if ret == 0 {
		return fmt.Errorf("SendNotifyMessageW(WM_SYSCOLORCHANGE): %w", err)
	}
	return nil
}

// invalidate marks every top-level window for repaint.
func (s *Signals) invalidate() error {
	ret, _, err := procInvalidateRect.Call(0, 0, 1)
	if ret == 0 {
		return fmt.Errorf("InvalidateRect: %w", err)
	}
	return nil
}

func (s *Signals) calibrationLoader() error {
	cmd := exec.Command("schtasks", "/Run", "/TN", calibrationLoaderTask)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run calibration loader task: %w (%s)", err, string(out))
	}
	return nil
}
