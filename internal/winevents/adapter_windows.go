//go:build windows

// Package winevents subscribes to monitor hot-plug and session-change
// notifications and normalizes them into event kinds. The OS delivers
// these through a window procedure, so the adapter owns a message-only
// window on a dedicated locked thread and hands normalized events out
// through the record callback.
package winevents

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/colorkeep/colorkeep/pkg/types"
)

const (
	wmWTSSessionChange = 0x02B1

	deviceNotifyWindowHandle = 0

	notifyForAllSessions = 1

	className = "ColorKeepEvents"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	wtsapi32 = windows.NewLazySystemDLL("wtsapi32.dll")

	procRegisterDeviceNotificationW      = user32.NewProc("RegisterDeviceNotificationW")
	procUnregisterDeviceNotification     = user32.NewProc("UnregisterDeviceNotification")
	procWTSRegisterSessionNotification   = wtsapi32.NewProc("WTSRegisterSessionNotification")
	procWTSUnRegisterSessionNotification = wtsapi32.NewProc("WTSUnRegisterSessionNotification")
)

type devBroadcastHdr struct {
	size       uint32
	deviceType uint32
	reserved   uint32
}

type devBroadcastDeviceInterface struct {
	size       uint32
	deviceType uint32
	reserved   uint32
	classGUID  guid
	name       [1]uint16
}

// Adapter is the production event source. One Run call owns one message
// window; the adapter fails open when an individual subscription cannot be
// established, and returns an error only when the window itself cannot be
// created.
type Adapter struct {
	logger  *log.Logger
	verbose bool

	record func(types.EventKind)

	hwnd      win.HWND
	devNotify uintptr
	wtsActive bool
}

func New(logger *log.Logger, verbose bool) *Adapter {
	return &Adapter{logger: logger, verbose: verbose}
}

// Run creates the message window and pumps messages until ctx is cancelled.
// It blocks; the caller runs it on its own goroutine.
func (a *Adapter) Run(ctx context.Context, record func(types.EventKind)) error {
	a.record = record

	hwndCh := make(chan win.HWND, 1)
	doneCh := make(chan error, 1)

	go a.messageLoop(hwndCh, doneCh)

	var hwnd win.HWND
	select {
	case hwnd = <-hwndCh:
	case err := <-doneCh:
		return err
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			win.PostMessage(hwnd, win.WM_CLOSE, 0, 0)
		case <-stop:
		}
	}()

	err := <-doneCh
	close(stop)
	if err != nil {
		return err
	}
	return ctx.Err()
}

// messageLoop runs on a dedicated locked thread: the window procedure is
// only ever called on the thread that created the window.
func (a *Adapter) messageLoop(hwndCh chan<- win.HWND, doneCh chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	hInst := win.GetModuleHandle(nil)
	clsName, _ := syscall.UTF16PtrFromString(className)

	wc := win.WNDCLASSEX{
		CbSize:        uint32(unsafe.Sizeof(win.WNDCLASSEX{})),
		LpfnWndProc:   syscall.NewCallback(a.wndProc),
		HInstance:     hInst,
		LpszClassName: clsName,
	}
	if win.RegisterClassEx(&wc) == 0 {
		doneCh <- fmt.Errorf("RegisterClassEx(%s) failed", className)
		return
	}

	wndName, _ := syscall.UTF16PtrFromString("ColorKeep Event Window")
	hwnd := win.CreateWindowEx(0, clsName, wndName, 0, 0, 0, 0, 0, 0, 0, hInst, nil)
	if hwnd == 0 {
		doneCh <- fmt.Errorf("CreateWindowEx(%s) failed", className)
		return
	}
	a.hwnd = hwnd

	a.subscribe(hwnd)
	hwndCh <- hwnd

	var msg win.MSG
	for win.GetMessage(&msg, 0, 0, 0) > 0 {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}

	doneCh <- nil
}

// subscribe registers both notification sources. Each failure is logged and
// skipped: the service keeps running on whatever sources it could get.
func (a *Adapter) subscribe(hwnd win.HWND) {
	filter := devBroadcastDeviceInterface{
		deviceType: dbtDevTypDeviceInterface,
		classGUID:  monitorInterfaceGUID,
	}
	filter.size = uint32(unsafe.Sizeof(filter))

	handle, _, err := procRegisterDeviceNotificationW.Call(
		uintptr(hwnd),
		uintptr(unsafe.Pointer(&filter)),
		deviceNotifyWindowHandle,
	)
	if handle == 0 {
		a.logger.Printf("device notification subscription failed, hot-plug events disabled: %v", err)
	} else {
		a.devNotify = handle
	}

	ret, _, err := procWTSRegisterSessionNotification.Call(uintptr(hwnd), notifyForAllSessions)
	if ret == 0 {
		a.logger.Printf("session notification subscription failed, session events disabled: %v", err)
	} else {
		a.wtsActive = true
	}
}

func (a *Adapter) unsubscribe(hwnd win.HWND) {
	if a.devNotify != 0 {
		procUnregisterDeviceNotification.Call(a.devNotify)
		a.devNotify = 0
	}
	if a.wtsActive {
		procWTSUnRegisterSessionNotification.Call(uintptr(hwnd))
		a.wtsActive = false
	}
}

func (a *Adapter) wndProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case win.WM_DEVICECHANGE:
		hasHeader, deviceType, class := decodeBroadcast(lParam)
		if kind, ok := classifyDeviceChange(wParam, hasHeader, deviceType, class); ok {
			if a.verbose {
				a.logger.Printf("device notification: %s", kind)
			}
			a.record(kind)
		}
		return win.TRUE

	case wmWTSSessionChange:
		if kind, ok := classifySessionChange(wParam); ok {
			if a.verbose {
				a.logger.Printf("session notification: %s", kind)
			}
			a.record(kind)
		}
		return 0

	case win.WM_CLOSE:
		a.unsubscribe(hwnd)
		win.DestroyWindow(hwnd)
		return 0

	case win.WM_DESTROY:
		win.PostQuitMessage(0)
		return 0
	}
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

// decodeBroadcast reads the DEV_BROADCAST header behind lParam, when there
// is one. The class GUID is only meaningful for device-interface headers;
// other header types report a zero GUID.
func decodeBroadcast(lParam uintptr) (hasHeader bool, deviceType uint32, class guid) {
	if lParam == 0 {
		return false, 0, guid{}
	}
	hdr := (*devBroadcastHdr)(unsafe.Pointer(lParam))
	if hdr.deviceType != dbtDevTypDeviceInterface {
		return true, hdr.deviceType, guid{}
	}
	iface := (*devBroadcastDeviceInterface)(unsafe.Pointer(lParam))
	return true, iface.deviceType, iface.classGUID
}

