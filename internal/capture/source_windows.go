// ABOUTME: Windows source resolution via the foreground window's owning process
// ABOUTME: Uses user32 for window queries and x/sys/windows for the process image name

//go:build windows

package capture

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/pastify/pastify/internal/appnames"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
)

type windowsResolver struct {
	names *appnames.Resolver
}

func newPlatformResolver(names *appnames.Resolver) SourceResolver {
	return &windowsResolver{names: names}
}

func (r *windowsResolver) Resolve() *SourceInfo {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return nil
	}

	var pid uint32
	procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return nil
	}

	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return nil
	}
	defer windows.CloseHandle(proc)

	var buf [windows.MAX_PATH]uint16
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(proc, 0, &buf[0], &size); err != nil {
		return nil
	}
	exePath := windows.UTF16ToString(buf[:size])
	if exePath == "" {
		return nil
	}

	base := filepath.Base(exePath)
	return &SourceInfo{App: r.names.Display(base)}
}
