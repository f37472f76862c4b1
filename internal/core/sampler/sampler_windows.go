//go:build windows

package sampler

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/twlf/activity-tracker/internal/core/classifier"
	"github.com/twlf/activity-tracker/internal/core/model"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
)

// ForegroundSampler probes the Windows foreground window and resolves its
// owning process name. Any probe failure (window gone, permission error,
// process lookup failure) yields a nil sample, never an error.
type ForegroundSampler struct {
	excluder classifier.ProcessExcluder
}

// NewForegroundSampler creates the platform sampler with the given exclusion
// predicate.
func NewForegroundSampler(excluder classifier.ProcessExcluder) *ForegroundSampler {
	return &ForegroundSampler{excluder: excluder}
}

// Sample returns the focused window, or nil when there is none, the window
// has no title, or the window is excluded from logging.
func (s *ForegroundSampler) Sample() *model.WindowSample {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return nil
	}

	title := windowText(hwnd)
	if title == "" {
		return nil
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return nil
	}

	processName := processImageName(pid)
	if processName == "" {
		return nil
	}

	if classifier.ShouldExclude(s.excluder, processName, title) {
		return nil
	}

	return &model.WindowSample{
		Handle:      hwnd,
		ProcessName: processName,
		WindowTitle: title,
	}
}

func windowText(hwnd uintptr) string {
	buf := make([]uint16, 512)
	n, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if n == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:n])
}

func processImageName(pid uint32) string {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return ""
	}
	defer windows.CloseHandle(handle)

	size := uint32(windows.MAX_PATH)
	buf := make([]uint16, size)
	if err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &size); err != nil {
		return ""
	}
	return filepath.Base(windows.UTF16ToString(buf[:size]))
}
