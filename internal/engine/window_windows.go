//go:build windows

package engine

import (
	"syscall"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	dwmapi                    = syscall.NewLazyDLL("dwmapi.dll")
	procDwmSetWindowAttribute = dwmapi.NewProc("DwmSetWindowAttribute")
)

const (
	dwmwaUseImmersiveDarkMode = 20
	dwmwaCaptionColor         = 35
)

// SetDarkTitleBar switches the native title bar to dark mode so the window
// chrome matches the editor theme.
func SetDarkTitleBar(window *glfw.Window) {
	hwnd := window.GetWin32Window()
	if hwnd == nil {
		return
	}

	var useDarkMode int32 = 1
	procDwmSetWindowAttribute.Call(
		uintptr(unsafe.Pointer(hwnd)),
		dwmwaUseImmersiveDarkMode,
		uintptr(unsafe.Pointer(&useDarkMode)),
		unsafe.Sizeof(useDarkMode),
	)

	var captionColor uint32 = 0x00202020
	procDwmSetWindowAttribute.Call(
		uintptr(unsafe.Pointer(hwnd)),
		dwmwaCaptionColor,
		uintptr(unsafe.Pointer(&captionColor)),
		unsafe.Sizeof(captionColor),
	)
}
