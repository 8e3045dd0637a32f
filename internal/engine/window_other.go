//go:build !windows

package engine

import "github.com/go-gl/glfw/v3.3/glfw"

// SetDarkTitleBar is a no-op outside Windows; other platforms follow the
// system theme.
func SetDarkTitleBar(window *glfw.Window) {}
