package editor

import (
	"github.com/inkyblackness/imgui-go/v4"
)

// ApplyDarkTheme styles the editor with a dark base and cyan accents.
func ApplyDarkTheme() {
	style := imgui.CurrentStyle()

	accent := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 1.0}
	accentHover := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 0.6}
	accentActive := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 0.8}
	accentDim := imgui.Vec4{X: 0.0, Y: 0.678, Z: 0.847, W: 0.4}

	style.SetColor(imgui.StyleColorWindowBg, imgui.Vec4{X: 0.1, Y: 0.1, Z: 0.1, W: 0.95})
	style.SetColor(imgui.StyleColorTitleBg, imgui.Vec4{X: 0.08, Y: 0.08, Z: 0.08, W: 1.0})
	style.SetColor(imgui.StyleColorTitleBgActive, accent)
	style.SetColor(imgui.StyleColorMenuBarBg, imgui.Vec4{X: 0.14, Y: 0.14, Z: 0.14, W: 1.0})

	style.SetColor(imgui.StyleColorBorder, accent)
	style.SetColor(imgui.StyleColorSeparator, accent)
	style.SetColor(imgui.StyleColorSeparatorHovered, accentActive)
	style.SetColor(imgui.StyleColorSeparatorActive, accent)

	style.SetColor(imgui.StyleColorHeader, accentDim)
	style.SetColor(imgui.StyleColorHeaderHovered, accentHover)
	style.SetColor(imgui.StyleColorHeaderActive, accent)

	style.SetColor(imgui.StyleColorButton, imgui.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 1.0})
	style.SetColor(imgui.StyleColorButtonHovered, accentHover)
	style.SetColor(imgui.StyleColorButtonActive, accentActive)

	style.SetColor(imgui.StyleColorFrameBg, imgui.Vec4{X: 0.2, Y: 0.2, Z: 0.2, W: 0.54})
	style.SetColor(imgui.StyleColorFrameBgHovered, imgui.Vec4{X: 0.25, Y: 0.25, Z: 0.25, W: 0.78})
	style.SetColor(imgui.StyleColorFrameBgActive, imgui.Vec4{X: 0.3, Y: 0.3, Z: 0.3, W: 0.67})

	style.SetColor(imgui.StyleColorSliderGrab, accent)
	style.SetColor(imgui.StyleColorSliderGrabActive, accentActive)

	style.SetColor(imgui.StyleColorCheckMark, accent)
	style.SetColor(imgui.StyleColorTextSelectedBg, accentDim)

	style.SetWindowBorderSize(1.5)
	style.SetFrameBorderSize(1.0)
	style.SetWindowRounding(4.0)
	style.SetFrameRounding(2.0)
	style.SetGrabRounding(2.0)
}
