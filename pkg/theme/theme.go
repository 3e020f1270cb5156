// Package theme is the dark dashboard theme: tight padding so grid
// widgets sit close together, dark background matching the gauge
// track colors.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type Dashboard struct{}

func (Dashboard) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{R: 0x17, G: 0x17, B: 0x18, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.RGBA{R: 0x24, G: 0x24, B: 0x26, A: 0xff}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (Dashboard) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (Dashboard) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (Dashboard) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 14
	case theme.SizeNameCaptionText:
		return 11
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameScrollBarSmall:
		return 4
	}
	return theme.DefaultTheme().Size(name)
}
