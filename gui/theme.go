//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

type baroTheme struct{}

func (t *baroTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.RGBA{24, 24, 27, 255}
	case theme.ColorNameInputBackground:
		return color.RGBA{39, 39, 42, 255}
	case theme.ColorNameForeground:
		return color.RGBA{228, 228, 231, 255}
	case theme.ColorNamePrimary:
		return color.RGBA{245, 158, 11, 255}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (t *baroTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *baroTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *baroTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNameText {
		return 13
	}
	return theme.DefaultTheme().Size(name)
}
