package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// HealthyTheme is a compact theme with a green primary color
type HealthyTheme struct{}

// NewHealthyTheme creates the application theme
func NewHealthyTheme() fyne.Theme {
	return &HealthyTheme{}
}

// Color returns theme colors
func (t *HealthyTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.RGBA{R: 46, G: 125, B: 50, A: 255} // Leaf green
	case theme.ColorNameSuccess:
		return color.RGBA{R: 102, G: 187, B: 106, A: 255}
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255} // Red for delete and failures
	case theme.ColorNameWarning:
		return color.RGBA{R: 255, G: 160, B: 0, A: 255}
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 20, G: 24, B: 20, A: 255}
		}
		return color.RGBA{R: 248, G: 251, B: 246, A: 255}
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return color.RGBA{R: 240, G: 244, B: 238, A: 255}
		}
		return color.RGBA{R: 33, G: 33, B: 33, A: 255}
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *HealthyTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *HealthyTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *HealthyTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 4
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 16
	case theme.SizeNameInputRadius:
		return 6 // Rounded form fields
	case theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
