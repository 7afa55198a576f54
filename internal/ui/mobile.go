package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// MobileUI provides mobile-specific sizing; the form is used on phones as
// much as on desktops
type MobileUI struct {
	app fyne.App
}

// NewMobileUI creates a new mobile UI helper
func NewMobileUI(app fyne.App) *MobileUI {
	return &MobileUI{app: app}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	device := fyne.CurrentDevice()
	return device != nil && device.IsMobile()
}

// ConfigureEntry makes an entry single-line and sets its placeholder
func (m *MobileUI) ConfigureEntry(entry *widget.Entry, placeholder string) {
	entry.MultiLine = false
	entry.Wrapping = fyne.TextWrapOff
	entry.SetPlaceHolder(placeholder)
}

// GetSpacing returns appropriate spacing between form rows and cards
func (m *MobileUI) GetSpacing() float32 {
	if m.IsMobileDevice() {
		return MobileSpacing
	}
	return DesktopSpacing
}

// GetButtonHeight returns the minimum height for primary buttons
func (m *MobileUI) GetButtonHeight() float32 {
	if m.IsMobileDevice() {
		return MobileButtonHeight
	}
	return MinTouchTargetSize
}
