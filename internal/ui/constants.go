package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconLeaf     = "🥗"
)

// Layout sizing (entry cards / list)
const (
	CardMinWidth      float32 = 320
	CardNameMinHeight float32 = 36
	CardSpacing       float32 = 12
	ImagePlaceholderW float32 = 200

	// Mobile-specific sizing
	MinTouchTargetSize float32 = 44
	MobileButtonHeight float32 = 48
	MobileSpacing      float32 = 16
	DesktopSpacing     float32 = 8
)

// Hint behavior
const (
	HintAutoHide = 4 * time.Second
)

// Dialog sizing
const (
	SettingsDialogWidth  float32 = 420
	SettingsDialogHeight float32 = 360
)
