package config

import (
	"time"

	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage          = "app_language"
	KeyFetchTimeout      = "image_fetch_timeout_seconds"
	KeyMaxImageSizeMB    = "max_image_size_mb"
	KeyCardImageHeight   = "card_image_height"
	KeyFetchRetryEnabled = "image_fetch_retry_enabled"
)

// Default values
const (
	DefaultLanguage          = "system"
	DefaultFetchTimeoutSec   = 15
	DefaultMaxImageSizeMB    = 10
	DefaultCardImageHeight   = 200
	DefaultFetchRetryEnabled = true
)

// Bounds for numeric settings
const (
	MinFetchTimeoutSec = 1
	MaxFetchTimeoutSec = 120
	MinImageSizeMB     = 1
	MaxImageSizeMB     = 50
	MinCardImageHeight = 80
	MaxCardImageHeight = 600
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"es":     "Español",
		"en":     "English",
		"pt":     "Português",
		"ru":     "Русский",
	}
}

// GetFetchTimeout returns the per-request image fetch timeout
func (s *Settings) GetFetchTimeout() time.Duration {
	value := s.app.Preferences().Int(KeyFetchTimeout)
	if value <= 0 {
		s.SetFetchTimeoutSeconds(DefaultFetchTimeoutSec)
		value = DefaultFetchTimeoutSec
	}
	return time.Duration(value) * time.Second
}

// SetFetchTimeoutSeconds sets the image fetch timeout in seconds
func (s *Settings) SetFetchTimeoutSeconds(seconds int) {
	s.app.Preferences().SetInt(KeyFetchTimeout, clamp(seconds, MinFetchTimeoutSec, MaxFetchTimeoutSec))
}

// GetMaxImageBytes returns the largest image body accepted, in bytes
func (s *Settings) GetMaxImageBytes() int64 {
	value := s.app.Preferences().Int(KeyMaxImageSizeMB)
	if value <= 0 {
		s.SetMaxImageSizeMB(DefaultMaxImageSizeMB)
		value = DefaultMaxImageSizeMB
	}
	return int64(value) * 1024 * 1024
}

// SetMaxImageSizeMB sets the image size limit in megabytes
func (s *Settings) SetMaxImageSizeMB(mb int) {
	s.app.Preferences().SetInt(KeyMaxImageSizeMB, clamp(mb, MinImageSizeMB, MaxImageSizeMB))
}

// GetCardImageHeight returns the height of the image area on each card
func (s *Settings) GetCardImageHeight() float32 {
	value := s.app.Preferences().Int(KeyCardImageHeight)
	if value <= 0 {
		s.SetCardImageHeight(DefaultCardImageHeight)
		value = DefaultCardImageHeight
	}
	return float32(value)
}

// SetCardImageHeight sets the card image height
func (s *Settings) SetCardImageHeight(height int) {
	s.app.Preferences().SetInt(KeyCardImageHeight, clamp(height, MinCardImageHeight, MaxCardImageHeight))
}

// GetFetchRetryEnabled returns whether transient fetch failures are retried once
func (s *Settings) GetFetchRetryEnabled() bool {
	return s.app.Preferences().BoolWithFallback(KeyFetchRetryEnabled, DefaultFetchRetryEnabled)
}

// SetFetchRetryEnabled sets whether transient fetch failures are retried
func (s *Settings) SetFetchRetryEnabled(enabled bool) {
	s.app.Preferences().SetBool(KeyFetchRetryEnabled, enabled)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
