package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/healthy-living/internal/config"
)

func TestSettingsDialog_LoadsAndApplies(t *testing.T) {
	app := test.NewApp()
	window := test.NewWindow(nil)
	defer window.Close()

	settings := config.NewSettings(app)
	sd := NewSettingsDialog(settings, NewLocalization(), window)
	sd.loadCurrentSettings()

	if sd.timeoutEntry.Text != "15" {
		t.Errorf("Expected timeout 15, got %q", sd.timeoutEntry.Text)
	}
	if sd.maxSizeEntry.Text != "10" {
		t.Errorf("Expected max size 10, got %q", sd.maxSizeEntry.Text)
	}
	if sd.imageHeightEntry.Text != "200" {
		t.Errorf("Expected image height 200, got %q", sd.imageHeightEntry.Text)
	}
	if !sd.retryCheck.Checked {
		t.Error("Expected retry enabled by default")
	}

	sd.languageSelect.SetSelected("English")
	sd.timeoutEntry.SetText("500")
	sd.maxSizeEntry.SetText("not a number")
	sd.imageHeightEntry.SetText("300")
	sd.retryCheck.SetChecked(false)
	sd.apply()

	if settings.GetLanguage() != "en" {
		t.Errorf("Expected language en, got %s", settings.GetLanguage())
	}
	if settings.GetFetchTimeout() != config.MaxFetchTimeoutSec*time.Second {
		t.Errorf("Expected clamped timeout, got %v", settings.GetFetchTimeout())
	}
	if settings.GetMaxImageBytes() != config.DefaultMaxImageSizeMB*1024*1024 {
		t.Errorf("Expected max size unchanged, got %d", settings.GetMaxImageBytes())
	}
	if settings.GetCardImageHeight() != 300 {
		t.Errorf("Expected image height 300, got %v", settings.GetCardImageHeight())
	}
	if settings.GetFetchRetryEnabled() {
		t.Error("Expected retry disabled")
	}
}
