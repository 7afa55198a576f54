package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/healthy-living/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	languageSelect    *widget.Select
	timeoutEntry      *widget.Entry
	maxSizeEntry      *widget.Entry
	imageHeightEntry  *widget.Entry
	retryCheck        *widget.Check
	languageCodeByTag map[string]string
}

// ShowSettingsDialog builds and shows the settings dialog. onSaved runs
// after the values are stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Language selection shows display names, stores codes
	labels := sd.settings.GetLanguageOptions()
	sd.languageCodeByTag = make(map[string]string, len(labels))
	languageOptions := make([]string, 0, len(labels))
	for code, label := range labels {
		sd.languageCodeByTag[label] = code
		languageOptions = append(languageOptions, label)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	sd.timeoutEntry = widget.NewEntry()
	sd.timeoutEntry.SetPlaceHolder(rangeHint(config.MinFetchTimeoutSec, config.MaxFetchTimeoutSec))

	sd.maxSizeEntry = widget.NewEntry()
	sd.maxSizeEntry.SetPlaceHolder(rangeHint(config.MinImageSizeMB, config.MaxImageSizeMB))

	sd.imageHeightEntry = widget.NewEntry()
	sd.imageHeightEntry.SetPlaceHolder(rangeHint(config.MinCardImageHeight, config.MaxCardImageHeight))

	sd.retryCheck = widget.NewCheck(sd.localization.GetText(KeyFetchRetry), nil)

	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyFetchTimeout)+":"),
		sd.timeoutEntry,
		widget.NewLabel(sd.localization.GetText(KeyMaxImageSize)+":"),
		sd.maxSizeEntry,
		sd.retryCheck,
		widget.NewLabel(sd.localization.GetText(KeyCardImageHeight)+":"),
		sd.imageHeightEntry,
		widget.NewSeparator(),

		widget.NewLabel(sd.localization.GetText(KeyRestartToApply)),
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	if label, ok := sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()]; ok {
		sd.languageSelect.SetSelected(label)
	}
	sd.timeoutEntry.SetText(strconv.Itoa(int(sd.settings.GetFetchTimeout().Seconds())))
	sd.maxSizeEntry.SetText(strconv.FormatInt(sd.settings.GetMaxImageBytes()/(1024*1024), 10))
	sd.imageHeightEntry.SetText(strconv.Itoa(int(sd.settings.GetCardImageHeight())))
	sd.retryCheck.SetChecked(sd.settings.GetFetchRetryEnabled())
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the entered values; unparsable numbers keep the stored value
func (sd *SettingsDialog) apply() {
	if code, ok := sd.languageCodeByTag[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if seconds, err := strconv.Atoi(sd.timeoutEntry.Text); err == nil {
		sd.settings.SetFetchTimeoutSeconds(seconds)
	}

	if mb, err := strconv.Atoi(sd.maxSizeEntry.Text); err == nil {
		sd.settings.SetMaxImageSizeMB(mb)
	}

	if height, err := strconv.Atoi(sd.imageHeightEntry.Text); err == nil {
		sd.settings.SetCardImageHeight(height)
	}

	sd.settings.SetFetchRetryEnabled(sd.retryCheck.Checked)
}

func rangeHint(lo, hi int) string {
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}
