package ui

import (
	"errors"
	"image/color"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/healthy-living/internal/config"
	"github.com/ytget/healthy-living/internal/form"
	"github.com/ytget/healthy-living/internal/model"
	"github.com/ytget/healthy-living/internal/presenter"
)

// RowSource is the part of the presenter the view reads from
type RowSource interface {
	Rows() []presenter.Row
	OnDeleteRequested(id string)
	SetUpdateCallback(callback func([]presenter.Row))
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI

	form   *form.Controller
	source RowSource

	titleLabel *widget.Label
	nameEntry  *widget.Entry
	imageEntry *widget.Entry
	addBtn     *widget.Button
	entryList  *widget.List
	emptyLabel *widget.Label

	// Hint panel under the form
	hintContainer *fyne.Container
	hintLabel     *widget.Label
	hintTimer     *time.Timer

	rowsMutex sync.RWMutex
	rows      []presenter.Row
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, controller *form.Controller, source RowSource) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		form:         controller,
		source:       source,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()

	// A successful submit resets the draft; mirror that in the fields
	controller.OnDraftChanged(func(draft model.Draft) {
		ui.nameEntry.SetText(draft.Name)
		ui.imageEntry.SetText(draft.ImageReference)
	})

	// Presenter updates come from fetch goroutines as well as the UI thread
	source.SetUpdateCallback(func([]presenter.Row) {
		fyne.Do(ui.refreshRows)
	})
	ui.refreshRows()

	log.Printf("RootUI initialized, language=%s", localization.GetCurrentLanguage())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.titleLabel = widget.NewLabel(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Alignment = fyne.TextAlignCenter

	ui.nameEntry = widget.NewEntry()
	ui.mobile.ConfigureEntry(ui.nameEntry, ui.localization.GetText(KeyRecipeName))
	ui.nameEntry.OnChanged = ui.form.SetName
	ui.nameEntry.OnSubmitted = func(string) { ui.onAddClick() }

	ui.imageEntry = widget.NewEntry()
	ui.mobile.ConfigureEntry(ui.imageEntry, ui.localization.GetText(KeyImageURL))
	ui.imageEntry.OnChanged = ui.form.SetImageReference
	ui.imageEntry.OnSubmitted = func(string) { ui.onAddClick() }

	ui.addBtn = widget.NewButton(ui.localization.GetText(KeyAdd), ui.onAddClick)
	ui.addBtn.Importance = widget.HighImportance
	addSpacer := canvas.NewRectangle(color.Transparent)
	addSpacer.SetMinSize(fyne.NewSize(0, ui.mobile.GetButtonHeight()))

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewBorder(nil, nil, nil, settingsBtn, ui.titleLabel)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, settingsBtn, ui.titleLabel)
	}

	// Hint panel under the form (hidden by default)
	ui.hintLabel = widget.NewLabel("")
	ui.hintLabel.Importance = widget.WarningImportance
	ui.hintLabel.Wrapping = fyne.TextWrapWord
	ui.hintContainer = container.NewPadded(ui.hintLabel)
	ui.hintContainer.Hide()

	spacing := canvas.NewRectangle(color.Transparent)
	spacing.SetMinSize(fyne.NewSize(0, ui.mobile.GetSpacing()))

	formPanel := container.NewVBox(
		header,
		ui.nameEntry,
		ui.imageEntry,
		container.NewStack(addSpacer, ui.addBtn),
		ui.hintContainer,
		spacing,
	)

	imageHeight := ui.settings.GetCardImageHeight()
	ui.entryList = widget.NewList(
		func() int {
			ui.rowsMutex.RLock()
			defer ui.rowsMutex.RUnlock()
			return len(ui.rows)
		},
		func() fyne.CanvasObject {
			return NewEntryCard(ui.localization, imageHeight, ui.onDeleteEntry)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			ui.updateEntryItem(id, obj)
		},
	)

	ui.emptyLabel = widget.NewLabel(ui.localization.GetText(KeyEmptyList))
	ui.emptyLabel.Alignment = fyne.TextAlignCenter
	ui.emptyLabel.Importance = widget.LowImportance

	content := container.NewBorder(
		formPanel, // top
		nil,       // bottom
		nil,       // left
		nil,       // right
		container.NewStack(ui.entryList, container.NewCenter(ui.emptyLabel)), // center
	)

	ui.window.SetContent(content)
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.titleLabel.SetText(ui.localization.GetText(KeyAppTitle))

	ui.nameEntry.SetPlaceHolder(ui.localization.GetText(KeyRecipeName))
	ui.imageEntry.SetPlaceHolder(ui.localization.GetText(KeyImageURL))
	ui.addBtn.SetText(ui.localization.GetText(KeyAdd))
	ui.emptyLabel.SetText(ui.localization.GetText(KeyEmptyList))

	// Refresh list so card buttons pick up the new language
	ui.entryList.Refresh()
}

// onAddClick submits the draft; the fields are cleared by the draft callback
func (ui *RootUI) onAddClick() {
	entry, err := ui.form.Submit()
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			ui.showValidationHint(validationErr)
			return
		}
		ui.showHint(ui.localization.GetText(KeyErrorAddingRecipe) + ": " + err.Error())
		return
	}

	log.Printf("Entry added: ID=%s, Name=%q, rows before refresh=%d", entry.ID, entry.Name, ui.RowCount())
	ui.hideHint()
}

// showValidationHint tells the user which field still needs a value and focuses it
func (ui *RootUI) showValidationHint(err *model.ValidationError) {
	target := ui.nameEntry
	key := KeyNameRequired
	if err.Field == model.FieldImageReference {
		target = ui.imageEntry
		key = KeyImageRequired
	}

	ui.showHint(ui.localization.GetText(key))
	if c := ui.window.Canvas(); c != nil {
		c.Focus(target)
	}
}

// showHint displays a message under the form and hides it after a while
func (ui *RootUI) showHint(message string) {
	ui.hintLabel.SetText(message)
	ui.hintContainer.Show()
	ui.hintContainer.Refresh()

	if ui.hintTimer != nil {
		ui.hintTimer.Stop()
	}
	ui.hintTimer = time.AfterFunc(HintAutoHide, func() {
		fyne.Do(ui.hideHint)
	})
}

// hideHint hides the hint panel
func (ui *RootUI) hideHint() {
	if ui.hintTimer != nil {
		ui.hintTimer.Stop()
		ui.hintTimer = nil
	}
	ui.hintContainer.Hide()
}

// onDeleteEntry forwards a card's delete to the presenter
func (ui *RootUI) onDeleteEntry(entryID string) {
	ui.source.OnDeleteRequested(entryID)
}

// refreshRows re-reads the presenter rows and redraws the list. It always
// reads the latest rows, so callbacks arriving out of order cannot show a
// stale list.
func (ui *RootUI) refreshRows() {
	rows := ui.source.Rows()

	ui.rowsMutex.Lock()
	ui.rows = rows
	ui.rowsMutex.Unlock()

	if len(rows) == 0 {
		ui.emptyLabel.Show()
	} else {
		ui.emptyLabel.Hide()
	}
	ui.entryList.Refresh()
}

// updateEntryItem points a recycled card at the row for id
func (ui *RootUI) updateEntryItem(id widget.ListItemID, item fyne.CanvasObject) {
	ui.rowsMutex.RLock()
	if id < 0 || id >= len(ui.rows) {
		ui.rowsMutex.RUnlock()
		return
	}
	row := ui.rows[id]
	ui.rowsMutex.RUnlock()

	card, ok := item.(*EntryCard)
	if !ok {
		log.Printf("Unexpected list item type %T", item)
		return
	}
	card.SetImageHeight(ui.settings.GetCardImageHeight())
	card.SetRow(row)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// RowCount returns the number of rows the list shows
func (ui *RootUI) RowCount() int {
	ui.rowsMutex.RLock()
	defer ui.rowsMutex.RUnlock()
	return len(ui.rows)
}
