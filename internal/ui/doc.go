// Package ui contains the Fyne-based user interface: the recipe form, the
// scrolling list of entry cards, and the settings dialog. It forwards user
// intents to the form controller and presenter and never mutates the entry
// collection itself. All UI strings are localized via Localization.
package ui
