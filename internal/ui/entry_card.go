package ui

import (
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/healthy-living/internal/model"
	"github.com/ytget/healthy-living/internal/presenter"
)

// EntryCard shows one entry: its image area, its name and a delete button
type EntryCard struct {
	widget.BaseWidget

	row          presenter.Row
	localization *Localization
	imageHeight  float32

	// UI components
	image        *canvas.Image
	spinner      *widget.ProgressBarInfinite
	brokenIcon   *widget.Icon
	statusLabel  *widget.Label
	nameLabel    *widget.Label
	deleteBtn    *widget.Button
	imageSpacer  *canvas.Rectangle
	imageContent *fyne.Container

	onDelete func(entryID string)
}

// NewEntryCard creates an empty card; list items are filled through SetRow
func NewEntryCard(localization *Localization, imageHeight float32, onDelete func(entryID string)) *EntryCard {
	card := &EntryCard{
		localization: localization,
		imageHeight:  imageHeight,
		onDelete:     onDelete,
	}
	card.ExtendBaseWidget(card)
	card.createUI()
	return card
}

func (c *EntryCard) createUI() {
	c.image = canvas.NewImageFromImage(nil)
	c.image.FillMode = canvas.ImageFillContain
	c.image.ScaleMode = canvas.ImageScaleSmooth

	c.spinner = widget.NewProgressBarInfinite()
	c.spinner.Hide()

	c.brokenIcon = widget.NewIcon(theme.BrokenImageIcon())
	c.brokenIcon.Hide()

	c.statusLabel = widget.NewLabel("")
	c.statusLabel.Alignment = fyne.TextAlignCenter
	c.statusLabel.Importance = widget.LowImportance
	c.statusLabel.Hide()

	c.nameLabel = widget.NewLabel("")
	c.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	c.nameLabel.Wrapping = fyne.TextWrapWord
	c.nameLabel.Truncation = fyne.TextTruncateEllipsis

	c.deleteBtn = widget.NewButtonWithIcon(c.localization.GetText(KeyDelete), theme.DeleteIcon(), func() {
		// read the row at click time, not at construction; list items are recycled
		entryID := c.row.Entry.ID
		if entryID == "" {
			return
		}
		log.Printf("Delete clicked for entry %s", entryID)
		if c.onDelete != nil {
			c.onDelete(entryID)
		}
	})
	c.deleteBtn.Importance = widget.DangerImportance

	c.imageSpacer = canvas.NewRectangle(color.Transparent)
	c.imageSpacer.SetMinSize(fyne.NewSize(ImagePlaceholderW, c.imageHeight))

	c.imageContent = container.NewStack(
		c.imageSpacer,
		c.image,
		container.NewCenter(c.spinner),
		container.NewVBox(c.brokenIcon, c.statusLabel),
	)
}

// SetRow points the card at a row and updates what it shows
func (c *EntryCard) SetRow(row presenter.Row) {
	c.row = row
	c.updateFromRow()
	c.Refresh()
}

// Row returns the row currently shown
func (c *EntryCard) Row() presenter.Row {
	return c.row
}

// SetImageHeight changes the reserved image area height
func (c *EntryCard) SetImageHeight(height float32) {
	if height == c.imageHeight {
		return
	}
	c.imageHeight = height
	c.imageSpacer.SetMinSize(fyne.NewSize(ImagePlaceholderW, height))
	c.Refresh()
}

// updateFromRow switches the image area between spinner, image and broken icon
func (c *EntryCard) updateFromRow() {
	c.nameLabel.SetText(c.row.Entry.DisplayName())
	c.deleteBtn.SetText(c.localization.GetText(KeyDelete))

	switch c.row.ImageState {
	case model.ImageStateLoaded:
		c.spinner.Stop()
		c.spinner.Hide()
		c.brokenIcon.Hide()
		c.statusLabel.Hide()
		c.image.Image = c.row.Image
		c.image.Show()
	case model.ImageStateFailed:
		c.spinner.Stop()
		c.spinner.Hide()
		c.image.Image = nil
		c.image.Hide()
		c.brokenIcon.Show()
		c.statusLabel.SetText(c.AccessibleImageLabel() + "\n" + c.localization.GetText(KeyImageFailed))
		c.statusLabel.Show()
	default:
		c.image.Image = nil
		c.image.Hide()
		c.brokenIcon.Hide()
		c.statusLabel.Hide()
		c.spinner.Show()
		c.spinner.Start()
	}
	c.image.Refresh()
}

// AccessibleImageLabel names the image in place of a missing picture
func (c *EntryCard) AccessibleImageLabel() string {
	return c.localization.Format(KeyImageOf, c.row.Entry.DisplayName())
}

// CreateRenderer creates the widget renderer
func (c *EntryCard) CreateRenderer() fyne.WidgetRenderer {
	footer := container.NewBorder(nil, nil, nil, c.deleteBtn, c.nameLabel)

	nameSpacer := canvas.NewRectangle(color.Transparent)
	nameSpacer.SetMinSize(fyne.NewSize(CardMinWidth, CardNameMinHeight))

	background := canvas.NewRectangle(theme.Color(theme.ColorNameInputBackground))
	background.CornerRadius = theme.Size(theme.SizeNameInputRadius)

	content := container.NewStack(
		background,
		container.NewPadded(container.NewBorder(
			nil,
			container.NewStack(nameSpacer, footer),
			nil,
			nil,
			c.imageContent,
		)),
	)
	return widget.NewSimpleRenderer(container.NewPadded(content))
}
