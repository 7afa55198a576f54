// Package form holds the draft name and image reference typed into the form
// and turns a submit into a store Add.
package form

import (
	"log"
	"sync"

	"github.com/ytget/healthy-living/internal/model"
)

// Adder is the part of the entry store the form needs
type Adder interface {
	Add(name, imageReference string) (model.Entry, error)
}

// Controller owns the draft and gatekeeps entry creation
type Controller struct {
	mu      sync.Mutex
	draft   model.Draft
	store   Adder
	onDraft func(model.Draft)
}

// NewController creates a controller with an empty draft
func NewController(store Adder) *Controller {
	return &Controller{store: store}
}

// OnDraftChanged sets the callback fired when Submit clears the draft.
// Setters do not fire it; the text fields already show what was typed.
func (c *Controller) OnDraftChanged(callback func(model.Draft)) {
	c.mu.Lock()
	c.onDraft = callback
	c.mu.Unlock()
}

// SetName overwrites the draft name without validating it
func (c *Controller) SetName(text string) {
	c.mu.Lock()
	c.draft.Name = text
	c.mu.Unlock()
}

// SetImageReference overwrites the draft image reference without validating it
func (c *Controller) SetImageReference(text string) {
	c.mu.Lock()
	c.draft.ImageReference = text
	c.mu.Unlock()
}

// Draft returns the current draft values
func (c *Controller) Draft() model.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit validates the draft and adds it to the store. The draft is reset
// only after a successful add; on any error it is left exactly as it was.
func (c *Controller) Submit() (model.Entry, error) {
	c.mu.Lock()
	draft := c.draft
	if err := draft.Validate(); err != nil {
		c.mu.Unlock()
		log.Printf("Submit rejected: %v (draft empty: %v)", err, draft.IsEmpty())
		return model.Entry{}, err
	}

	entry, err := c.store.Add(draft.Name, draft.ImageReference)
	if err != nil {
		c.mu.Unlock()
		log.Printf("Submit failed: %v", err)
		return model.Entry{}, err
	}

	c.draft = model.Draft{}
	callback := c.onDraft
	c.mu.Unlock()

	if callback != nil {
		callback(model.Draft{})
	}
	return entry, nil
}
