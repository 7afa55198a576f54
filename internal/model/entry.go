package model

import (
	"strings"
	"time"
)

// Entry is one recorded recipe. ID and Seq are assigned by the store and are
// not part of content equality.
type Entry struct {
	ID             string    // stable identity, "entry-<uuid>"
	Seq            uint64    // insertion sequence, strictly increasing per store
	Name           string    // display name, stored exactly as submitted
	ImageReference string    // URL or URI handed to the image fetcher untouched
	CreatedAt      time.Time // when the store accepted the entry
}

// SameContent reports whether both entries carry the same name and image
// reference, ignoring identity.
func (e Entry) SameContent(other Entry) bool {
	return e.Name == other.Name && e.ImageReference == other.ImageReference
}

// DisplayName returns the text shown on the entry card.
func (e Entry) DisplayName() string {
	return e.Name
}

// Draft holds the not-yet-submitted form values.
type Draft struct {
	Name           string
	ImageReference string
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Validate checks both fields independently and reports the first blank one.
func (d Draft) Validate() error {
	return ValidateFields(d.Name, d.ImageReference)
}

// IsEmpty reports whether both fields are exactly empty, which is the state
// after a successful submit.
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.ImageReference == ""
}

// ValidateFields rejects a blank name or a blank image reference. Values are
// never trimmed; surrounding whitespace on an accepted value is kept.
func ValidateFields(name, imageReference string) error {
	if IsBlank(name) {
		return &ValidationError{Field: FieldName}
	}
	if IsBlank(imageReference) {
		return &ValidationError{Field: FieldImageReference}
	}
	return nil
}
