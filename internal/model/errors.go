package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyField is matched by every ValidationError.
	ErrEmptyField = errors.New("field is empty")

	// ErrNotFound is returned when an entry is no longer in the collection.
	ErrNotFound = errors.New("entry not found")
)

// Field names used in ValidationError.
const (
	FieldName           = "name"
	FieldImageReference = "image_reference"
)

// ValidationError reports which draft field was empty or whitespace only.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, ErrEmptyField)
}

// Is makes errors.Is(err, ErrEmptyField) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrEmptyField
}
