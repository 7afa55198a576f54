package presenter

import (
	"context"
	"image"

	"github.com/ytget/healthy-living/internal/model"
)

// Fetcher resolves an image reference to a displayable image.
type Fetcher interface {
	Fetch(ctx context.Context, reference string) (image.Image, error)
}

// EntrySource is the part of the entry store the presenter reads from and
// forwards deletes to.
type EntrySource interface {
	Remove(id string) error
	Watch(fn func([]model.Entry)) (unsubscribe func())
}
