package entrystore

import (
	"github.com/ytget/healthy-living/internal/model"
)

// Store defines the interface for the entry store.
type Store interface {
	Add(name, imageReference string) (model.Entry, error)
	Remove(id string) error
	Get(id string) (model.Entry, bool)
	Snapshot() []model.Entry
	Len() int

	// Subscribe registers fn for every future mutation and returns a function
	// that removes it. fn must not call Add or Remove synchronously.
	Subscribe(fn func([]model.Entry)) (unsubscribe func())

	// Watch is Subscribe plus an initial call with the current snapshot,
	// with no mutation possible in between.
	Watch(fn func([]model.Entry)) (unsubscribe func())
}
