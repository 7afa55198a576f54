package presenter

import (
	"context"
	"errors"
	"image"
	"log"
	"sync"

	"github.com/ytget/healthy-living/internal/model"
)

// Row is what the view renders for one entry
type Row struct {
	Entry      model.Entry
	ImageState model.ImageState
	Image      image.Image // set only when ImageState is Loaded
	Err        error       // set only when ImageState is Failed
}

type rowState struct {
	row    Row
	cancel context.CancelFunc
}

// Presenter keeps rows in collection order and their image states
type Presenter struct {
	source  EntrySource
	fetcher Fetcher

	mu      sync.Mutex
	order   []string
	rows    map[string]*rowState
	closed  bool
	started bool

	ctx         context.Context
	cancel      context.CancelFunc
	unsubscribe func()
	onUpdate    func([]Row)

	wg sync.WaitGroup
}

// New creates a presenter over the given store and fetcher
func New(source EntrySource, fetcher Fetcher) *Presenter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Presenter{
		source:  source,
		fetcher: fetcher,
		rows:    make(map[string]*rowState),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetUpdateCallback sets the callback invoked whenever rows change.
// It may be called from fetch goroutines.
func (p *Presenter) SetUpdateCallback(callback func([]Row)) {
	p.mu.Lock()
	p.onUpdate = callback
	p.mu.Unlock()
}

// Start renders the current snapshot and every later mutation. The store
// delivers the first snapshot atomically with the subscription, so it is
// safe to call while other goroutines mutate the store.
func (p *Presenter) Start() {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	unsubscribe := p.source.Watch(p.Render)

	p.mu.Lock()
	p.unsubscribe = unsubscribe
	closed := p.closed
	p.mu.Unlock()

	// Close ran while subscribing
	if closed {
		unsubscribe()
	}
}

// Render reconciles rows with a snapshot: new entries get a Pending row and a
// fetch, removed entries lose their row and have their fetch cancelled.
// Rows that survive keep their image state.
func (p *Presenter) Render(snapshot []model.Entry) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	present := make(map[string]struct{}, len(snapshot))
	order := make([]string, 0, len(snapshot))
	var started []*rowState

	for _, entry := range snapshot {
		present[entry.ID] = struct{}{}
		order = append(order, entry.ID)
		if _, exists := p.rows[entry.ID]; exists {
			continue
		}

		ctx, cancel := context.WithCancel(p.ctx)
		state := &rowState{
			row:    Row{Entry: entry, ImageState: model.ImageStatePending},
			cancel: cancel,
		}
		p.rows[entry.ID] = state
		started = append(started, state)

		p.wg.Add(1)
		go p.fetch(ctx, entry)
	}

	for id, state := range p.rows {
		if _, ok := present[id]; !ok {
			state.cancel()
			delete(p.rows, id)
		}
	}

	p.order = order
	rows, callback := p.rowsLocked(), p.onUpdate
	p.mu.Unlock()

	if len(started) > 0 {
		log.Printf("Rendering %d rows, %d new fetches", len(rows), len(started))
	}

	if callback != nil {
		callback(rows)
	}
}

// fetch resolves one entry's image and settles its row if it still exists
func (p *Presenter) fetch(ctx context.Context, entry model.Entry) {
	defer p.wg.Done()

	img, err := p.fetcher.Fetch(ctx, entry.ImageReference)

	next := model.ImageStateLoaded
	if err != nil {
		next = model.ImageStateFailed
	}

	p.mu.Lock()
	state, exists := p.rows[entry.ID]
	if p.closed || !exists || !state.row.ImageState.CanTransitionTo(next) {
		p.mu.Unlock()
		log.Printf("Discarding stale image result for entry %s", entry.ID)
		return
	}

	state.row.ImageState = next
	if err != nil {
		state.row.Err = err
		log.Printf("Image fetch failed for entry %s: %v", entry.ID, err)
	} else {
		state.row.Image = img
	}
	rows, callback := p.rowsLocked(), p.onUpdate
	p.mu.Unlock()

	if callback != nil {
		callback(rows)
	}
}

// OnDeleteRequested forwards a delete to the store. An entry that is already
// gone is not an error for the user; the next snapshot simply lacks it.
func (p *Presenter) OnDeleteRequested(id string) {
	if err := p.source.Remove(id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			log.Printf("Delete ignored, entry already gone: %s", id)
			return
		}
		log.Printf("Error removing entry %s: %v", id, err)
	}
}

// Rows returns the current rows in collection order
func (p *Presenter) Rows() []Row {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rowsLocked()
}

// Row returns the row for an entry ID
func (p *Presenter) Row(id string) (Row, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	state, ok := p.rows[id]
	if !ok {
		return Row{}, false
	}
	return state.row, true
}

// Close unsubscribes from the store, cancels in-flight fetches and waits for
// their goroutines to return
func (p *Presenter) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unsubscribe := p.unsubscribe
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	p.cancel()
	p.wg.Wait()
}

func (p *Presenter) rowsLocked() []Row {
	rows := make([]Row, 0, len(p.order))
	for _, id := range p.order {
		if state, ok := p.rows[id]; ok {
			rows = append(rows, state.row)
		}
	}
	return rows
}
