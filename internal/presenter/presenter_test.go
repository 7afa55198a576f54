package presenter

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/ytget/healthy-living/internal/entrystore"
	"github.com/ytget/healthy-living/internal/model"
)

// gatedFetcher blocks each fetch until the test releases its reference
type gatedFetcher struct {
	mu      sync.Mutex
	gates   map[string]chan error
	started chan string
}

func newGatedFetcher() *gatedFetcher {
	return &gatedFetcher{
		gates:   make(map[string]chan error),
		started: make(chan string, 16),
	}
}

func (f *gatedFetcher) gate(reference string) chan error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.gates[reference]
	if !ok {
		ch = make(chan error, 4)
		f.gates[reference] = ch
	}
	return ch
}

func (f *gatedFetcher) Fetch(ctx context.Context, reference string) (image.Image, error) {
	f.started <- reference
	select {
	case err := <-f.gate(reference):
		if err != nil {
			return nil, err
		}
		return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *gatedFetcher) release(reference string, err error) {
	f.gate(reference) <- err
}

func waitStarted(t *testing.T, f *gatedFetcher, reference string) {
	t.Helper()
	select {
	case got := <-f.started:
		if got != reference {
			t.Fatalf("Expected fetch for %s, got %s", reference, got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Timed out waiting for fetch of %s", reference)
	}
}

func waitForState(t *testing.T, p *Presenter, id string, want model.ImageState) Row {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if row, ok := p.Row(id); ok && row.ImageState == want {
			return row
		}
		time.Sleep(5 * time.Millisecond)
	}
	row, _ := p.Row(id)
	t.Fatalf("Timed out waiting for %s to become %s, got %s", id, want, row.ImageState)
	return Row{}
}

func TestRows_FollowCollectionOrder(t *testing.T) {
	store := entrystore.NewService()
	fetcher := newGatedFetcher()
	p := New(store, fetcher)
	p.Start()
	defer p.Close()

	a, _ := store.Add("A", "ref-a")
	waitStarted(t, fetcher, "ref-a")
	b, _ := store.Add("B", "ref-b")
	waitStarted(t, fetcher, "ref-b")
	c, _ := store.Add("C", "ref-c")
	waitStarted(t, fetcher, "ref-c")

	rows := p.Rows()
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	for i, id := range []string{a.ID, b.ID, c.ID} {
		if rows[i].Entry.ID != id {
			t.Errorf("Row %d: expected %s, got %s", i, id, rows[i].Entry.ID)
		}
		if rows[i].ImageState != model.ImageStatePending {
			t.Errorf("Row %d: expected Pending, got %s", i, rows[i].ImageState)
		}
	}

	fetcher.release("ref-a", nil)
	fetcher.release("ref-b", nil)
	fetcher.release("ref-c", nil)
}

func TestFetch_LoadedAndFailed(t *testing.T) {
	store := entrystore.NewService()
	fetcher := newGatedFetcher()
	p := New(store, fetcher)
	p.Start()
	defer p.Close()

	good, _ := store.Add("Salad", "ref-good")
	waitStarted(t, fetcher, "ref-good")
	bad, _ := store.Add("Soup", "ref-bad")
	waitStarted(t, fetcher, "ref-bad")

	fetcher.release("ref-bad", errors.New("404"))
	failed := waitForState(t, p, bad.ID, model.ImageStateFailed)
	if failed.Err == nil || failed.Image != nil {
		t.Errorf("Expected failed row with error and no image, got %+v", failed)
	}

	// the other row is not blocked by the failure
	if row, _ := p.Row(good.ID); row.ImageState != model.ImageStatePending {
		t.Errorf("Expected other row to stay Pending, got %s", row.ImageState)
	}

	fetcher.release("ref-good", nil)
	loaded := waitForState(t, p, good.ID, model.ImageStateLoaded)
	if loaded.Image == nil || loaded.Err != nil {
		t.Errorf("Expected loaded row with image, got %+v", loaded)
	}
}

func TestFetch_ResultForDeletedRowIsDiscarded(t *testing.T) {
	store := entrystore.NewService()
	fetcher := &blockingFetcher{release: make(chan struct{}), done: make(chan struct{}, 1)}
	p := New(store, fetcher)
	p.Start()
	defer p.Close()

	entry, _ := store.Add("Salad", "ref")
	p.OnDeleteRequested(entry.ID)

	close(fetcher.release)
	select {
	case <-fetcher.done:
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for fetch to return")
	}
	// let the presenter apply or discard the late result
	time.Sleep(20 * time.Millisecond)

	if _, ok := p.Row(entry.ID); ok {
		t.Error("Expected deleted row not to be resurrected by a late fetch")
	}
	if len(p.Rows()) != 0 {
		t.Errorf("Expected no rows, got %d", len(p.Rows()))
	}
}

// blockingFetcher ignores cancellation and returns only once released
type blockingFetcher struct {
	release chan struct{}
	done    chan struct{}
}

func (f *blockingFetcher) Fetch(ctx context.Context, reference string) (image.Image, error) {
	<-f.release
	defer func() { f.done <- struct{}{} }()
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func TestDuplicates_AreIndependentRows(t *testing.T) {
	store := entrystore.NewService()
	fetcher := newGatedFetcher()
	p := New(store, fetcher)
	p.Start()
	defer p.Close()

	first, _ := store.Add("Salad", "ref-a")
	waitStarted(t, fetcher, "ref-a")
	second, _ := store.Add("Salad", "ref-a")
	waitStarted(t, fetcher, "ref-a")

	if len(p.Rows()) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(p.Rows()))
	}

	p.OnDeleteRequested(first.ID)

	rows := p.Rows()
	if len(rows) != 1 || rows[0].Entry.ID != second.ID {
		t.Fatalf("Expected only the second duplicate to remain, got %+v", rows)
	}

	// the cancelled fetch may still take one release
	fetcher.release("ref-a", nil)
	fetcher.release("ref-a", nil)
	waitForState(t, p, second.ID, model.ImageStateLoaded)
}

func TestOnDeleteRequested_MissingEntryIsSilent(t *testing.T) {
	store := entrystore.NewService()
	p := New(store, newGatedFetcher())
	p.Start()
	defer p.Close()

	p.OnDeleteRequested("entry-missing")

	if store.Len() != 0 || len(p.Rows()) != 0 {
		t.Error("Expected nothing to change")
	}
}

func TestUpdateCallback_CalledOnMutationAndFetch(t *testing.T) {
	store := entrystore.NewService()
	fetcher := newGatedFetcher()
	p := New(store, fetcher)

	updates := make(chan []Row, 16)
	p.SetUpdateCallback(func(rows []Row) { updates <- rows })
	p.Start()
	defer p.Close()

	// initial render of the empty store
	if rows := <-updates; len(rows) != 0 {
		t.Fatalf("Expected empty initial render, got %d rows", len(rows))
	}

	entry, _ := store.Add("Salad", "ref")
	if rows := <-updates; len(rows) != 1 || rows[0].ImageState != model.ImageStatePending {
		t.Fatalf("Expected one Pending row, got %+v", rows)
	}

	waitStarted(t, fetcher, "ref")
	fetcher.release("ref", nil)

	select {
	case rows := <-updates:
		if len(rows) != 1 || rows[0].Entry.ID != entry.ID || rows[0].ImageState != model.ImageStateLoaded {
			t.Fatalf("Expected one Loaded row, got %+v", rows)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for fetch update")
	}
}

func TestStart_RendersExistingEntries(t *testing.T) {
	store := entrystore.NewService()
	entry, _ := store.Add("Salad", "ref")

	fetcher := newGatedFetcher()
	p := New(store, fetcher)
	p.Start()
	defer p.Close()

	waitStarted(t, fetcher, "ref")
	if row, ok := p.Row(entry.ID); !ok || row.ImageState != model.ImageStatePending {
		t.Fatalf("Expected Pending row for existing entry, got %+v (ok=%v)", row, ok)
	}
	fetcher.release("ref", nil)
}

// waitingFetcher returns only when its row is cancelled
type waitingFetcher struct{}

func (waitingFetcher) Fetch(ctx context.Context, reference string) (image.Image, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStart_DuringConcurrentAdds(t *testing.T) {
	store := entrystore.NewService()
	p := New(store, waitingFetcher{})
	defer p.Close()

	const adders = 4
	const perAdder = 25

	var wg sync.WaitGroup
	for a := 0; a < adders; a++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perAdder; i++ {
				_, _ = store.Add("Salad", "ref")
			}
		}()
	}

	p.Start()
	wg.Wait()

	rows := p.Rows()
	if len(rows) != adders*perAdder {
		t.Fatalf("Expected %d rows, got %d", adders*perAdder, len(rows))
	}
	for i, entry := range store.Snapshot() {
		if rows[i].Entry.ID != entry.ID {
			t.Fatalf("Row %d: expected %s, got %s", i, entry.ID, rows[i].Entry.ID)
		}
	}
}

func TestClose_CancelsFetchesAndStopsRendering(t *testing.T) {
	store := entrystore.NewService()
	fetcher := newGatedFetcher()
	p := New(store, fetcher)
	p.Start()

	_, _ = store.Add("Salad", "ref")
	waitStarted(t, fetcher, "ref")

	// Close waits for the fetch goroutine, which returns on cancellation
	p.Close()
	p.Close()

	_, _ = store.Add("Soup", "ref-2")
	select {
	case ref := <-fetcher.started:
		t.Errorf("Expected no fetch after Close, got %s", ref)
	default:
	}
}
