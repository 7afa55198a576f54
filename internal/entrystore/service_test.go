package entrystore

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ytget/healthy-living/internal/model"
)

func TestNewService(t *testing.T) {
	service := NewService()

	if service.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", service.Len())
	}

	if len(service.Snapshot()) != 0 {
		t.Errorf("Expected empty snapshot, got %d entries", len(service.Snapshot()))
	}
}

func TestAdd_AppendsInInsertionOrder(t *testing.T) {
	service := NewService()

	names := []string{"Salad", "Soup", "Smoothie"}
	for _, name := range names {
		if _, err := service.Add(name, "http://x/"+name+".png"); err != nil {
			t.Fatalf("Expected no error adding %s, got %v", name, err)
		}
	}

	snapshot := service.Snapshot()
	if len(snapshot) != len(names) {
		t.Fatalf("Expected %d entries, got %d", len(names), len(snapshot))
	}

	for i, name := range names {
		if snapshot[i].Name != name {
			t.Errorf("Entry %d: expected name %s, got %s", i, name, snapshot[i].Name)
		}
		if i > 0 && snapshot[i].Seq <= snapshot[i-1].Seq {
			t.Errorf("Entry %d: expected Seq to increase, got %d after %d", i, snapshot[i].Seq, snapshot[i-1].Seq)
		}
	}
}

func TestAdd_RejectsBlankFields(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"", "http://x/img.png"},
		{"   ", "http://x/img.png"},
		{"Salad", ""},
		{"Salad", "\t "},
		{"", ""},
	}

	for _, test := range tests {
		service := NewService()
		_, err := service.Add(test.name, test.ref)
		if !errors.Is(err, model.ErrEmptyField) {
			t.Errorf("Add(%q, %q) = %v, expected ErrEmptyField", test.name, test.ref, err)
		}
		if service.Len() != 0 {
			t.Errorf("Add(%q, %q) changed the collection to %d entries", test.name, test.ref, service.Len())
		}
	}
}

func TestAdd_PreservesWhitespace(t *testing.T) {
	service := NewService()

	entry, err := service.Add("  Salad ", " http://x/img.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if entry.Name != "  Salad " || entry.ImageReference != " http://x/img.png" {
		t.Errorf("Expected values stored untrimmed, got %q / %q", entry.Name, entry.ImageReference)
	}
}

func TestAdd_DuplicatesAreDistinct(t *testing.T) {
	service := NewService()

	first, err := service.Add("Salad", "http://x/img.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := service.Add("Salad", "http://x/img.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first.ID == second.ID {
		t.Fatal("Expected duplicate entries to have distinct IDs")
	}

	if !first.SameContent(second) {
		t.Error("Expected duplicate entries to have the same content")
	}

	service.mu.RLock()
	duplicate := service.hasContentLocked(model.Entry{Name: "Salad", ImageReference: "http://x/img.png"})
	service.mu.RUnlock()
	if !duplicate {
		t.Error("Expected stored content to be detected as a duplicate")
	}

	if err := service.Remove(first.ID); err != nil {
		t.Fatalf("Expected no error removing first duplicate, got %v", err)
	}

	snapshot := service.Snapshot()
	if len(snapshot) != 1 || snapshot[0].ID != second.ID {
		t.Fatalf("Expected only the second duplicate to remain, got %+v", snapshot)
	}

	if err := service.Remove(second.ID); err != nil {
		t.Fatalf("Expected no error removing second duplicate, got %v", err)
	}

	if service.Len() != 0 {
		t.Errorf("Expected empty store, got %d entries", service.Len())
	}
}

func TestRemove_KeepsRelativeOrder(t *testing.T) {
	service := NewService()

	var ids []string
	for i := 0; i < 5; i++ {
		entry, err := service.Add(fmt.Sprintf("Recipe %d", i), "http://x/img.png")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		ids = append(ids, entry.ID)
	}

	if err := service.Remove(ids[2]); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snapshot := service.Snapshot()
	if len(snapshot) != 4 {
		t.Fatalf("Expected 4 entries, got %d", len(snapshot))
	}

	expected := []string{ids[0], ids[1], ids[3], ids[4]}
	for i, id := range expected {
		if snapshot[i].ID != id {
			t.Errorf("Entry %d: expected ID %s, got %s", i, id, snapshot[i].ID)
		}
	}
}

func TestRemove_NotFound(t *testing.T) {
	service := NewService()

	entry, err := service.Add("Salad", "http://x/img.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	err = service.Remove("entry-missing")
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if service.Len() != 1 {
		t.Errorf("Expected collection unchanged, got %d entries", service.Len())
	}

	if err := service.Remove(entry.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// second removal of the same entry
	if err := service.Remove(entry.ID); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on repeated remove, got %v", err)
	}
}

func TestGet(t *testing.T) {
	service := NewService()

	entry, err := service.Add("Salad", "http://x/img.png")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	retrieved, exists := service.Get(entry.ID)
	if !exists {
		t.Fatal("Expected entry to exist")
	}

	if retrieved.ID != entry.ID {
		t.Errorf("Expected entry ID to be '%s', got '%s'", entry.ID, retrieved.ID)
	}

	if _, exists := service.Get("non-existing-id"); exists {
		t.Error("Expected entry to not exist")
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	service := NewService()

	if _, err := service.Add("Salad", "http://x/img.png"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	snapshot := service.Snapshot()
	snapshot[0].Name = "Changed"

	if service.Snapshot()[0].Name != "Salad" {
		t.Error("Expected store contents to be unaffected by snapshot mutation")
	}
}

func TestSubscribe_ReceivesEveryMutation(t *testing.T) {
	service := NewService()

	var lengths []int
	unsubscribe := service.Subscribe(func(entries []model.Entry) {
		lengths = append(lengths, len(entries))
	})

	entry, _ := service.Add("Salad", "http://x/img.png")
	_, _ = service.Add("Soup", "http://x/soup.png")
	_, _ = service.Add("", "http://x/bad.png")
	_ = service.Remove(entry.ID)
	_ = service.Remove(entry.ID)

	expected := []int{1, 2, 1}
	if len(lengths) != len(expected) {
		t.Fatalf("Expected %d notifications, got %d (%v)", len(expected), len(lengths), lengths)
	}
	for i := range expected {
		if lengths[i] != expected[i] {
			t.Errorf("Notification %d: expected length %d, got %d", i, expected[i], lengths[i])
		}
	}

	unsubscribe()
	unsubscribe()
	_, _ = service.Add("Tea", "http://x/tea.png")

	if len(lengths) != len(expected) {
		t.Errorf("Expected no notifications after unsubscribe, got %d", len(lengths))
	}
}

func TestSubscribe_CanReadSnapshotInsideCallback(t *testing.T) {
	service := NewService()

	var seen int
	service.Subscribe(func(entries []model.Entry) {
		seen = service.Len()
	})

	_, _ = service.Add("Salad", "http://x/img.png")

	if seen != 1 {
		t.Errorf("Expected Len() inside callback to be 1, got %d", seen)
	}
}

func TestConcurrentMutations_NotificationsAreOrdered(t *testing.T) {
	service := NewService()

	var mu sync.Mutex
	var lengths []int
	service.Subscribe(func(entries []model.Entry) {
		mu.Lock()
		lengths = append(lengths, len(entries))
		mu.Unlock()
	})

	const workers = 8
	const perWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := service.Add(fmt.Sprintf("w%d-%d", w, i), "http://x/img.png"); err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			}
		}(w)
	}
	wg.Wait()

	if service.Len() != workers*perWorker {
		t.Fatalf("Expected %d entries, got %d", workers*perWorker, service.Len())
	}

	mu.Lock()
	defer mu.Unlock()
	for i, n := range lengths {
		if n != i+1 {
			t.Fatalf("Notification %d: expected length %d, got %d", i, i+1, n)
		}
	}
}

func TestWatch_DeliversCurrentSnapshotFirst(t *testing.T) {
	service := NewService()
	_, _ = service.Add("Salad", "http://x/img.png")

	var lengths []int
	unsubscribe := service.Watch(func(entries []model.Entry) {
		lengths = append(lengths, len(entries))
	})

	_, _ = service.Add("Soup", "http://x/soup.png")
	unsubscribe()
	_, _ = service.Add("Tea", "http://x/tea.png")

	if len(lengths) != 2 || lengths[0] != 1 || lengths[1] != 2 {
		t.Errorf("Expected notifications [1 2], got %v", lengths)
	}
}

func TestWatch_NoMutationIsMissedUnderConcurrency(t *testing.T) {
	service := NewService()

	const workers = 4
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, _ = service.Add(fmt.Sprintf("w%d-%d", w, i), "http://x/img.png")
			}
		}(w)
	}

	var mu sync.Mutex
	var lengths []int
	service.Watch(func(entries []model.Entry) {
		mu.Lock()
		lengths = append(lengths, len(entries))
		mu.Unlock()
	})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(lengths) == 0 {
		t.Fatal("Expected at least the initial snapshot")
	}
	for i := 1; i < len(lengths); i++ {
		if lengths[i] != lengths[i-1]+1 {
			t.Fatalf("Notification %d: expected length %d, got %d (%v)", i, lengths[i-1]+1, lengths[i], lengths)
		}
	}
	if last := lengths[len(lengths)-1]; last != workers*perWorker {
		t.Errorf("Expected last snapshot of %d entries, got %d", workers*perWorker, last)
	}
}

func TestGenerateEntryID(t *testing.T) {
	id1 := generateEntryID()
	id2 := generateEntryID()

	if id1 == id2 {
		t.Error("Expected different entry IDs")
	}

	if !strings.HasPrefix(id1, EntryIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", EntryIDPrefix, id1)
	}

	// prefix + 36 chars for UUID
	if len(id1) != len(EntryIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(EntryIDPrefix)+36, len(id1), id1)
	}
}
