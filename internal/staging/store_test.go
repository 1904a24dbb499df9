package staging

import (
	"sync"
	"testing"

	"thali/internal/items"
)

func batchOf(names ...string) []items.Item {
	batch := make([]items.Item, 0, len(names))
	for _, name := range names {
		batch = append(batch, &items.Restaurant{Name: name, Status: items.StatusPending})
	}
	return batch
}

func TestPutThenGetRoundTrip(t *testing.T) {
	store := NewStore()

	batch := batchOf("one", "two", "three")
	store.Put(batch)

	got := store.Get()
	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	for i := range batch {
		if got[i] != batch[i] {
			t.Fatalf("order changed at position %d", i)
		}
	}
}

func TestGetWithoutPutIsEmpty(t *testing.T) {
	store := NewStore()
	if got := store.Get(); len(got) != 0 {
		t.Fatalf("expected empty batch, got %d items", len(got))
	}
}

func TestPutReplacesWholeBatch(t *testing.T) {
	store := NewStore()

	store.Put(batchOf("old-a", "old-b"))
	store.Put(batchOf("new"))

	got := store.Get()
	if len(got) != 1 {
		t.Fatalf("expected last batch to win, got %d items", len(got))
	}
	if got[0].(*items.Restaurant).Name != "new" {
		t.Fatalf("expected replacement batch, got %q", got[0].(*items.Restaurant).Name)
	}
}

func TestClear(t *testing.T) {
	store := NewStore()
	store.Put(batchOf("a"))
	store.Clear()

	if got := store.Get(); len(got) != 0 {
		t.Fatalf("expected empty batch after clear, got %d items", len(got))
	}
}

func TestConcurrentAccessNeverObservesPartialBatch(t *testing.T) {
	store := NewStore()
	batch := batchOf("a", "b", "c", "d", "e")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Put(batch)
		}()
		go func() {
			defer wg.Done()
			got := store.Get()
			// Either the whole batch or nothing, never a slice mid-write.
			if len(got) != 0 && len(got) != len(batch) {
				t.Errorf("observed partial batch of %d items", len(got))
			}
		}()
	}
	wg.Wait()
}
