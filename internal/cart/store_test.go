package cart

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"

	"github.com/dookiees/bakery-backend/internal/catalog"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testProduct(name string, price float64) catalog.ProductDTO {
	return catalog.ProductDTO{
		ID:    uuid.NewString(),
		Slug:  name,
		Name:  name,
		Price: price,
	}
}

func newTestStore(t *testing.T, storage Storage) *Store {
	t.Helper()
	store, err := NewStore(storage, "sess-1", testLogger())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.Hydrate(context.Background())
	return store
}

func TestStoreAdd_MergesQuantities(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())
	product := testProduct("choc-chip", 59)

	if err := store.Add(ctx, product, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, product, 3); err != nil {
		t.Fatalf("second add: %v", err)
	}

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected single merged entry, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", items[0].Quantity)
	}
	if !store.IsOpen() {
		t.Fatal("expected add to open the cart")
	}
}

func TestStoreUpdateQuantity_FloorRemovesEntry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())
	product := testProduct("butter", 45)

	if err := store.Add(ctx, product, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.UpdateQuantity(ctx, product.ID, 0); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatal("expected entry removed when quantity drops below 1")
	}

	if err := store.Add(ctx, product, 1); err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if err := store.UpdateQuantity(ctx, product.ID, 7); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := store.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected absolute set to 7, got %d", got)
	}
}

func TestStoreRemove_AbsentProductIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())

	if err := store.Remove(ctx, uuid.NewString()); err != nil {
		t.Fatalf("expected no error removing absent product, got %v", err)
	}
}

func TestStoreTotalAndCount_ComputedFresh(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, NewMemoryStorage())
	chocChip := testProduct("choc-chip", 59)
	butter := testProduct("butter", 45)

	if err := store.Add(ctx, chocChip, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, butter, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := store.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
	if got := store.Total(); got.InexactFloat64() != 163 {
		t.Fatalf("expected total 163, got %s", got)
	}

	if err := store.UpdateQuantity(ctx, chocChip.ID, 3); err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if got := store.Total(); got.InexactFloat64() != 222 {
		t.Fatalf("expected total 222 after quantity change, got %s", got)
	}
}

func TestStorePersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := newTestStore(t, storage)
	chocChip := testProduct("choc-chip", 59)
	butter := testProduct("butter", 45)

	if err := store.Add(ctx, chocChip, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, butter, 4); err != nil {
		t.Fatalf("add: %v", err)
	}

	reloaded := newTestStore(t, storage)
	if !reloaded.Hydrated() {
		t.Fatal("expected reloaded store to report hydrated")
	}

	want := map[string]int{chocChip.ID: 2, butter.ID: 4}
	items := reloaded.Items()
	if len(items) != len(want) {
		t.Fatalf("expected %d entries after reload, got %d", len(want), len(items))
	}
	for _, item := range items {
		if want[item.ID] != item.Quantity {
			t.Fatalf("entry %s: expected quantity %d, got %d", item.ID, want[item.ID], item.Quantity)
		}
	}
}

func TestStoreHydrate_ToleratesCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	if err := storage.Save(ctx, "sess-1", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt snapshot: %v", err)
	}

	store := newTestStore(t, storage)
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart after corrupt snapshot")
	}
	if !store.Hydrated() {
		t.Fatal("expected hydrated flag set even when snapshot is corrupt")
	}
}

func TestStoreClear_RemovesPersistedState(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	store := newTestStore(t, storage)

	if err := store.Add(ctx, testProduct("choc-chip", 59), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart after clear")
	}
	if _, ok, err := storage.Load(ctx, "sess-1"); err != nil || ok {
		t.Fatalf("expected persisted snapshot removed, ok=%v err=%v", ok, err)
	}
}

func TestStoreHydrate_ForeignShapeStartsEmpty(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	if err := storage.Save(ctx, "sess-1", []byte(`[{"quantity":0}]`)); err != nil {
		t.Fatalf("seed snapshot: %v", err)
	}

	store := newTestStore(t, storage)
	if len(store.Items()) != 0 {
		t.Fatal("expected foreign snapshot discarded")
	}
}
