package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/dookiees/bakery-backend/internal/catalog"
	"github.com/dookiees/bakery-backend/pkg/logger"
)

// Item is a live product reference plus a mutable quantity. The persisted
// snapshot embeds the full product so the cart renders without a catalog
// round trip.
type Item struct {
	catalog.ProductDTO
	Quantity int `json:"quantity"`
}

// Store holds one session's cart. Every mutation persists the full snapshot
// through the configured storage adapter before returning; deriveds (count,
// total) are computed fresh on every read.
type Store struct {
	mu        sync.Mutex
	sessionID string
	items     []Item
	hydrated  bool
	open      bool
	storage   Storage
	log       *logger.Logger
}

// NewStore builds an empty, not-yet-hydrated store for the given session.
func NewStore(storage Storage, sessionID string, log *logger.Logger) (*Store, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if sessionID == "" {
		return nil, fmt.Errorf("session id required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Store{sessionID: sessionID, storage: storage, log: log}, nil
}

// Hydrate loads the persisted snapshot, if any. A missing or malformed
// snapshot yields an empty cart; corruption is logged, never surfaced. After
// Hydrate returns, Hydrated reports true so callers can distinguish
// "definitely empty" from "not yet loaded".
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.hydrated = true }()

	snapshot, ok, err := s.storage.Load(ctx, s.sessionID)
	if err != nil {
		s.log.Warn(ctx, fmt.Sprintf("cart snapshot load failed, starting empty: %v", err))
		return
	}
	if !ok {
		return
	}

	var items []Item
	if err := json.Unmarshal(snapshot, &items); err != nil {
		s.log.Warn(ctx, "discarding malformed cart snapshot")
		return
	}
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			s.log.Warn(ctx, "discarding malformed cart snapshot")
			return
		}
	}
	s.items = items
}

// Hydrated reports whether a snapshot load has been attempted.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Add merges the product into the cart: an existing entry's quantity grows by
// the requested amount, a new entry is appended. A successful add opens the
// cart UI.
func (s *Store) Add(ctx context.Context, product catalog.ProductDTO, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{ProductDTO: product, Quantity: quantity})
	}

	if err := s.persistLocked(ctx); err != nil {
		return err
	}
	s.open = true
	return nil
}

// UpdateQuantity sets an entry's quantity to exactly the given value. Values
// below 1 remove the entry.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return s.Remove(ctx, productID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			return s.persistLocked(ctx)
		}
	}
	return nil
}

// Remove deletes the entry if present; removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persistLocked(ctx)
		}
	}
	return nil
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.storage.Delete(ctx, s.sessionID)
}

// Items returns a copy of the current entries in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Count is the sum of quantities across all entries.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Total is the sum of unit price times quantity across all entries.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		price := decimal.NewFromFloat(item.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsOpen reports the cart drawer UI state.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// SetOpen broadcasts the cart drawer UI state.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = open
}

func (s *Store) persistLocked(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []Item{}
	}
	snapshot, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	return s.storage.Save(ctx, s.sessionID, snapshot)
}
