package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/harlansk/sleipnir/internal/domain"
)

const cartSchemaVersion = 1

// CartLine pairs a product snapshot with a quantity. A cart holds at most
// one line per product id; repeated adds merge into the existing line.
type CartLine struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// CartStore is the single source of truth for what a shopper intends to buy.
// Every mutation writes the full state through the adapter before returning.
// Mutations on a missing product id degrade to no-ops: a remove that races a
// double-click should never surface an error, so no public operation returns
// one.
type CartStore struct {
	mu      sync.Mutex
	lines   []CartLine
	adapter Adapter
	logger  *slog.Logger
}

// NewCartStore creates a cart store bound to the given adapter. Call
// Initialize before first use to rehydrate persisted state.
func NewCartStore(adapter Adapter, logger *slog.Logger) *CartStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &CartStore{
		adapter: adapter,
		logger:  logger.With("store", "cart"),
	}
}

// Initialize rehydrates the cart from the durable medium. It never fails:
// absent, malformed, or version-incompatible state leaves the cart empty.
func (s *CartStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw := loadState(ctx, s.adapter, CartKey, cartSchemaVersion, s.logger)
	if raw == nil {
		return
	}

	var lines []CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn("persisted cart state is malformed, starting empty", "error", err)
		return
	}

	// A quantity below 1 cannot be produced by the store's own operations;
	// drop any such line rather than trust a hand-edited blob.
	kept := lines[:0]
	for _, line := range lines {
		if line.Quantity >= 1 {
			kept = append(kept, line)
		}
	}
	s.lines = kept
}

// AddItem adds a product to the cart. If a line for the product already
// exists its quantity is incremented by 1, otherwise a new line with
// quantity 1 is appended. Always succeeds.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == product.ID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, CartLine{Product: product, Quantity: 1})
	s.persist(ctx)
}

// RemoveItem deletes the line for productID. No-op if absent.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// IncrementQuantity adds 1 to the line for productID. No-op if absent.
func (s *CartStore) IncrementQuantity(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}
}

// DecrementQuantity subtracts 1 from the line for productID, floored at 1.
// A line at quantity 1 is left unchanged; removal is a distinct explicit
// operation, so repeated decrement clicks cannot delete a line by accident.
// No-op if the id is absent.
func (s *CartStore) DecrementQuantity(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == productID {
			if s.lines[i].Quantity > 1 {
				s.lines[i].Quantity--
				s.persist(ctx)
			}
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist(ctx)
}

// Items returns a snapshot of the cart lines in insertion order.
func (s *CartStore) Items() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]CartLine, len(s.lines))
	copy(items, s.lines)
	return items
}

// TotalItems returns the sum of all line quantities, recomputed on each call.
func (s *CartStore) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of price x quantity across lines, recomputed on
// each call.
func (s *CartStore) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// persist writes the full cart state through the adapter.
// Callers must hold s.mu.
func (s *CartStore) persist(ctx context.Context) {
	lines := s.lines
	if lines == nil {
		lines = []CartLine{}
	}
	saveState(ctx, s.adapter, CartKey, cartSchemaVersion, lines, s.logger)
}
