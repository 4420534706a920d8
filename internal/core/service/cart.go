package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
)

// CartKey owns the persisted cart line items.
const CartKey = "ionecenter_cart"

var _ port.CartKeeper = (*CartStore)(nil)

// CartStore keeps the current shopping cart and computes derived totals
// against the product catalog. State is hydrated from the key-value
// store on construction and re-persisted after every mutation. A corrupt
// or missing persisted value reads as an empty cart.
type CartStore struct {
	mu      sync.Mutex
	kv      port.KeyValueStore
	catalog port.ProductCatalog
	events  port.EventsProducer
	items   []domain.CartItem
}

// NewCartStore hydrates the cart from kv. The events producer is
// optional; pass nil to disable client events.
func NewCartStore(
	kv port.KeyValueStore,
	catalog port.ProductCatalog,
	events port.EventsProducer,
) *CartStore {
	s := &CartStore{kv: kv, catalog: catalog, events: events}
	s.hydrate()
	return s
}

func (s *CartStore) hydrate() {
	const op = "CartStore.hydrate"

	data, err := s.kv.Load(CartKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("failed to load cart, starting empty", "op", op, "err", err)
		}
		return
	}
	if err := json.Unmarshal(data, &s.items); err != nil {
		slog.Warn("corrupt cart value, starting empty", "op", op, "err", err)
		s.items = nil
	}
}

// AddItem increments the quantity of an existing line or appends a new
// one. A quantity below 1 is rejected and the cart is left unchanged.
func (s *CartStore) AddItem(ctx context.Context, p domain.Product, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(it domain.CartItem) bool {
		return it.ProductID == p.ID
	})
	if i >= 0 {
		s.items[i].Qty += qty
	} else {
		s.items = append(s.items, domain.CartItem{ProductID: p.ID, Qty: qty})
	}
	s.persist()
	s.mu.Unlock()

	s.emit(ctx, domain.EventCartAdd, p.ID, qty)
	return nil
}

// RemoveItem deletes the matching line. Absent id is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, productID string) {
	s.mu.Lock()
	n := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(it domain.CartItem) bool {
		return it.ProductID == productID
	})
	changed := len(s.items) != n
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.emit(ctx, domain.EventCartRemove, productID, 0)
	}
}

// UpdateQty replaces the quantity of a matching line. A quantity below 1
// is rejected; removal stays explicit via RemoveItem. Absent id is a
// no-op.
func (s *CartStore) UpdateQty(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return domain.ErrInvalidQuantity
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.items, func(it domain.CartItem) bool {
		return it.ProductID == productID
	})
	changed := i >= 0 && s.items[i].Qty != qty
	if i >= 0 {
		s.items[i].Qty = qty
	}
	if changed {
		s.persist()
	}
	s.mu.Unlock()

	if changed {
		s.emit(ctx, domain.EventCartUpdate, productID, qty)
	}
	return nil
}

// Clear empties the cart.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persist()
	s.mu.Unlock()

	s.emit(ctx, domain.EventCartClear, "", 0)
}

// Items returns a copy of the current line items.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Total is recomputed on every read from the current items and the
// catalog. A line whose product is missing from the catalog contributes
// zero.
func (s *CartStore) Total(ctx context.Context) float64 {
	const op = "CartStore.Total"

	var sum float64
	for _, it := range s.Items() {
		p, err := s.catalog.Product(ctx, it.ProductID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				slog.Warn("catalog lookup failed", "op", op,
					"productID", it.ProductID, "err", err)
			}
			continue
		}
		sum += p.Price * float64(it.Qty)
	}
	return sum
}

// persist re-serializes the full item list. Callers hold s.mu.
// Persistence failures are logged and swallowed.
func (s *CartStore) persist() {
	const op = "CartStore.persist"

	data, err := json.Marshal(s.items)
	if err != nil {
		slog.Warn("failed to marshal cart", "op", op, "err", err)
		return
	}
	if err := s.kv.Store(CartKey, data); err != nil {
		slog.Warn("failed to persist cart", "op", op, "err", err)
	}
}

func (s *CartStore) emit(ctx context.Context, kind domain.EventKind, productID string, qty int) {
	const op = "CartStore.emit"

	if s.events == nil {
		return
	}
	e := domain.ClientEvent{
		Kind:      kind,
		ProductID: productID,
		Qty:       qty,
		At:        time.Now(),
	}
	if err := s.events.ProduceEvent(ctx, e); err != nil {
		slog.Warn("failed to produce client event", "op", op,
			"kind", kind, "err", err)
	}
}
