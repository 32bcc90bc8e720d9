// Package cart holds the shopping cart. Every mutation loads the persisted
// snapshot, applies the change, and writes the snapshot back, so the cart
// survives process restarts the way the original survived page reloads.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/obafemitayor/user-snack/internal/domain"
	"github.com/obafemitayor/user-snack/internal/storage"
	apperrors "github.com/obafemitayor/user-snack/pkg/errors"
)

// Store is the cart. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	logger *slog.Logger
}

// NewStore creates a cart over the given key-value store.
func NewStore(kv storage.KV, logger *slog.Logger) *Store {
	return &Store{kv: kv, logger: logger}
}

// load reads the persisted snapshot. An absent key is an empty cart; a
// snapshot that cannot be parsed at all resets the cart rather than wedging
// every future operation.
func (s *Store) load(ctx context.Context) ([]domain.LineItem, error) {
	data, err := s.kv.Get(ctx, storage.CartKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	items := decodeSnapshot(data)
	if items == nil && len(data) > 0 {
		s.logger.WarnContext(ctx, "cart snapshot unreadable, resetting cart")
	}
	return items, nil
}

// save persists the items. An empty cart removes the key entirely instead
// of writing an empty list.
func (s *Store) save(ctx context.Context, items []domain.LineItem) error {
	if len(items) == 0 {
		if err := s.kv.Delete(ctx, storage.CartKey); err != nil {
			return fmt.Errorf("clear cart snapshot: %w", err)
		}
		return nil
	}

	data, err := encodeSnapshot(items)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := s.kv.Set(ctx, storage.CartKey, data); err != nil {
		return fmt.Errorf("persist cart snapshot: %w", err)
	}
	return nil
}

// Items returns the current cart lines.
func (s *Store) Items(ctx context.Context) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add appends a new line for the pizza. Each add creates a distinct line
// with its own id, even for a pizza already in the cart; only the chosen
// extras distinguish one line from another. Extra ids not present in the
// catalog are dropped without error.
func (s *Store) Add(ctx context.Context, pizza domain.Pizza, quantity int, extraIDs []string, catalog []domain.Extra) (domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return domain.LineItem{}, err
	}

	resolved := domain.ResolveExtras(catalog, extraIDs)
	extras := make([]domain.LineExtra, 0, len(resolved))
	for _, e := range resolved {
		extras = append(extras, domain.LineExtra{ID: e.ID, Name: e.Name, Price: e.Price})
	}

	line := domain.LineItem{
		ID:       uuid.NewString(),
		PizzaID:  pizza.ID,
		Name:     pizza.Name,
		Price:    pizza.Price,
		Quantity: domain.ClampQuantity(quantity),
		Extras:   extras,
	}
	items = append(items, line)

	if err := s.save(ctx, items); err != nil {
		return domain.LineItem{}, err
	}
	s.logger.InfoContext(ctx, "cart line added",
		slog.String("line_id", line.ID),
		slog.String("pizza_id", line.PizzaID),
		slog.Int("quantity", line.Quantity),
	)
	return line, nil
}

// SetQuantity updates the quantity of the line with the given id. Values
// below 1 are clamped to 1. An unknown line id is a no-op.
func (s *Store) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = domain.ClampQuantity(quantity)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.save(ctx, items)
}

// Remove deletes the line with the given id. An unknown line id is a no-op.
func (s *Store) Remove(ctx context.Context, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ID != lineID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return nil
	}
	return s.save(ctx, kept)
}

// Clear empties the cart and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, nil)
}

// Subtotal returns the sum of all line totals.
func (s *Store) Subtotal(ctx context.Context) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	return domain.Subtotal(items), nil
}

// Count returns the total number of pizzas in the cart, quantities included.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	var n int
	for _, item := range items {
		n += item.Quantity
	}
	return n, nil
}
