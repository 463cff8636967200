// Package memory implements an in-memory store, used by tests and for
// running the service without any external database.
package memory

import (
	"context"
	"sync"

	"orderdesk/internal/model"
	"orderdesk/internal/store"
)

// Store provides an in-memory implementation of store.Store. Slices keep
// insertion order; maps index by external id for lookups.
type Store struct {
	mu       sync.RWMutex
	clients  []model.Client
	products []model.Product
	orders   []model.Order
	seqs     map[string]uint64
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{seqs: make(map[string]uint64)}
}

// InsertClient stores the client.
func (s *Store) InsertClient(ctx context.Context, c model.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.clients {
		if existing.ID == c.ID {
			return store.ErrDuplicate
		}
	}
	s.clients = append(s.clients, c)
	return nil
}

// GetClient retrieves a client by external id.
func (s *Store) GetClient(ctx context.Context, id string) (model.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Client{}, store.ErrNotFound
}

// DeleteClient removes a client by external id.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// InsertProduct stores the product.
func (s *Store) InsertProduct(ctx context.Context, p model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.ID == p.ID {
			return store.ErrDuplicate
		}
	}
	s.products = append(s.products, p)
	return nil
}

// GetProduct retrieves a product by external id.
func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, store.ErrNotFound
}

// ListProducts returns products in insertion order, optionally filtered by
// category.
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// DeleteProduct removes a product by external id.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// InsertOrder stores the order.
func (s *Store) InsertOrder(ctx context.Context, o model.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
	return nil
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders(ctx context.Context) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

// ListOrdersByClient returns the orders placed by one client, in insertion
// order.
func (s *Store) ListOrdersByClient(ctx context.Context, clientID string) ([]model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Order
	for _, o := range s.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, nil
}

// NextSeq increments and returns the named counter.
func (s *Store) NextSeq(ctx context.Context, name string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[name]++
	return s.seqs[name], nil
}

// Reset drops all records and counters.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = nil
	s.products = nil
	s.orders = nil
	s.seqs = make(map[string]uint64)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }
