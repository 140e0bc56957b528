// Package market owns the client and product collections and the purchase
// transaction between them. Every successful mutation re-persists both
// collections through a store.Backend.
package market

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/stevemurr/market/model"
	"github.com/stevemurr/market/store"
)

// Market is the in-memory record store. It is not safe for concurrent use.
type Market struct {
	backend  store.Backend
	log      *slog.Logger
	clients  map[uint32]*model.Client
	products map[uint32]*model.Product
}

// ClientEntry pairs a client with its id.
type ClientEntry struct {
	ID     uint32
	Client model.Client
}

// ProductEntry pairs a product with its id.
type ProductEntry struct {
	ID      uint32
	Product model.Product
}

// Open loads both collections from backend. A collection that fails to load
// starts empty; the failure is logged, not returned.
func Open(backend store.Backend, log *slog.Logger) *Market {
	m := &Market{
		backend:  backend,
		log:      log,
		clients:  make(map[uint32]*model.Client),
		products: make(map[uint32]*model.Product),
	}

	clients, err := backend.LoadClients()
	if err != nil {
		log.Warn("store_load_failed", "collection", "clients", "error", err)
	}
	for id, c := range clients {
		m.clients[id] = &c
	}

	products, err := backend.LoadProducts()
	if err != nil {
		log.Warn("store_load_failed", "collection", "products", "error", err)
	}
	for id, p := range products {
		m.products[id] = &p
	}

	log.Info("market_loaded", "clients", len(m.clients), "products", len(m.products))
	return m
}

// AddClient stores c under id, replacing any existing client.
func (m *Market) AddClient(id uint32, c model.Client) error {
	m.clients[id] = &c
	m.log.Debug("client_added", "id", id)
	return m.persist()
}

// AddProduct stores p under id, replacing any existing product.
func (m *Market) AddProduct(id uint32, p model.Product) error {
	m.products[id] = &p
	m.log.Debug("product_added", "id", id)
	return m.persist()
}

// DeleteClient removes the client with id and reports whether it existed.
// The snapshot is persisted either way.
func (m *Market) DeleteClient(id uint32) (bool, error) {
	_, found := m.clients[id]
	delete(m.clients, id)
	m.log.Debug("client_deleted", "id", id, "found", found)
	return found, m.persist()
}

// DeleteProduct removes the product with id and reports whether it existed.
// The snapshot is persisted either way.
func (m *Market) DeleteProduct(id uint32) (bool, error) {
	_, found := m.products[id]
	delete(m.products, id)
	m.log.Debug("product_deleted", "id", id, "found", found)
	return found, m.persist()
}

// Client returns a mutable handle to the client with id.
// Changes made through it reach the backend on the next Save or mutation.
func (m *Market) Client(id uint32) (*model.Client, bool) {
	c, ok := m.clients[id]
	return c, ok
}

// Product returns a mutable handle to the product with id.
// Changes made through it reach the backend on the next Save or mutation.
func (m *Market) Product(id uint32) (*model.Product, bool) {
	p, ok := m.products[id]
	return p, ok
}

// Clients returns a copy of every client ordered by id.
func (m *Market) Clients() []ClientEntry {
	out := make([]ClientEntry, 0, len(m.clients))
	for _, id := range slices.Sorted(maps.Keys(m.clients)) {
		out = append(out, ClientEntry{ID: id, Client: *m.clients[id]})
	}
	return out
}

// Products returns a copy of every product ordered by id.
func (m *Market) Products() []ProductEntry {
	out := make([]ProductEntry, 0, len(m.products))
	for _, id := range slices.Sorted(maps.Keys(m.products)) {
		out = append(out, ProductEntry{ID: id, Product: *m.products[id]})
	}
	return out
}

// Save persists the current snapshot.
func (m *Market) Save() error {
	return m.persist()
}

// Close releases the backend.
func (m *Market) Close() error {
	return m.backend.Close()
}

// persist writes both collections in full, even when only one changed.
func (m *Market) persist() error {
	clients := make(map[uint32]model.Client, len(m.clients))
	for id, c := range m.clients {
		clients[id] = *c
	}
	products := make(map[uint32]model.Product, len(m.products))
	for id, p := range m.products {
		products[id] = *p
	}

	if err := m.backend.SaveClients(clients); err != nil {
		m.log.Error("snapshot_save_failed", "collection", "clients", "error", err)
		return fmt.Errorf("%w: clients: %w", ErrPersist, err)
	}
	if err := m.backend.SaveProducts(products); err != nil {
		m.log.Error("snapshot_save_failed", "collection", "products", "error", err)
		return fmt.Errorf("%w: products: %w", ErrPersist, err)
	}
	m.log.Debug("snapshot_saved", "clients", len(clients), "products", len(products))
	return nil
}
