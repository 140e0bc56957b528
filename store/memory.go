package store

import (
	"maps"

	"github.com/stevemurr/market/model"
)

// MemoryBackend keeps the last saved snapshot in memory. Data is lost on exit.
type MemoryBackend struct {
	clients  map[uint32]model.Client
	products map[uint32]model.Product
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		clients:  make(map[uint32]model.Client),
		products: make(map[uint32]model.Product),
	}
}

// Records hold no references, so a shallow map copy is a full copy.

func (m *MemoryBackend) LoadClients() (map[uint32]model.Client, error) {
	return maps.Clone(m.clients), nil
}

func (m *MemoryBackend) LoadProducts() (map[uint32]model.Product, error) {
	return maps.Clone(m.products), nil
}

func (m *MemoryBackend) SaveClients(clients map[uint32]model.Client) error {
	m.clients = maps.Clone(clients)
	if m.clients == nil {
		m.clients = make(map[uint32]model.Client)
	}
	return nil
}

func (m *MemoryBackend) SaveProducts(products map[uint32]model.Product) error {
	m.products = maps.Clone(products)
	if m.products == nil {
		m.products = make(map[uint32]model.Product)
	}
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
