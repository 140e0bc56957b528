// Package store defines the persistence backends for the market snapshot.
package store

import "github.com/stevemurr/market/model"

// Backend persists the two market collections. Every save replaces the whole
// collection; there are no partial updates.
//
// Backends are used by a single goroutine and are not safe for concurrent use.
type Backend interface {
	// LoadClients returns every persisted client keyed by id.
	// A collection that was never saved loads as an empty map.
	LoadClients() (map[uint32]model.Client, error)

	// LoadProducts returns every persisted product keyed by id.
	// A collection that was never saved loads as an empty map.
	LoadProducts() (map[uint32]model.Product, error)

	// SaveClients overwrites the persisted client collection.
	SaveClients(clients map[uint32]model.Client) error

	// SaveProducts overwrites the persisted product collection.
	SaveProducts(products map[uint32]model.Product) error

	// Close releases any resources held by the backend.
	Close() error
}
