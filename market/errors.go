package market

import "errors"

// Reportable outcomes. They leave the market unchanged.
var (
	ErrNotFound          = errors.New("client or product not found")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// ErrPersist wraps a failed snapshot write. In-memory state is ahead of the
// disk once it is returned, so callers must stop.
var ErrPersist = errors.New("persist snapshot")
