// Package model defines the records tracked by the market.
package model

// Client is a customer with a spendable balance.
type Client struct {
	Name    string  `json:"name"`
	Surname string  `json:"surname"`
	Balance float64 `json:"balance"`
}

// FullName returns the name and surname separated by a space.
func (c Client) FullName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}

// Product is an item for sale with a unit price and a stock count.
type Product struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock uint32  `json:"stock"`
}

// InStock reports whether at least one unit is available.
func (p Product) InStock() bool {
	return p.Stock > 0
}
