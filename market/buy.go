package market

// Purchase describes a completed Buy.
type Purchase struct {
	ClientID  uint32
	ProductID uint32
	// ClientName is the buyer's full name.
	ClientName  string
	ProductName string
	Price       float64
	// Balance and Stock are the values left after the purchase.
	Balance float64
	Stock   uint32
}

// Buy charges the client the product's price and takes one unit from stock.
//
// It fails with ErrNotFound when either record is missing, ErrOutOfStock when
// stock is zero, and ErrInsufficientFunds when the balance is strictly below
// the price, checked in that order. None of these change or persist anything.
// A balance equal to the price is enough.
func (m *Market) Buy(clientID, productID uint32) (Purchase, error) {
	c, okClient := m.clients[clientID]
	p, okProduct := m.products[productID]
	if !okClient || !okProduct {
		return Purchase{}, ErrNotFound
	}
	if !p.InStock() {
		return Purchase{}, ErrOutOfStock
	}
	if c.Balance < p.Price {
		return Purchase{}, ErrInsufficientFunds
	}

	c.Balance -= p.Price
	p.Stock--
	m.log.Info("purchase", "client_id", clientID, "product_id", productID, "price", p.Price)

	purchase := Purchase{
		ClientID:    clientID,
		ProductID:   productID,
		ClientName:  c.FullName(),
		ProductName: p.Name,
		Price:       p.Price,
		Balance:     c.Balance,
		Stock:       p.Stock,
	}
	return purchase, m.persist()
}
