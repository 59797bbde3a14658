package cart

import "storefront-service/internal/models"

// ProductSnapshot is the point-in-time copy of a product held by a cart
// line. It does not track stock changes made after it was captured.
type ProductSnapshot struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
}

// SnapshotOf captures the cart-facing fields of a catalog product.
func SnapshotOf(p models.Product) ProductSnapshot {
	return ProductSnapshot{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		Stock:    p.Stock,
	}
}

// Line is a (product snapshot, quantity) pair. Quantity is always in
// (0, Product.Stock].
type Line struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered collection of lines, unique by product ID. Totals
// are recomputed on every read, never stored.
type Cart struct {
	Lines []Line `json:"lines"`
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem merges quantity into the line for p, clamped so the line
// never exceeds p.Stock. Over-limit requests silently clamp; a product
// with no stock is a no-op.
func (c *Cart) AddItem(p ProductSnapshot, quantity int) {
	if p.Stock <= 0 {
		return
	}

	current := 0
	idx := -1
	for i, line := range c.Lines {
		if line.Product.ID == p.ID {
			current = line.Quantity
			idx = i
			break
		}
	}

	addQty := quantity
	if remaining := p.Stock - current; addQty > remaining {
		addQty = remaining
	}
	if addQty <= 0 {
		return
	}

	if idx >= 0 {
		c.Lines[idx].Quantity += addQty
		return
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: addQty})
}

// RemoveItem deletes the line for productID if present.
func (c *Cart) RemoveItem(productID string) {
	for i, line := range c.Lines {
		if line.Product.ID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the line for productID,
// clamped to the line snapshot's stock. A quantity of zero or below
// removes the line.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i, line := range c.Lines {
		if line.Product.ID != productID {
			continue
		}
		capped := quantity
		if capped > line.Product.Stock {
			capped = line.Product.Stock
		}
		c.Lines[i].Quantity = capped
		return
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
}

// TotalItems is the sum of all line quantities.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity over all lines.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Product.Price * float64(line.Quantity)
	}
	return total
}

// Snapshot serializes the cart into a store-order items payload.
func (c *Cart) Snapshot() models.StoreOrderItems {
	products := make([]models.OrderLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		products = append(products, models.OrderLine{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
		})
	}
	return models.StoreOrderItems{
		Products:   products,
		TotalPrice: c.TotalPrice(),
	}
}
