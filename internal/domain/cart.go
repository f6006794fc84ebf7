package domain

import "github.com/shopspring/decimal"

// Cart accumulates order lines before submission. One entry per product,
// kept in the order products were first added.
type Cart struct {
	index map[string]int
	items []OrderItem
}

func NewCart() *Cart {
	return &Cart{index: make(map[string]int)}
}

// AddItem adds one unit of p. The unit price is fixed the first time p is added.
func (c *Cart) AddItem(p Product) {
	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity++
		return
	}
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, OrderItem{ProductID: p.ID, Quantity: 1, UnitPrice: p.Price})
}

// SetQuantity sets the quantity of a product already in the cart; zero removes it.
func (c *Cart) SetQuantity(productID string, n int) error {
	if n < 0 {
		return ErrInvalidQuantity
	}
	i, ok := c.index[productID]
	if !ok {
		if n == 0 {
			return nil
		}
		return ErrItemNotInCart
	}
	if n > 0 {
		c.items[i].Quantity = n
		return nil
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].ProductID] = j
	}
	return nil
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total.Round(2)
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []OrderItem {
	out := make([]OrderItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }
