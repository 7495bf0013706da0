package domain

import "github.com/shopspring/decimal"

// Cart is an in-progress sale. Items keep the order in which products were
// first added.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add snapshots product into the cart, or bumps the quantity of an existing
// line for the same product id.
func (c *Cart) Add(product Product) {
	for i := range c.Items {
		if c.Items[i].ID == product.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, CartItem{Product: product.Clone(), Quantity: 1})
}

// UpdateQuantity applies delta to the line for productID. Quantities floor at
// zero and empty lines are dropped.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID == productID {
			item.Quantity = max(0, item.Quantity+delta)
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
