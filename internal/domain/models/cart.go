package models

import "time"

// CartItem позиция корзины. Цена и категории фиксируются при добавлении.
type CartItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	Quantity    int      `json:"quantity"`
}

func (i CartItem) LineTotal() float64 {
	return RoundMoney(i.Price * float64(i.Quantity))
}

type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Add merges the item into an existing line for the same product or appends it.
// Quantities below one are treated as one.
func (c *Cart) Add(item CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the line quantity; a quantity below one removes the line.
// It reports whether the product was in the cart.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	if quantity < 1 {
		return c.Remove(productID)
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

func (c *Cart) Remove(productID string) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total сумма корзины без скидок
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return RoundMoney(total)
}

// Count общее количество единиц товара
func (c Cart) Count() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
