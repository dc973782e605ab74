package response

import "videepat_foods/internal/domain/models"

type CartResponse struct {
	ID       string            `json:"id"`
	Items    []models.CartItem `json:"items"`
	Count    int               `json:"count"`
	Subtotal float64           `json:"subtotal"`
}

func Cart(c models.Cart) CartResponse {
	items := c.Items
	if items == nil {
		items = []models.CartItem{}
	}
	return CartResponse{
		ID:       c.ID,
		Items:    items,
		Count:    c.Count(),
		Subtotal: c.Total(),
	}
}
