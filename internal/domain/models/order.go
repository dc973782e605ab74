package models

import "time"

// Customer данные формы оформления заказа
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

// Order итог оформления. Оплата не проводится, заказ только суммируется.
type Order struct {
	ID         string     `json:"id"`
	Customer   Customer   `json:"customer"`
	Items      []CartItem `json:"items"`
	Subtotal   float64    `json:"subtotal"`
	Discount   float64    `json:"discount"`
	Total      float64    `json:"total"`
	CouponCode string     `json:"coupon_code,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
