package request

import "videepat_foods/internal/domain/models"

// AddCartItemRequest принимает и JSON, и форму со страницы товара.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" form:"quantity" validate:"min=0,max=99"`
}

// UpdateCartItemRequest: quantity below one removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" form:"quantity" validate:"max=99"`
}

type CheckoutRequest struct {
	Name       string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Phone      string `json:"phone" form:"phone" validate:"required,numeric,min=10,max=13"`
	Address    string `json:"address" form:"address" validate:"required,min=5,max=300"`
	City       string `json:"city" form:"city" validate:"required,max=100"`
	Pincode    string `json:"pincode" form:"pincode" validate:"required,numeric,len=6"`
	CouponCode string `json:"coupon_code" form:"coupon_code" validate:"omitempty,max=40"`
}

func (r CheckoutRequest) Customer() models.Customer {
	return models.Customer{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		City:    r.City,
		Pincode: r.Pincode,
	}
}

type QuoteRequest struct {
	CouponCode string `json:"coupon_code" query:"coupon_code" validate:"omitempty,max=40"`
}
