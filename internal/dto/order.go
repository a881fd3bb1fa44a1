package dto

import "time"

type CheckoutRequestDTO struct {
	SellerID int     `json:"seller_id" validate:"required,gt=0" example:"42"`
	Subtotal float64 `json:"subtotal" validate:"required,gt=0" example:"100"`
}

type CheckoutResponseDTO struct {
	OrderID          string  `json:"order_id" example:"7d8fd0a7-2b0f-4b1d-95a0-1f0c7dd233e1"`
	TotalAmount      float64 `json:"total_amount" example:"110"`
	PaymentReference string  `json:"payment_reference" example:"e3b17b2d-4c44-4bb1-8d33-22fd60c0d62f"`
}

type GetOrderResponseDTO struct {
	ID             string     `json:"id" example:"7d8fd0a7-2b0f-4b1d-95a0-1f0c7dd233e1"`
	BuyerID        int        `json:"buyer_id" example:"1"`
	SellerID       int        `json:"seller_id" example:"42"`
	Status         string     `json:"status" example:"WAITING"`
	TotalAmount    float64    `json:"total_amount" example:"110"`
	AutoCompleteAt *time.Time `json:"auto_complete_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
}

type ReconciliationResponseDTO struct {
	OrderID    string  `json:"order_id" example:"7d8fd0a7-2b0f-4b1d-95a0-1f0c7dd233e1"`
	EntriesSum float64 `json:"entries_sum" example:"0"`
	Balanced   bool    `json:"balanced" example:"true"`
}
