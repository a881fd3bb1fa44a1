package dto

import "time"

type OpenDisputeRequestDTO struct {
	Reason string `json:"reason" validate:"required,min=3,max=2000" example:"item never delivered"`
}

type ResolveDisputeRequestDTO struct {
	SellerAmount float64 `json:"seller_amount" validate:"gte=0" example:"60"`
	BuyerRefund  float64 `json:"buyer_refund" validate:"gte=0" example:"40"`
}

type DisputeResponseDTO struct {
	ID           string     `json:"id" example:"0c0aa2ad-6f53-4b34-8f0b-9a45e11fd1b2"`
	OrderID      string     `json:"order_id" example:"7d8fd0a7-2b0f-4b1d-95a0-1f0c7dd233e1"`
	InitiatorID  int        `json:"initiator_id" example:"1"`
	Reason       string     `json:"reason" example:"item never delivered"`
	Status       string     `json:"status" example:"OPEN"`
	SellerAmount *float64   `json:"seller_amount,omitempty"`
	BuyerRefund  *float64   `json:"buyer_refund,omitempty"`
	CreatedAt    time.Time  `json:"created_at" example:"2020-12-09T16:09:57+03:00"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
}
