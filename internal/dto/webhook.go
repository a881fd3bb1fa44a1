package dto

type PaymentWebhookDTO struct {
	TransactionID         string `json:"transaction_id" validate:"required" example:"e3b17b2d-4c44-4bb1-8d33-22fd60c0d62f"`
	Success               bool   `json:"success" example:"true"`
	PaymentMethod         string `json:"payment_method" example:"card"`
	ExternalTransactionID string `json:"external_transaction_id" example:"psp-9137c2"`
	ExternalOrderID       string `json:"external_order_id" example:"shop-31337"`
}

type PayoutWebhookDTO struct {
	WithdrawalID string `json:"withdrawal_id" validate:"required,uuid" example:"e3b17b2d-4c44-4bb1-8d33-22fd60c0d62f"`
	Status       string `json:"status" validate:"required,oneof=succeeded failed" example:"succeeded"`
}
