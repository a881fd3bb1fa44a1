package dto

import "time"

type BalanceResponseDTO struct {
	Available             float64 `json:"available" example:"500.5"`
	Reserved              float64 `json:"reserved" example:"42"`
	EarningsToDate        float64 `json:"earnings_to_date" example:"1200"`
	CancelledOrdersCredit float64 `json:"cancelled_orders_credit" example:"100"`
}

type WithdrawRequestDTO struct {
	Sum float64 `json:"sum" validate:"required,gt=0" example:"500"`
}

type WithdrawResponseDTO struct {
	ID     string  `json:"id" example:"e3b17b2d-4c44-4bb1-8d33-22fd60c0d62f"`
	Sum    float64 `json:"sum" example:"500"`
	Status string  `json:"status" example:"PENDING"`
}

type GetWithdrawalsResponseDTO struct {
	ID          string    `json:"id" example:"e3b17b2d-4c44-4bb1-8d33-22fd60c0d62f"`
	Sum         float64   `json:"sum" example:"500"`
	Status      string    `json:"status" example:"COMPLETED"`
	ProcessedAt time.Time `json:"processed_at" example:"2020-12-09T16:09:57+03:00"`
}

type AddDestinationRequestDTO struct {
	Provider  string `json:"provider" validate:"required" example:"sberpay"`
	Account   string `json:"account" validate:"required" example:"2377225624"`
	IsDefault bool   `json:"is_default" example:"true"`
}

type DestinationResponseDTO struct {
	ID        int    `json:"id" example:"1"`
	Provider  string `json:"provider" example:"sberpay"`
	Account   string `json:"account" example:"2377225624"`
	IsDefault bool   `json:"is_default" example:"true"`
}
