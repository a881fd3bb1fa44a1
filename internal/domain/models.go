package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TreasuryUserID marks ledger entries that belong to the platform
// treasury rather than a user account.
const TreasuryUserID = 0

const (
	LedgerKindEscrowDeposit = "ESCROW_DEPOSIT"
	LedgerKindEscrowRelease = "ESCROW_RELEASE"
	LedgerKindEarning       = "EARNING"
	LedgerKindRefund        = "REFUND"
	LedgerKindWithdrawal    = "WITHDRAWAL"
)

const (
	LedgerStatusPending   = "PENDING"
	LedgerStatusCompleted = "COMPLETED"
	LedgerStatusFailed    = "FAILED"
	LedgerStatusRejected  = "REJECTED"
)

const (
	InvoiceStatusPending  = "PENDING"
	InvoiceStatusPaid     = "PAID"
	InvoiceStatusRefunded = "REFUNDED"
)

const (
	OrderStatusPending         = "PENDING"
	OrderStatusWaiting         = "WAITING"
	OrderStatusAccepted        = "ACCEPTED"
	OrderStatusDelivered       = "DELIVERED"
	OrderStatusChangeRequested = "CHANGE_REQUESTED"
	OrderStatusCompleted       = "COMPLETED"
	OrderStatusCancelled       = "CANCELLED"
	OrderStatusRejected        = "REJECTED"
	OrderStatusDisputed        = "DISPUTED"
)

const (
	DisputeStatusOpen     = "OPEN"
	DisputeStatusInReview = "IN_REVIEW"
	DisputeStatusResolved = "RESOLVED"
)

type TreasuryWallet struct {
	ID             int             `db:"id"`
	EscrowBalance  decimal.Decimal `db:"escrow_balance"`
	PlatformProfit decimal.Decimal `db:"platform_profit"`
	Currency       string          `db:"currency"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type UserBalance struct {
	ID                    int             `db:"id"`
	UserID                int             `db:"user_id"`
	AvailableBalance      decimal.Decimal `db:"available_balance"`
	ReservedBalance       decimal.Decimal `db:"reserved_balance"`
	EarningsToDate        decimal.Decimal `db:"earnings_to_date"`
	CancelledOrdersCredit decimal.Decimal `db:"cancelled_orders_credit"`
}

// LedgerEntry is append-only: once written, only the status of a
// PENDING entry may change (withdrawals awaiting the gateway callback).
type LedgerEntry struct {
	ID                uuid.UUID       `db:"id"`
	UserID            int             `db:"user_id"`
	OrderID           uuid.UUID       `db:"order_id"`
	Kind              string          `db:"kind"`
	Amount            decimal.Decimal `db:"amount"`
	Status            string          `db:"status"`
	ExternalReference *string         `db:"external_reference"`
	IdempotencyKey    *string         `db:"idempotency_key"`
	CreatedAt         time.Time       `db:"created_at"`
}

type Invoice struct {
	ID               uuid.UUID       `db:"id"`
	OrderID          uuid.UUID       `db:"order_id"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	SellerFeePercent decimal.Decimal `db:"seller_fee_percent"`
	PlatformFlatFee  decimal.Decimal `db:"platform_flat_fee"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	PaymentStatus    string          `db:"payment_status"`
	CreatedAt        time.Time       `db:"created_at"`
}

type Order struct {
	ID              uuid.UUID       `db:"id"`
	BuyerID         int             `db:"buyer_id"`
	SellerID        int             `db:"seller_id"`
	Status          string          `db:"status"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	AutoCompleteAt  *time.Time      `db:"auto_complete_at"`
	RedeliveryDueAt *time.Time      `db:"redelivery_due_at"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

type Dispute struct {
	ID            uuid.UUID        `db:"id"`
	OrderID       uuid.UUID        `db:"order_id"`
	InitiatorID   int              `db:"initiator_id"`
	Reason        string           `db:"reason"`
	Status        string           `db:"status"`
	SellerAmount  *decimal.Decimal `db:"seller_amount"`
	BuyerRefund   *decimal.Decimal `db:"buyer_refund"`
	SellerEntryID *uuid.UUID       `db:"seller_entry_id"`
	BuyerEntryID  *uuid.UUID       `db:"buyer_entry_id"`
	CreatedAt     time.Time        `db:"created_at"`
	ResolvedAt    *time.Time       `db:"resolved_at"`
}

type PayoutDestination struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Provider  string    `db:"provider"`
	Account   string    `db:"account"`
	IsDefault bool      `db:"is_default"`
	CreatedAt time.Time `db:"created_at"`
}
