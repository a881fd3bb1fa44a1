package escrowservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/pg"
	"go.uber.org/zap"
)

type LedgerStore interface {
	Credit(ctx context.Context, userID int, orderID uuid.UUID, kind string, amount decimal.Decimal) (*domain.LedgerEntry, error)
	Debit(ctx context.Context, userID int, orderID uuid.UUID, kind string, amount decimal.Decimal) (*domain.LedgerEntry, error)
	AddProfit(ctx context.Context, amount decimal.Decimal) error
	EscrowBalance(ctx context.Context) (decimal.Decimal, error)
}

type OrderRepo interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetInvoiceForUpdate(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, orderID uuid.UUID, from, to string) (bool, error)
}

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvoiceNotPaid      = errors.New("invoice is not paid")
	ErrInvalidInvoiceState = errors.New("invalid invoice state")
	ErrSplitMismatch       = errors.New("split amounts do not match subtotal")
	ErrEscrowInsufficient  = errors.New("escrow balance insufficient")
)

// splitTolerance bounds the allowed drift between the resolution
// amounts and the held subtotal when validating a split.
var splitTolerance = decimal.NewFromFloat(0.01)

// SplitResult carries the entry ids created by a split settlement so
// the dispute record can store them for audit.
type SplitResult struct {
	SellerEntryID *uuid.UUID
	BuyerEntryID  *uuid.UUID
}

// Service implements the escrow money movements. Each operation runs in
// one transaction (joining the caller's when nested) and re-checks the
// invoice state under lock, so a duplicated call is rejected rather
// than double-applied; at-most-once sequencing per order is owned by
// the order state machine.
type Service struct {
	ledger    LedgerStore
	orderRepo OrderRepo
	txManager pg.TXManager
}

func New(ledger LedgerStore, orderRepo OrderRepo, txManager pg.TXManager) *Service {
	return &Service{
		ledger:    ledger,
		orderRepo: orderRepo,
		txManager: txManager,
	}
}

// Hold moves the invoice total into platform custody: a single treasury
// deposit entry mirroring the buyer charge recorded at checkout.
func (s *Service) Hold(ctx context.Context, orderID uuid.UUID) (*domain.LedgerEntry, error) {
	var entry *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		_, invoice, err := s.lockOrderAndInvoice(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice.PaymentStatus != domain.InvoiceStatusPaid {
			return ErrInvoiceNotPaid
		}

		entry, err = s.ledger.Credit(ctx, domain.TreasuryUserID, orderID, domain.LedgerKindEscrowDeposit, invoice.TotalAmount)
		return err
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("escrow hold applied", zap.String("orderID", orderID.String()), zap.String("amount", entry.Amount.String()))
	return entry, nil
}

// Release pays the seller their net share and books the fees as profit.
func (s *Service) Release(ctx context.Context, orderID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, invoice, err := s.lockOrderAndInvoice(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice.PaymentStatus != domain.InvoiceStatusPaid {
			return ErrInvoiceNotPaid
		}

		fee := invoice.Subtotal.Mul(invoice.SellerFeePercent).Round(2)
		net := invoice.Subtotal.Sub(fee)

		if _, err := s.ledger.Debit(ctx, domain.TreasuryUserID, orderID, domain.LedgerKindEscrowRelease, net); err != nil {
			return err
		}
		if _, err := s.ledger.Credit(ctx, order.SellerID, orderID, domain.LedgerKindEarning, net); err != nil {
			return err
		}
		return s.ledger.AddProfit(ctx, fee.Add(invoice.PlatformFlatFee))
	})
}

// RefundToBuyer returns the buyer's money minus the platform flat fee
// and moves the invoice to REFUNDED.
func (s *Service) RefundToBuyer(ctx context.Context, orderID uuid.UUID) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, invoice, err := s.lockOrderAndInvoice(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice.PaymentStatus != domain.InvoiceStatusPaid {
			return ErrInvalidInvoiceState
		}

		refund := invoice.TotalAmount.Sub(invoice.PlatformFlatFee)

		if _, err := s.ledger.Debit(ctx, domain.TreasuryUserID, orderID, domain.LedgerKindRefund, refund); err != nil {
			return err
		}
		if _, err := s.ledger.Credit(ctx, order.BuyerID, orderID, domain.LedgerKindRefund, refund); err != nil {
			return err
		}
		if err := s.ledger.AddProfit(ctx, invoice.PlatformFlatFee); err != nil {
			return err
		}

		ok, err := s.orderRepo.UpdateInvoiceStatus(ctx, orderID, domain.InvoiceStatusPaid, domain.InvoiceStatusRefunded)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidInvoiceState
		}
		return nil
	})
}

// ReleaseSplit settles a dispute: the seller's share is released net of
// the service fee, the buyer's share is refunded, and the platform
// books the fee plus its flat fee. The fee is charged only on the
// seller's share. Each credited party gets its own mirrored pair with
// the treasury.
func (s *Service) ReleaseSplit(ctx context.Context, orderID uuid.UUID, sellerAmount, buyerRefund decimal.Decimal) (*SplitResult, error) {
	result := &SplitResult{}
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		order, invoice, err := s.lockOrderAndInvoice(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice.PaymentStatus != domain.InvoiceStatusPaid {
			return ErrInvalidInvoiceState
		}
		if sellerAmount.Add(buyerRefund).Sub(invoice.Subtotal).Abs().GreaterThan(splitTolerance) {
			return ErrSplitMismatch
		}

		fee := sellerAmount.Mul(invoice.SellerFeePercent).Round(2)
		sellerNet := sellerAmount.Sub(fee)
		required := buyerRefund.Add(sellerNet)

		escrow, err := s.ledger.EscrowBalance(ctx)
		if err != nil {
			return err
		}
		if escrow.LessThan(required) {
			return ErrEscrowInsufficient
		}

		if sellerNet.IsPositive() {
			if _, err := s.ledger.Debit(ctx, domain.TreasuryUserID, orderID, domain.LedgerKindEscrowRelease, sellerNet); err != nil {
				return err
			}
			entry, err := s.ledger.Credit(ctx, order.SellerID, orderID, domain.LedgerKindEarning, sellerNet)
			if err != nil {
				return err
			}
			result.SellerEntryID = &entry.ID
		}
		if buyerRefund.IsPositive() {
			if _, err := s.ledger.Debit(ctx, domain.TreasuryUserID, orderID, domain.LedgerKindRefund, buyerRefund); err != nil {
				return err
			}
			entry, err := s.ledger.Credit(ctx, order.BuyerID, orderID, domain.LedgerKindRefund, buyerRefund)
			if err != nil {
				return err
			}
			result.BuyerEntryID = &entry.ID
		}

		return s.ledger.AddProfit(ctx, fee.Add(invoice.PlatformFlatFee))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) lockOrderAndInvoice(ctx context.Context, orderID uuid.UUID) (*domain.Order, *domain.Invoice, error) {
	order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, ErrOrderNotFound
	}
	invoice, err := s.orderRepo.GetInvoiceForUpdate(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if invoice == nil {
		return nil, nil, ErrInvalidInvoiceState
	}
	return order, invoice, nil
}
