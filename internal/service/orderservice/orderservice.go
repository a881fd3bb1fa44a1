package orderservice

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/pg"
	"github.com/gigmarket/escrowd/internal/service/escrowservice"
	"go.uber.org/zap"
)

type OrderRepo interface {
	Save(ctx context.Context, order *domain.Order) error
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	FindByUserID(ctx context.Context, userID int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, order *domain.Order) error
	GetInvoiceForUpdate(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, orderID uuid.UUID, from, to string) (bool, error)
	FindAutoCompletable(ctx context.Context, now time.Time, limit uint32) ([]domain.Order, error)
	FindRedeliveryExpired(ctx context.Context, now time.Time, limit uint32) ([]domain.Order, error)
}

type DisputeRepo interface {
	Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error)
	FindOpenByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Dispute, error)
	Resolve(ctx context.Context, dispute *domain.Dispute) error
}

type LedgerRepo interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	FindByIdempotencyKeyForUpdate(ctx context.Context, key string) (*domain.LedgerEntry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	SetExternalReference(ctx context.Context, id uuid.UUID, ref string) error
}

type EscrowService interface {
	Hold(ctx context.Context, orderID uuid.UUID) (*domain.LedgerEntry, error)
	Release(ctx context.Context, orderID uuid.UUID) error
	RefundToBuyer(ctx context.Context, orderID uuid.UUID) error
	ReleaseSplit(ctx context.Context, orderID uuid.UUID, sellerAmount, buyerRefund decimal.Decimal) (*escrowservice.SplitResult, error)
}

// Notifier delivers user-facing notifications. Implementations must
// never fail the caller: delivery problems are logged and swallowed.
type Notifier interface {
	Notify(ctx context.Context, userID int, kind, title, message, relatedID string)
}

// Publisher emits ledger movement events after the owning transaction
// committed.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, orderID uuid.UUID, event string, amount decimal.Decimal)
}

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidTransition    = errors.New("invalid order state transition")
	ErrOrderInDispute       = errors.New("order has an open dispute")
	ErrNotParticipant       = errors.New("user is not a party to the order")
	ErrDisputeNotFound      = errors.New("dispute not found")
	ErrDisputeNotOpen       = errors.New("dispute is not open")
	ErrDisputeAlreadyOpen   = errors.New("order already has an open dispute")
	ErrOrderNotPaid         = errors.New("order is not paid")
	ErrInvalidCheckoutInput = errors.New("invalid checkout input")
)

// Config carries the platform fee policy and SLA windows.
type Config struct {
	SellerFeePercent  decimal.Decimal
	PlatformFlatFee   decimal.Decimal
	AutoCompleteAfter time.Duration
	RedeliveryWindow  time.Duration
}

// Service owns the order lifecycle state machine. Transitions lock the
// order row, re-check the guard, and only then apply money movements,
// so two racing requests resolve into exactly one applied transition
// and one stale-state error.
type Service struct {
	cfg         Config
	orderRepo   OrderRepo
	disputeRepo DisputeRepo
	ledgerRepo  LedgerRepo
	escrow      EscrowService
	txManager   pg.TXManager
	notifier    Notifier
	publisher   Publisher
}

func New(cfg Config, orderRepo OrderRepo, disputeRepo DisputeRepo, ledgerRepo LedgerRepo, escrow EscrowService, txManager pg.TXManager, notifier Notifier, publisher Publisher) *Service {
	return &Service{
		cfg:         cfg,
		orderRepo:   orderRepo,
		disputeRepo: disputeRepo,
		ledgerRepo:  ledgerRepo,
		escrow:      escrow,
		txManager:   txManager,
		notifier:    notifier,
		publisher:   publisher,
	}
}

// Checkout creates the order, its invoice, and the pending buyer charge
// entry in one unit. The entry id doubles as the payment reference the
// gateway echoes back in its confirmation webhook.
func (s *Service) Checkout(ctx context.Context, buyerID, sellerID int, subtotal decimal.Decimal) (*domain.Order, string, error) {
	if !subtotal.IsPositive() || buyerID == sellerID {
		return nil, "", ErrInvalidCheckoutInput
	}

	total := subtotal.Add(s.cfg.PlatformFlatFee)
	order := &domain.Order{
		ID:          uuid.New(),
		BuyerID:     buyerID,
		SellerID:    sellerID,
		Status:      domain.OrderStatusPending,
		TotalAmount: total,
	}
	invoice := &domain.Invoice{
		ID:               uuid.New(),
		OrderID:          order.ID,
		Subtotal:         subtotal,
		SellerFeePercent: s.cfg.SellerFeePercent,
		PlatformFlatFee:  s.cfg.PlatformFlatFee,
		TotalAmount:      total,
		PaymentStatus:    domain.InvoiceStatusPending,
	}
	charge := &domain.LedgerEntry{
		ID:      uuid.New(),
		UserID:  buyerID,
		OrderID: order.ID,
		Kind:    domain.LedgerKindEscrowDeposit,
		Amount:  total.Neg(),
		Status:  domain.LedgerStatusPending,
	}
	key := charge.ID.String()
	charge.IdempotencyKey = &key

	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if err := s.orderRepo.SaveInvoice(ctx, invoice); err != nil {
			return err
		}
		_, err := s.ledgerRepo.Insert(ctx, charge)
		return err
	})
	if err != nil {
		return nil, "", err
	}

	zap.L().Info("order created",
		zap.String("orderID", order.ID.String()),
		zap.String("total", total.String()),
	)
	return order, key, nil
}

// ConfirmPayment applies the payment gateway's asynchronous charge
// result. The pending charge entry is the idempotency anchor: an event
// whose entry is no longer PENDING is dropped with no side effects.
func (s *Service) ConfirmPayment(ctx context.Context, transactionID string, success bool, externalTxID string) error {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		entry, err := s.ledgerRepo.FindByIdempotencyKeyForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Status != domain.LedgerStatusPending {
			zap.L().Info("dropping duplicate or unknown payment confirmation", zap.String("transactionID", transactionID))
			return nil
		}

		order, err = s.orderRepo.GetByIDForUpdate(ctx, entry.OrderID)
		if err != nil {
			return err
		}
		if order == nil || order.Status != domain.OrderStatusPending {
			zap.L().Warn("payment confirmation for order not awaiting payment",
				zap.String("transactionID", transactionID))
			order = nil
			return nil
		}

		if externalTxID != "" {
			if err := s.ledgerRepo.SetExternalReference(ctx, entry.ID, externalTxID); err != nil {
				return err
			}
		}

		if !success {
			if _, err := s.ledgerRepo.UpdateStatus(ctx, entry.ID, domain.LedgerStatusPending, domain.LedgerStatusFailed); err != nil {
				return err
			}
			return s.setStatus(ctx, order, domain.OrderStatusCancelled)
		}

		ok, err := s.orderRepo.UpdateInvoiceStatus(ctx, order.ID, domain.InvoiceStatusPending, domain.InvoiceStatusPaid)
		if err != nil {
			return err
		}
		if !ok {
			zap.L().Warn("invoice already settled, dropping confirmation", zap.String("transactionID", transactionID))
			order = nil
			return nil
		}
		if _, err := s.ledgerRepo.UpdateStatus(ctx, entry.ID, domain.LedgerStatusPending, domain.LedgerStatusCompleted); err != nil {
			return err
		}
		if _, err := s.escrow.Hold(ctx, order.ID); err != nil {
			return err
		}
		return s.setStatus(ctx, order, domain.OrderStatusWaiting)
	})
	if err != nil || order == nil {
		return err
	}

	if success {
		s.publisher.PublishOrderEvent(ctx, order.ID, "escrow.held", order.TotalAmount)
		s.notifier.Notify(ctx, order.SellerID, "ORDER_PAID", "New order", "A buyer has paid for an order awaiting your acceptance.", order.ID.String())
	} else {
		s.notifier.Notify(ctx, order.BuyerID, "PAYMENT_FAILED", "Payment failed", "Your payment could not be processed and the order was cancelled.", order.ID.String())
	}
	return nil
}

// Accept moves a paid order into work.
func (s *Service) Accept(ctx context.Context, sellerID int, orderID uuid.UUID) error {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOwnedOrder(ctx, orderID, sellerID)
		if err != nil {
			return err
		}
		if order.SellerID != sellerID {
			return ErrNotParticipant
		}
		if order.Status != domain.OrderStatusWaiting {
			return ErrInvalidTransition
		}
		return s.setStatus(ctx, order, domain.OrderStatusAccepted)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, order.BuyerID, "ORDER_ACCEPTED", "Order accepted", "The seller has started working on your order.", orderID.String())
	return nil
}

// Reject lets the seller turn an order down before work starts; a paid
// invoice is refunded.
func (s *Service) Reject(ctx context.Context, sellerID int, orderID uuid.UUID) error {
	return s.closeEarly(ctx, orderID, domain.OrderStatusRejected, func(order *domain.Order) error {
		if order.SellerID != sellerID {
			return ErrNotParticipant
		}
		return nil
	})
}

// Cancel lets the buyer back out before the seller accepts; a paid
// invoice is refunded.
func (s *Service) Cancel(ctx context.Context, buyerID int, orderID uuid.UUID) error {
	return s.closeEarly(ctx, orderID, domain.OrderStatusCancelled, func(order *domain.Order) error {
		if order.BuyerID != buyerID {
			return ErrNotParticipant
		}
		return nil
	})
}

func (s *Service) closeEarly(ctx context.Context, orderID uuid.UUID, target string, permitted func(*domain.Order) error) error {
	var order *domain.Order
	var refunded bool
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := permitted(order); err != nil {
			return err
		}
		if order.Status != domain.OrderStatusPending && order.Status != domain.OrderStatusWaiting {
			return ErrInvalidTransition
		}

		invoice, err := s.orderRepo.GetInvoiceForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice != nil && invoice.PaymentStatus == domain.InvoiceStatusPaid {
			if err := s.escrow.RefundToBuyer(ctx, orderID); err != nil {
				return err
			}
			refunded = true
		}
		return s.setStatus(ctx, order, target)
	})
	if err != nil {
		return err
	}

	if refunded {
		s.publisher.PublishOrderEvent(ctx, orderID, "escrow.refunded", order.TotalAmount)
		s.notifier.Notify(ctx, order.BuyerID, "ORDER_REFUNDED", "Order refunded", "Your order was closed and the payment refunded.", orderID.String())
	}
	return nil
}

// Deliver records the seller's submission and arms the auto-complete
// timer. Redelivery after a change request follows the same path.
func (s *Service) Deliver(ctx context.Context, sellerID int, orderID uuid.UUID) error {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.SellerID != sellerID {
			return ErrNotParticipant
		}
		if err := s.ensureNoOpenDispute(ctx, orderID); err != nil {
			return err
		}
		if order.Status != domain.OrderStatusAccepted && order.Status != domain.OrderStatusChangeRequested {
			return ErrInvalidTransition
		}

		due := time.Now().Add(s.cfg.AutoCompleteAfter)
		order.AutoCompleteAt = &due
		order.RedeliveryDueAt = nil
		return s.setStatus(ctx, order, domain.OrderStatusDelivered)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, order.BuyerID, "ORDER_DELIVERED", "Order delivered", "The seller has delivered your order.", orderID.String())
	return nil
}

// RequestChanges sends a delivery back to the seller and arms the
// redelivery timer; if it lapses the order auto-cancels.
func (s *Service) RequestChanges(ctx context.Context, buyerID int, orderID uuid.UUID) error {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order.BuyerID != buyerID {
			return ErrNotParticipant
		}
		if order.Status != domain.OrderStatusDelivered {
			return ErrInvalidTransition
		}

		due := time.Now().Add(s.cfg.RedeliveryWindow)
		order.RedeliveryDueAt = &due
		order.AutoCompleteAt = nil
		return s.setStatus(ctx, order, domain.OrderStatusChangeRequested)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, order.SellerID, "CHANGES_REQUESTED", "Changes requested", "The buyer has requested changes to the delivery.", orderID.String())
	return nil
}

// Complete releases the escrow to the seller after the buyer confirms
// the delivery.
func (s *Service) Complete(ctx context.Context, buyerID int, orderID uuid.UUID) error {
	return s.complete(ctx, orderID, func(order *domain.Order) error {
		if order.BuyerID != buyerID {
			return ErrNotParticipant
		}
		return nil
	})
}

// AutoComplete is the sweep path for deliveries the buyer never
// confirmed; it runs through the same guards as a manual completion.
func (s *Service) AutoComplete(ctx context.Context, orderID uuid.UUID) error {
	return s.complete(ctx, orderID, func(*domain.Order) error { return nil })
}

func (s *Service) complete(ctx context.Context, orderID uuid.UUID, permitted func(*domain.Order) error) error {
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := permitted(order); err != nil {
			return err
		}
		if err := s.ensureNoOpenDispute(ctx, orderID); err != nil {
			return err
		}
		if order.Status != domain.OrderStatusDelivered {
			return ErrInvalidTransition
		}

		if err := s.escrow.Release(ctx, orderID); err != nil {
			return err
		}
		order.AutoCompleteAt = nil
		return s.setStatus(ctx, order, domain.OrderStatusCompleted)
	})
	if err != nil {
		return err
	}

	s.publisher.PublishOrderEvent(ctx, orderID, "escrow.released", order.TotalAmount)
	s.notifier.Notify(ctx, order.SellerID, "ORDER_COMPLETED", "Order completed", "The order is complete and your earnings are available.", orderID.String())
	return nil
}

// AutoCancel is the sweep path for change requests the seller never
// answered: the order cancels and a paid invoice is refunded.
func (s *Service) AutoCancel(ctx context.Context, orderID uuid.UUID) error {
	var order *domain.Order
	var refunded bool
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if err := s.ensureNoOpenDispute(ctx, orderID); err != nil {
			return err
		}
		if order.Status != domain.OrderStatusChangeRequested {
			return ErrInvalidTransition
		}

		invoice, err := s.orderRepo.GetInvoiceForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice != nil && invoice.PaymentStatus == domain.InvoiceStatusPaid {
			if err := s.escrow.RefundToBuyer(ctx, orderID); err != nil {
				return err
			}
			refunded = true
		}
		order.RedeliveryDueAt = nil
		return s.setStatus(ctx, order, domain.OrderStatusCancelled)
	})
	if err != nil {
		return err
	}

	if refunded {
		s.publisher.PublishOrderEvent(ctx, orderID, "escrow.refunded", order.TotalAmount)
	}
	s.notifier.Notify(ctx, order.BuyerID, "ORDER_CANCELLED", "Order cancelled", "The seller did not redeliver in time; your payment was refunded.", orderID.String())
	return nil
}

func (s *Service) GetOrders(ctx context.Context, userID int) ([]domain.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, userID int, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, ErrNotParticipant
	}
	return order, nil
}

func (s *Service) lockOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func (s *Service) lockOwnedOrder(ctx context.Context, orderID uuid.UUID, userID int) (*domain.Order, error) {
	order, err := s.lockOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != userID && order.SellerID != userID {
		return nil, ErrNotParticipant
	}
	return order, nil
}

func (s *Service) ensureNoOpenDispute(ctx context.Context, orderID uuid.UUID) error {
	dispute, err := s.disputeRepo.FindOpenByOrderID(ctx, orderID)
	if err != nil {
		return err
	}
	if dispute != nil {
		return ErrOrderInDispute
	}
	return nil
}

func (s *Service) setStatus(ctx context.Context, order *domain.Order, status string) error {
	order.Status = status
	return s.orderRepo.UpdateStatus(ctx, order)
}
