package orderservice

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"go.uber.org/zap"
)

// disputableStatuses are the paid states a dispute can be raised from.
var disputableStatuses = map[string]struct{}{
	domain.OrderStatusWaiting:         {},
	domain.OrderStatusAccepted:        {},
	domain.OrderStatusDelivered:       {},
	domain.OrderStatusChangeRequested: {},
}

// OpenDispute freezes an order: while the dispute stays open, both
// completion and the SLA sweeps are blocked.
func (s *Service) OpenDispute(ctx context.Context, userID int, orderID uuid.UUID, reason string) (*domain.Dispute, error) {
	var dispute *domain.Dispute
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.lockOwnedOrder(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if _, ok := disputableStatuses[order.Status]; !ok {
			return ErrInvalidTransition
		}

		invoice, err := s.orderRepo.GetInvoiceForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if invoice == nil || invoice.PaymentStatus != domain.InvoiceStatusPaid {
			return ErrOrderNotPaid
		}

		existing, err := s.disputeRepo.FindOpenByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDisputeAlreadyOpen
		}

		dispute, err = s.disputeRepo.Create(ctx, &domain.Dispute{
			OrderID:     orderID,
			InitiatorID: userID,
			Reason:      reason,
			Status:      domain.DisputeStatusOpen,
		})
		if err != nil {
			return err
		}
		return s.setStatus(ctx, order, domain.OrderStatusDisputed)
	})
	if err != nil {
		return nil, err
	}

	counterparty := order.SellerID
	if userID == order.SellerID {
		counterparty = order.BuyerID
	}
	s.notifier.Notify(ctx, counterparty, "DISPUTE_OPENED", "Dispute opened", "A dispute was opened on one of your orders.", orderID.String())
	return dispute, nil
}

// ResolveDispute applies the admin's split, stores the produced entry
// ids on the dispute for audit, and closes the order: completed when
// the seller keeps a share, cancelled on a full buyer refund.
func (s *Service) ResolveDispute(ctx context.Context, disputeID uuid.UUID, sellerAmount, buyerRefund decimal.Decimal) (*domain.Dispute, error) {
	var dispute *domain.Dispute
	var order *domain.Order
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		dispute, err = s.disputeRepo.GetByIDForUpdate(ctx, disputeID)
		if err != nil {
			return err
		}
		if dispute == nil {
			return ErrDisputeNotFound
		}
		if dispute.Status != domain.DisputeStatusOpen && dispute.Status != domain.DisputeStatusInReview {
			return ErrDisputeNotOpen
		}

		order, err = s.lockOrder(ctx, dispute.OrderID)
		if err != nil {
			return err
		}
		if order.Status != domain.OrderStatusDisputed {
			return ErrInvalidTransition
		}

		result, err := s.escrow.ReleaseSplit(ctx, dispute.OrderID, sellerAmount, buyerRefund)
		if err != nil {
			return err
		}

		dispute.Status = domain.DisputeStatusResolved
		dispute.SellerAmount = &sellerAmount
		dispute.BuyerRefund = &buyerRefund
		dispute.SellerEntryID = result.SellerEntryID
		dispute.BuyerEntryID = result.BuyerEntryID
		if err := s.disputeRepo.Resolve(ctx, dispute); err != nil {
			return err
		}

		target := domain.OrderStatusCompleted
		if !sellerAmount.IsPositive() {
			target = domain.OrderStatusCancelled
		}
		order.AutoCompleteAt = nil
		order.RedeliveryDueAt = nil
		return s.setStatus(ctx, order, target)
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("dispute resolved",
		zap.String("disputeID", disputeID.String()),
		zap.String("sellerAmount", sellerAmount.String()),
		zap.String("buyerRefund", buyerRefund.String()),
	)
	s.publisher.PublishOrderEvent(ctx, order.ID, "escrow.split", sellerAmount.Add(buyerRefund))
	s.notifier.Notify(ctx, order.BuyerID, "DISPUTE_RESOLVED", "Dispute resolved", "Your dispute has been resolved.", order.ID.String())
	s.notifier.Notify(ctx, order.SellerID, "DISPUTE_RESOLVED", "Dispute resolved", "A dispute on your order has been resolved.", order.ID.String())
	return dispute, nil
}

// FindExpired returns the orders whose SLA timers lapsed, for the sweep.
func (s *Service) FindExpired(ctx context.Context, limit uint32) (autoComplete, autoCancel []domain.Order, err error) {
	now := time.Now()
	autoComplete, err = s.orderRepo.FindAutoCompletable(ctx, now, limit)
	if err != nil {
		return nil, nil, err
	}
	autoCancel, err = s.orderRepo.FindRedeliveryExpired(ctx, now, limit)
	if err != nil {
		return nil, nil, err
	}
	return autoComplete, autoCancel, nil
}
