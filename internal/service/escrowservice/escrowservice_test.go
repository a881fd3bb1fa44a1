package escrowservice

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/pg"
)

func NewMock(t *testing.T) (*Service, *MockLedgerStore, *MockOrderRepo, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	ledger := NewMockLedgerStore(ctrl)
	orderRepo := NewMockOrderRepo(ctrl)
	tx := pg.NewMockTXManager(ctrl)
	tx.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		}).AnyTimes()
	service := New(ledger, orderRepo, tx)
	defer ctrl.Finish()
	return service, ledger, orderRepo, tx
}

func paidFixture(orderID uuid.UUID) (*domain.Order, *domain.Invoice) {
	order := &domain.Order{
		ID:          orderID,
		BuyerID:     1,
		SellerID:    42,
		Status:      domain.OrderStatusWaiting,
		TotalAmount: decimal.NewFromInt(110),
	}
	invoice := &domain.Invoice{
		OrderID:          orderID,
		Subtotal:         decimal.NewFromInt(100),
		SellerFeePercent: decimal.NewFromFloat(0.10),
		PlatformFlatFee:  decimal.NewFromInt(10),
		TotalAmount:      decimal.NewFromInt(110),
		PaymentStatus:    domain.InvoiceStatusPaid,
	}
	return order, invoice
}

func TestHold(t *testing.T) {
	service, ledger, orderRepo, _ := NewMock(t)
	orderID := uuid.New()
	order, invoice := paidFixture(orderID)

	t.Run("Paid invoice total moves into custody", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		ledger.EXPECT().Credit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindEscrowDeposit, decimal.NewFromInt(110)).
			Return(&domain.LedgerEntry{ID: uuid.New(), Amount: decimal.NewFromInt(110)}, nil)

		entry, err := service.Hold(context.Background(), orderID)
		assert.NoError(t, err)
		assert.True(t, entry.Amount.Equal(decimal.NewFromInt(110)))
	})

	t.Run("Unpaid invoice rejected", func(t *testing.T) {
		unpaid := *invoice
		unpaid.PaymentStatus = domain.InvoiceStatusPending
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(&unpaid, nil)

		_, err := service.Hold(context.Background(), orderID)
		assert.ErrorIs(t, err, ErrInvoiceNotPaid)
	})

	t.Run("Unknown order rejected", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(nil, nil)

		_, err := service.Hold(context.Background(), orderID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRelease(t *testing.T) {
	service, ledger, orderRepo, _ := NewMock(t)
	orderID := uuid.New()
	order, invoice := paidFixture(orderID)

	t.Run("Seller gets net share, fees become profit", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		// fee = 100 * 0.10 = 10, net = 90, profit = fee + flat = 20
		ledger.EXPECT().Debit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindEscrowRelease, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(90)), "net %s", amount)
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().Credit(gomock.Any(), 42, orderID, domain.LedgerKindEarning, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(90)))
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().AddProfit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, amount decimal.Decimal) error {
				assert.True(t, amount.Equal(decimal.NewFromInt(20)), "profit %s", amount)
				return nil
			})

		err := service.Release(context.Background(), orderID)
		assert.NoError(t, err)
	})

	t.Run("Release without paid invoice rejected", func(t *testing.T) {
		refunded := *invoice
		refunded.PaymentStatus = domain.InvoiceStatusRefunded
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(&refunded, nil)

		err := service.Release(context.Background(), orderID)
		assert.ErrorIs(t, err, ErrInvoiceNotPaid)
	})
}

func TestRefundToBuyer(t *testing.T) {
	service, ledger, orderRepo, _ := NewMock(t)
	orderID := uuid.New()
	order, invoice := paidFixture(orderID)

	t.Run("Buyer refunded total minus flat fee", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		// refund = 110 - 10 = 100, flat fee stays as profit
		ledger.EXPECT().Debit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindRefund, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(100)))
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().Credit(gomock.Any(), 1, orderID, domain.LedgerKindRefund, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(100)))
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().AddProfit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, amount decimal.Decimal) error {
				assert.True(t, amount.Equal(decimal.NewFromInt(10)))
				return nil
			})
		orderRepo.EXPECT().UpdateInvoiceStatus(gomock.Any(), orderID, domain.InvoiceStatusPaid, domain.InvoiceStatusRefunded).Return(true, nil)

		err := service.RefundToBuyer(context.Background(), orderID)
		assert.NoError(t, err)
	})

	t.Run("Second refund rejected by invoice guard", func(t *testing.T) {
		refunded := *invoice
		refunded.PaymentStatus = domain.InvoiceStatusRefunded
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(&refunded, nil)

		err := service.RefundToBuyer(context.Background(), orderID)
		assert.ErrorIs(t, err, ErrInvalidInvoiceState)
	})
}

func TestReleaseSplit(t *testing.T) {
	service, ledger, orderRepo, _ := NewMock(t)
	orderID := uuid.New()
	order, invoice := paidFixture(orderID)

	t.Run("Split pays seller net and refunds buyer", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		// seller 60, buyer 40: fee = 6, sellerNet = 54, required = 94, profit = 16
		ledger.EXPECT().EscrowBalance(gomock.Any()).Return(decimal.NewFromInt(110), nil)
		ledger.EXPECT().Debit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindEscrowRelease, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(54)), "seller net %s", amount)
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().Credit(gomock.Any(), 42, orderID, domain.LedgerKindEarning, gomock.Any()).
			Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
		ledger.EXPECT().Debit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindRefund, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int, _ uuid.UUID, _ string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
				assert.True(t, amount.Equal(decimal.NewFromInt(40)))
				return &domain.LedgerEntry{ID: uuid.New()}, nil
			})
		ledger.EXPECT().Credit(gomock.Any(), 1, orderID, domain.LedgerKindRefund, gomock.Any()).
			Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
		ledger.EXPECT().AddProfit(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, amount decimal.Decimal) error {
				assert.True(t, amount.Equal(decimal.NewFromInt(16)), "profit %s", amount)
				return nil
			})

		result, err := service.ReleaseSplit(context.Background(), orderID, decimal.NewFromInt(60), decimal.NewFromInt(40))
		assert.NoError(t, err)
		assert.NotNil(t, result.SellerEntryID)
		assert.NotNil(t, result.BuyerEntryID)
	})

	t.Run("Full refund split skips seller pair", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		ledger.EXPECT().EscrowBalance(gomock.Any()).Return(decimal.NewFromInt(110), nil)
		ledger.EXPECT().Debit(gomock.Any(), domain.TreasuryUserID, orderID, domain.LedgerKindRefund, gomock.Any()).
			Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
		ledger.EXPECT().Credit(gomock.Any(), 1, orderID, domain.LedgerKindRefund, gomock.Any()).
			Return(&domain.LedgerEntry{ID: uuid.New()}, nil)
		ledger.EXPECT().AddProfit(gomock.Any(), gomock.Any()).Return(nil)

		result, err := service.ReleaseSplit(context.Background(), orderID, decimal.Zero, decimal.NewFromInt(100))
		assert.NoError(t, err)
		assert.Nil(t, result.SellerEntryID)
		assert.NotNil(t, result.BuyerEntryID)
	})

	t.Run("Amounts that do not cover the subtotal rejected", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)

		_, err := service.ReleaseSplit(context.Background(), orderID, decimal.NewFromInt(60), decimal.NewFromInt(30))
		assert.ErrorIs(t, err, ErrSplitMismatch)
	})

	t.Run("Insufficient escrow rejected before any movement", func(t *testing.T) {
		orderRepo.EXPECT().GetByIDForUpdate(gomock.Any(), orderID).Return(order, nil)
		orderRepo.EXPECT().GetInvoiceForUpdate(gomock.Any(), orderID).Return(invoice, nil)
		ledger.EXPECT().EscrowBalance(gomock.Any()).Return(decimal.NewFromInt(50), nil)

		_, err := service.ReleaseSplit(context.Background(), orderID, decimal.NewFromInt(60), decimal.NewFromInt(40))
		assert.ErrorIs(t, err, ErrEscrowInsufficient)
	})
}
