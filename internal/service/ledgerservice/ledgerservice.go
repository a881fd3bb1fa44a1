package ledgerservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"go.uber.org/zap"
)

type TreasuryRepo interface {
	GetForUpdate(ctx context.Context) (*domain.TreasuryWallet, error)
	Update(ctx context.Context, wallet *domain.TreasuryWallet) error
}

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.UserBalance, error)
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.UserBalance, error)
	UpdateUserBalance(ctx context.Context, userID int, balance *domain.UserBalance) (*domain.UserBalance, error)
}

type LedgerRepo interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	SumByOrderID(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

var (
	ErrEscrowInsufficient           = errors.New("escrow balance insufficient")
	ErrInsufficientAvailableBalance = errors.New("insufficient available balance")
	ErrNonPositiveAmount            = errors.New("amount must be positive")
)

// Service implements the ledger primitives: every credit or debit
// mutates exactly one party's balance and appends one signed entry.
// Callers compose several primitives into one business operation by
// wrapping them in a single TXManager unit; the repositories lock the
// rows they read so the unit is atomic.
type Service struct {
	treasuryRepo TreasuryRepo
	balanceRepo  BalanceRepo
	ledgerRepo   LedgerRepo
}

func New(treasuryRepo TreasuryRepo, balanceRepo BalanceRepo, ledgerRepo LedgerRepo) *Service {
	return &Service{
		treasuryRepo: treasuryRepo,
		balanceRepo:  balanceRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// Credit adds amount to a party's balance and records a positive entry.
// For users, the entry kind drives the lifetime counters: EARNING feeds
// earnings_to_date, REFUND feeds cancelled_orders_credit.
func (s *Service) Credit(ctx context.Context, userID int, orderID uuid.UUID, kind string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	if userID == domain.TreasuryUserID {
		wallet, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return nil, err
		}
		wallet.EscrowBalance = wallet.EscrowBalance.Add(amount)
		if err := s.treasuryRepo.Update(ctx, wallet); err != nil {
			return nil, err
		}
		return s.insert(ctx, userID, orderID, kind, amount)
	}

	balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	balance.AvailableBalance = balance.AvailableBalance.Add(amount)
	switch kind {
	case domain.LedgerKindEarning:
		balance.EarningsToDate = balance.EarningsToDate.Add(amount)
	case domain.LedgerKindRefund:
		balance.CancelledOrdersCredit = balance.CancelledOrdersCredit.Add(amount)
	}
	if _, err := s.balanceRepo.UpdateUserBalance(ctx, userID, balance); err != nil {
		return nil, err
	}
	return s.insert(ctx, userID, orderID, kind, amount)
}

// Debit removes amount from a party's balance and records a negative
// entry. A debit that would drive the balance negative fails before any
// write.
func (s *Service) Debit(ctx context.Context, userID int, orderID uuid.UUID, kind string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
	if !amount.IsPositive() {
		return nil, ErrNonPositiveAmount
	}

	if userID == domain.TreasuryUserID {
		wallet, err := s.treasuryRepo.GetForUpdate(ctx)
		if err != nil {
			return nil, err
		}
		if wallet.EscrowBalance.LessThan(amount) {
			return nil, ErrEscrowInsufficient
		}
		wallet.EscrowBalance = wallet.EscrowBalance.Sub(amount)
		if err := s.treasuryRepo.Update(ctx, wallet); err != nil {
			return nil, err
		}
		return s.insert(ctx, userID, orderID, kind, amount.Neg())
	}

	balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance.AvailableBalance.LessThan(amount) {
		return nil, ErrInsufficientAvailableBalance
	}
	balance.AvailableBalance = balance.AvailableBalance.Sub(amount)
	if _, err := s.balanceRepo.UpdateUserBalance(ctx, userID, balance); err != nil {
		return nil, err
	}
	return s.insert(ctx, userID, orderID, kind, amount.Neg())
}

// AddProfit moves fee revenue into platform profit. Profit stays inside
// the treasury, so no ledger entry is produced.
func (s *Service) AddProfit(ctx context.Context, amount decimal.Decimal) error {
	wallet, err := s.treasuryRepo.GetForUpdate(ctx)
	if err != nil {
		return err
	}
	wallet.PlatformProfit = wallet.PlatformProfit.Add(amount)
	return s.treasuryRepo.Update(ctx, wallet)
}

// EscrowBalance reads the treasury escrow balance under lock, for
// precondition checks inside the enclosing transaction.
func (s *Service) EscrowBalance(ctx context.Context) (decimal.Decimal, error) {
	wallet, err := s.treasuryRepo.GetForUpdate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.EscrowBalance, nil
}

// OrderEntriesSum reconciles an order: for a settled order the mirrored
// entries cancel out to zero.
func (s *Service) OrderEntriesSum(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	sum, err := s.ledgerRepo.SumByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to reconcile order entries", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

func (s *Service) insert(ctx context.Context, userID int, orderID uuid.UUID, kind string, amount decimal.Decimal) (*domain.LedgerEntry, error) {
	entry := &domain.LedgerEntry{
		ID:      uuid.New(),
		UserID:  userID,
		OrderID: orderID,
		Kind:    kind,
		Amount:  amount,
		Status:  domain.LedgerStatusCompleted,
	}
	created, err := s.ledgerRepo.Insert(ctx, entry)
	if err != nil {
		zap.L().Error("failed to record ledger entry", zap.Error(err))
		return nil, err
	}
	return created, nil
}
