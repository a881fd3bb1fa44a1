package withdrawalservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/pg"
	"go.uber.org/zap"
)

type BalanceRepo interface {
	GetUserBalance(ctx context.Context, userID int) (*domain.UserBalance, error)
	GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.UserBalance, error)
	UpdateUserBalance(ctx context.Context, userID int, balance *domain.UserBalance) (*domain.UserBalance, error)
}

type LedgerRepo interface {
	Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error)
	HasPendingWithdrawal(ctx context.Context, userID int) (bool, error)
}

type WithdrawalRepo interface {
	GetDefaultDestination(ctx context.Context, userID int) (*domain.PayoutDestination, error)
	CreateDestination(ctx context.Context, dest *domain.PayoutDestination) (*domain.PayoutDestination, error)
	ListDestinations(ctx context.Context, userID int) ([]domain.PayoutDestination, error)
	ListWithdrawals(ctx context.Context, userID int) ([]domain.LedgerEntry, error)
}

var (
	ErrBelowMinimum             = errors.New("amount below withdrawal minimum")
	ErrWithdrawalAlreadyPending = errors.New("a withdrawal is already pending")
	ErrInsufficientBalance      = errors.New("insufficient balance")
	ErrNoPayoutDestination      = errors.New("no default payout destination")
	ErrWithdrawalNotFound       = errors.New("withdrawal not found")
)

// Service reserves funds for payout and reconciles the gateway outcome.
// The external disburse call never happens here: the reservation
// commits first, an async dispatcher hands the entry to the gateway,
// and Confirm settles the reservation in a separate transaction.
type Service struct {
	minWithdrawal  decimal.Decimal
	balanceRepo    BalanceRepo
	ledgerRepo     LedgerRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
}

func New(minWithdrawal decimal.Decimal, balanceRepo BalanceRepo, ledgerRepo LedgerRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager) *Service {
	return &Service{
		minWithdrawal:  minWithdrawal,
		balanceRepo:    balanceRepo,
		ledgerRepo:     ledgerRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
	}
}

// Request moves amount from available to reserved and records the
// PENDING withdrawal entry the payout dispatcher will pick up. One
// outstanding request per user.
func (s *Service) Request(ctx context.Context, userID int, amount decimal.Decimal) (*domain.LedgerEntry, error) {
	if amount.LessThan(s.minWithdrawal) {
		return nil, ErrBelowMinimum
	}

	var entry *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		pending, err := s.ledgerRepo.HasPendingWithdrawal(ctx, userID)
		if err != nil {
			return err
		}
		if pending {
			return ErrWithdrawalAlreadyPending
		}
		if balance.AvailableBalance.LessThan(amount) {
			return ErrInsufficientBalance
		}

		dest, err := s.withdrawalRepo.GetDefaultDestination(ctx, userID)
		if err != nil {
			return err
		}
		if dest == nil {
			return ErrNoPayoutDestination
		}

		balance.AvailableBalance = balance.AvailableBalance.Sub(amount)
		balance.ReservedBalance = balance.ReservedBalance.Add(amount)
		if _, err := s.balanceRepo.UpdateUserBalance(ctx, userID, balance); err != nil {
			return err
		}

		id := uuid.New()
		key := id.String()
		entry, err = s.ledgerRepo.Insert(ctx, &domain.LedgerEntry{
			ID:             id,
			UserID:         userID,
			OrderID:        id,
			Kind:           domain.LedgerKindWithdrawal,
			Amount:         amount.Neg(),
			Status:         domain.LedgerStatusPending,
			IdempotencyKey: &key,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("withdrawal requested",
		zap.Int("userID", userID),
		zap.String("amount", amount.String()),
		zap.String("entryID", entry.ID.String()),
	)
	return entry, nil
}

// Confirm settles a reservation from the gateway callback. A
// non-PENDING entry is a no-op, which makes duplicate callbacks safe.
func (s *Service) Confirm(ctx context.Context, entryID uuid.UUID, success bool) error {
	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		entry, err := s.ledgerRepo.GetByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil || entry.Kind != domain.LedgerKindWithdrawal {
			return ErrWithdrawalNotFound
		}
		if entry.Status != domain.LedgerStatusPending {
			zap.L().Info("dropping duplicate withdrawal confirmation", zap.String("entryID", entryID.String()))
			return nil
		}

		balance, err := s.balanceRepo.GetUserBalanceForUpdate(ctx, entry.UserID)
		if err != nil {
			return err
		}

		amount := entry.Amount.Neg()
		balance.ReservedBalance = balance.ReservedBalance.Sub(amount)
		target := domain.LedgerStatusCompleted
		if !success {
			balance.AvailableBalance = balance.AvailableBalance.Add(amount)
			target = domain.LedgerStatusRejected
		}
		if _, err := s.balanceRepo.UpdateUserBalance(ctx, entry.UserID, balance); err != nil {
			return err
		}
		if _, err := s.ledgerRepo.UpdateStatus(ctx, entryID, domain.LedgerStatusPending, target); err != nil {
			return err
		}
		return nil
	})
}

// GetBalance returns the user's balance, zero-valued when the user has
// no balance row yet.
func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.UserBalance, error) {
	balance, err := s.balanceRepo.GetUserBalance(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get balance", zap.Error(err))
		return nil, err
	}
	if balance == nil {
		balance = &domain.UserBalance{UserID: userID}
	}
	return balance, nil
}

func (s *Service) GetWithdrawals(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	withdrawals, err := s.withdrawalRepo.ListWithdrawals(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

func (s *Service) AddDestination(ctx context.Context, userID int, provider, account string, isDefault bool) (*domain.PayoutDestination, error) {
	dest, err := s.withdrawalRepo.CreateDestination(ctx, &domain.PayoutDestination{
		UserID:    userID,
		Provider:  provider,
		Account:   account,
		IsDefault: isDefault,
	})
	if err != nil {
		zap.L().Error("failed to create payout destination", zap.Error(err))
		return nil, err
	}
	return dest, nil
}

func (s *Service) GetDestinations(ctx context.Context, userID int) ([]domain.PayoutDestination, error) {
	dests, err := s.withdrawalRepo.ListDestinations(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch payout destinations", zap.Error(err))
		return nil, err
	}
	return dests, nil
}
