package balancerepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/pg"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetUserBalance(ctx context.Context, userID int) (*domain.UserBalance, error) {
	query := `
        SELECT id, user_id, available_balance, reserved_balance, earnings_to_date, cancelled_orders_credit
        FROM user_balance
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.UserBalance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.AvailableBalance, &balance.ReservedBalance, &balance.EarningsToDate, &balance.CancelledOrdersCredit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

// GetUserBalanceForUpdate locks the balance row inside the enclosing
// transaction, creating a zero balance on first use.
func (r *Repository) GetUserBalanceForUpdate(ctx context.Context, userID int) (*domain.UserBalance, error) {
	insert := `
        INSERT INTO user_balance (user_id)
        VALUES ($1)
        ON CONFLICT (user_id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, insert, userID); err != nil {
		zap.L().Error("failed to ensure user balance", zap.Error(err))
		return nil, err
	}

	query := `
        SELECT id, user_id, available_balance, reserved_balance, earnings_to_date, cancelled_orders_credit
        FROM user_balance
        WHERE user_id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, userID)
	var balance domain.UserBalance
	err := row.Scan(&balance.ID, &balance.UserID, &balance.AvailableBalance, &balance.ReservedBalance, &balance.EarningsToDate, &balance.CancelledOrdersCredit)
	if err != nil {
		zap.L().Error("failed to lock user balance", zap.Error(err))
		return nil, err
	}
	return &balance, nil
}

func (r *Repository) UpdateUserBalance(ctx context.Context, userID int, balance *domain.UserBalance) (*domain.UserBalance, error) {
	query := `
        UPDATE user_balance
        SET available_balance = $1, reserved_balance = $2, earnings_to_date = $3, cancelled_orders_credit = $4
        WHERE user_id = $5
        RETURNING id, user_id, available_balance, reserved_balance, earnings_to_date, cancelled_orders_credit
    `
	row := r.db.QueryRow(ctx, query, balance.AvailableBalance, balance.ReservedBalance, balance.EarningsToDate, balance.CancelledOrdersCredit, userID)
	var updated domain.UserBalance
	err := row.Scan(&updated.ID, &updated.UserID, &updated.AvailableBalance, &updated.ReservedBalance, &updated.EarningsToDate, &updated.CancelledOrdersCredit)
	if err != nil {
		zap.L().Error("failed to update user balance", zap.Error(err))
		return nil, err
	}
	return &updated, nil
}
