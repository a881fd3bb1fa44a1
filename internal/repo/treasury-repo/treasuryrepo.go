package treasuryrepo

import (
	"context"

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

// GetForUpdate locks the singleton treasury row for the duration of the
// enclosing transaction, creating it lazily on first use.
func (r *Repository) GetForUpdate(ctx context.Context) (*domain.TreasuryWallet, error) {
	insert := `
        INSERT INTO treasury_wallet (id)
        VALUES (1)
        ON CONFLICT (id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, insert); err != nil {
		zap.L().Error("failed to ensure treasury wallet", zap.Error(err))
		return nil, err
	}

	query := `
        SELECT id, escrow_balance, platform_profit, currency, updated_at
        FROM treasury_wallet
        WHERE id = 1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query)
	var wallet domain.TreasuryWallet
	err := row.Scan(&wallet.ID, &wallet.EscrowBalance, &wallet.PlatformProfit, &wallet.Currency, &wallet.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to get treasury wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) Update(ctx context.Context, wallet *domain.TreasuryWallet) error {
	query := `
        UPDATE treasury_wallet
        SET escrow_balance = $1, platform_profit = $2, updated_at = now()
        WHERE id = 1
    `
	_, err := r.db.Exec(ctx, query, wallet.EscrowBalance, wallet.PlatformProfit)
	if err != nil {
		zap.L().Error("failed to update treasury wallet", zap.Error(err))
		return err
	}
	return nil
}
