package withdrawalrepo

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

func (r *Repository) GetDefaultDestination(ctx context.Context, userID int) (*domain.PayoutDestination, error) {
	query := `
        SELECT id, user_id, provider, account, is_default, created_at
        FROM payout_destinations
        WHERE user_id = $1 AND is_default
    `
	row := r.db.QueryRow(ctx, query, userID)
	var dest domain.PayoutDestination
	err := row.Scan(&dest.ID, &dest.UserID, &dest.Provider, &dest.Account, &dest.IsDefault, &dest.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get default payout destination", zap.Error(err))
		return nil, err
	}
	return &dest, nil
}

// CreateDestination inserts a destination; when it is flagged default,
// the previous default is demoted first (partial unique index).
func (r *Repository) CreateDestination(ctx context.Context, dest *domain.PayoutDestination) (*domain.PayoutDestination, error) {
	if dest.IsDefault {
		demote := `
            UPDATE payout_destinations
            SET is_default = FALSE
            WHERE user_id = $1 AND is_default
        `
		if _, err := r.db.Exec(ctx, demote, dest.UserID); err != nil {
			zap.L().Error("failed to demote default payout destination", zap.Error(err))
			return nil, err
		}
	}

	query := `
        INSERT INTO payout_destinations (user_id, provider, account, is_default)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, dest.UserID, dest.Provider, dest.Account, dest.IsDefault).
		Scan(&dest.ID, &dest.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create payout destination", zap.Error(err))
		return nil, err
	}
	return dest, nil
}

func (r *Repository) ListDestinations(ctx context.Context, userID int) ([]domain.PayoutDestination, error) {
	query := `
        SELECT id, user_id, provider, account, is_default, created_at
        FROM payout_destinations
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch payout destinations", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var dests []domain.PayoutDestination
	for rows.Next() {
		var dest domain.PayoutDestination
		err := rows.Scan(&dest.ID, &dest.UserID, &dest.Provider, &dest.Account, &dest.IsDefault, &dest.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan payout destination row", zap.Error(err))
			return nil, err
		}
		dests = append(dests, dest)
	}
	return dests, nil
}

func (r *Repository) ListWithdrawals(ctx context.Context, userID int) ([]domain.LedgerEntry, error) {
	query := withdrawalSelect + `
        WHERE user_id = $1 AND kind = $2
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID, domain.LedgerKindWithdrawal)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

// FindPendingForDispatch lists pending withdrawals not yet handed to
// the payout gateway (no external reference recorded).
func (r *Repository) FindPendingForDispatch(ctx context.Context, limit uint32) ([]domain.LedgerEntry, error) {
	query := withdrawalSelect + `
        WHERE kind = $1 AND status = $2 AND external_reference IS NULL
        ORDER BY created_at ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, domain.LedgerKindWithdrawal, domain.LedgerStatusPending, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch withdrawals for dispatch", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

const withdrawalSelect = `
        SELECT id, user_id, order_id, kind, amount, status, external_reference, idempotency_key, created_at
        FROM ledger_entries`

func (r *Repository) scanEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		err := rows.Scan(&entry.ID, &entry.UserID, &entry.OrderID, &entry.Kind, &entry.Amount, &entry.Status, &entry.ExternalReference, &entry.IdempotencyKey, &entry.CreatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
