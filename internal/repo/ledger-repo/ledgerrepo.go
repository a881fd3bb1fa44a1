package ledgerrepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

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

func (r *Repository) Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
        INSERT INTO ledger_entries (id, user_id, order_id, kind, amount, status, external_reference, idempotency_key)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query, entry.ID, entry.UserID, entry.OrderID, entry.Kind, entry.Amount, entry.Status, entry.ExternalReference, entry.IdempotencyKey).
		Scan(&entry.CreatedAt)
	if err != nil {
		zap.L().Error("failed to insert ledger entry", zap.Error(err))
		return nil, err
	}
	return entry, nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, order_id, kind, amount, status, external_reference, idempotency_key, created_at
        FROM ledger_entries
        WHERE id = $1
    `
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the entry row so a status transition and its
// balance side effects commit as one unit.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, order_id, kind, amount, status, external_reference, idempotency_key, created_at
        FROM ledger_entries
        WHERE id = $1
        FOR UPDATE
    `
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByIdempotencyKeyForUpdate(ctx context.Context, key string) (*domain.LedgerEntry, error) {
	query := `
        SELECT id, user_id, order_id, kind, amount, status, external_reference, idempotency_key, created_at
        FROM ledger_entries
        WHERE idempotency_key = $1
        FOR UPDATE
    `
	return r.scanOne(r.db.QueryRow(ctx, query, key))
}

// UpdateStatus moves an entry from one status to another; the guard on
// the current status makes duplicate callbacks a visible no-op.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) (bool, error) {
	query := `
        UPDATE ledger_entries
        SET status = $1
        WHERE id = $2 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("failed to update ledger entry status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repository) SetExternalReference(ctx context.Context, id uuid.UUID, ref string) error {
	query := `
        UPDATE ledger_entries
        SET external_reference = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, ref, id)
	if err != nil {
		zap.L().Error("failed to set ledger entry external reference", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) HasPendingWithdrawal(ctx context.Context, userID int) (bool, error) {
	query := `
        SELECT 1
        FROM ledger_entries
        WHERE user_id = $1 AND kind = $2 AND status = $3
        LIMIT 1
    `
	var one int
	err := r.db.QueryRow(ctx, query, userID, domain.LedgerKindWithdrawal, domain.LedgerStatusPending).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		zap.L().Error("failed to check pending withdrawal", zap.Error(err))
		return false, err
	}
	return true, nil
}

// SumByOrderID returns the signed sum of every settled entry sharing an
// order id; zero for a fully settled order.
func (r *Repository) SumByOrderID(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount), 0)
        FROM ledger_entries
        WHERE order_id = $1 AND status = $2
    `
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, query, orderID, domain.LedgerStatusCompleted).Scan(&sum)
	if err != nil {
		zap.L().Error("failed to sum ledger entries", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

func (r *Repository) scanOne(row pgx.Row) (*domain.LedgerEntry, error) {
	var entry domain.LedgerEntry
	err := row.Scan(&entry.ID, &entry.UserID, &entry.OrderID, &entry.Kind, &entry.Amount, &entry.Status, &entry.ExternalReference, &entry.IdempotencyKey, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to scan ledger entry", zap.Error(err))
		return nil, err
	}
	return &entry, nil
}
