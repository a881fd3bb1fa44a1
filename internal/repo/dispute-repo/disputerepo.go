package disputerepo

import (
	"context"
	"errors"

	"github.com/google/uuid"
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

func (r *Repository) Create(ctx context.Context, dispute *domain.Dispute) (*domain.Dispute, error) {
	query := `
        INSERT INTO disputes (id, order_id, initiator_id, reason, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at
    `
	if dispute.ID == uuid.Nil {
		dispute.ID = uuid.New()
	}
	err := r.db.QueryRow(ctx, query, dispute.ID, dispute.OrderID, dispute.InitiatorID, dispute.Reason, dispute.Status).
		Scan(&dispute.CreatedAt)
	if err != nil {
		zap.L().Error("failed to create dispute", zap.Error(err))
		return nil, err
	}
	return dispute, nil
}

func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Dispute, error) {
	query := disputeSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindOpenByOrderID returns the open or in-review dispute for an order,
// nil when there is none.
func (r *Repository) FindOpenByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Dispute, error) {
	query := disputeSelect + ` WHERE order_id = $1 AND status IN ($2, $3)`
	return r.scanOne(r.db.QueryRow(ctx, query, orderID, domain.DisputeStatusOpen, domain.DisputeStatusInReview))
}

// Resolve stores the split amounts and the mirrored entry ids produced
// by the settlement, for later audit.
func (r *Repository) Resolve(ctx context.Context, dispute *domain.Dispute) error {
	query := `
        UPDATE disputes
        SET status = $1, seller_amount = $2, buyer_refund = $3, seller_entry_id = $4, buyer_entry_id = $5, resolved_at = now()
        WHERE id = $6
    `
	_, err := r.db.Exec(ctx, query, dispute.Status, dispute.SellerAmount, dispute.BuyerRefund, dispute.SellerEntryID, dispute.BuyerEntryID, dispute.ID)
	if err != nil {
		zap.L().Error("failed to resolve dispute", zap.Error(err))
		return err
	}
	return nil
}

const disputeSelect = `
        SELECT id, order_id, initiator_id, reason, status, seller_amount, buyer_refund, seller_entry_id, buyer_entry_id, created_at, resolved_at
        FROM disputes`

func (r *Repository) scanOne(row pgx.Row) (*domain.Dispute, error) {
	var dispute domain.Dispute
	err := row.Scan(&dispute.ID, &dispute.OrderID, &dispute.InitiatorID, &dispute.Reason, &dispute.Status, &dispute.SellerAmount, &dispute.BuyerRefund, &dispute.SellerEntryID, &dispute.BuyerEntryID, &dispute.CreatedAt, &dispute.ResolvedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to scan dispute", zap.Error(err))
		return nil, err
	}
	return &dispute, nil
}
