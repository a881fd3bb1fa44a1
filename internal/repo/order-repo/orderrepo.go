package orderrepo

import (
	"context"
	"errors"
	"time"

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

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (id, buyer_id, seller_id, status, total_amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, order.ID, order.BuyerID, order.SellerID, order.Status, order.TotalAmount).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to save order", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	query := `
        INSERT INTO invoices (id, order_id, subtotal, seller_fee_percent, platform_flat_fee, total_amount, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query, invoice.ID, invoice.OrderID, invoice.Subtotal, invoice.SellerFeePercent, invoice.PlatformFlatFee, invoice.TotalAmount, invoice.PaymentStatus).
		Scan(&invoice.CreatedAt)
	if err != nil {
		zap.L().Error("failed to save invoice", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := orderSelect + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// GetByIDForUpdate locks the order row; every state transition reads
// through here so two racing requests serialize on the row lock.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := orderSelect + ` WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) ([]domain.Order, error) {
	query := orderSelect + ` WHERE buyer_id = $1 OR seller_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *Repository) UpdateStatus(ctx context.Context, order *domain.Order) error {
	query := `
        UPDATE orders
        SET status = $1, auto_complete_at = $2, redelivery_due_at = $3, updated_at = now()
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, order.Status, order.AutoCompleteAt, order.RedeliveryDueAt, order.ID)
	if err != nil {
		zap.L().Error("failed to update order status", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetInvoiceForUpdate(ctx context.Context, orderID uuid.UUID) (*domain.Invoice, error) {
	query := `
        SELECT id, order_id, subtotal, seller_fee_percent, platform_flat_fee, total_amount, payment_status, created_at
        FROM invoices
        WHERE order_id = $1
        FOR UPDATE
    `
	row := r.db.QueryRow(ctx, query, orderID)
	var invoice domain.Invoice
	err := row.Scan(&invoice.ID, &invoice.OrderID, &invoice.Subtotal, &invoice.SellerFeePercent, &invoice.PlatformFlatFee, &invoice.TotalAmount, &invoice.PaymentStatus, &invoice.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get invoice", zap.Error(err))
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoiceStatus is guarded on the current status so PENDING→PAID
// and PAID→REFUNDED each apply at most once.
func (r *Repository) UpdateInvoiceStatus(ctx context.Context, orderID uuid.UUID, from, to string) (bool, error) {
	query := `
        UPDATE invoices
        SET payment_status = $1
        WHERE order_id = $2 AND payment_status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, orderID, from)
	if err != nil {
		zap.L().Error("failed to update invoice status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// FindAutoCompletable lists delivered orders whose confirmation window
// elapsed; the sweep re-applies each through the guarded path.
func (r *Repository) FindAutoCompletable(ctx context.Context, now time.Time, limit uint32) ([]domain.Order, error) {
	query := orderSelect + `
        WHERE status = $1 AND auto_complete_at IS NOT NULL AND auto_complete_at <= $2
        ORDER BY auto_complete_at ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, domain.OrderStatusDelivered, now, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch auto-completable orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *Repository) FindRedeliveryExpired(ctx context.Context, now time.Time, limit uint32) ([]domain.Order, error) {
	query := orderSelect + `
        WHERE status = $1 AND redelivery_due_at IS NOT NULL AND redelivery_due_at <= $2
        ORDER BY redelivery_due_at ASC
        LIMIT $3
    `
	rows, err := r.db.Query(ctx, query, domain.OrderStatusChangeRequested, now, int(limit))
	if err != nil {
		zap.L().Error("failed to fetch redelivery-expired orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

const orderSelect = `
        SELECT id, buyer_id, seller_id, status, total_amount, auto_complete_at, redelivery_due_at, created_at, updated_at
        FROM orders`

func (r *Repository) scanOne(row pgx.Row) (*domain.Order, error) {
	var order domain.Order
	err := row.Scan(&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalAmount, &order.AutoCompleteAt, &order.RedeliveryDueAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to scan order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) scanMany(rows pgx.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		err := rows.Scan(&order.ID, &order.BuyerID, &order.SellerID, &order.Status, &order.TotalAmount, &order.AutoCompleteAt, &order.RedeliveryDueAt, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}
