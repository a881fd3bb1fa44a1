package orderrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/gigmarket/escrowd/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var orderColumns = []string{"id", "buyer_id", "seller_id", "status", "total_amount", "auto_complete_at", "redelivery_due_at", "created_at", "updated_at"}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        INSERT INTO orders (id, buyer_id, seller_id, status, total_amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at
    `)
	order := &domain.Order{
		ID:          uuid.New(),
		BuyerID:     1,
		SellerID:    42,
		Status:      domain.OrderStatusPending,
		TotalAmount: decimal.NewFromInt(110),
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully saves order",
			mockSetup: func() {
				now := time.Now()
				mock.ExpectQuery(query).
					WithArgs(order.ID, order.BuyerID, order.SellerID, order.Status, order.TotalAmount).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(order.ID, order.BuyerID, order.SellerID, order.Status, order.TotalAmount).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Save(context.Background(), order)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.False(t, order.CreatedAt.IsZero())
			}
		})
	}
}

func TestRepository_SaveInvoice(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        INSERT INTO invoices (id, order_id, subtotal, seller_fee_percent, platform_flat_fee, total_amount, payment_status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at
    `)
	invoice := &domain.Invoice{
		ID:               uuid.New(),
		OrderID:          uuid.New(),
		Subtotal:         decimal.NewFromInt(100),
		SellerFeePercent: decimal.NewFromFloat(0.10),
		PlatformFlatFee:  decimal.NewFromInt(10),
		TotalAmount:      decimal.NewFromInt(110),
		PaymentStatus:    domain.InvoiceStatusPending,
	}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successfully saves invoice",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(invoice.ID, invoice.OrderID, invoice.Subtotal, invoice.SellerFeePercent, invoice.PlatformFlatFee, invoice.TotalAmount, invoice.PaymentStatus).
					WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs(invoice.ID, invoice.OrderID, invoice.Subtotal, invoice.SellerFeePercent, invoice.PlatformFlatFee, invoice.TotalAmount, invoice.PaymentStatus).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.SaveInvoice(context.Background(), invoice)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := NewMock(t)
	orderID := uuid.New()
	query := regexp.QuoteMeta(orderSelect + ` WHERE id = $1`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Existing order returned",
			mockSetup: func() {
				now := time.Now()
				rows := pgxmock.NewRows(orderColumns).
					AddRow(orderID, 1, 42, domain.OrderStatusWaiting, decimal.NewFromInt(110), nil, nil, now, now)
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Missing order returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetByID(context.Background(), orderID)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.NotNil(t, result)
				assert.Equal(t, orderID, result.ID)
				assert.Equal(t, domain.OrderStatusWaiting, result.Status)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	orderID := uuid.New()
	query := regexp.QuoteMeta(orderSelect + ` WHERE id = $1 FOR UPDATE`)

	now := time.Now()
	rows := pgxmock.NewRows(orderColumns).
		AddRow(orderID, 1, 42, domain.OrderStatusDelivered, decimal.NewFromInt(110), &now, nil, now, now)
	mock.ExpectQuery(query).WithArgs(orderID).WillReturnRows(rows)

	result, err := repo.GetByIDForUpdate(context.Background(), orderID)
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, domain.OrderStatusDelivered, result.Status)
	assert.NotNil(t, result.AutoCompleteAt)

	mock.ExpectQuery(query).WithArgs(orderID).WillReturnError(errors.New("database error"))
	result, err = repo.GetByIDForUpdate(context.Background(), orderID)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(orderSelect + ` WHERE buyer_id = $1 OR seller_id = $1 ORDER BY created_at DESC`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name: "Returns orders for participant",
			mockSetup: func() {
				now := time.Now()
				rows := pgxmock.NewRows(orderColumns).
					AddRow(uuid.New(), 1, 42, domain.OrderStatusWaiting, decimal.NewFromInt(110), nil, nil, now, now).
					AddRow(uuid.New(), 7, 1, domain.OrderStatusCompleted, decimal.NewFromInt(55), nil, nil, now, now)
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)
			},
			count: 2,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.count)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        UPDATE orders
        SET status = $1, auto_complete_at = $2, redelivery_due_at = $3, updated_at = now()
        WHERE id = $4
    `)
	deadline := time.Now().Add(72 * time.Hour)
	order := &domain.Order{
		ID:             uuid.New(),
		Status:         domain.OrderStatusDelivered,
		AutoCompleteAt: &deadline,
	}

	mock.ExpectExec(query).
		WithArgs(order.Status, order.AutoCompleteAt, order.RedeliveryDueAt, order.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, repo.UpdateStatus(context.Background(), order))

	mock.ExpectExec(query).
		WithArgs(order.Status, order.AutoCompleteAt, order.RedeliveryDueAt, order.ID).
		WillReturnError(errors.New("database error"))
	assert.Error(t, repo.UpdateStatus(context.Background(), order))
}

func TestRepository_GetInvoiceForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	orderID := uuid.New()
	columns := []string{"id", "order_id", "subtotal", "seller_fee_percent", "platform_flat_fee", "total_amount", "payment_status", "created_at"}
	query := regexp.QuoteMeta(`
        SELECT id, order_id, subtotal, seller_fee_percent, platform_flat_fee, total_amount, payment_status, created_at
        FROM invoices
        WHERE order_id = $1
        FOR UPDATE
    `)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Existing invoice locked and returned",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow(uuid.New(), orderID, decimal.NewFromInt(100), decimal.NewFromFloat(0.10), decimal.NewFromInt(10), decimal.NewFromInt(110), domain.InvoiceStatusPaid, time.Now())
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Missing invoice returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(orderID).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetInvoiceForUpdate(context.Background(), orderID)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.NotNil(t, result)
				assert.Equal(t, domain.InvoiceStatusPaid, result.PaymentStatus)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestRepository_UpdateInvoiceStatus(t *testing.T) {
	repo, mock := NewMock(t)
	orderID := uuid.New()
	query := regexp.QuoteMeta(`
        UPDATE invoices
        SET payment_status = $1
        WHERE order_id = $2 AND payment_status = $3
    `)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		applied   bool
	}{
		{
			name: "Guarded transition applies once",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.InvoiceStatusPaid, orderID, domain.InvoiceStatusPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			applied: true,
		},
		{
			name: "Already transitioned",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.InvoiceStatusPaid, orderID, domain.InvoiceStatusPending).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			applied: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(query).
					WithArgs(domain.InvoiceStatusPaid, orderID, domain.InvoiceStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			applied, err := repo.UpdateInvoiceStatus(context.Background(), orderID, domain.InvoiceStatusPending, domain.InvoiceStatusPaid)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.applied, applied)
			}
		})
	}
}

func TestRepository_FindAutoCompletable(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(orderSelect + `
        WHERE status = $1 AND auto_complete_at IS NOT NULL AND auto_complete_at <= $2
        ORDER BY auto_complete_at ASC
        LIMIT $3
    `)

	deadline := now.Add(-time.Hour)
	rows := pgxmock.NewRows(orderColumns).
		AddRow(uuid.New(), 1, 42, domain.OrderStatusDelivered, decimal.NewFromInt(110), &deadline, nil, now, now)
	mock.ExpectQuery(query).WithArgs(domain.OrderStatusDelivered, now, 100).WillReturnRows(rows)

	result, err := repo.FindAutoCompletable(context.Background(), now, 100)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	mock.ExpectQuery(query).WithArgs(domain.OrderStatusDelivered, now, 100).WillReturnError(errors.New("database error"))
	result, err = repo.FindAutoCompletable(context.Background(), now, 100)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_FindRedeliveryExpired(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta(orderSelect + `
        WHERE status = $1 AND redelivery_due_at IS NOT NULL AND redelivery_due_at <= $2
        ORDER BY redelivery_due_at ASC
        LIMIT $3
    `)

	due := now.Add(-time.Hour)
	rows := pgxmock.NewRows(orderColumns).
		AddRow(uuid.New(), 1, 42, domain.OrderStatusChangeRequested, decimal.NewFromInt(110), nil, &due, now, now)
	mock.ExpectQuery(query).WithArgs(domain.OrderStatusChangeRequested, now, 100).WillReturnRows(rows)

	result, err := repo.FindRedeliveryExpired(context.Background(), now, 100)
	assert.NoError(t, err)
	assert.Len(t, result, 1)

	mock.ExpectQuery(query).WithArgs(domain.OrderStatusChangeRequested, now, 100).WillReturnError(errors.New("database error"))
	result, err = repo.FindRedeliveryExpired(context.Background(), now, 100)
	assert.Error(t, err)
	assert.Nil(t, result)
}
