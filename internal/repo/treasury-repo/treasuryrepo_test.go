package treasuryrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

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

func TestRepository_GetForUpdate(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	insert := regexp.QuoteMeta(`
        INSERT INTO treasury_wallet (id)
        VALUES (1)
        ON CONFLICT (id) DO NOTHING
    `)
	query := regexp.QuoteMeta(`
        SELECT id, escrow_balance, platform_profit, currency, updated_at
        FROM treasury_wallet
        WHERE id = 1
        FOR UPDATE
    `)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.TreasuryWallet
	}{
		{
			name: "Locks the singleton wallet row",
			mockSetup: func() {
				mock.ExpectExec(insert).WillReturnResult(pgxmock.NewResult("INSERT", 0))
				rows := pgxmock.NewRows([]string{"id", "escrow_balance", "platform_profit", "currency", "updated_at"}).
					AddRow(1, decimal.NewFromInt(150), decimal.NewFromInt(25), "USD", now)
				mock.ExpectQuery(query).WillReturnRows(rows)
			},
			expectErr: false,
			result: &domain.TreasuryWallet{
				ID:             1,
				EscrowBalance:  decimal.NewFromInt(150),
				PlatformProfit: decimal.NewFromInt(25),
				Currency:       "USD",
				UpdatedAt:      now,
			},
		},
		{
			name: "Insert failure",
			mockSetup: func() {
				mock.ExpectExec(insert).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
		{
			name: "Lock failure",
			mockSetup: func() {
				mock.ExpectExec(insert).WillReturnResult(pgxmock.NewResult("INSERT", 0))
				mock.ExpectQuery(query).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetForUpdate(context.Background())

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        UPDATE treasury_wallet
        SET escrow_balance = $1, platform_profit = $2, updated_at = now()
        WHERE id = 1
    `)
	wallet := &domain.TreasuryWallet{
		ID:             1,
		EscrowBalance:  decimal.NewFromInt(40),
		PlatformProfit: decimal.NewFromInt(45),
	}

	t.Run("Successfully updates wallet", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(wallet.EscrowBalance, wallet.PlatformProfit).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		err := repo.Update(context.Background(), wallet)
		assert.NoError(t, err)
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(wallet.EscrowBalance, wallet.PlatformProfit).
			WillReturnError(errors.New("database error"))

		err := repo.Update(context.Background(), wallet)
		assert.Error(t, err)
	})
}
