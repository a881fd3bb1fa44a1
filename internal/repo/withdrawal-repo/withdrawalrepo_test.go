package withdrawalrepo

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

var (
	destColumns  = []string{"id", "user_id", "provider", "account", "is_default", "created_at"}
	entryColumns = []string{"id", "user_id", "order_id", "kind", "amount", "status", "external_reference", "idempotency_key", "created_at"}
)

func TestRepository_GetDefaultDestination(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        SELECT id, user_id, provider, account, is_default, created_at
        FROM payout_destinations
        WHERE user_id = $1 AND is_default
    `)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Default destination returned",
			mockSetup: func() {
				rows := pgxmock.NewRows(destColumns).
					AddRow(1, 1, "card", "4561261212345467", true, time.Now())
				mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "No default destination returns nil",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs(1).WillReturnError(pgx.ErrNoRows)
			},
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
			result, err := repo.GetDefaultDestination(context.Background(), 1)

			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.NotNil(t, result)
				assert.Equal(t, "4561261212345467", result.Account)
				assert.True(t, result.IsDefault)
			} else {
				assert.Nil(t, result)
			}
		})
	}
}

func TestRepository_CreateDestination(t *testing.T) {
	repo, mock := NewMock(t)
	demote := regexp.QuoteMeta(`
            UPDATE payout_destinations
            SET is_default = FALSE
            WHERE user_id = $1 AND is_default
        `)
	insert := regexp.QuoteMeta(`
        INSERT INTO payout_destinations (user_id, provider, account, is_default)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `)

	tests := []struct {
		name      string
		dest      *domain.PayoutDestination
		mockSetup func(d *domain.PayoutDestination)
		expectErr bool
	}{
		{
			name: "Default destination demotes the previous one",
			dest: &domain.PayoutDestination{UserID: 1, Provider: "card", Account: "4561261212345467", IsDefault: true},
			mockSetup: func(d *domain.PayoutDestination) {
				mock.ExpectExec(demote).WithArgs(d.UserID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
				mock.ExpectQuery(insert).
					WithArgs(d.UserID, d.Provider, d.Account, d.IsDefault).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
			},
		},
		{
			name: "Non-default destination skips the demotion",
			dest: &domain.PayoutDestination{UserID: 1, Provider: "card", Account: "4561261212345467", IsDefault: false},
			mockSetup: func(d *domain.PayoutDestination) {
				mock.ExpectQuery(insert).
					WithArgs(d.UserID, d.Provider, d.Account, d.IsDefault).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(2, time.Now()))
			},
		},
		{
			name: "Demotion failure",
			dest: &domain.PayoutDestination{UserID: 1, Provider: "card", Account: "4561261212345467", IsDefault: true},
			mockSetup: func(d *domain.PayoutDestination) {
				mock.ExpectExec(demote).WithArgs(d.UserID).WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
		{
			name: "Insert failure",
			dest: &domain.PayoutDestination{UserID: 1, Provider: "card", Account: "4561261212345467", IsDefault: false},
			mockSetup: func(d *domain.PayoutDestination) {
				mock.ExpectQuery(insert).
					WithArgs(d.UserID, d.Provider, d.Account, d.IsDefault).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup(tt.dest)
			result, err := repo.CreateDestination(context.Background(), tt.dest)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, result)
				assert.NotZero(t, result.ID)
			}
		})
	}
}

func TestRepository_ListDestinations(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
        SELECT id, user_id, provider, account, is_default, created_at
        FROM payout_destinations
        WHERE user_id = $1
        ORDER BY created_at DESC
    `)

	rows := pgxmock.NewRows(destColumns).
		AddRow(1, 1, "card", "4561261212345467", true, time.Now()).
		AddRow(2, 1, "bank", "4561261212345467", false, time.Now())
	mock.ExpectQuery(query).WithArgs(1).WillReturnRows(rows)

	result, err := repo.ListDestinations(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.True(t, result[0].IsDefault)

	mock.ExpectQuery(query).WithArgs(1).WillReturnError(errors.New("database error"))
	result, err = repo.ListDestinations(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_ListWithdrawals(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(withdrawalSelect + `
        WHERE user_id = $1 AND kind = $2
        ORDER BY created_at DESC
    `)

	entryID := uuid.New()
	rows := pgxmock.NewRows(entryColumns).
		AddRow(entryID, 1, entryID, domain.LedgerKindWithdrawal, decimal.NewFromInt(-30), domain.LedgerStatusPending, nil, nil, time.Now())
	mock.ExpectQuery(query).WithArgs(1, domain.LedgerKindWithdrawal).WillReturnRows(rows)

	result, err := repo.ListWithdrawals(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, domain.LedgerKindWithdrawal, result[0].Kind)

	mock.ExpectQuery(query).WithArgs(1, domain.LedgerKindWithdrawal).WillReturnError(errors.New("database error"))
	result, err = repo.ListWithdrawals(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRepository_FindPendingForDispatch(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(withdrawalSelect + `
        WHERE kind = $1 AND status = $2 AND external_reference IS NULL
        ORDER BY created_at ASC
        LIMIT $3
    `)

	entryID := uuid.New()
	rows := pgxmock.NewRows(entryColumns).
		AddRow(entryID, 1, entryID, domain.LedgerKindWithdrawal, decimal.NewFromInt(-30), domain.LedgerStatusPending, nil, nil, time.Now())
	mock.ExpectQuery(query).
		WithArgs(domain.LedgerKindWithdrawal, domain.LedgerStatusPending, 100).
		WillReturnRows(rows)

	result, err := repo.FindPendingForDispatch(context.Background(), 100)
	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Nil(t, result[0].ExternalReference)

	mock.ExpectQuery(query).
		WithArgs(domain.LedgerKindWithdrawal, domain.LedgerStatusPending, 100).
		WillReturnError(errors.New("database error"))
	result, err = repo.FindPendingForDispatch(context.Background(), 100)
	assert.Error(t, err)
	assert.Nil(t, result)
}
