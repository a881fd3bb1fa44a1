package balance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/internal/service/withdrawalservice"
	"github.com/gigmarket/escrowd/pkg/auth"
)

func NewMock(t *testing.T) (*BalanceHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authed(r *http.Request, userID int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
		expectedBody  dto.BalanceResponseDTO
	}{
		{
			name: "Successful balance retrieval",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(&domain.UserBalance{
					UserID:                1,
					AvailableBalance:      decimal.NewFromInt(90),
					ReservedBalance:       decimal.NewFromInt(30),
					EarningsToDate:        decimal.NewFromInt(120),
					CancelledOrdersCredit: decimal.NewFromInt(10),
				}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: dto.BalanceResponseDTO{
				Available:             90,
				Reserved:              30,
				EarningsToDate:        120,
				CancelledOrdersCredit: 10,
			},
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/user/balance", nil)
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.GetBalance(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.BalanceResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, tt.expectedBody, body)
			}
		})
	}
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)
	entryID := uuid.New()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Withdrawal queued",
			body: `{"sum":30}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(&domain.LedgerEntry{
					ID:     entryID,
					UserID: 1,
					Amount: decimal.NewFromInt(-30),
					Kind:   domain.LedgerKindWithdrawal,
					Status: domain.LedgerStatusPending,
				}, nil)
			},
			expectedCode: http.StatusAccepted,
		},
		{
			name:          "Invalid request body",
			body:          `not-json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:         "Missing sum",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient balance",
			body: `{"sum":30}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(nil, withdrawalservice.ErrInsufficientBalance)
			},
			expectedCode:  http.StatusPaymentRequired,
			expectedError: "insufficient balance",
		},
		{
			name: "Withdrawal already pending",
			body: `{"sum":30}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(nil, withdrawalservice.ErrWithdrawalAlreadyPending)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "already pending",
		},
		{
			name: "Below minimum",
			body: `{"sum":0.5}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(nil, withdrawalservice.ErrBelowMinimum)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "below withdrawal minimum",
		},
		{
			name: "No payout destination",
			body: `{"sum":30}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(nil, withdrawalservice.ErrNoPayoutDestination)
			},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "no default payout destination",
		},
		{
			name: "Internal server error",
			body: `{"sum":30}`,
			prepareMock: func() {
				service.EXPECT().Request(gomock.Any(), 1, gomock.Any()).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/user/balance/withdraw", bytes.NewBufferString(tt.body))
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.Withdraw(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusAccepted {
				var body dto.WithdrawResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, entryID.String(), body.ID)
				assert.Equal(t, 30.0, body.Sum)
				assert.Equal(t, domain.LedgerStatusPending, body.Status)
			}
		})
	}
}

func TestGetWithdrawalsHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful withdrawals retrieval",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.LedgerEntry{
					{
						ID:     uuid.New(),
						UserID: 1,
						Kind:   domain.LedgerKindWithdrawal,
						Amount: decimal.NewFromInt(-30),
						Status: domain.LedgerStatusCompleted,
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No withdrawals found",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return([]domain.LedgerEntry{}, nil)
			},
			expectedCode:  http.StatusNoContent,
			expectedError: "Withdrawals not found",
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetWithdrawals(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to fetch withdrawals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/user/withdrawals", nil)
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.GetWithdrawals(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body []dto.GetWithdrawalsResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, 1)
				assert.Equal(t, 30.0, body[0].Sum)
			}
		})
	}
}

func TestAddDestinationHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Destination created",
			body: `{"provider":"card","account":"4561261212345467","is_default":true}`,
			prepareMock: func() {
				service.EXPECT().
					AddDestination(gomock.Any(), 1, "card", "4561261212345467", true).
					Return(&domain.PayoutDestination{
						ID:        7,
						UserID:    1,
						Provider:  "card",
						Account:   "4561261212345467",
						IsDefault: true,
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Account fails the Luhn check",
			body:          `{"provider":"card","account":"1234567890","is_default":true}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusUnprocessableEntity,
			expectedError: "Invalid account number",
		},
		{
			name:         "Missing provider",
			body:         `{"account":"4561261212345467"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Internal server error",
			body: `{"provider":"card","account":"4561261212345467"}`,
			prepareMock: func() {
				service.EXPECT().
					AddDestination(gomock.Any(), 1, "card", "4561261212345467", false).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/user/payout-destinations", bytes.NewBufferString(tt.body))
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.AddDestination(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestGetDestinationsHandler(t *testing.T) {
	handler, service := NewMock(t)

	t.Run("Successful destinations retrieval", func(t *testing.T) {
		service.EXPECT().GetDestinations(gomock.Any(), 1).Return([]domain.PayoutDestination{
			{ID: 7, UserID: 1, Provider: "card", Account: "4561261212345467", IsDefault: true},
		}, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/api/user/payout-destinations", nil), 1)
		w := httptest.NewRecorder()

		handler.GetDestinations(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		var body []dto.DestinationResponseDTO
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Len(t, body, 1)
		assert.True(t, body[0].IsDefault)
	})

	t.Run("No destinations", func(t *testing.T) {
		service.EXPECT().GetDestinations(gomock.Any(), 1).Return(nil, nil)

		r := authed(httptest.NewRequest(http.MethodGet, "/api/user/payout-destinations", nil), 1)
		w := httptest.NewRecorder()

		handler.GetDestinations(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
