package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/dto"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"github.com/gigmarket/escrowd/pkg/auth"
)

func NewMock(t *testing.T) (*OrderHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authed(r *http.Request, userID int) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
}

func withOrderID(r *http.Request, orderID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", orderID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestCheckoutHandler(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()
	paymentRef := uuid.New().String()

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful checkout",
			body: `{"seller_id":42,"subtotal":100}`,
			prepareMock: func() {
				service.EXPECT().
					Checkout(gomock.Any(), 1, 42, gomock.Any()).
					Return(&domain.Order{
						ID:          orderID,
						BuyerID:     1,
						SellerID:    42,
						Status:      domain.OrderStatusPending,
						TotalAmount: decimal.NewFromInt(110),
					}, paymentRef, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid request body",
			body:          `not-json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Missing seller",
			body:          `{"subtotal":100}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
		},
		{
			name: "Buyer buying from themselves",
			body: `{"seller_id":1,"subtotal":100}`,
			prepareMock: func() {
				service.EXPECT().
					Checkout(gomock.Any(), 1, 1, gomock.Any()).
					Return(nil, "", orderservice.ErrInvalidCheckoutInput)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid checkout input",
		},
		{
			name: "Internal server error",
			body: `{"seller_id":42,"subtotal":100}`,
			prepareMock: func() {
				service.EXPECT().
					Checkout(gomock.Any(), 1, 42, gomock.Any()).
					Return(nil, "", errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(tt.body))
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.Checkout(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.CheckoutResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, orderID.String(), body.OrderID)
				assert.Equal(t, 110.0, body.TotalAmount)
				assert.Equal(t, paymentRef, body.PaymentReference)
			}
		})
	}
}

func TestGetOrdersHandler(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()

	tests := []struct {
		name          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful order retrieval",
			prepareMock: func() {
				service.EXPECT().
					GetOrders(gomock.Any(), 1).
					Return([]domain.Order{
						{
							ID:          orderID,
							BuyerID:     1,
							SellerID:    42,
							Status:      domain.OrderStatusWaiting,
							TotalAmount: decimal.NewFromInt(110),
						},
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "No orders found",
			prepareMock: func() {
				service.EXPECT().GetOrders(gomock.Any(), 1).Return([]domain.Order{}, nil)
			},
			expectedCode:  http.StatusNoContent,
			expectedError: "Orders not found",
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetOrders(gomock.Any(), 1).Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Failed to fetch orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			r = authed(r, 1)
			w := httptest.NewRecorder()

			handler.GetOrders(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body []dto.GetOrderResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, 1)
				assert.Equal(t, orderID.String(), body[0].ID)
			}
		})
	}
}

func TestGetOrderHandler(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()

	tests := []struct {
		name          string
		orderID       string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:    "Participant reads the order",
			orderID: orderID.String(),
			prepareMock: func() {
				service.EXPECT().
					GetOrder(gomock.Any(), 1, orderID).
					Return(&domain.Order{ID: orderID, BuyerID: 1, SellerID: 42, Status: domain.OrderStatusWaiting, TotalAmount: decimal.NewFromInt(110)}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid order id",
			orderID:       "not-a-uuid",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid order id",
		},
		{
			name:    "Order not found",
			orderID: orderID.String(),
			prepareMock: func() {
				service.EXPECT().GetOrder(gomock.Any(), 1, orderID).Return(nil, orderservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name:    "Stranger sees not found",
			orderID: orderID.String(),
			prepareMock: func() {
				service.EXPECT().GetOrder(gomock.Any(), 1, orderID).Return(nil, orderservice.ErrNotParticipant)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/orders/"+tt.orderID, nil)
			r = authed(r, 1)
			r = withOrderID(r, tt.orderID)
			w := httptest.NewRecorder()

			handler.GetOrder(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}

func TestTransitionHandlers(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()

	tests := []struct {
		name          string
		call          func(w http.ResponseWriter, r *http.Request)
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Accept succeeds",
			call: handler.Accept,
			prepareMock: func() {
				service.EXPECT().Accept(gomock.Any(), 1, orderID).Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Complete on order in dispute",
			call: handler.Complete,
			prepareMock: func() {
				service.EXPECT().Complete(gomock.Any(), 1, orderID).Return(orderservice.ErrOrderInDispute)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "open dispute",
		},
		{
			name: "Deliver out of turn",
			call: handler.Deliver,
			prepareMock: func() {
				service.EXPECT().Deliver(gomock.Any(), 1, orderID).Return(orderservice.ErrInvalidTransition)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "invalid order state transition",
		},
		{
			name: "Cancel by a stranger",
			call: handler.Cancel,
			prepareMock: func() {
				service.EXPECT().Cancel(gomock.Any(), 1, orderID).Return(orderservice.ErrNotParticipant)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "Forbidden",
		},
		{
			name: "Reject on unknown order",
			call: handler.Reject,
			prepareMock: func() {
				service.EXPECT().Reject(gomock.Any(), 1, orderID).Return(orderservice.ErrOrderNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Order not found",
		},
		{
			name: "RequestChanges internal error",
			call: handler.RequestChanges,
			prepareMock: func() {
				service.EXPECT().RequestChanges(gomock.Any(), 1, orderID).Return(errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/orders/"+orderID.String()+"/transition", nil)
			r = authed(r, 1)
			r = withOrderID(r, orderID.String())
			w := httptest.NewRecorder()

			tt.call(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
		})
	}
}
