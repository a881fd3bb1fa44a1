package disputes

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
	"github.com/gigmarket/escrowd/internal/service/escrowservice"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"github.com/gigmarket/escrowd/pkg/auth"
)

func NewMock(t *testing.T) (*DisputeHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func request(method, target, body string, userID int, paramID string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r = r.WithContext(context.WithValue(r.Context(), auth.UserIDKey, userID))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", paramID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestOpenHandler(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()
	disputeID := uuid.New()

	tests := []struct {
		name          string
		orderID       string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:    "Dispute opened",
			orderID: orderID.String(),
			body:    `{"reason":"item never arrived"}`,
			prepareMock: func() {
				service.EXPECT().
					OpenDispute(gomock.Any(), 1, orderID, "item never arrived").
					Return(&domain.Dispute{
						ID:          disputeID,
						OrderID:     orderID,
						InitiatorID: 1,
						Reason:      "item never arrived",
						Status:      domain.DisputeStatusOpen,
					}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid order id",
			orderID:       "not-a-uuid",
			body:          `{"reason":"item never arrived"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid order id",
		},
		{
			name:         "Reason too short",
			orderID:      orderID.String(),
			body:         `{"reason":"no"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:    "Stranger is forbidden",
			orderID: orderID.String(),
			body:    `{"reason":"item never arrived"}`,
			prepareMock: func() {
				service.EXPECT().
					OpenDispute(gomock.Any(), 1, orderID, "item never arrived").
					Return(nil, orderservice.ErrNotParticipant)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "Forbidden",
		},
		{
			name:    "Dispute already open",
			orderID: orderID.String(),
			body:    `{"reason":"item never arrived"}`,
			prepareMock: func() {
				service.EXPECT().
					OpenDispute(gomock.Any(), 1, orderID, "item never arrived").
					Return(nil, orderservice.ErrDisputeAlreadyOpen)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "already has an open dispute",
		},
		{
			name:    "Unpaid order",
			orderID: orderID.String(),
			body:    `{"reason":"item never arrived"}`,
			prepareMock: func() {
				service.EXPECT().
					OpenDispute(gomock.Any(), 1, orderID, "item never arrived").
					Return(nil, orderservice.ErrOrderNotPaid)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "not paid",
		},
		{
			name:    "Internal server error",
			orderID: orderID.String(),
			body:    `{"reason":"item never arrived"}`,
			prepareMock: func() {
				service.EXPECT().
					OpenDispute(gomock.Any(), 1, orderID, "item never arrived").
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := request(http.MethodPost, "/api/orders/"+tt.orderID+"/dispute", tt.body, 1, tt.orderID)
			w := httptest.NewRecorder()

			handler.Open(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.DisputeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, disputeID.String(), body.ID)
				assert.Equal(t, domain.DisputeStatusOpen, body.Status)
			}
		})
	}
}

func TestResolveHandler(t *testing.T) {
	handler, service := NewMock(t)
	orderID := uuid.New()
	disputeID := uuid.New()
	sellerAmount := decimal.NewFromInt(60)
	buyerRefund := decimal.NewFromInt(40)

	tests := []struct {
		name          string
		disputeID     string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name:      "Dispute resolved",
			disputeID: disputeID.String(),
			body:      `{"seller_amount":60,"buyer_refund":40}`,
			prepareMock: func() {
				service.EXPECT().
					ResolveDispute(gomock.Any(), disputeID, gomock.Any(), gomock.Any()).
					Return(&domain.Dispute{
						ID:           disputeID,
						OrderID:      orderID,
						InitiatorID:  1,
						Status:       domain.DisputeStatusResolved,
						SellerAmount: &sellerAmount,
						BuyerRefund:  &buyerRefund,
					}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid dispute id",
			disputeID:     "not-a-uuid",
			body:          `{"seller_amount":60,"buyer_refund":40}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid dispute id",
		},
		{
			name:      "Dispute not found",
			disputeID: disputeID.String(),
			body:      `{"seller_amount":60,"buyer_refund":40}`,
			prepareMock: func() {
				service.EXPECT().
					ResolveDispute(gomock.Any(), disputeID, gomock.Any(), gomock.Any()).
					Return(nil, orderservice.ErrDisputeNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "Dispute not found",
		},
		{
			name:      "Dispute already resolved",
			disputeID: disputeID.String(),
			body:      `{"seller_amount":60,"buyer_refund":40}`,
			prepareMock: func() {
				service.EXPECT().
					ResolveDispute(gomock.Any(), disputeID, gomock.Any(), gomock.Any()).
					Return(nil, orderservice.ErrDisputeNotOpen)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "not open",
		},
		{
			name:      "Split does not cover the escrow",
			disputeID: disputeID.String(),
			body:      `{"seller_amount":60,"buyer_refund":30}`,
			prepareMock: func() {
				service.EXPECT().
					ResolveDispute(gomock.Any(), disputeID, gomock.Any(), gomock.Any()).
					Return(nil, escrowservice.ErrSplitMismatch)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := request(http.MethodPost, "/api/disputes/"+tt.disputeID+"/resolve", tt.body, 99, tt.disputeID)
			w := httptest.NewRecorder()

			handler.Resolve(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				var body dto.DisputeResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, domain.DisputeStatusResolved, body.Status)
				assert.Equal(t, 60.0, *body.SellerAmount)
				assert.Equal(t, 40.0, *body.BuyerRefund)
			}
		})
	}
}
