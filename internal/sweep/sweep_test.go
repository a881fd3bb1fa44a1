package sweep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
)

func NewMock(t *testing.T) (*Service, *MockOrderService) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orders := NewMockOrderService(ctrl)
	service := New(orders, nil)
	return service, orders
}

func TestService_Start(t *testing.T) {
	service, _ := NewMock(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	service.Start(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()
}

func TestService_sweep(t *testing.T) {
	expired := domain.Order{ID: uuid.New(), Status: domain.OrderStatusDelivered}
	stale := domain.Order{ID: uuid.New(), Status: domain.OrderStatusChangeRequested}

	tests := []struct {
		name            string
		autoComplete    []domain.Order
		autoCancel      []domain.Order
		findErr         error
		autoCompleteErr error
		autoCancelErr   error
	}{
		{
			name:         "applies both transitions",
			autoComplete: []domain.Order{expired},
			autoCancel:   []domain.Order{stale},
		},
		{
			name:    "fails when listing expired orders",
			findErr: errors.New("database error"),
		},
		{
			name:            "guard rejections are not errors",
			autoComplete:    []domain.Order{expired},
			autoCancel:      []domain.Order{stale},
			autoCompleteErr: orderservice.ErrOrderInDispute,
			autoCancelErr:   orderservice.ErrInvalidTransition,
		},
		{
			name:            "transition failure logged",
			autoComplete:    []domain.Order{expired},
			autoCompleteErr: errors.New("transaction conflict"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, orders := NewMock(t)

			orders.EXPECT().
				FindExpired(gomock.Any(), uint32(1000)).
				Return(tt.autoComplete, tt.autoCancel, tt.findErr).
				Times(1)
			for _, order := range tt.autoComplete {
				orders.EXPECT().
					AutoComplete(gomock.Any(), order.ID).
					Return(tt.autoCompleteErr).
					Times(1)
			}
			for _, order := range tt.autoCancel {
				orders.EXPECT().
					AutoCancel(gomock.Any(), order.ID).
					Return(tt.autoCancelErr).
					Times(1)
			}

			logger := zap.NewExample()
			zap.ReplaceGlobals(logger)

			service.sweep(context.Background())
		})
	}
}

func TestService_apply(t *testing.T) {
	service, orders := NewMock(t)
	order := domain.Order{ID: uuid.New()}

	tests := []struct {
		name          string
		transitionErr error
		expectErr     bool
	}{
		{
			name: "transition applied",
		},
		{
			name:          "open dispute skipped",
			transitionErr: orderservice.ErrOrderInDispute,
		},
		{
			name:          "lost race to manual transition",
			transitionErr: orderservice.ErrInvalidTransition,
		},
		{
			name:          "unexpected error propagates",
			transitionErr: errors.New("database error"),
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders.EXPECT().
				AutoComplete(gomock.Any(), order.ID).
				Return(tt.transitionErr).
				Times(1)

			err := service.apply(context.Background(), order, service.orders.AutoComplete)

			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService_acquireRound(t *testing.T) {
	service, _ := NewMock(t)

	assert.True(t, service.acquireRound(context.Background()), "nil cache sweeps unconditionally")

	service.cache = redis.NewClient(&redis.Options{Addr: "localhost:1"})
	assert.True(t, service.acquireRound(context.Background()), "unreachable cache must not stall the sweep")
}
