package sweep

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/internal/service/orderservice"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const leaderKey = "escrowd:sweep:leader"

type OrderService interface {
	FindExpired(ctx context.Context, limit uint32) (autoComplete, autoCancel []domain.Order, err error)
	AutoComplete(ctx context.Context, orderID uuid.UUID) error
	AutoCancel(ctx context.Context, orderID uuid.UUID) error
}

// Service drives the SLA timers: deliveries the buyer never confirmed
// auto-complete, change requests the seller never answered auto-cancel.
// Each expired order goes through the same guarded transactional
// transition as a manual call; the Redis lock only elects one sweeping
// instance per round to avoid wasted conflict retries.
type Service struct {
	orders     OrderService
	cache      *redis.Client
	instanceID string
	limit      uint32
	interval   time.Duration
}

func New(orders OrderService, cache *redis.Client) *Service {
	return &Service{
		orders:     orders,
		cache:      cache,
		instanceID: uuid.NewString(),
		limit:      1000,
		interval:   time.Minute,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("sla sweep started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping sla sweep")
			return
		case <-ticker.C:
			if !s.acquireRound(ctx) {
				continue
			}
			s.sweep(ctx)
		}
	}
}

func (s *Service) acquireRound(ctx context.Context) bool {
	if s.cache == nil {
		return true
	}
	ok, err := s.cache.SetNX(ctx, leaderKey, s.instanceID, s.interval).Result()
	if err != nil {
		zap.L().Warn("sweep leader election failed, sweeping anyway", zap.Error(err))
		return true
	}
	return ok
}

func (s *Service) sweep(ctx context.Context) {
	autoComplete, autoCancel, err := s.orders.FindExpired(ctx, s.limit)
	if err != nil {
		zap.L().Error("failed to list expired orders", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, order := range autoComplete {
		order := order
		g.Go(func() error {
			return s.apply(ctx, order, s.orders.AutoComplete)
		})
	}
	for _, order := range autoCancel {
		order := order
		g.Go(func() error {
			return s.apply(ctx, order, s.orders.AutoCancel)
		})
	}
	if err := g.Wait(); err != nil {
		zap.L().Error("sweep round finished with errors", zap.Error(err))
	}
}

func (s *Service) apply(ctx context.Context, order domain.Order, transition func(context.Context, uuid.UUID) error) error {
	err := transition(ctx, order.ID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, orderservice.ErrOrderInDispute),
		errors.Is(err, orderservice.ErrInvalidTransition):
		// Lost the race to a manual transition or a dispute; the
		// guard did its job.
		zap.L().Debug("sweep skipped order", zap.String("orderID", order.ID.String()), zap.Error(err))
		return nil
	default:
		return err
	}
}
