package payout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigmarket/escrowd/internal/config"
	"github.com/gigmarket/escrowd/internal/domain"
	"github.com/gigmarket/escrowd/pkg/clients"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var dispatchingEntries sync.Map

type WithdrawalRepo interface {
	FindPendingForDispatch(ctx context.Context, limit uint32) ([]domain.LedgerEntry, error)
	GetDefaultDestination(ctx context.Context, userID int) (*domain.PayoutDestination, error)
}

type LedgerRepo interface {
	SetExternalReference(ctx context.Context, id uuid.UUID, ref string) error
}

type disburseRequest struct {
	Amount             decimal.Decimal `json:"amount"`
	DestinationAccount string          `json:"destination_account"`
	IdempotencyKey     string          `json:"idempotency_key"`
}

type disburseResponse struct {
	ExternalTransactionID string `json:"transaction_id"`
}

// Service hands committed withdrawal reservations to the external
// payout gateway. It runs outside any database transaction: a slow or
// failing gateway call never holds a balance lock, and the outcome is
// reconciled later through the confirmation webhook.
type Service struct {
	url            string
	withdrawalRepo WithdrawalRepo
	ledgerRepo     LedgerRepo
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, withdrawalRepo WithdrawalRepo, ledgerRepo LedgerRepo, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.PayoutAddress,
		withdrawalRepo: withdrawalRepo,
		ledgerRepo:     ledgerRepo,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 5,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("payout dispatcher started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("context canceled, stopping payout dispatcher")
			return
		case <-ticker.C:
			s.dispatchPending(ctx)
		}
	}
}

func (s *Service) dispatchPending(ctx context.Context) {
	entries, err := s.withdrawalRepo.FindPendingForDispatch(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("failed to fetch withdrawals for dispatch", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, entry := range entries {
		entry := entry

		if _, loaded := dispatchingEntries.LoadOrStore(entry.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer dispatchingEntries.Delete(entry.ID)
				return s.disburse(ctx, entry)
			})
			if err != nil {
				dispatchingEntries.Delete(entry.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error dispatching withdrawals", zap.Error(err))
	}
}

func (s *Service) disburse(ctx context.Context, entry domain.LedgerEntry) error {
	dest, err := s.withdrawalRepo.GetDefaultDestination(ctx, entry.UserID)
	if err != nil {
		return err
	}
	if dest == nil {
		return fmt.Errorf("no payout destination for user %d", entry.UserID)
	}

	body, err := json.Marshal(disburseRequest{
		Amount:             entry.Amount.Neg(),
		DestinationAccount: dest.Account,
		IdempotencyKey:     entry.ID.String(),
	})
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, respBody, respHeaders, err := s.post(ctx, body)
			if err != nil {
				if attempt < maxRetries {
					time.Sleep(retryInterval * time.Duration(attempt))
					continue
				}
				return fmt.Errorf("failed to disburse withdrawal %s after %d retries: %w", entry.ID, maxRetries, err)
			}

			switch statusCode {
			case http.StatusTooManyRequests:
				s.waitRetryAfter(entry, respHeaders, attempt)
				continue
			case http.StatusOK, http.StatusCreated:
				return s.recordReference(ctx, entry, respBody)
			default:
				zap.L().Error("unexpected payout gateway status",
					zap.Int("status", statusCode),
					zap.String("entryID", entry.ID.String()),
				)
				return errors.New("unexpected payout gateway status code")
			}
		}
	}
	return nil
}

func (s *Service) post(ctx context.Context, body []byte) (int, []byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/api/disburse", bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, err
	}
	return resp.StatusCode, respBody, resp.Header, nil
}

func (s *Service) recordReference(ctx context.Context, entry domain.LedgerEntry, respBody []byte) error {
	var response disburseResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return fmt.Errorf("failed to parse payout gateway response: %w", err)
	}
	if response.ExternalTransactionID == "" {
		return errors.New("payout gateway returned empty transaction id")
	}

	if err := s.ledgerRepo.SetExternalReference(ctx, entry.ID, response.ExternalTransactionID); err != nil {
		return fmt.Errorf("failed to store payout reference for %s: %w", entry.ID, err)
	}
	zap.L().Info("withdrawal handed to payout gateway",
		zap.String("entryID", entry.ID.String()),
		zap.String("externalTransactionID", response.ExternalTransactionID),
	)
	return nil
}

func (s *Service) waitRetryAfter(entry domain.LedgerEntry, respHeaders http.Header, attempt int) {
	retryAfter := retryInterval * time.Duration(attempt)
	if header := respHeaders.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("payout gateway rate limit, retrying",
		zap.String("entryID", entry.ID.String()),
		zap.Int("attempt", attempt),
		zap.Duration("retryAfter", retryAfter),
	)
	time.Sleep(retryAfter)
}
