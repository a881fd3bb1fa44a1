package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gigmarket/escrowd/pkg/clients"
	"go.uber.org/zap"
)

type payload struct {
	UserID        int    `json:"user_id"`
	Kind          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	RelatedEntity string `json:"related_entity"`
}

// Service posts notifications to the delivery collaborator. Delivery is
// fire-and-forget: failures are logged and swallowed so they can never
// roll back the financial transaction that triggered them.
type Service struct {
	url    string
	client clients.HTTPClientI
}

func New(url string, client clients.HTTPClientI) *Service {
	return &Service{
		url:    url,
		client: client,
	}
}

func (s *Service) Notify(ctx context.Context, userID int, kind, title, message, relatedID string) {
	if s.url == "" {
		return
	}

	body, err := json.Marshal(payload{
		UserID:        userID,
		Kind:          kind,
		Title:         title,
		Message:       message,
		RelatedEntity: relatedID,
	})
	if err != nil {
		zap.L().Error("failed to marshal notification", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url+"/api/notifications", bytes.NewReader(body))
	if err != nil {
		zap.L().Error("failed to build notification request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().Warn("notification delivery failed", zap.Int("userID", userID), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		zap.L().Warn("notification delivery rejected",
			zap.Int("userID", userID),
			zap.Int("status", resp.StatusCode),
		)
	}
}
