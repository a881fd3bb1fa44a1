package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderEvent describes a committed escrow movement on an order.
type OrderEvent struct {
	OrderID    uuid.UUID       `json:"order_id"`
	Event      string          `json:"event"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Publisher emits ledger movement events to Kafka. Publishing is
// strictly fire-and-forget: a broker failure is logged and never
// propagated to the financial path that produced the event.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a disabled publisher when no brokers are
// configured.
func NewPublisher(brokers []string, topic string) *Publisher {
	if len(brokers) == 0 {
		return &Publisher{}
	}
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, orderID uuid.UUID, event string, amount decimal.Decimal) {
	if p.writer == nil {
		return
	}
	data, err := json.Marshal(OrderEvent{
		OrderID:    orderID,
		Event:      event,
		Amount:     amount,
		OccurredAt: time.Now(),
	})
	if err != nil {
		zap.L().Error("failed to marshal order event", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(orderID.String()),
		Value: data,
	})
	if err != nil {
		zap.L().Error("failed to publish order event",
			zap.String("orderID", orderID.String()),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
