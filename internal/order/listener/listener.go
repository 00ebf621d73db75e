package listener

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/order"
	"github.com/restopos/inventory-service/internal/order/dto"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderListener consumes order events and drives the consumption
// coordinator. Per-event failures are logged and skipped; delivery retries
// are deduplicated by the coordinator's idempotency guard.
type OrderListener struct {
	reader *kafka.Reader
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderListener(reader *kafka.Reader, uc order.UseCase, logger *zap.Logger) *OrderListener {
	return &OrderListener{
		reader: reader,
		uc:     uc,
		logger: logger,
	}
}

type OrderPlacedEvent struct {
	EventID   string         `json:"event_id"`
	EventType string         `json:"event_type"`
	Payload   dto.OrderInput `json:"payload"`
	Timestamp time.Time      `json:"timestamp"`
}

func (l *OrderListener) Start(ctx context.Context) {
	l.logger.Info("starting order Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping order Kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *OrderListener) processMessage(ctx context.Context, value []byte) {
	var event OrderPlacedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("failed to unmarshal order event", zap.Error(err))
		return
	}

	if event.EventType != "OrderPlaced" {
		return
	}

	l.logger.Info("processing OrderPlaced event", zap.String("orderId", event.Payload.OrderID))

	res, err := l.uc.ConsumeOrder(ctx, &event.Payload)
	if err != nil {
		if errors.Is(err, order.ErrDuplicateOrder) {
			l.logger.Debug("order event already consumed", zap.String("orderId", event.Payload.OrderID))
			return
		}
		var aborted *model.TransactionAbortedError
		if errors.As(err, &aborted) {
			l.logger.Warn("order consumption rolled back",
				zap.String("orderId", event.Payload.OrderID),
				zap.Error(err),
			)
			return
		}
		l.logger.Error("failed to consume order",
			zap.String("orderId", event.Payload.OrderID),
			zap.Error(err),
		)
		return
	}

	if len(res.MissedIngredients) > 0 {
		l.logger.Warn("order consumed with missed ingredients",
			zap.String("orderId", event.Payload.OrderID),
			zap.Int("missed", len(res.MissedIngredients)),
		)
	}
}
