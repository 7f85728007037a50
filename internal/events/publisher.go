package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/vicriadty/cafe-app-ai/internal/model"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published to the order event stream.
type OrderEvent struct {
	Type           string    `json:"type"`
	OrderID        uint      `json:"order_id"`
	OrderNumber    string    `json:"order_number"`
	RestaurantID   uint      `json:"restaurant_id"`
	CustomerID     uint      `json:"customer_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalAmount    string    `json:"total_amount"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// KafkaPublisher writes order lifecycle events to Kafka. Publishing is
// best-effort: failures are logged and never reach the caller.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *model.Order) {
	p.publish(ctx, OrderEvent{
		Type:         TypeOrderCreated,
		OrderID:      order.ID,
		OrderNumber:  order.OrderNumber,
		RestaurantID: order.RestaurantID,
		CustomerID:   order.CustomerID,
		Status:       string(order.Status),
		TotalAmount:  order.TotalAmount.StringFixed(2),
		OccurredAt:   time.Now(),
	})
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus) {
	p.publish(ctx, OrderEvent{
		Type:           TypeOrderStatusChanged,
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		RestaurantID:   order.RestaurantID,
		CustomerID:     order.CustomerID,
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		TotalAmount:    order.TotalAmount.StringFixed(2),
		OccurredAt:     time.Now(),
	})
}

func (p *KafkaPublisher) publish(ctx context.Context, event OrderEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(event.OrderID), 10)),
		Value: payload,
	})
	if err != nil {
		logger.GetLogger().Warn("Failed to publish order event",
			zap.String("type", event.Type),
			zap.Uint("order_id", event.OrderID),
			zap.Error(err))
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher discards events. Used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) OrderCreated(context.Context, *model.Order)                          {}
func (NopPublisher) OrderStatusChanged(context.Context, *model.Order, model.OrderStatus) {}
