package events

import (
	"encoding/json"
	"time"

	"restopos/internal/logger"
	"restopos/internal/models"
)

// OrderEvent is the wire form of an order lifecycle event.
type OrderEvent struct {
	Type         string           `json:"type"`
	Timestamp    string           `json:"timestamp"`
	OrderID      string           `json:"order_id"`
	OrderNumber  string           `json:"order_number"`
	RestaurantID string           `json:"restaurant_id"`
	OrderType    models.OrderType `json:"order_type"`
	Total        models.Money     `json:"total"`
	Savings      models.Money     `json:"savings"`
}

// Publisher emits order lifecycle events past the write boundary. Publish
// failures are logged and swallowed: eventing is best-effort and must never
// fail an already-persisted order.
type Publisher struct {
	sink Sink
	log  *logger.Logger
}

func NewPublisher(sink Sink, log *logger.Logger) *Publisher {
	return &Publisher{sink: sink, log: log}
}

func (p *Publisher) publish(eventType string, order *models.Order) {
	event := OrderEvent{
		Type:         eventType,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		OrderID:      order.ID,
		OrderNumber:  order.Number,
		RestaurantID: order.RestaurantID,
		OrderType:    order.Type,
		Total:        order.Total,
		Savings:      order.Savings,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		p.log.Error("failed to marshal order event", "error", err, "order_id", order.ID)
		return
	}
	if err := p.sink.WriteMessage(models.TopicOrderEvents, msg); err != nil {
		p.log.Error("failed to publish order event", "error", err, "order_id", order.ID, "event", eventType)
	}
}

func (p *Publisher) OrderCreated(order *models.Order)   { p.publish(models.EventOrderCreated, order) }
func (p *Publisher) OrderCompleted(order *models.Order) { p.publish(models.EventOrderCompleted, order) }
func (p *Publisher) OrderCancelled(order *models.Order) { p.publish(models.EventOrderCancelled, order) }

func (p *Publisher) Close() error {
	return p.sink.Close()
}
