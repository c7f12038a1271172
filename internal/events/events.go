// Package events defines the notifications the services emit when orders
// and prices change, and the publisher they are sent through.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"reseller/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routing keys.
const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	PriceUpdated       = "product.price_updated"
)

// Publisher delivers an encoded event to a broker. Key is the routing key
// (RabbitMQ) or record key (Kafka).
type Publisher interface {
	Publish(ctx context.Context, routingKey, key string, body []byte) error
}

// Envelope wraps every event body.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data"`
}

type OrderCreatedData struct {
	Order models.Order `json:"order"`
}

type OrderStatusChangedData struct {
	OrderID string             `json:"order_id"`
	From    models.OrderStatus `json:"from"`
	To      models.OrderStatus `json:"to"`
	Profit  decimal.Decimal    `json:"profit"`
}

type PriceUpdatedData struct {
	ProductID   string          `json:"product_id"`
	SellerPrice decimal.Decimal `json:"seller_price"`
	Profit      decimal.Decimal `json:"profit"`
}

// Encode builds the envelope for data.
func Encode(eventType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return json.Marshal(Envelope{
		ID:         uuid.New().String(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       raw,
	})
}

// Decode reads an envelope.
func Decode(body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &env, nil
}

// Emit encodes and publishes an event. Publishing is best effort: failures
// are logged and never reach the caller. A nil publisher is a no-op.
func Emit(ctx context.Context, p Publisher, eventType, key string, data interface{}) {
	if p == nil {
		return
	}
	body, err := Encode(eventType, data)
	if err != nil {
		log.Printf("Warning: %v", err)
		return
	}
	if err := p.Publish(ctx, eventType, key, body); err != nil {
		log.Printf("Warning: failed to publish %s event for %s: %v", eventType, key, err)
		return
	}
	log.Printf("Published %s event for %s", eventType, key)
}

// Recorder is an in-memory Publisher that keeps what it is given.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Recorded is one captured publication.
type Recorded struct {
	RoutingKey string
	Key        string
	Body       []byte
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, routingKey, key string, body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{RoutingKey: routingKey, Key: key, Body: append([]byte(nil), body...)})
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.events...)
}
