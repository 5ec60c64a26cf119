// Package broker publishes booking domain events to RabbitMQ.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"roomcalendar/internal/domain"
)

// DefaultExchange is the topic exchange booking events are published to.
const DefaultExchange = "roomcalendar.bookings"

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	ch       channel
	exchange string
	now      func() time.Time
}

// NewPublisher dials url and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

// Publish sends event as a persistent JSON message routed by topic.
func (p *Publisher) Publish(ctx context.Context, topic string, event domain.BookingEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", topic, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    p.now().UTC(),
		Type:         topic,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, topic, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when no broker is configured.
func NewNoopPublisher() domain.EventPublisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, domain.BookingEvent) error { return nil }
