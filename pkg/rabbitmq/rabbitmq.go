package rabbitmq

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	mu      sync.Mutex // amqp.Channel is not safe for concurrent publishing
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string // topic exchange every event is published to
	Queue    string // durable queue bound to Bindings
	Bindings []string
}

// DefaultConfig returns the exchange and queue layout used by the service.
func DefaultConfig(url string) Config {
	return Config{
		URL:      url,
		Exchange: "reseller.events",
		Queue:    "reseller_events",
		Bindings: []string{"order.#", "product.#"},
	}
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, declares the exchange and binds the event queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declare(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Printf("RabbitMQ client connected, exchange %s and queue %s declared.", cfg.Exchange, cfg.Queue)

	return &Client{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
	}, nil
}

func declare(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable (persists messages across broker restarts)
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}

	for _, binding := range cfg.Bindings {
		if err := ch.QueueBind(cfg.Queue, binding, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", cfg.Queue, binding, err)
		}
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a JSON event to the exchange under routingKey. Key becomes
// the message id.
func (c *Client) Publish(ctx context.Context, routingKey, key string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.channel.Publish(
		c.cfg.Exchange, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // Make message persistent
			MessageId:    key,
			Timestamp:    time.Now(),
			Headers: amqp.Table{
				"event_type": routingKey,
			},
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Consume starts a goroutine delivering every message on the event queue to
// handler. A nil error acks the message; an error nacks it without requeue
// so a poison message cannot loop.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.cfg.Queue, // queue
		"",          // consumer tag
		false,       // auto-ack: set to false to manually acknowledge messages
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf(" [*] Waiting for events on %s", c.cfg.Queue)

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				log.Printf("Error processing message %d: %v", msg.DeliveryTag, err)
				if nackErr := msg.Nack(false, false); nackErr != nil {
					log.Printf("Error nacking message %d: %v", msg.DeliveryTag, nackErr)
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Printf("Error acking message %d: %v", msg.DeliveryTag, ackErr)
			}
		}
		log.Printf("RabbitMQ consumer on %s stopped", c.cfg.Queue)
	}()

	return nil
}
