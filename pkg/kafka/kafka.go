package kafka

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// Config holds Kafka connection details.
type Config struct {
	Brokers  []string
	Topic    string
	Username string // SASL/PLAIN is enabled when both Username and Password are set
	Password string
}

// Producer writes events to a single topic.
type Producer struct {
	client *kgo.Client
	topic  string
}

// NewProducer creates a franz-go client configured for durable, batched writes.
func NewProducer(cfg Config) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one Kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),

		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10 * time.Millisecond),

		kgo.WithLogger(kgo.BasicLogger(os.Stderr, kgo.LogLevelInfo, nil)),
	}

	if cfg.Username != "" && cfg.Password != "" {
		opts = append(opts, kgo.SASL(plain.Auth{
			User: cfg.Username,
			Pass: cfg.Password,
		}.AsMechanism()))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &Producer{
		client: client,
		topic:  cfg.Topic,
	}, nil
}

// Publish produces one record keyed by key, so every event of one order
// lands on the same partition. The event type travels as a header. Delivery
// is asynchronous; failures are logged by the promise.
func (p *Producer) Publish(ctx context.Context, eventType, key string, body []byte) error {
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(key),
		Value: body,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "version", Value: []byte("1.0")},
		},
		Timestamp: time.Now(),
	}

	// The record outlives the request that triggered it.
	p.client.Produce(context.WithoutCancel(ctx), record, func(record *kgo.Record, err error) {
		if err != nil {
			log.Printf("Failed to produce %s for %s: %v", eventType, key, err)
			return
		}
		log.Printf("%s for %s produced to partition %d at offset %d",
			eventType, key, record.Partition, record.Offset)
	})
	return nil
}

// Close flushes buffered records and closes the client.
func (p *Producer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := p.client.Flush(ctx)
	p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to flush kafka producer: %w", err)
	}
	return nil
}
