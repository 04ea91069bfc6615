package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageWriter is the subset of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	brokers  []string
	writer   MessageWriter
	log      logrus.FieldLogger
	attempts int
	backoff  time.Duration
}

func NewProducer(brokers []string, log logrus.FieldLogger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	p := NewProducerFromWriter(writer, log)
	p.brokers = brokers
	return p
}

func NewProducerFromWriter(writer MessageWriter, log logrus.FieldLogger) *Producer {
	return &Producer{
		writer:   writer,
		log:      log,
		attempts: 3,
		backoff:  500 * time.Millisecond,
	}
}

// Publish writes payload as JSON to topic, retrying failed writes with a
// linear backoff.
func (p *Producer) Publish(ctx context.Context, topic, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	var lastErr error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if lastErr = p.writer.WriteMessages(ctx, message); lastErr == nil {
			p.log.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published to kafka")
			return nil
		}
		p.log.WithError(lastErr).WithFields(logrus.Fields{"topic": topic, "attempt": attempt}).Warn("kafka publish failed")
		if attempt == p.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * p.backoff):
		}
	}
	return fmt.Errorf("failed to write message to Kafka after %d attempts: %w", p.attempts, lastErr)
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// CheckConnection dials the first broker and lists its partitions.
func (p *Producer) CheckConnection(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("failed to read partitions: %w", err)
	}
	p.log.WithField("partitions", len(partitions)).Info("connected to kafka")
	return nil
}
