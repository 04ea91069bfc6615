package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// MessageReader is the subset of *kafka.Reader the consumer drives.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads front-desk events with at-least-once delivery: an offset is
// committed only after the handler accepted the message.
type Consumer struct {
	reader MessageReader
	log    logrus.FieldLogger
}

func NewConsumer(brokers []string, groupID, topic string, log logrus.FieldLogger) *Consumer {
	return NewConsumerFromReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers:           brokers,
		GroupID:           groupID,
		Topic:             topic,
		MinBytes:          1,
		MaxBytes:          1 << 20,
		HeartbeatInterval: 3 * time.Second,
		SessionTimeout:    30 * time.Second,
	}), log)
}

func NewConsumerFromReader(reader MessageReader, log logrus.FieldLogger) *Consumer {
	return &Consumer{reader: reader, log: log}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// ConsumeEvents hands each decoded FrontDeskEvent to handler until ctx ends or
// handler fails. Messages that do not decode are logged and skipped.
func (c *Consumer) ConsumeEvents(ctx context.Context, handler func(context.Context, FrontDeskEvent) error) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeEvent(msg.Value)
		if err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("skipping undecodable message")
		} else if err := handler(ctx, event); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return err
		}
	}
}
