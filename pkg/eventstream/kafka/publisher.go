// Package kafka publishes puzzle events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/papercomputeco/pixelo/pkg/eventstream"
	"github.com/papercomputeco/pixelo/pkg/logger"
)

// Config configures the Kafka publisher.
type Config struct {
	Brokers []string
	Topic   string
	Logger  *slog.Logger
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per event, keyed by puzzle ID so every event
// for a puzzle lands on the same partition.
type Publisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewPublisher creates a publisher for cfg.Topic on cfg.Brokers.
func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}

	return newPublisher(&kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
	}, cfg.Topic, cfg.Logger), nil
}

func newPublisher(w messageWriter, topic string, l *slog.Logger) *Publisher {
	if l == nil {
		l = logger.Nop()
	}
	return &Publisher{writer: w, topic: topic, logger: l}
}

// PublishPuzzle encodes event as JSON and writes it synchronously.
func (p *Publisher) PublishPuzzle(ctx context.Context, event *eventstream.PuzzleGeneratedEvent) error {
	msg, err := newMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing %s to %s: %w", event.EventID, p.topic, err)
	}

	p.logger.Debug("published puzzle event",
		"topic", p.topic,
		"puzzle_id", event.Puzzle.ID,
		"event_id", event.EventID,
	)
	return nil
}

// Close flushes pending writes and closes the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newMessage(event *eventstream.PuzzleGeneratedEvent) (kafkago.Message, error) {
	if event == nil {
		return kafkago.Message{}, eventstream.ErrNilEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("encoding event: %w", err)
	}

	return kafkago.Message{
		Key:   []byte(event.Puzzle.ID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}, nil
}
