// Package kafka feeds events from a Kafka topic into the routing engine
// through a consumer group.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	v1 "github.com/hostbus/eventroute/internal/api/v1"
	"github.com/hostbus/eventroute/internal/routing"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the source uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher accepts decoded events.
type Publisher interface {
	Publish(ctx context.Context, evt *v1.Event) error
}

type Config struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// Source commits a message only after its event is queued for routing, so a
// crash redelivers rather than loses events. Undecodable messages are
// committed and skipped.
type Source struct {
	reader    MessageReader
	publisher Publisher
	topic     string
}

// New opens a consumer-group reader for cfg.
func New(cfg Config, publisher Publisher) *Source {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MaxWait:  500 * time.Millisecond,
		MinBytes: cfg.MinBytes,
		MaxBytes: cfg.MaxBytes,
	})
	return NewWithReader(reader, cfg.Topic, publisher)
}

// NewWithReader wraps an existing reader.
func NewWithReader(reader MessageReader, topic string, publisher Publisher) *Source {
	if publisher == nil {
		panic("kafka source: publisher must not be nil")
	}
	return &Source{reader: reader, publisher: publisher, topic: topic}
}

// Start consumes until ctx is cancelled or the reader fails.
func (s *Source) Start(ctx context.Context) error {
	defer s.reader.Close()

	slog.Info("[KafkaSource] Consuming", "topic", s.topic)

	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("[KafkaSource] Stopping (context cancelled)", "topic", s.topic)
				return nil
			}
			return fmt.Errorf("kafka fetch: %w", err)
		}

		evt, err := decodeMessage(msg)
		if err != nil {
			slog.Warn("[KafkaSource] Skipping undecodable message",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err)
			if err := s.commit(ctx, msg); err != nil {
				return err
			}
			continue
		}

		if err := s.publisher.Publish(ctx, evt); err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, routing.ErrInvalidEvent):
				slog.Warn("[KafkaSource] Skipping invalid event", "event_id", evt.ID, "offset", msg.Offset, "error", err)
			default:
				return fmt.Errorf("publish event %s: %w", evt.ID, err)
			}
		}

		if err := s.commit(ctx, msg); err != nil {
			return err
		}
	}
}

func (s *Source) commit(ctx context.Context, msg kafka.Message) error {
	if err := s.reader.CommitMessages(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("kafka commit offset %d: %w", msg.Offset, err)
	}
	return nil
}

// decodeMessage reads a JSON event envelope from the message value. Missing
// id, source and time fall back to the message coordinates.
func decodeMessage(msg kafka.Message) (*v1.Event, error) {
	var evt v1.Event
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	id, source, at := evt.ID, evt.Source, evt.Time
	if id == "" {
		id = msg.Topic + "/" + strconv.Itoa(msg.Partition) + "/" + strconv.FormatInt(msg.Offset, 10)
	}
	if source == "" {
		source = "kafka://" + msg.Topic
	}
	if at.IsZero() {
		at = msg.Time
	}
	if id == evt.ID && source == evt.Source && at.Equal(evt.Time) {
		return &evt, nil
	}
	attrs := evt.Attributes()
	// Drop the empty envelope values mirrored during decode so the fallbacks are mirrored instead.
	for key, old := range map[string]string{v1.AttrID: evt.ID, v1.AttrSource: evt.Source} {
		if v, ok := attrs[key]; ok && v == old {
			delete(attrs, key)
		}
	}
	return v1.NewEvent(id, source, evt.Type, at, evt.Subject, attrs), nil
}
