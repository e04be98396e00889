// Package kafka publishes committed events to a broker topic so off-process
// indexers can subscribe to the ordered stream without polling the trail.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"orgnet/internal/events"
)

// Sink produces one record per committed event. Keys are the registry name so
// per-registry ordering survives partitioning.
type Sink struct {
	client *kgo.Client
}

// payload is the JSON structure published to the topic. Field names are part
// of the consumer contract; do not rename.
type payload struct {
	Seq       uint64            `json:"seq"`
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Registry  string            `json:"registry"`
	Action    string            `json:"action"`
	RecordID  uint64            `json:"record_id"`
	Principal string            `json:"principal"`
	Recipient string            `json:"recipient,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// New connects to the brokers and targets topic for all produced records.
func New(brokers []string, topic string) (*Sink, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &Sink{client: client}, nil
}

func (s *Sink) Name() string { return "kafka" }

// Write produces synchronously; the mirror worker tolerates and logs failures.
func (s *Sink) Write(ctx context.Context, event events.Event) error {
	value, err := json.Marshal(payload{
		Seq:       event.Seq,
		ID:        event.ID.String(),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339Nano),
		Registry:  event.Registry,
		Action:    string(event.Action),
		RecordID:  event.RecordID,
		Principal: event.Principal.String(),
		Recipient: event.Recipient.String(),
		Fields:    event.Fields,
	})
	if err != nil {
		return fmt.Errorf("marshal event %d: %w", event.Seq, err)
	}

	record := &kgo.Record{
		Key:   []byte(event.Registry),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "seq", Value: []byte(strconv.FormatUint(event.Seq, 10))},
		},
	}
	if err := s.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce event %d: %w", event.Seq, err)
	}
	return nil
}

// Close flushes and releases the client.
func (s *Sink) Close() {
	s.client.Close()
}

var _ events.Sink = (*Sink)(nil)
