package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

const eventVersion = "1.0"

// Producer is the subset of *kgo.Client used to publish order events.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// NewKafkaClient creates a producer-only client for the given brokers.
func NewKafkaClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
		kgo.ProducerLinger(10*time.Millisecond),
		kgo.WithLogger(kgo.BasicLogger(os.Stderr, kgo.LogLevelWarn, nil)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}
	return client, nil
}

// KafkaChannel publishes one "order_status_changed" event per notification,
// keyed by order id so events of one order stay on one partition.
type KafkaChannel struct {
	producer Producer
	topic    string
}

func NewKafkaChannel(producer Producer, topic string) *KafkaChannel {
	return &KafkaChannel{producer: producer, topic: topic}
}

func (c *KafkaChannel) Name() string { return "kafka" }

func (c *KafkaChannel) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("kafka: marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: c.topic,
		Key:   []byte(strconv.FormatInt(n.OrderID, 10)),
		Value: data,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte("order_status_changed")},
			{Key: "version", Value: []byte(eventVersion)},
		},
		Timestamp: n.Timestamp,
	}

	if err := c.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("kafka: produce order %d: %w", n.OrderID, err)
	}
	return nil
}
