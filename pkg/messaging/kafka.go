package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	mu      sync.Mutex
	writers map[string]*kafka.Writer
	brokers []string
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writers: make(map[string]*kafka.Writer),
		brokers: brokers,
	}
}

// getWriter is called from concurrent request handlers; the writer map is
// guarded so the first publish per topic creates exactly one writer.
func (kp *KafkaProducer) getWriter(topic string) *kafka.Writer {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(kp.brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	kp.writers[topic] = writer
	return writer
}

func (kp *KafkaProducer) SendMessage(ctx context.Context, topic, key string, value interface{}) error {
	writer := kp.getWriter(topic)

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return writer.WriteMessages(ctx, message)
}

func (kp *KafkaProducer) Close() {
	kp.mu.Lock()
	defer kp.mu.Unlock()

	for _, writer := range kp.writers {
		writer.Close()
	}
}

// NewTrackingReader builds a reader on the order-tracking topic. Each
// subscription gets its own reader so teardown is per-order.
func NewTrackingReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// OrderPlacedEvent is published after a successful checkout submission.
type OrderPlacedEvent struct {
	OrderNumber  string  `json:"order_number"`
	SessionID    string  `json:"session_id"`
	RestaurantID string  `json:"restaurant_id"`
	TotalAmount  float64 `json:"total_amount"`
	PlacedAt     string  `json:"placed_at"`
}

// TrackingEvent is one status-change message from the ordering platform's
// tracking feed. Courier coordinates are optional.
type TrackingEvent struct {
	OrderNumber string   `json:"order_number"`
	Status      string   `json:"status"`
	CourierLat  *float64 `json:"courier_lat,omitempty"`
	CourierLng  *float64 `json:"courier_lng,omitempty"`
	Timestamp   string   `json:"timestamp"`
}
