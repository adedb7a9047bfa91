package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/internal/cfg"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Producer зеркалирует события аналитики в Kafka для внешних потребителей.
// Файловый журнал остаётся источником истины, поток — best-effort копия.
type Producer struct {
	writer *kafka.Writer
	logger logger.Logger
	cfg    *cfg.KafkaCfg
}

type event struct {
	EventID   string  `json:"event_id"`
	Type      string  `json:"type"`
	Query     string  `json:"query,omitempty"`
	Products  []int64 `json:"products,omitempty"`
	Timestamp int64   `json:"timestamp"`
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) (*Producer, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchSize:    10,
		BatchTimeout: 500 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Warnf("Kafka producer error: %s", err.Error())
			}
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
		cfg:    cfg,
	}, nil
}

func (p *Producer) PublishSearch(ctx context.Context, query string) error {
	return p.write(ctx, "search", event{
		EventID:   uuid.NewString(),
		Type:      "search",
		Query:     query,
		Timestamp: time.Now().UnixNano(),
	})
}

func (p *Producer) PublishOrder(ctx context.Context, productIDs []int64) error {
	return p.write(ctx, "order", event{
		EventID:   uuid.NewString(),
		Type:      "order",
		Products:  productIDs,
		Timestamp: time.Now().UnixNano(),
	})
}

func (p *Producer) write(ctx context.Context, key string, ev event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
}

// EnsureTopic создаёт топик, если его ещё нет.
func (p *Producer) EnsureTopic(timeout time.Duration) error {
	conn, err := kafka.Dial("tcp", p.cfg.Brokers[0])
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(p.cfg.Topic)
	if err == nil && len(partitions) > 0 {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		err := conn.CreateTopics(kafka.TopicConfig{
			Topic:             p.cfg.Topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return e.Wrap(whereami.WhereAmI(), fmt.Errorf("failed to create topic %s: %w", p.cfg.Topic, err))
		}
		return nil
	case <-time.After(timeout):
		_ = conn.Close()
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("timeout: %v, topic: %s", timeout, p.cfg.Topic))
	}
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
