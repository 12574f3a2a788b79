package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/logx"
)

var newSyncProducer = sarama.NewSyncProducer

// Producer publishes request-created events
type Producer struct {
	producer  sarama.SyncProducer
	topic     string
	published *prometheus.CounterVec
	logger    logx.Logger
}

// NewProducer creates a synchronous producer that waits for all in-sync replicas.
// It returns nil when Kafka is not configured; a nil Producer rejects every publish.
func NewProducer(logger logx.Logger, brokers []string, topic string, published *prometheus.CounterVec) (*Producer, error) {
	if len(brokers) == 0 || strings.TrimSpace(topic) == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logx.Nop()
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3

	p, err := newSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return newProducer(p, topic, published, logger), nil
}

func newProducer(p sarama.SyncProducer, topic string, published *prometheus.CounterVec, logger logx.Logger) *Producer {
	return &Producer{producer: p, topic: topic, published: published, logger: logger}
}

// PublishRequestCreated sends ev keyed by request id so retries of one request stay on one partition.
func (p *Producer) PublishRequestCreated(ctx context.Context, ev domain.RequestCreated) error {
	if p == nil {
		return fmt.Errorf("kafka producer not configured: %w", apperr.Unavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(FromDomain(ev))
	if err != nil {
		p.observe("error")
		return fmt.Errorf("encode request created: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(ev.RequestID),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		p.observe("error")
		return fmt.Errorf("send request created: %w: %w", apperr.Unavailable, err)
	}

	p.observe("ok")
	p.logger.Debug("request created event published",
		logx.String("request_id", ev.RequestID),
		logx.Int("partition", int(partition)),
		logx.Any("offset", offset),
	)
	return nil
}

func (p *Producer) observe(result string) {
	if p.published != nil {
		p.published.WithLabelValues(result).Inc()
	}
}

// Close flushes and closes the producer
func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
