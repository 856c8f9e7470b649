// Package mq 提供 Kafka 生产者封装，消息体统一使用 JSON
package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/logging"
)

// Producer 消息生产者接口
type Producer interface {
	SendMessage(ctx context.Context, topic, key string, value any) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer Kafka 生产者
type KafkaProducer struct {
	writer messageWriter
}

// NewProducer 创建 Kafka 生产者；Brokers 为空时返回 NopProducer
func NewProducer(ctx context.Context, cfg config.KafkaConfig) Producer {
	if len(cfg.Brokers) == 0 {
		logging.Info(ctx, "Kafka brokers not configured, events will be dropped")
		return NopProducer{}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		Compression:            kafka.Gzip,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            cfg.MaxRetries,
		WriteBackoffMin:        cfg.RetryBackoff,
		WriteBackoffMax:        cfg.RetryBackoff * 10,
	}

	logging.Info(ctx, "Kafka producer created successfully", "brokers", cfg.Brokers)
	return &KafkaProducer{writer: writer}
}

// SendMessage 发送单条消息
func (kp *KafkaProducer) SendMessage(ctx context.Context, topic, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	}
	if err := kp.writer.WriteMessages(ctx, msg); err != nil {
		logging.Error(ctx, "Failed to send Kafka message", "topic", topic, "key", key, "error", err)
		return err
	}

	logging.Debug(ctx, "Kafka message sent", "topic", topic, "key", key)
	return nil
}

// Close 关闭生产者
func (kp *KafkaProducer) Close() error {
	return kp.writer.Close()
}

// NopProducer 丢弃所有消息
type NopProducer struct{}

// SendMessage 实现 Producer
func (NopProducer) SendMessage(context.Context, string, string, any) error { return nil }

// Close 实现 Producer
func (NopProducer) Close() error { return nil }

// Publisher 领域事件发布者，各限界上下文的 EventPublisher 均由它实现
type Publisher struct {
	producer Producer
}

// NewPublisher 创建事件发布者
func NewPublisher(producer Producer) *Publisher {
	if producer == nil {
		producer = NopProducer{}
	}
	return &Publisher{producer: producer}
}

// Publish 发布事件，失败只记录日志并返回错误，不影响已提交的业务
func (p *Publisher) Publish(ctx context.Context, topic, key string, event any) error {
	if err := p.producer.SendMessage(ctx, topic, key, event); err != nil {
		logging.Warn(ctx, "Failed to publish domain event", "topic", topic, "key", key, "error", err)
		return err
	}
	return nil
}
