package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/storefront/pkg/config"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestSendMessageEncodesJSON(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaProducer{writer: w}

	err := p.SendMessage(context.Background(), "order.placed", "42", map[string]int{"order_id": 7})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order.placed", msg.Topic)
	assert.Equal(t, "42", string(msg.Key))

	var payload map[string]int
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	assert.Equal(t, 7, payload["order_id"])
}

func TestSendMessagePropagatesWriterError(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaProducer{writer: &recordingWriter{err: boom}}
	assert.ErrorIs(t, p.SendMessage(context.Background(), "t", "k", 1), boom)
}

func TestNewProducerWithoutBrokersIsNop(t *testing.T) {
	p := NewProducer(context.Background(), config.KafkaConfig{})
	assert.IsType(t, NopProducer{}, p)
	assert.NoError(t, p.SendMessage(context.Background(), "t", "k", 1))
}

func TestPublisherWrapsProducer(t *testing.T) {
	w := &recordingWriter{}
	pub := NewPublisher(&KafkaProducer{writer: w})

	require.NoError(t, pub.Publish(context.Background(), "cart.item.added", "3", map[string]string{"sku": "1"}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "cart.item.added", w.msgs[0].Topic)

	failing := NewPublisher(&KafkaProducer{writer: &recordingWriter{err: errors.New("down")}})
	assert.Error(t, failing.Publish(context.Background(), "t", "k", 1))

	assert.NoError(t, NewPublisher(nil).Publish(context.Background(), "t", "k", 1))
}
