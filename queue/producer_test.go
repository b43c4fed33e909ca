package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNilProducerSkips(t *testing.T) {
	p := NewProducer("", "events", "", "", zap.NewNop())
	assert.Nil(t, p)
	assert.NoError(t, p.Publish(context.Background(), EventReviewCreated, "k", map[string]string{"a": "b"}))
	assert.NoError(t, p.Close())
}

func TestNewProducerTransport(t *testing.T) {
	plainText := NewProducer("localhost:9092", "events", "", "", zap.NewNop())
	assert.Nil(t, plainText.writer.Transport)
	assert.Equal(t, "events", plainText.writer.Topic)

	withSASL := NewProducer("localhost:9092", "events", "user", "pass", zap.NewNop())
	assert.NotNil(t, withSASL.writer.Transport)
}
