package events

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sunflower/pkg/platform/sentinel"
)

func TestNewKafkaPublisherValidates(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic", nil)
	require.ErrorIs(t, err, sentinel.ErrInvalidInput)

	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "", nil)
	require.ErrorIs(t, err, sentinel.ErrInvalidInput)

	// the client dials lazily
	pub, err := NewKafkaPublisher([]string{"localhost:9092"}, "sunflower.refresh-events", nil)
	require.NoError(t, err)
	pub.Close()
}
