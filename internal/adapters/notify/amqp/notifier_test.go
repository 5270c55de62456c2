package amqp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	queue string
	msgs  []amqp091.Publishing
	err   error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, _ string, key string, _, _ bool, msg amqp091.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.queue = key
	f.msgs = append(f.msgs, msg)
	return nil
}

func TestNotifier_PublishesChangedEvent(t *testing.T) {
	pub := &fakePublisher{}
	n := NewNotifier(pub, "calendar.refresh")
	n.now = func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }

	require.NoError(t, n.AppointmentsChanged(context.Background(), "A1"))
	require.Len(t, pub.msgs, 1)
	assert.Equal(t, "calendar.refresh", pub.queue)
	assert.Equal(t, "application/json", pub.msgs[0].ContentType)
	assert.Equal(t, amqp091.Persistent, pub.msgs[0].DeliveryMode)

	var ev ChangedEvent
	require.NoError(t, json.Unmarshal(pub.msgs[0].Body, &ev))
	assert.Equal(t, EventAppointmentsChanged, ev.Type)
	assert.Equal(t, "A1", ev.SubjectID)
	assert.True(t, ev.OccurredAt.Equal(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)))
}

func TestNotifier_WrapsPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	n := NewNotifier(&fakePublisher{err: boom}, "q")

	err := n.AppointmentsChanged(context.Background(), "A1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
