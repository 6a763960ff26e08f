package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"notes-app/internal/dto"
	"notes-app/internal/pkg/logger"
	"notes-app/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type channelForwarder struct {
	events chan events.Event
	err    error
}

func (f *channelForwarder) Publish(ctx context.Context, event events.Event) error {
	f.events <- event
	return f.err
}

func startBus(t *testing.T, forwarders ...EventForwarder) IPublisherService {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	t.Cleanup(func() { pubSub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	consumer := NewConsumerService(pubSub, "NOTE_EVENTS", logger.NewNopLogger(), forwarders...)
	require.NoError(t, consumer.Consume(ctx))

	return NewPublisherService("NOTE_EVENTS", pubSub)
}

func publishEvent(t *testing.T, pub IPublisherService, msg dto.NoteEventMessage) {
	t.Helper()
	payload, err := json.Marshal(msg)
	require.NoError(t, err)
	require.NoError(t, pub.Publish(context.Background(), payload))
}

func TestConsumerForwardsNoteEvents(t *testing.T) {
	forwarder := &channelForwarder{events: make(chan events.Event, 1)}
	pub := startBus(t, forwarder)

	publishEvent(t, pub, dto.NoteEventMessage{Type: events.NoteCreated, NoteId: 3, Title: "A", Content: "B"})

	select {
	case evt := <-forwarder.events:
		assert.Equal(t, events.NoteCreated, evt.EventType())
		assert.Equal(t, 3, evt.Payload()["note_id"])
		assert.Equal(t, "A", evt.Payload()["title"])
	case <-time.After(2 * time.Second):
		t.Fatal("event was not forwarded")
	}
}

func TestConsumerSurvivesForwardFailureAndBadPayload(t *testing.T) {
	forwarder := &channelForwarder{events: make(chan events.Event, 2), err: errors.New("nats down")}
	pub := startBus(t, forwarder)

	require.NoError(t, pub.Publish(context.Background(), []byte("not json")))
	publishEvent(t, pub, dto.NoteEventMessage{Type: events.NoteDeleted, NoteId: 1})
	publishEvent(t, pub, dto.NoteEventMessage{Type: events.NoteDeleted, NoteId: 2})

	for _, want := range []int{1, 2} {
		select {
		case evt := <-forwarder.events:
			assert.Equal(t, want, evt.Payload()["note_id"])
		case <-time.After(2 * time.Second):
			t.Fatalf("event %d was not forwarded", want)
		}
	}
}

func TestConsumerFansOutToEveryForwarder(t *testing.T) {
	failing := &channelForwarder{events: make(chan events.Event, 1), err: errors.New("nats down")}
	healthy := &channelForwarder{events: make(chan events.Event, 1)}
	pub := startBus(t, failing, nil, healthy)

	publishEvent(t, pub, dto.NoteEventMessage{Type: events.NoteUpdated, NoteId: 5, Title: "T"})

	for _, f := range []*channelForwarder{failing, healthy} {
		select {
		case evt := <-f.events:
			assert.Equal(t, events.NoteUpdated, evt.EventType())
			assert.Equal(t, 5, evt.Payload()["note_id"])
		case <-time.After(2 * time.Second):
			t.Fatal("event was not forwarded")
		}
	}
}
