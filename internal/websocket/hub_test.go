package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"notes-app/internal/pkg/logger"
	"notes-app/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func fakeClient(hub *Hub, buffer int) *Client {
	return &Client{ID: uuid.New(), Hub: hub, Send: make(chan []byte, buffer)}
}

func noteEvent(id int) events.Event {
	return events.BaseEvent{
		Type:       events.NoteCreated,
		Data:       map[string]interface{}{"note_id": id, "title": "A"},
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHubDeliversFramesToViewers(t *testing.T) {
	hub, _ := startHub(t)
	a, b := fakeClient(hub, 4), fakeClient(hub, 4)
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), noteEvent(7)))

	for _, c := range []*Client{a, b} {
		select {
		case raw := <-c.Send:
			var frame Frame
			require.NoError(t, json.Unmarshal(raw, &frame))
			assert.Equal(t, events.NoteCreated, frame.Type)
			assert.Equal(t, float64(7), frame.Data["note_id"])
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)
	c := fakeClient(hub, 1)
	hub.Register(c)
	hub.Unregister(c)

	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())

	// a second unregister is a no-op
	hub.Unregister(c)
}

func TestHubDropsSlowViewer(t *testing.T) {
	hub, _ := startHub(t)
	slow := fakeClient(hub, 0)
	hub.Register(slow)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, hub.Publish(context.Background(), noteEvent(1)))

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHubShutdownDisconnectsEveryone(t *testing.T) {
	hub, cancel := startHub(t)
	c := fakeClient(hub, 1)
	hub.Register(c)

	cancel()

	_, open := <-c.Send
	assert.False(t, open)

	// registering after shutdown does not block
	late := fakeClient(hub, 1)
	hub.Register(late)
	_, open = <-late.Send
	assert.False(t, open)
}
