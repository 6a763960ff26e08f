package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"notes-app/internal/pkg/logger"
	"notes-app/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ClusterChannel relays note events between API instances over Redis.
const ClusterChannel = "note_events"

// Frame is what viewers receive for every note event.
type Frame struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type clusterEnvelope struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

// Hub fans note events out to every connected websocket viewer.
type Hub struct {
	// Instance id, used to skip our own messages coming back from Redis
	id uuid.UUID

	// Registered viewers by connection id
	clients map[uuid.UUID]*Client

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Optional; nil keeps the hub local to this process
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.New(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Run owns client registration until ctx ends, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				close(client.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Info("Hub", "viewer connected", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
				h.logger.Info("Hub", "viewer disconnected", map[string]interface{}{"client_id": client.ID})
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish delivers the event to local viewers and relays it to the other
// instances when Redis is configured.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(Frame{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	h.deliver(data)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(clusterEnvelope{Origin: h.id.String(), Message: data})
	if err != nil {
		return fmt.Errorf("encode cluster envelope: %w", err)
	}
	if err := h.rdb.Publish(ctx, ClusterChannel, payload).Err(); err != nil {
		return fmt.Errorf("relay to redis: %w", err)
	}
	return nil
}

func (h *Hub) deliver(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for _, client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "viewer send buffer full, disconnecting", map[string]interface{}{"client_id": client.ID})
		h.Unregister(client)
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, ClusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}

			var envelope clusterEnvelope
			if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
				h.logger.Warn("Hub", "bad cluster message", map[string]interface{}{"error": err.Error()})
				continue
			}
			if envelope.Origin == h.id.String() {
				continue
			}
			h.deliver(envelope.Message)
		}
	}
}
