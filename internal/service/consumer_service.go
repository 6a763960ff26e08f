package service

import (
	"context"
	"encoding/json"
	"time"

	"notes-app/internal/dto"
	"notes-app/internal/metrics"
	"notes-app/internal/pkg/logger"
	"notes-app/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder exports note events out of process (NATS, websocket viewers).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarders []EventForwarder
	logger     logger.ILogger
}

// NewConsumerService drains the note event topic. With no forwarders the
// events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	log logger.ILogger,
	forwarders ...EventForwarder,
) IConsumerService {
	active := make([]EventForwarder, 0, len(forwarders))
	for _, f := range forwarders {
		if f != nil {
			active = append(active, f)
		}
	}

	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarders: active,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.NoteEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("EventConsumer", "failed to unmarshal note event", map[string]interface{}{
			"error":      err,
			"message_id": msg.UUID,
		})
		msg.Ack() // redelivery cannot fix a malformed payload
		return
	}

	cs.logger.Info("EventConsumer", "note event", map[string]interface{}{
		"type":    payload.Type,
		"note_id": payload.NoteId,
	})

	if len(cs.forwarders) == 0 {
		metrics.ObserveEvent(payload.Type, "logged")
		msg.Ack()
		return
	}

	data := map[string]interface{}{"note_id": payload.NoteId}
	if payload.Title != "" {
		data["title"] = payload.Title
	}
	if payload.Content != "" {
		data["content"] = payload.Content
	}
	evt := events.BaseEvent{
		Type:       payload.Type,
		Data:       data,
		OccurredAt: time.Now(),
	}

	fwdCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	outcome := "forwarded"
	for _, f := range cs.forwarders {
		if err := f.Publish(fwdCtx, evt); err != nil {
			// auxiliary path: drop the event rather than block the bus
			cs.logger.Warn("EventConsumer", "failed to forward note event", map[string]interface{}{
				"error":   err.Error(),
				"type":    payload.Type,
				"note_id": payload.NoteId,
			})
			outcome = "dropped"
		}
	}

	metrics.ObserveEvent(payload.Type, outcome)
	msg.Ack()
}
