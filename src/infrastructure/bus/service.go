// Package bus connects the dispatcher to the chat platform's message bus.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/bwmarrin/snowflake"

	"filebot/src/core/chat"
)

// MetadataEventID carries the inbound event ID on every outbound message.
const MetadataEventID = "event_id"

// Dispatcher turns an event into replies
type Dispatcher interface {
	Dispatch(ctx context.Context, ev chat.Event) (iter.Seq[chat.Reply], bool)
}

// OutboundMessage is published once per reply
type OutboundMessage struct {
	EventID string     `json:"event_id"`
	ChatID  string     `json:"chat_id"`
	Seq     int        `json:"seq"`
	Reply   chat.Reply `json:"reply"`
}

type Service struct {
	publisher     message.Publisher
	dispatcher    Dispatcher
	outboundTopic string
	ids           *snowflake.Node
	logger        watermill.LoggerAdapter
}

func NewService(
	publisher message.Publisher,
	dispatcher Dispatcher,
	outboundTopic string,
	nodeID int64,
	logger watermill.LoggerAdapter,
) (*Service, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}

	return &Service{
		publisher:     publisher,
		dispatcher:    dispatcher,
		outboundTopic: outboundTopic,
		ids:           node,
		logger:        logger,
	}, nil
}

// HandleMessage consumes one inbound chat event and publishes its replies in
// order. Events that are not commands publish nothing.
func (s *Service) HandleMessage(msg *message.Message) error {
	var ev chat.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		return fmt.Errorf("failed to unmarshal chat event: %w", err)
	}
	if ev.ID == "" {
		ev.ID = msg.UUID
	}

	fields := watermill.LogFields{
		"event_id": ev.ID,
		"chat_id":  ev.ChatID,
		"sender":   ev.Sender.ID,
	}

	replies, handled := s.dispatcher.Dispatch(msg.Context(), ev)
	if !handled {
		s.logger.Trace("Event is not a file command", fields)
		return nil
	}

	correlationID := middleware.MessageCorrelationID(msg)
	seq := 0
	for reply := range replies {
		payload, err := json.Marshal(OutboundMessage{
			EventID: ev.ID,
			ChatID:  ev.ChatID,
			Seq:     seq,
			Reply:   reply,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal reply: %w", err)
		}

		out := message.NewMessage(s.ids.Generate().String(), payload)
		out.Metadata.Set(MetadataEventID, ev.ID)
		if correlationID != "" {
			middleware.SetCorrelationID(correlationID, out)
		}

		if err := s.publisher.Publish(s.outboundTopic, out); err != nil {
			return fmt.Errorf("failed to publish reply %d: %w", seq, err)
		}
		seq++
	}

	s.logger.Info("Event handled", fields.Add(watermill.LogFields{"replies": seq}))
	return nil
}
