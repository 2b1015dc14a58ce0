// Package events publishes domain events to Pub/Sub. When Pub/Sub is not
// configured events are logged and dropped.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/logger"
)

const (
	envelopeVersion       = 1
	defaultPublishTimeout = 5 * time.Second
)

// Event types.
const (
	TypeListingCreated       = "listing.created"
	TypeListingStatusChanged = "listing.status_changed"
	TypeVendorStatusChanged  = "vendor.status_changed"
	TypeOTPIssued            = "otp.issued"
)

// ActorRef identifies who produced the event.
type ActorRef struct {
	UserID   uuid.UUID  `json:"userId"`
	VendorID *uuid.UUID `json:"vendorId,omitempty"`
	Role     string     `json:"role,omitempty"`
}

// Event is a domain fact to publish.
type Event struct {
	Type          string
	AggregateType string
	AggregateID   uuid.UUID
	Actor         *ActorRef
	Data          any
}

// Envelope is the stable JSON body of every published message.
type Envelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	EventType  string          `json:"eventType"`
	OccurredAt time.Time       `json:"occurredAt"`
	Actor      *ActorRef       `json:"actor,omitempty"`
	Data       json.RawMessage `json:"data"`
}

// Publisher emits domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type messageSender interface {
	Publish(ctx context.Context, topic string, msg *gcppubsub.Message) (string, error)
}

// PubSubPublisher sends events to one topic.
type PubSubPublisher struct {
	sender messageSender
	topic  string
	logg   *logger.Logger
	clock  func() time.Time
}

// NewPubSubPublisher binds a sender (usually *pubsub.Client) to topic.
func NewPubSubPublisher(sender messageSender, topic string, logg *logger.Logger) (*PubSubPublisher, error) {
	if sender == nil {
		return nil, fmt.Errorf("pubsub sender required")
	}
	if topic == "" {
		return nil, fmt.Errorf("pubsub topic required")
	}
	return &PubSubPublisher{sender: sender, topic: topic, logg: logg, clock: time.Now}, nil
}

// Publish wraps event in an Envelope and waits for the broker to accept it.
func (p *PubSubPublisher) Publish(ctx context.Context, event Event) error {
	envelope, err := buildEnvelope(event, p.clock())
	if err != nil {
		return err
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	msg := &gcppubsub.Message{
		Data: body,
		Attributes: map[string]string{
			"event_id":       envelope.EventID,
			"event_type":     event.Type,
			"aggregate_type": event.AggregateType,
			"aggregate_id":   event.AggregateID.String(),
			"occurred_at":    envelope.OccurredAt.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	serverID, err := p.sender.Publish(publishCtx, p.topic, msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	if p.logg != nil {
		p.logg.Debug(p.logg.WithFields(ctx, map[string]any{
			"event_id":   envelope.EventID,
			"event_type": event.Type,
			"topic":      p.topic,
			"message_id": serverID,
		}), "domain event published")
	}
	return nil
}

// LogPublisher records events in the log only.
type LogPublisher struct {
	logg *logger.Logger
}

func NewLogPublisher(logg *logger.Logger) *LogPublisher {
	return &LogPublisher{logg: logg}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.logg == nil {
		return nil
	}
	p.logg.Info(p.logg.WithFields(ctx, map[string]any{
		"event_type":     event.Type,
		"aggregate_type": event.AggregateType,
		"aggregate_id":   event.AggregateID.String(),
	}), "domain event (pubsub disabled)")
	return nil
}

func buildEnvelope(event Event, now time.Time) (Envelope, error) {
	if event.Type == "" {
		return Envelope{}, fmt.Errorf("event type required")
	}
	data, err := json.Marshal(event.Data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal event data: %w", err)
	}
	return Envelope{
		Version:    envelopeVersion,
		EventID:    uuid.NewString(),
		EventType:  event.Type,
		OccurredAt: now.UTC(),
		Actor:      event.Actor,
		Data:       data,
	}, nil
}
