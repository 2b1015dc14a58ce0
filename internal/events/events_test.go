package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehub/venuehub-backend/pkg/logger"
)

type fakeSender struct {
	topic string
	msgs  []*gcppubsub.Message
	err   error
}

func (f *fakeSender) Publish(ctx context.Context, topic string, msg *gcppubsub.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.topic = topic
	f.msgs = append(f.msgs, msg)
	return "server-1", nil
}

func TestPubSubPublisherWrapsEnvelope(t *testing.T) {
	sender := &fakeSender{}
	pub, err := NewPubSubPublisher(sender, "vh-domain-events", nil)
	require.NoError(t, err)

	listingID := uuid.New()
	actor := &ActorRef{UserID: uuid.New(), Role: "vendor"}
	err = pub.Publish(context.Background(), Event{
		Type:          TypeListingCreated,
		AggregateType: "listing",
		AggregateID:   listingID,
		Actor:         actor,
		Data:          map[string]string{"title": "Garden Marquee"},
	})
	require.NoError(t, err)

	require.Len(t, sender.msgs, 1)
	assert.Equal(t, "vh-domain-events", sender.topic)
	msg := sender.msgs[0]
	assert.Equal(t, TypeListingCreated, msg.Attributes["event_type"])
	assert.Equal(t, listingID.String(), msg.Attributes["aggregate_id"])

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Data, &env))
	assert.Equal(t, 1, env.Version)
	assert.Equal(t, msg.Attributes["event_id"], env.EventID)
	assert.Equal(t, actor.UserID, env.Actor.UserID)
	assert.JSONEq(t, `{"title":"Garden Marquee"}`, string(env.Data))
}

func TestPubSubPublisherPropagatesErrors(t *testing.T) {
	pub, err := NewPubSubPublisher(&fakeSender{err: errors.New("unavailable")}, "topic", nil)
	require.NoError(t, err)
	err = pub.Publish(context.Background(), Event{Type: TypeOTPIssued, AggregateID: uuid.New()})
	assert.ErrorContains(t, err, "unavailable")

	err = pub.Publish(context.Background(), Event{})
	assert.Error(t, err)
}

func TestNewPubSubPublisherValidates(t *testing.T) {
	_, err := NewPubSubPublisher(nil, "topic", nil)
	assert.Error(t, err)
	_, err = NewPubSubPublisher(&fakeSender{}, "", nil)
	assert.Error(t, err)
}

func TestLogPublisherLogs(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(logger.New(logger.Options{ServiceName: "test", Output: &buf}))
	require.NoError(t, pub.Publish(context.Background(), Event{Type: TypeVendorStatusChanged, AggregateType: "vendor", AggregateID: uuid.New()}))
	assert.Contains(t, buf.String(), TypeVendorStatusChanged)

	var nilPub *LogPublisher
	assert.NoError(t, nilPub.Publish(context.Background(), Event{}))
}
