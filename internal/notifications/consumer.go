// Package notifications delivers one-time codes issued by the auth service.
// It consumes otp.issued envelopes from the notification subscription.
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/pkg/idempotency"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

// ConsumerName scopes idempotency keys for this consumer.
const ConsumerName = "otp-mailer"

// OTPMail is a decoded otp.issued payload.
type OTPMail struct {
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Deliverer sends a code to its recipient.
type Deliverer interface {
	DeliverOTP(ctx context.Context, mail OTPMail) error
}

type receiver interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

// Consumer turns otp.issued events into deliveries.
type Consumer struct {
	subscription receiver
	guard        *idempotency.Guard
	deliverer    Deliverer
	logg         *logger.Logger
	clock        func() time.Time
}

// NewConsumer builds an OTP mail consumer. subscription is usually a
// *pubsub.Subscriber.
func NewConsumer(subscription receiver, guard *idempotency.Guard, deliverer Deliverer, logg *logger.Logger) (*Consumer, error) {
	if subscription == nil {
		return nil, fmt.Errorf("notification subscription required")
	}
	if guard == nil {
		return nil, fmt.Errorf("idempotency guard required")
	}
	if deliverer == nil {
		return nil, fmt.Errorf("deliverer required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{
		subscription: subscription,
		guard:        guard,
		deliverer:    deliverer,
		logg:         logg,
		clock:        time.Now,
	}, nil
}

// Run starts the consumer loop until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	return c.subscription.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if c.process(ctx, msg).nack {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

type processResult struct {
	ack  bool
	nack bool
}

func (c *Consumer) process(ctx context.Context, msg *pubsub.Message) processResult {
	eventType := msg.Attributes["event_type"]
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"message_id": msg.ID,
		"event_type": eventType,
	})

	if eventType != events.TypeOTPIssued {
		c.logg.Debug(logCtx, "skipping non-otp event")
		return processResult{ack: true}
	}

	var envelope events.Envelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		c.logg.Error(logCtx, "failed to decode envelope", err)
		return processResult{ack: true}
	}
	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		c.logg.Error(logCtx, "invalid event id", err)
		return processResult{ack: true}
	}

	var mail OTPMail
	if err := json.Unmarshal(envelope.Data, &mail); err != nil {
		c.logg.Error(logCtx, "failed to parse payload", err)
		return processResult{ack: true}
	}
	mail.Email = strings.TrimSpace(mail.Email)
	if mail.Email == "" || mail.Code == "" {
		c.logg.Warn(logCtx, "otp payload missing email or code")
		return processResult{ack: true}
	}

	logCtx = c.logg.WithFields(logCtx, map[string]any{
		"event_id": eventID.String(),
		"purpose":  mail.Purpose,
	})

	if !mail.ExpiresAt.IsZero() && !c.clock().Before(mail.ExpiresAt) {
		c.logg.Info(logCtx, "otp expired before delivery")
		return processResult{ack: true}
	}

	err = c.guard.Do(ctx, ConsumerName, eventID, func(ctx context.Context) error {
		return c.deliverer.DeliverOTP(ctx, mail)
	})
	switch {
	case errors.Is(err, idempotency.ErrDuplicate):
		c.logg.Info(logCtx, "event already processed")
		return processResult{ack: true}
	case err != nil:
		c.logg.Error(logCtx, "otp delivery failed", err)
		return processResult{nack: true}
	}

	c.logg.Info(logCtx, "otp delivered")
	return processResult{ack: true}
}

// LogDeliverer writes codes to the log. It stands in for a mail provider.
type LogDeliverer struct {
	logg *logger.Logger
}

func NewLogDeliverer(logg *logger.Logger) *LogDeliverer {
	return &LogDeliverer{logg: logg}
}

func (d *LogDeliverer) DeliverOTP(ctx context.Context, mail OTPMail) error {
	if d == nil || d.logg == nil {
		return errors.New("log deliverer not initialized")
	}
	d.logg.Info(d.logg.WithFields(ctx, map[string]any{
		"email":      mail.Email,
		"purpose":    mail.Purpose,
		"code":       mail.Code,
		"expires_at": mail.ExpiresAt.Format(time.RFC3339),
	}), "otp mail")
	return nil
}
