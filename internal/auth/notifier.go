package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/internal/events"
	"github.com/venuehub/venuehub-backend/pkg/logger"
)

// OTPMessage is the plaintext code handed to the delivery channel.
type OTPMessage struct {
	Email     string
	Purpose   OTPPurpose
	Code      string
	ExpiresAt time.Time
}

// Notifier delivers one-time codes to users.
type Notifier interface {
	SendOTP(ctx context.Context, msg OTPMessage) error
}

// LogNotifier writes codes to the log. Only suitable for development.
type LogNotifier struct {
	logg *logger.Logger
}

func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) SendOTP(ctx context.Context, msg OTPMessage) error {
	if n == nil || n.logg == nil {
		return nil
	}
	n.logg.Info(n.logg.WithFields(ctx, map[string]any{
		"email":      msg.Email,
		"purpose":    msg.Purpose.String(),
		"code":       msg.Code,
		"expires_at": msg.ExpiresAt,
	}), "otp issued")
	return nil
}

// EventNotifier publishes otp.issued for the mail worker to deliver.
type EventNotifier struct {
	publisher events.Publisher
}

func NewEventNotifier(publisher events.Publisher) *EventNotifier {
	return &EventNotifier{publisher: publisher}
}

type otpIssuedData struct {
	Email     string    `json:"email"`
	Purpose   string    `json:"purpose"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (n *EventNotifier) SendOTP(ctx context.Context, msg OTPMessage) error {
	return n.publisher.Publish(ctx, events.Event{
		Type:          events.TypeOTPIssued,
		AggregateType: "user_email",
		AggregateID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(msg.Email))),
		Data: otpIssuedData{
			Email:     msg.Email,
			Purpose:   msg.Purpose.String(),
			Code:      msg.Code,
			ExpiresAt: msg.ExpiresAt,
		},
	})
}
