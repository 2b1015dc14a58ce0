package auth

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/venuehub/venuehub-backend/pkg/config"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/metrics"
	"github.com/venuehub/venuehub-backend/pkg/security"
)

// OTPPurpose scopes a one-time code to the flow that issued it.
type OTPPurpose string

const (
	PurposeVerifyEmail   OTPPurpose = "verify_email"
	PurposeResetPassword OTPPurpose = "reset_password"
)

// IsValid reports whether the purpose is known.
func (p OTPPurpose) IsValid() bool {
	return p == PurposeVerifyEmail || p == PurposeResetPassword
}

const invalidCodeMessage = "invalid or expired code"

// otpStore is the Redis surface used for codes; *redis.Client satisfies it.
type otpStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
	Del(ctx context.Context, keys ...string) error
	OTPKey(purpose, email string) string
	OTPAttemptsKey(purpose, email string) string
	OTPCooldownKey(purpose, email string) string
}

// otpIssuer issues and checks hashed numeric codes stored in Redis.
type otpIssuer struct {
	store    otpStore
	cfg      config.OTPConfig
	notifier Notifier
	metrics  *metrics.AuthMetrics
	now      func() time.Time
}

func newOTPIssuer(store otpStore, cfg config.OTPConfig, notifier Notifier, m *metrics.AuthMetrics) *otpIssuer {
	if cfg.Length <= 0 {
		cfg.Length = 6
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &otpIssuer{store: store, cfg: cfg, notifier: notifier, metrics: m, now: time.Now}
}

// dispatch describes a code without sending one, used to answer unknown emails.
func (o *otpIssuer) dispatch(purpose OTPPurpose, email string) OTPDispatch {
	return OTPDispatch{
		Email:              email,
		Purpose:            purpose,
		ExpiresInSeconds:   int(o.cfg.TTL / time.Second),
		ResendAfterSeconds: int(o.cfg.ResendCooldown / time.Second),
	}
}

// Issue stores a fresh code and hands it to the notifier. Inside the resend
// cooldown it fails with RATE_LIMIT_EXCEEDED.
func (o *otpIssuer) Issue(ctx context.Context, purpose OTPPurpose, email string) (OTPDispatch, error) {
	p := string(purpose)
	if o.cfg.ResendCooldown > 0 {
		cooldownKey := o.store.OTPCooldownKey(p, email)
		ok, err := o.store.SetNX(ctx, cooldownKey, "1", o.cfg.ResendCooldown)
		if err != nil {
			return OTPDispatch{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "otp cooldown")
		}
		if !ok {
			retry := o.cfg.ResendCooldown
			if ttl, err := o.store.TTL(ctx, cooldownKey); err == nil && ttl > 0 {
				retry = ttl
			}
			return OTPDispatch{}, pkgerrors.New(pkgerrors.CodeRateLimit, "please wait before requesting another code").
				WithDetails(map[string]any{"retry_after_seconds": int(math.Ceil(retry.Seconds()))})
		}
	}

	code, err := security.GenerateNumericCode(o.cfg.Length)
	if err != nil {
		return OTPDispatch{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := o.store.Set(ctx, o.store.OTPKey(p, email), security.HashCode(email, code), o.cfg.TTL); err != nil {
		return OTPDispatch{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}
	if err := o.store.Del(ctx, o.store.OTPAttemptsKey(p, email)); err != nil {
		return OTPDispatch{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset otp attempts")
	}
	o.metrics.IncIssued(p)

	msg := OTPMessage{
		Email:     email,
		Purpose:   purpose,
		Code:      code,
		ExpiresAt: o.now().UTC().Add(o.cfg.TTL),
	}
	if err := o.notifier.SendOTP(ctx, msg); err != nil {
		return OTPDispatch{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deliver otp")
	}
	return o.dispatch(purpose, email), nil
}

// Verify consumes the code on success. Each mismatch counts towards
// MaxAttempts; reaching it discards the code.
func (o *otpIssuer) Verify(ctx context.Context, purpose OTPPurpose, email, code string) error {
	p := string(purpose)
	codeKey := o.store.OTPKey(p, email)
	attemptsKey := o.store.OTPAttemptsKey(p, email)

	stored, err := o.store.Get(ctx, codeKey)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			o.metrics.IncVerification(p, metrics.OTPResultExpired)
			return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp")
	}

	if !security.CodeMatches(email, strings.TrimSpace(code), stored) {
		attempts, err := o.store.IncrWithTTL(ctx, attemptsKey, o.cfg.TTL)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count otp attempts")
		}
		if attempts >= int64(o.cfg.MaxAttempts) {
			if err := o.store.Del(ctx, codeKey, attemptsKey); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard otp")
			}
			o.metrics.IncVerification(p, metrics.OTPResultLocked)
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, request a new code")
		}
		o.metrics.IncVerification(p, metrics.OTPResultMismatch)
		return pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCodeMessage).
			WithDetails(map[string]any{"attempts_remaining": int64(o.cfg.MaxAttempts) - attempts})
	}

	if err := o.store.Del(ctx, codeKey, attemptsKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume otp")
	}
	o.metrics.IncVerification(p, metrics.OTPResultSuccess)
	return nil
}

func (p OTPPurpose) String() string {
	return string(p)
}

func parsePurpose(value OTPPurpose) (OTPPurpose, error) {
	if value == "" {
		return PurposeVerifyEmail, nil
	}
	purpose := OTPPurpose(strings.ToLower(strings.TrimSpace(string(value))))
	if !purpose.IsValid() {
		return "", fmt.Errorf("invalid purpose %q", value)
	}
	return purpose, nil
}
