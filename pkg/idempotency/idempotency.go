// Package idempotency dedupes at-least-once event deliveries per consumer.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venuehub/venuehub-backend/pkg/redis"
)

// ErrDuplicate is returned by Do when the event was already handled.
var ErrDuplicate = errors.New("event already processed")

// Guard records processed event IDs in Redis with SETNX and a TTL. Keys look
// like vh:idempotency:evt:processed:<consumer>:<event_id>.
type Guard struct {
	store redis.IdempotencyStore
	ttl   time.Duration
}

func NewGuard(store redis.IdempotencyStore, ttl time.Duration) (*Guard, error) {
	if store == nil {
		return nil, errors.New("idempotency store is required")
	}
	if ttl < 0 {
		return nil, errors.New("ttl must be non-negative")
	}
	return &Guard{store: store, ttl: ttl}, nil
}

// Claim marks the event as processed for consumer. It reports false when a
// previous delivery already claimed it.
func (g *Guard) Claim(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error) {
	key, err := g.key(consumer, eventID)
	if err != nil {
		return false, err
	}
	return g.store.SetNX(ctx, key, "1", g.ttl)
}

// Release forgets a claim so a redelivery is processed again.
func (g *Guard) Release(ctx context.Context, consumer string, eventID uuid.UUID) error {
	key, err := g.key(consumer, eventID)
	if err != nil {
		return err
	}
	return g.store.Del(ctx, key)
}

// Do claims the event and runs fn once. A failing fn releases the claim and
// its error is returned; a duplicate returns ErrDuplicate without calling fn.
func (g *Guard) Do(ctx context.Context, consumer string, eventID uuid.UUID, fn func(context.Context) error) error {
	claimed, err := g.Claim(ctx, consumer, eventID)
	if err != nil {
		return fmt.Errorf("claim event: %w", err)
	}
	if !claimed {
		return ErrDuplicate
	}
	if err := fn(ctx); err != nil {
		if releaseErr := g.Release(ctx, consumer, eventID); releaseErr != nil {
			return errors.Join(err, fmt.Errorf("release claim: %w", releaseErr))
		}
		return err
	}
	return nil
}

func (g *Guard) key(consumer string, eventID uuid.UUID) (string, error) {
	if consumer == "" {
		return "", errors.New("consumer name is required")
	}
	if eventID == uuid.Nil {
		return "", errors.New("event id is required")
	}
	return g.store.IdempotencyKey("evt:processed:"+consumer, eventID.String()), nil
}
