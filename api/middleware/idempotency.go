package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/venuehub/venuehub-backend/api/responses"
	pkgerrors "github.com/venuehub/venuehub-backend/pkg/errors"
	"github.com/venuehub/venuehub-backend/pkg/logger"
	pkgredis "github.com/venuehub/venuehub-backend/pkg/redis"
)

const (
	IdempotencyKeyHeader      = "Idempotency-Key"
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	defaultIdempotencyTTL  = 24 * time.Hour
	criticalIdempotencyTTL = 7 * 24 * time.Hour
	pendingIdempotencyTTL  = 2 * time.Minute
)

// idempotencyRule matches a POST route by path.Match glob. Both the chi
// pattern and the raw path are tried because a sub-router only sees part of
// the pattern.
type idempotencyRule struct {
	glob string
	ttl  time.Duration
}

// Vendor moderation decisions keep their keys for a week.
var idempotencyRules = []idempotencyRule{
	{glob: "/api/v1/auth/register", ttl: defaultIdempotencyTTL},
	{glob: "/api/v1/vendor/listings/*", ttl: defaultIdempotencyTTL},
	{glob: "/api/v1/vendor/vouchers", ttl: defaultIdempotencyTTL},
	{glob: "/api/admin/v1/vouchers", ttl: defaultIdempotencyTTL},
	{glob: "/api/admin/v1/preferences", ttl: defaultIdempotencyTTL},
	{glob: "/api/admin/v1/vendors/*/status", ttl: criticalIdempotencyTTL},
	{glob: "/api/admin/v1/vendors/*/verification", ttl: criticalIdempotencyTTL},
}

// idempotencyRecord is what Redis holds under a key. Pending marks a request
// still being handled.
type idempotencyRecord struct {
	Pending     bool              `json:"pending,omitempty"`
	Status      int               `json:"status,omitempty"`
	Body        []byte            `json:"body,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	RequestHash string            `json:"request_hash"`
}

// replayedHeaders are copied from the original response into a replay.
var replayedHeaders = []string{"Content-Type", "Location"}

// Idempotency replays the stored response for a repeated Idempotency-Key on
// the routes in idempotencyRules. The key is reserved before the handler runs
// so a concurrent duplicate gets CONFLICT. 5xx responses release the key so
// the client can resubmit.
func Idempotency(store pkgredis.IdempotencyStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ttl, ok := routeTTL(r.Method, matchedRoute(r), r.URL.Path)
			if !ok || store == nil {
				next.ServeHTTP(w, r)
				return
			}

			clientKey := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if clientKey == "" {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Idempotency-Key header required"))
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			requestHash := hashBody(body)
			key := store.IdempotencyKey(requestScope(r), clientKey)

			pending, _ := json.Marshal(idempotencyRecord{Pending: true, RequestHash: requestHash})
			reserved, err := store.SetNX(ctx, key, string(pending), pendingIdempotencyTTL)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reserve idempotency key"))
				return
			}
			if !reserved {
				replayOrReject(w, r, store, key, requestHash, logg)
				return
			}

			rec := newRecorder(w, true)
			next.ServeHTTP(rec, r)

			if rec.Status() >= http.StatusInternalServerError {
				if err := store.Del(ctx, key); err != nil && logg != nil {
					logg.Error(ctx, "release idempotency key", err)
				}
				return
			}

			record := idempotencyRecord{
				Status:      rec.Status(),
				Body:        rec.capture.Bytes(),
				RequestHash: requestHash,
				Headers:     map[string]string{},
			}
			for _, name := range replayedHeaders {
				if v := rec.Header().Get(name); v != "" {
					record.Headers[name] = v
				}
			}
			if err := saveRecord(r, store, key, record, ttl); err != nil && logg != nil {
				logg.Error(ctx, "persist idempotency record", err)
			}
		})
	}
}

type recordSetter interface {
	pkgredis.IdempotencyStore
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// saveRecord overwrites the pending marker. Stores without Set fall back to
// delete and SETNX.
func saveRecord(r *http.Request, store pkgredis.IdempotencyStore, key string, record idempotencyRecord, ttl time.Duration) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if setter, ok := store.(recordSetter); ok {
		return setter.Set(r.Context(), key, string(payload), ttl)
	}
	if err := store.Del(r.Context(), key); err != nil {
		return err
	}
	_, err = store.SetNX(r.Context(), key, string(payload), ttl)
	return err
}

func replayOrReject(w http.ResponseWriter, r *http.Request, store pkgredis.IdempotencyStore, key, requestHash string, logg *logger.Logger) {
	ctx := r.Context()
	stored, err := store.Get(ctx, key)
	if errors.Is(err, redis.Nil) {
		// Released between SETNX and GET; the first attempt failed.
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "previous attempt failed, retry the request"))
		return
	}
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check idempotency"))
		return
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(stored), &record); err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode idempotency record"))
		return
	}
	switch {
	case record.RequestHash != requestHash:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeIdempotency, "idempotency key reused with different request body"))
	case record.Pending:
		responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "request with this idempotency key is still in progress"))
	default:
		for name, value := range record.Headers {
			w.Header().Set(name, value)
		}
		w.Header().Set(IdempotencyReplayedHeader, "true")
		w.WriteHeader(record.Status)
		_, _ = w.Write(record.Body)
	}
}

// requestScope keeps keys from colliding across callers and endpoints.
func requestScope(r *http.Request) string {
	return strings.Join([]string{
		UserIDFromContext(r.Context()),
		VendorIDFromContext(r.Context()),
		r.Method,
		trimTrailingSlash(r.URL.Path),
	}, "|")
}

// trimTrailingSlash folds "/x/" onto "/x"; chi serves both from the same
// route.
func trimTrailingSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimRight(p, "/")
	}
	return p
}

func hashBody(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func routeTTL(method string, candidates ...string) (time.Duration, bool) {
	if method != http.MethodPost {
		return 0, false
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		candidate = trimTrailingSlash(candidate)
		for _, rule := range idempotencyRules {
			if ok, _ := path.Match(rule.glob, candidate); ok {
				return rule.ttl, true
			}
		}
	}
	return 0, false
}
