package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"carlog/internal/cache"
)

const sessionKeyPrefix = "session:"

// CookieName is the cookie carrying the opaque session identifier.
const CookieName = "session_id"

// Principal is the authenticated identity resolved from a session for the
// duration of one request. It is always passed explicitly, never kept as
// ambient state.
type Principal struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// SessionStore defines server-side session operations.
type SessionStore interface {
	Create(ctx context.Context, principal *Principal) (string, error)
	Get(ctx context.Context, sessionID string) (*Principal, error)
	Destroy(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps sessions in Redis, keyed by an opaque uuid with an
// absolute TTL. Only user id and role are stored server-side.
type RedisSessionStore struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure RedisSessionStore implements SessionStore
var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a session store with the given absolute TTL.
func NewRedisSessionStore(cache *cache.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{cache: cache, ttl: ttl}
}

// Create issues a new session id bound to the principal.
func (s *RedisSessionStore) Create(ctx context.Context, principal *Principal) (string, error) {
	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("marshal session data: %w", err)
	}

	sessionID := uuid.New().String()
	if err := s.cache.Set(ctx, sessionKeyPrefix+sessionID, payload, s.ttl); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sessionID, nil
}

// Get resolves a session id to its principal, or nil when the session does
// not exist or has expired.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*Principal, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var principal Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		return nil, fmt.Errorf("unmarshal session data: %w", err)
	}
	return &principal, nil
}

// Destroy removes a session. Destroying a missing session is not an error.
func (s *RedisSessionStore) Destroy(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+sessionID)
}
