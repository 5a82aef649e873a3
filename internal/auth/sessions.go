package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "dietplan||session||"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrSessionInvalid  = errors.New("session invalid")
)

// SessionStore reads sessions written by the auth service. A session is a
// redis hash with the fields user_id, role and created_at (unix seconds).
type SessionStore struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionStore(ttl time.Duration, redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func SessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *SessionStore) Resolve(ctx context.Context, token string) (_ *Identity, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.sessions.resolve")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	fields, err := s.redisClient.HGetAll(ctx, SessionKey(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	createdAtUnix, err := strconv.ParseInt(fields["created_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: created_at: %s", ErrSessionInvalid, err)
	}
	if time.Since(time.Unix(createdAtUnix, 0)) > s.ttl {
		return nil, ErrSessionExpired
	}

	identity := &Identity{
		UserID: fields["user_id"],
		Role:   Role(fields["role"]),
	}
	if identity.UserID == "" || !identity.Role.IsValid() {
		return nil, fmt.Errorf("%w: missing user or unknown role %q", ErrSessionInvalid, identity.Role)
	}

	return identity, nil
}
