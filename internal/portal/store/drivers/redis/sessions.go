// Package redis keeps impersonation sessions in Redis for deployments that
// run several service replicas without a shared SQL database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/aussiebroadwan/spotter/pkg/slogx"
	"github.com/go-redis/redis/v8"
)

const (
	defaultPrefix = "spotter:impersonation:"

	// Expired sessions are kept this long past expiry so the sweeper can
	// record their end before Redis evicts them.
	sweepGrace = time.Hour
)

// deleteIfEqual removes a key only if it still holds the value that was read,
// so a stop or sweep never ends a session that was replaced in the meantime.
var deleteIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type record struct {
	ID             string     `json:"id"`
	AdminID        string     `json:"admin_id"`
	TargetUserID   string     `json:"target_user_id"`
	OrganizationID string     `json:"organization_id,omitempty"`
	Reason         string     `json:"reason"`
	CreatedAt      time.Time  `json:"created_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

func toRecord(s domain.ImpersonationSession) record {
	return record{
		ID:             s.ID.String(),
		AdminID:        s.AdminID,
		TargetUserID:   s.TargetUserID,
		OrganizationID: s.OrganizationID,
		Reason:         s.Reason,
		CreatedAt:      s.CreatedAt.UTC(),
		ExpiresAt:      s.ExpiresAt,
	}
}

func (r record) session() domain.ImpersonationSession {
	return domain.ImpersonationSession{
		ID:             idx.ID(r.ID),
		AdminID:        r.AdminID,
		TargetUserID:   r.TargetUserID,
		OrganizationID: r.OrganizationID,
		Reason:         r.Reason,
		CreatedAt:      r.CreatedAt.UTC(),
		ExpiresAt:      r.ExpiresAt,
	}
}

// Sessions implements store.ImpersonationSessions on Redis. Each admin has
// at most one key, which SETNX keeps unique.
type Sessions struct {
	rdb    *redis.Client
	prefix string
}

var _ store.ImpersonationSessions = (*Sessions)(nil)

// NewClient parses a redis:// URL.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewSessions(rdb *redis.Client) *Sessions {
	return &Sessions{rdb: rdb, prefix: defaultPrefix}
}

// WithPrefix returns a copy using prefix for keys; tests use it for isolation.
func (s *Sessions) WithPrefix(prefix string) *Sessions {
	return &Sessions{rdb: s.rdb, prefix: prefix}
}

func (s *Sessions) key(adminID string) string { return s.prefix + adminID }

func (s *Sessions) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *Sessions) CreateSession(ctx context.Context, sess domain.ImpersonationSession) error {
	raw, err := json.Marshal(toRecord(sess))
	if err != nil {
		return err
	}

	var ttl time.Duration
	if sess.ExpiresAt != nil {
		ttl = max(time.Until(*sess.ExpiresAt), time.Millisecond) + sweepGrace
	}

	ok, err := s.rdb.SetNX(ctx, s.key(sess.AdminID), raw, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Sessions) GetActiveSession(ctx context.Context, adminID string, now time.Time) (domain.ImpersonationSession, error) {
	raw, err := s.rdb.Get(ctx, s.key(adminID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ImpersonationSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ImpersonationSession{}, err
	}

	sess, err := decode(raw)
	if err != nil {
		return domain.ImpersonationSession{}, err
	}
	if !sess.Active(now) {
		return domain.ImpersonationSession{}, store.ErrNotFound
	}
	return sess, nil
}

func (s *Sessions) EndSession(
	ctx context.Context,
	adminID string,
	reason domain.EndReason,
	at time.Time,
) (domain.ImpersonationSession, error) {
	key := s.key(adminID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ImpersonationSession{}, store.ErrNotFound
	}
	if err != nil {
		return domain.ImpersonationSession{}, err
	}

	sess, err := decode(raw)
	if err != nil {
		return domain.ImpersonationSession{}, err
	}
	if !sess.Active(at) {
		return domain.ImpersonationSession{}, store.ErrNotFound
	}

	n, err := deleteIfEqual.Run(ctx, s.rdb, []string{key}, raw).Int()
	if err != nil {
		return domain.ImpersonationSession{}, err
	}
	if n == 0 {
		return domain.ImpersonationSession{}, store.ErrNotFound
	}
	ended := at.UTC()
	sess.EndedAt = &ended
	sess.EndReason = reason
	return sess, nil
}

func (s *Sessions) EndExpiredSessions(ctx context.Context, now time.Time) ([]domain.ImpersonationSession, error) {
	var out []domain.ImpersonationSession
	err := s.scan(ctx, func(key string, raw []byte, sess domain.ImpersonationSession) error {
		if sess.ExpiresAt == nil || now.Before(*sess.ExpiresAt) {
			return nil
		}
		n, err := deleteIfEqual.Run(ctx, s.rdb, []string{key}, raw).Int()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil // stopped or replaced concurrently
		}
		ended := now.UTC()
		sess.EndedAt = &ended
		sess.EndReason = domain.EndReasonExpired
		out = append(out, sess)
		return nil
	})
	return out, err
}

func (s *Sessions) CountActiveSessions(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := s.scan(ctx, func(_ string, _ []byte, sess domain.ImpersonationSession) error {
		if sess.Active(now) {
			n++
		}
		return nil
	})
	return n, err
}

func (s *Sessions) scan(ctx context.Context, fn func(key string, raw []byte, sess domain.ImpersonationSession) error) error {
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := s.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return err
		}
		sess, err := decode(raw)
		if err != nil {
			slogx.FromContext(ctx).Warn("skipping undecodable impersonation session", "key", key, "error", err)
			continue
		}
		if err := fn(key, raw, sess); err != nil {
			return err
		}
	}
	return iter.Err()
}

func decode(raw []byte) (domain.ImpersonationSession, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil {
		return domain.ImpersonationSession{}, fmt.Errorf("decoding impersonation session: %w", err)
	}
	return r.session(), nil
}
