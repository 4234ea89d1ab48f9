//go:build integration

package redis

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/spotter/internal/portal/domain"
	"github.com/aussiebroadwan/spotter/internal/portal/store"
	"github.com/aussiebroadwan/spotter/pkg/idx"
	"github.com/stretchr/testify/require"
)

func testSessions(t *testing.T) *Sessions {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}
	rdb, err := NewClient(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewSessions(rdb).WithPrefix("spotter-test:" + idx.New().String() + ":")
	require.NoError(t, s.Ping(context.Background()))
	return s
}

func session(admin string, now time.Time, ttl time.Duration) domain.ImpersonationSession {
	s := domain.ImpersonationSession{
		ID: idx.New(), AdminID: admin, TargetUserID: "target", Reason: "it", CreatedAt: now,
	}
	if ttl != 0 {
		exp := now.Add(ttl)
		s.ExpiresAt = &exp
	}
	return s
}

func TestLifecycle(t *testing.T) {
	s := testSessions(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateSession(ctx, session("a1", now, time.Hour)))
	require.ErrorIs(t, s.CreateSession(ctx, session("a1", now, time.Hour)), store.ErrAlreadyExists)

	got, err := s.GetActiveSession(ctx, "a1", now)
	require.NoError(t, err)
	require.Equal(t, "a1", got.AdminID)

	n, err := s.CountActiveSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	ended, err := s.EndSession(ctx, "a1", domain.EndReasonStopped, now)
	require.NoError(t, err)
	require.Equal(t, domain.EndReasonStopped, ended.EndReason)

	_, err = s.EndSession(ctx, "a1", domain.EndReasonStopped, now)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExpiredSessionsAreSwept(t *testing.T) {
	s := testSessions(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.CreateSession(ctx, session("a1", now, -time.Minute)))

	_, err := s.GetActiveSession(ctx, "a1", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.EndSession(ctx, "a1", domain.EndReasonStopped, now)
	require.ErrorIs(t, err, store.ErrNotFound, "expired sessions are left for the sweep")

	expired, err := s.EndExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, domain.EndReasonExpired, expired[0].EndReason)

	require.NoError(t, s.CreateSession(ctx, session("a1", now, time.Hour)), "slot is free after the sweep")
}

func TestUndecodableKeysAreSkipped(t *testing.T) {
	s := testSessions(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.rdb.Set(ctx, s.key("garbage"), "{not json", time.Minute).Err())
	require.NoError(t, s.CreateSession(ctx, session("a1", now, -time.Minute)))
	require.NoError(t, s.CreateSession(ctx, session("a2", now, time.Hour)))

	n, err := s.CountActiveSessions(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	expired, err := s.EndExpiredSessions(ctx, now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, "a1", expired[0].AdminID)
}

func TestConcurrentEnd(t *testing.T) {
	s := testSessions(t)
	ctx := context.Background()
	require.NoError(t, s.CreateSession(ctx, session("a1", time.Now(), 0)))

	var (
		wg    sync.WaitGroup
		ended atomic.Int32
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.EndSession(ctx, "a1", domain.EndReasonStopped, time.Now())
			switch {
			case err == nil:
				ended.Add(1)
			case !errors.Is(err, store.ErrNotFound):
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, ended.Load())
}
