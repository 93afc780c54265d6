package redisclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisBookingLocker(client, 5*time.Second), mr
}

func TestWithBookingLockRunsCriticalSection(t *testing.T) {
	locker, _ := newTestLocker(t)

	ran := false
	err := locker.WithBookingLock(context.Background(), uuid.New(), time.Now(), func(ctx context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithBookingLockRejectsConcurrentHolder(t *testing.T) {
	locker, _ := newTestLocker(t)

	dentistID := uuid.New()
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	err := locker.WithBookingLock(context.Background(), dentistID, at, func(ctx context.Context) error {
		inner := locker.WithBookingLock(ctx, dentistID, at, func(ctx context.Context) error {
			t.Fatal("critical section entered twice for the same booking key")
			return nil
		})
		assert.ErrorIs(t, inner, ErrLockNotAcquired)
		return nil
	})
	require.NoError(t, err)
}

func TestWithBookingLockAllowsDistinctKeys(t *testing.T) {
	locker, _ := newTestLocker(t)

	dentistID := uuid.New()
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	err := locker.WithBookingLock(context.Background(), dentistID, at, func(ctx context.Context) error {
		// Same dentist, different timestamp must not contend.
		return locker.WithBookingLock(ctx, dentistID, at.Add(30*time.Minute), func(ctx context.Context) error {
			return nil
		})
	})
	require.NoError(t, err)
}

func TestWithBookingLockReleasesOnCompletion(t *testing.T) {
	locker, mr := newTestLocker(t)

	dentistID := uuid.New()
	at := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)

	wantErr := errors.New("boom")
	err := locker.WithBookingLock(context.Background(), dentistID, at, func(ctx context.Context) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// The lock key must be gone so a follow-up attempt succeeds.
	assert.Empty(t, mr.Keys())
	err = locker.WithBookingLock(context.Background(), dentistID, at, func(ctx context.Context) error {
		return nil
	})
	require.NoError(t, err)
}
