package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic-api/internal/domain/appointments"
)

var _ appointments.SlotGuard = (*SlotLocker)(nil)

func newTestLocker(t *testing.T, ttl time.Duration) (*SlotLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewSlotLocker(client, ttl), mr
}

func TestSlotKey(t *testing.T) {
	assert.Equal(t, "slot:2:2024-12-15:14:30", slotKey(2, "2024-12-15", "14:30"))
}

func TestNewSlotLocker_DefaultTTL(t *testing.T) {
	l := NewSlotLocker(nil, 0)
	assert.Equal(t, defaultLockTTL, l.ttl)

	l = NewSlotLocker(nil, 2*time.Second)
	assert.Equal(t, 2*time.Second, l.ttl)
}

func TestSlotLocker_SecondLockOnHeldSlot(t *testing.T) {
	l, mr := newTestLocker(t, 5*time.Second)
	ctx := context.Background()

	release, err := l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)
	require.NotNil(t, release)

	key := slotKey(2, "2024-12-15", "14:30")
	assert.True(t, mr.Exists(key))
	assert.Equal(t, 5*time.Second, mr.TTL(key))

	_, err = l.Lock(ctx, 2, "2024-12-15", "14:30")
	assert.True(t, errors.Is(err, appointments.ErrSlotLocked))
}

func TestSlotLocker_ReleaseFreesSlot(t *testing.T) {
	l, mr := newTestLocker(t, 5*time.Second)
	ctx := context.Background()

	release, err := l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists(slotKey(2, "2024-12-15", "14:30")))

	release, err = l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)
	require.NoError(t, release(ctx))
}

func TestSlotLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	ctx := context.Background()
	key := slotKey(2, "2024-12-15", "14:30")

	staleRelease, err := l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)
	first, err := mr.Get(key)
	require.NoError(t, err)

	// vence el TTL y otra réplica toma el slot
	mr.FastForward(2 * time.Second)
	require.False(t, mr.Exists(key))

	_, err = l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)
	second, err := mr.Get(key)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	require.NoError(t, staleRelease(ctx))

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, second, got)

	_, err = l.Lock(ctx, 2, "2024-12-15", "14:30")
	assert.True(t, errors.Is(err, appointments.ErrSlotLocked))
}

func TestSlotLocker_OtherSlotsNotBlocked(t *testing.T) {
	l, _ := newTestLocker(t, 5*time.Second)
	ctx := context.Background()

	_, err := l.Lock(ctx, 2, "2024-12-15", "14:30")
	require.NoError(t, err)

	tests := []struct {
		name  string
		vetID int64
		date  string
		hhmm  string
	}{
		{name: "other veterinarian", vetID: 3, date: "2024-12-15", hhmm: "14:30"},
		{name: "other date", vetID: 2, date: "2024-12-16", hhmm: "14:30"},
		{name: "other time", vetID: 2, date: "2024-12-15", hhmm: "15:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			release, err := l.Lock(ctx, tt.vetID, tt.date, tt.hhmm)
			require.NoError(t, err)
			require.NoError(t, release(ctx))
		})
	}
}

func TestSlotLocker_ServerDown(t *testing.T) {
	l, mr := newTestLocker(t, time.Second)
	mr.Close()

	_, err := l.Lock(context.Background(), 2, "2024-12-15", "14:30")

	require.Error(t, err)
	assert.False(t, errors.Is(err, appointments.ErrSlotLocked))
	assert.Contains(t, err.Error(), "slot lock")
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestConnect_Unreachable(t *testing.T) {
	// puerto 1: nadie escucha, el ping falla rápido
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 500 * time.Millisecond})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis ping")
}
