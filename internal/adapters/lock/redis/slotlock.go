package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"vet-clinic-api/internal/domain/appointments"
)

const defaultLockTTL = 5 * time.Second

// releaseScript borra la key solo si sigue siendo nuestra: si el TTL venció y
// otro proceso tomó el lock, no se lo pisamos.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SlotLocker serializa el agendado de un mismo (veterinario, fecha, hora)
// entre réplicas de la API.
// Key: slot:<veterinarian_id>:<date>:<time>
type SlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSlotLocker(client *redis.Client, ttl time.Duration) *SlotLocker {
	if ttl <= 0 {
		ttl = defaultLockTTL
	}
	return &SlotLocker{client: client, ttl: ttl}
}

// Lock toma el slot con SET NX. Si otro lo tiene devuelve appointments.ErrSlotLocked.
func (l *SlotLocker) Lock(ctx context.Context, veterinarianID int64, date, hhmm string) (func(context.Context) error, error) {
	key := slotKey(veterinarianID, date, hhmm)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("slot lock: %w", err)
	}
	if !ok {
		return nil, appointments.ErrSlotLocked
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("slot unlock: %w", err)
		}
		return nil
	}
	return release, nil
}

func slotKey(veterinarianID int64, date, hhmm string) string {
	return fmt.Sprintf("slot:%d:%s:%s", veterinarianID, date, hhmm)
}
