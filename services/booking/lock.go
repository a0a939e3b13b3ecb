package booking

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// LockArena hands out exclusive critical sections keyed by professional ID.
// Locks for different professionals never contend. Acquire blocks up to its
// configured bound and then fails with BookingTimeoutError so one stuck
// booking cannot stall every other booking for that professional.
type LockArena interface {
	// Acquire returns a release function on success. The release function is
	// safe to call exactly once.
	Acquire(ctx context.Context, professionalID string) (release func(), err error)
}

// RedisLockArena implements LockArena with redis SET NX PX, which stays
// correct across multiple service instances. The TTL releases locks
// abandoned by a crashed instance.
type RedisLockArena struct {
	Client *redis.Client
	TTL    time.Duration
	Wait   time.Duration
}

const lockKeyPrefix = "booking-lock:"

// releaseScript deletes the lock only when it still holds our token, so an
// expired-and-reacquired lock is never released by the previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (a *RedisLockArena) Acquire(ctx context.Context, professionalID string) (func(), error) {
	key := lockKeyPrefix + professionalID
	token := uuid.New().String()
	deadline := time.Now().Add(a.Wait)

	for {
		ok, err := a.Client.SetNX(ctx, key, token, a.TTL).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(releaseCtx, a.Client, []string{key}, token).Err()
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, BookingTimeoutError{ProfessionalID: professionalID, Waited: a.Wait}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

// MemoryLockArena is an in-process LockArena used by tests and single
// instance deployments.
type MemoryLockArena struct {
	Wait time.Duration

	mu    sync.Mutex
	held  map[string]struct{}
	inits sync.Once
}

func (a *MemoryLockArena) Acquire(ctx context.Context, professionalID string) (func(), error) {
	a.inits.Do(func() { a.held = make(map[string]struct{}) })
	deadline := time.Now().Add(a.Wait)

	for {
		a.mu.Lock()
		if _, taken := a.held[professionalID]; !taken {
			a.held[professionalID] = struct{}{}
			a.mu.Unlock()
			return func() {
				a.mu.Lock()
				delete(a.held, professionalID)
				a.mu.Unlock()
			}, nil
		}
		a.mu.Unlock()

		if time.Now().After(deadline) {
			return nil, BookingTimeoutError{ProfessionalID: professionalID, Waited: a.Wait}
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}
