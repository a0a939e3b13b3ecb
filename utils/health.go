package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the snapshot served by /health. Dependencies are named so
// operators can tell which one failed: Mongo backs the ledger and calendar,
// LockRedis backs the booking critical section.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	LockRedis bool      `json:"lockRedis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func setHealthStatus(h HealthStatus) {
	healthMu.Lock()
	currentHealth = h
	healthMu.Unlock()
}

// StartHealthMonitor pings the booking-lock redis and mongo once a minute and
// stores the result in memory. The /health handler only ever reads the
// snapshot, so a slow dependency never blocks the endpoint.
func StartHealthMonitor(lockClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			setHealthStatus(HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				LockRedis: lockClient.Ping(ctx).Err() == nil,
				CheckedAt: time.Now(),
			})
		}
	}()
}
