package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHealthStatusStartsDown(t *testing.T) {
	// Before the first monitor tick the snapshot reports every dependency
	// down rather than pretending to be healthy.
	setHealthStatus(HealthStatus{})
	got := GetHealthStatus()
	assert.False(t, got.Mongo)
	assert.False(t, got.LockRedis)
	assert.True(t, got.CheckedAt.IsZero())
}

func TestHealthStatusReflectsLastSnapshot(t *testing.T) {
	checked := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	setHealthStatus(HealthStatus{Mongo: true, LockRedis: false, CheckedAt: checked})

	got := GetHealthStatus()
	assert.True(t, got.Mongo)
	assert.False(t, got.LockRedis)
	assert.Equal(t, checked, got.CheckedAt)
}
