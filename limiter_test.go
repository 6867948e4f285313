package glowblog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) (*LoginLimiter, *time.Time) {
	t.Helper()
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLoginLimiter(max, window)
	l.now = func() time.Time { return clock }
	t.Cleanup(l.Stop)
	return l, &clock
}

func TestLoginLimiterBlocksAfterMax(t *testing.T) {
	limiter, _ := newTestLimiter(t, 2, time.Minute)
	ip := "203.0.113.10"

	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.True(t, limiter.Check(ip))
	limiter.Record(ip)
	assert.False(t, limiter.Check(ip), "third attempt should be blocked")
}

func TestLoginLimiterResetsAfterWindow(t *testing.T) {
	limiter, clock := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.20"

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))

	*clock = clock.Add(61 * time.Second)
	assert.True(t, limiter.Check(ip))
}

func TestLoginLimiterIsPerIP(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)

	limiter.Record("203.0.113.30")
	assert.True(t, limiter.Check("203.0.113.31"))
	assert.False(t, limiter.Check("203.0.113.30"))
}

func TestLoginLimiterReset(t *testing.T) {
	limiter, _ := newTestLimiter(t, 1, time.Minute)
	ip := "203.0.113.40"

	limiter.Record(ip)
	assert.False(t, limiter.Check(ip))
	limiter.Reset(ip)
	assert.True(t, limiter.Check(ip))
}
