package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestAllowDrainsAndRefills(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	l := New(2, 1, WithClock(c.now))

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "keys are independent")

	c.advance(time.Second)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	c.advance(time.Hour)
	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "refill is capped at capacity")
}

func TestZeroCapacityDisables(t *testing.T) {
	l := New(0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("x"))
	}
	assert.Zero(t, l.Len())
}

func TestSweepDropsIdle(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	l := New(1, 1, WithClock(c.now), WithIdleEviction(time.Minute))

	l.Allow("old")
	c.advance(2 * time.Minute)
	l.Allow("new")

	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())
}
