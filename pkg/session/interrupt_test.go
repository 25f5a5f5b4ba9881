package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestInterruptPolicyDeadline(t *testing.T) {
	clock := newFakeClock()
	p := NewInterruptPolicy(clock.Now)

	p.Reset(10 * time.Second)
	assert.False(t, p.Expired())

	clock.Advance(9 * time.Second)
	assert.False(t, p.Expired())
	assert.False(t, p.Stalled())

	clock.Advance(time.Second)
	assert.True(t, p.Expired(), "deadline is inclusive")
	assert.True(t, p.Stalled())
}

func TestInterruptPolicyStallLatchesUntilClear(t *testing.T) {
	clock := newFakeClock()
	p := NewInterruptPolicy(clock.Now)

	p.Reset(time.Second)
	clock.Advance(2 * time.Second)
	assert.True(t, p.Expired())

	p.Reset(time.Minute)
	assert.False(t, p.Expired())
	assert.True(t, p.Stalled(), "stall survives a new deadline")

	p.Clear()
	assert.False(t, p.Stalled())
}

func TestInterruptPolicyHook(t *testing.T) {
	clock := newFakeClock()
	p := NewInterruptPolicy(clock.Now)
	aborted := false
	hook := p.Hook(func() bool { return aborted })

	p.Reset(300 * time.Second)
	assert.False(t, hook())

	aborted = true
	assert.True(t, hook(), "abort interrupts")
	aborted = false

	clock.Advance(301 * time.Second)
	assert.True(t, hook(), "expired deadline interrupts")

	p.Reset(10 * time.Second)
	assert.True(t, hook(), "latched stall keeps interrupting")

	p.Clear()
	assert.False(t, hook())
}
