package session

import (
	"sync"
	"time"

	"github.com/user/ffplayer/pkg/ports"
)

// InterruptPolicy bounds how long a single blocking open, read or close may run.
type InterruptPolicy struct {
	mu       sync.Mutex
	now      func() time.Time
	deadline time.Time
	stalled  bool
}

// NewInterruptPolicy creates a policy reading time from now. A nil now uses time.Now.
func NewInterruptPolicy(now func() time.Time) *InterruptPolicy {
	if now == nil {
		now = time.Now
	}
	return &InterruptPolicy{now: now}
}

// Reset arms the deadline timeout from now. Call it right before a blocking call.
func (p *InterruptPolicy) Reset(timeout time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deadline = p.now().Add(timeout)
}

// Expired reports whether the deadline has passed. An expiry latches the stall
// flag until Clear.
func (p *InterruptPolicy) Expired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	expired := !p.now().Before(p.deadline)
	if expired {
		p.stalled = true
	}
	return expired
}

// Stalled reports whether a deadline expired since the last Clear.
func (p *InterruptPolicy) Stalled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stalled
}

// Clear forgets a previous stall. Called at the start of every open cycle.
func (p *InterruptPolicy) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stalled = false
}

// Hook returns the callback handed to the demux layer. It fires when the
// deadline expired, when an earlier call of the same cycle stalled, or when
// aborted reports true.
func (p *InterruptPolicy) Hook(aborted func() bool) ports.InterruptFunc {
	return func() bool {
		if p.Expired() || p.Stalled() {
			return true
		}
		return aborted()
	}
}
