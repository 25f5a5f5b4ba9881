package summarizer

import (
	"math"
	"sync"
	"time"

	"github.com/user/ffplayer/pkg/ports"
	"github.com/user/ffplayer/pkg/session"
)

// Collector observes a session and accumulates the timing figures and stream
// geometry that session.Stats does not carry. The geometry outlives Close,
// unlike the Player accessors. It is safe for concurrent use.
type Collector struct {
	mu  sync.Mutex
	now func() time.Time

	openedAt     time.Time
	firstFrameMs int
	frames       int
	delaySum     float64
	lastPosition float64
	transitions  []session.State

	// geometry of the most recent frame
	width, height int
	fps, duration float64
}

// NewCollector creates a Collector using the wall clock.
func NewCollector() *Collector {
	return &Collector{now: time.Now, firstFrameMs: -1}
}

// OnFrame records a delivered frame.
func (c *Collector) OnFrame(frame ports.DecodedFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.firstFrameMs < 0 && !c.openedAt.IsZero() {
		c.firstFrameMs = int(c.now().Sub(c.openedAt) / time.Millisecond)
	}
	c.frames++
	c.delaySum += frame.DelayMs
	c.lastPosition = frame.Position
	c.width, c.height = frame.Width, frame.Height
	c.fps, c.duration = frame.FPS, frame.Duration
}

// OnStateChanged records a state transition.
func (c *Collector) OnStateChanged(state session.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transitions = append(c.transitions, state)
}

// OnOpened marks the start of the first open cycle.
func (c *Collector) OnOpened() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openedAt.IsZero() {
		c.openedAt = c.now()
	}
}

// OnClosed does nothing; the summary is taken after Close returns.
func (c *Collector) OnClosed() {}

// Transitions returns the recorded state changes in order.
func (c *Collector) Transitions() []session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]session.State, len(c.transitions))
	copy(out, c.transitions)
	return out
}

// Apply writes the collected figures into b.
func (c *Collector) Apply(b *Builder) *Builder {
	c.mu.Lock()
	defer c.mu.Unlock()

	p := &b.summary.Playback
	p.LastPosition = c.lastPosition
	if c.firstFrameMs >= 0 {
		p.FirstFrameMs = c.firstFrameMs
	}
	if c.frames > 0 {
		p.MeanDelayMs = c.delaySum / float64(c.frames)
		b.WithStream(c.width, c.height, c.fps, c.duration)
	}
	return b
}

func isUnbounded(seconds float64) bool {
	return seconds >= ports.UnboundedDuration || math.IsInf(seconds, 1) || math.IsNaN(seconds)
}

// Ensure Collector implements session.Listener
var _ session.Listener = (*Collector)(nil)
