package session

import "time"

const (
	// DefaultOpenTimeout bounds opening and closing a container.
	DefaultOpenTimeout = 300 * time.Second
	// DefaultReadTimeout bounds reading a single packet.
	DefaultReadTimeout = 10 * time.Second
	// DefaultReconnectDelay is the pause before an automatic reconnect.
	DefaultReconnectDelay = 1 * time.Second
	// DefaultIdlePoll is how often a paused session re-checks its state.
	DefaultIdlePoll = 100 * time.Millisecond
)

// Options configures a Player.
type Options struct {
	OpenTimeout    time.Duration
	ReadTimeout    time.Duration
	ReconnectDelay time.Duration
	IdlePoll       time.Duration
	AutoReconnect  bool

	// Now is the clock used by the interrupt policy. Nil means time.Now.
	Now func() time.Time
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		OpenTimeout:    DefaultOpenTimeout,
		ReadTimeout:    DefaultReadTimeout,
		ReconnectDelay: DefaultReconnectDelay,
		IdlePoll:       DefaultIdlePoll,
	}
}

// Option mutates Options.
type Option func(*Options)

// WithOpenTimeout sets the open/close timeout.
func WithOpenTimeout(d time.Duration) Option {
	return func(o *Options) { o.OpenTimeout = d }
}

// WithReadTimeout sets the per-packet read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(o *Options) { o.ReadTimeout = d }
}

// WithReconnectDelay sets the backoff before an automatic reconnect.
func WithReconnectDelay(d time.Duration) Option {
	return func(o *Options) { o.ReconnectDelay = d }
}

// WithIdlePoll sets the paused-state polling interval.
func WithIdlePoll(d time.Duration) Option {
	return func(o *Options) { o.IdlePoll = d }
}

// WithAutoReconnect enables reopening the source after a stall.
func WithAutoReconnect(enabled bool) Option {
	return func(o *Options) { o.AutoReconnect = enabled }
}

// WithClock replaces the interrupt policy clock.
func WithClock(now func() time.Time) Option {
	return func(o *Options) { o.Now = now }
}

func (o *Options) normalize() {
	d := DefaultOptions()
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = d.OpenTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = d.ReadTimeout
	}
	if o.ReconnectDelay < 0 {
		o.ReconnectDelay = d.ReconnectDelay
	}
	if o.IdlePoll <= 0 {
		o.IdlePoll = d.IdlePoll
	}
}
