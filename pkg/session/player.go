// Package session plays a video source on a background goroutine and delivers
// timed frames and state changes to a Listener.
package session

import (
	"github.com/user/ffplayer/pkg/adapters/logger"
	"github.com/user/ffplayer/pkg/ports"
)

// Player is the public handle of a playback session.
type Player struct {
	ctrl *Controller
}

// New creates a Player. A nil listener discards notifications and a nil
// logger discards log output.
func New(demuxer ports.Demuxer, decoders ports.DecoderFactory, listener Listener, log ports.Logger, opts ...Option) *Player {
	if listener == nil {
		listener = NopListener{}
	}
	if log == nil {
		log = logger.NewNoop()
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Player{
		ctrl: NewController(demuxer, decoders, listener, log.WithComponent("session"), o),
	}
}

// Open starts playing url in the background. Frames flow after Play.
func (p *Player) Open(url string) { p.ctrl.Open(url) }

// Play starts or resumes playback.
func (p *Player) Play() { p.ctrl.Play() }

// Pause pauses playback.
func (p *Player) Pause() { p.ctrl.Pause() }

// Close stops playback and releases the source. It blocks until the
// background goroutine has exited and is safe to call more than once.
func (p *Player) Close() { p.ctrl.Close() }

// Done is closed when the background run ends. Use it to wait for the end
// of a file without polling.
func (p *Player) Done() <-chan struct{} { return p.ctrl.Done() }

// State returns the playback state.
func (p *Player) State() State { return p.ctrl.State() }

// FrameWidth returns the decoded frame width.
func (p *Player) FrameWidth() int { return p.ctrl.FrameWidth() }

// FrameHeight returns the decoded frame height.
func (p *Player) FrameHeight() int { return p.ctrl.FrameHeight() }

// Duration returns the source duration in seconds.
func (p *Player) Duration() float64 { return p.ctrl.Duration() }

// FrameRate returns the video frame rate.
func (p *Player) FrameRate() float64 { return p.ctrl.FrameRate() }

// SetAutoReconnect enables or disables reconnecting after a stall.
func (p *Player) SetAutoReconnect(enabled bool) { p.ctrl.SetAutoReconnect(enabled) }

// AutoReconnect reports whether reconnecting after a stall is enabled.
func (p *Player) AutoReconnect() bool { return p.ctrl.AutoReconnect() }

// Stats returns playback counters.
func (p *Player) Stats() Stats { return p.ctrl.Stats() }
