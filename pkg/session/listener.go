package session

import "github.com/user/ffplayer/pkg/ports"

// Listener receives frames and lifecycle notifications.
//
// OnFrame, OnOpened and OnClosed are called from the session's run goroutine;
// OnOpened and OnClosed bracket the frames of each open cycle. OnStateChanged
// may also be called from whichever goroutine called Play or Pause.
// A listener must not call Close from inside a callback.
type Listener interface {
	OnFrame(frame ports.DecodedFrame)
	OnStateChanged(state State)
	OnOpened()
	OnClosed()
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	Frame        func(frame ports.DecodedFrame)
	StateChanged func(state State)
	Opened       func()
	Closed       func()
}

func (l ListenerFuncs) OnFrame(frame ports.DecodedFrame) {
	if l.Frame != nil {
		l.Frame(frame)
	}
}

func (l ListenerFuncs) OnStateChanged(state State) {
	if l.StateChanged != nil {
		l.StateChanged(state)
	}
}

func (l ListenerFuncs) OnOpened() {
	if l.Opened != nil {
		l.Opened()
	}
}

func (l ListenerFuncs) OnClosed() {
	if l.Closed != nil {
		l.Closed()
	}
}

// NopListener discards every notification.
type NopListener struct{}

func (NopListener) OnFrame(ports.DecodedFrame) {}
func (NopListener) OnStateChanged(State)       {}
func (NopListener) OnOpened()                  {}
func (NopListener) OnClosed()                  {}

var (
	_ Listener = ListenerFuncs{}
	_ Listener = NopListener{}
)
