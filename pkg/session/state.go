package session

import "sync"

// State is the playback state reported to consumers.
type State int

const (
	// StateClosed means no media is open.
	StateClosed State = iota
	// StatePlaying means packets are being read and frames emitted.
	StatePlaying
	// StatePaused means media is open but the read loop is idle.
	StatePaused
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// sessionState holds every flag the consumer and the run goroutine share.
// The flags are read together (abort vs reconnect), so one mutex guards them all.
type sessionState struct {
	mu sync.Mutex

	state            State
	live             bool
	aborted          bool
	autoReconnect    bool
	readyToReconnect bool
}

func (s *sessionState) get() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// open marks a cycle live and moves to Paused. It reports whether the state changed.
func (s *sessionState) open() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = true
	if s.state == StatePaused {
		return false
	}
	s.state = StatePaused
	return true
}

// shut ends the live cycle and moves to Closed. It reports whether the state changed.
func (s *sessionState) shut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = false
	if s.state == StateClosed {
		return false
	}
	s.state = StateClosed
	return true
}

// play moves Paused to Playing. It is a no-op unless a cycle is live.
func (s *sessionState) play() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live || s.state == StatePlaying {
		return false
	}
	s.state = StatePlaying
	return true
}

// pause moves Playing to Paused and is a no-op in any other state.
func (s *sessionState) pause() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.live || s.state != StatePlaying {
		return false
	}
	s.state = StatePaused
	return true
}

func (s *sessionState) isAborted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aborted
}

func (s *sessionState) setAborted(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aborted = v
}

func (s *sessionState) autoReconnectEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoReconnect
}

func (s *sessionState) setAutoReconnect(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoReconnect = v
}

// markExit records how an open cycle ended. Only a stall with auto-reconnect
// enabled and no abort leaves the session ready to reconnect.
func (s *sessionState) markExit(stalled bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readyToReconnect = stalled && s.autoReconnect && !s.aborted
	return s.readyToReconnect
}

// shouldReconnect reads abort and reconnect readiness under one lock.
func (s *sessionState) shouldReconnect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyToReconnect && !s.aborted
}
