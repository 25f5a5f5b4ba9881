package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "playing", StatePlaying.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestSessionStateTransitions(t *testing.T) {
	var s sessionState
	assert.Equal(t, StateClosed, s.get())

	assert.False(t, s.play(), "play with no live cycle is a no-op")
	assert.Equal(t, StateClosed, s.get())

	assert.True(t, s.open(), "closed -> paused")
	assert.False(t, s.open())
	assert.True(t, s.play(), "paused -> playing")
	assert.False(t, s.play(), "playing -> playing is a no-op")
	assert.True(t, s.pause(), "playing -> paused")
	assert.False(t, s.pause(), "paused -> paused is a no-op")
	assert.True(t, s.play(), "paused -> playing")

	assert.True(t, s.shut(), "playing -> closed")
	assert.False(t, s.shut())
	assert.False(t, s.pause(), "pause from closed is a no-op")
	assert.False(t, s.play(), "play after shut is a no-op")
	assert.Equal(t, StateClosed, s.get())
}

func TestSessionStateMarkExit(t *testing.T) {
	tests := []struct {
		name    string
		auto    bool
		aborted bool
		stalled bool
		want    bool
	}{
		{"stall with auto reconnect", true, false, true, true},
		{"stall without auto reconnect", false, false, true, false},
		{"end of stream", true, false, false, false},
		{"abort wins over stall", true, true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s sessionState
			s.setAutoReconnect(tt.auto)
			s.setAborted(tt.aborted)
			assert.Equal(t, tt.want, s.markExit(tt.stalled))
			assert.Equal(t, tt.want, s.shouldReconnect())
		})
	}
}

func TestSessionStateAbortAfterMarkExit(t *testing.T) {
	var s sessionState
	s.setAutoReconnect(true)
	assert.True(t, s.markExit(true))

	s.setAborted(true)
	assert.False(t, s.shouldReconnect())
}
