package summarizer

import (
	"testing"
	"time"

	"github.com/user/ffplayer/pkg/ports"
	"github.com/user/ffplayer/pkg/session"
)

func TestCollector_Apply(t *testing.T) {
	c := NewCollector()
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	now := start
	c.now = func() time.Time { return now }

	c.OnStateChanged(session.StatePaused)
	c.OnOpened()
	c.OnStateChanged(session.StatePlaying)

	now = start.Add(120 * time.Millisecond)
	c.OnFrame(ports.DecodedFrame{Position: 0.0, DelayMs: 80})
	now = start.Add(200 * time.Millisecond)
	c.OnFrame(ports.DecodedFrame{Width: 320, Height: 240, FPS: 25, Duration: 2.5, Position: 0.08, DelayMs: 40})
	c.OnClosed()
	c.OnStateChanged(session.StateClosed)

	summary := c.Apply(NewBuilder()).Build()

	if summary.Playback.FirstFrameMs != 120 {
		t.Errorf("expected first frame after 120 ms, got %d", summary.Playback.FirstFrameMs)
	}
	if summary.Playback.LastPosition != 0.08 {
		t.Errorf("expected last position 0.08, got %f", summary.Playback.LastPosition)
	}
	if summary.Playback.MeanDelayMs != 60 {
		t.Errorf("expected mean delay 60 ms, got %f", summary.Playback.MeanDelayMs)
	}

	if summary.Stream.Width != 320 || summary.Stream.Height != 240 || summary.Stream.DurationSec != 2.5 {
		t.Errorf("expected stream geometry from frames, got %+v", summary.Stream)
	}

	want := []session.State{session.StatePaused, session.StatePlaying, session.StateClosed}
	got := c.Transitions()
	if len(got) != len(want) {
		t.Fatalf("expected %d transitions, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestCollector_ReopenKeepsFirstOpen(t *testing.T) {
	c := NewCollector()
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	now := start
	c.now = func() time.Time { return now }

	c.OnOpened()
	now = start.Add(time.Second)
	c.OnOpened()
	now = start.Add(1500 * time.Millisecond)
	c.OnFrame(ports.DecodedFrame{})

	summary := c.Apply(NewBuilder()).Build()
	if summary.Playback.FirstFrameMs != 1500 {
		t.Errorf("expected first frame measured from first open, got %d", summary.Playback.FirstFrameMs)
	}
}

func TestCollector_NoFrames(t *testing.T) {
	c := NewCollector()
	c.OnOpened()

	summary := c.Apply(NewBuilder()).Build()
	if summary.Playback.MeanDelayMs != 0 || summary.Playback.FirstFrameMs != 0 {
		t.Errorf("expected zero figures without frames, got %+v", summary.Playback)
	}
}
