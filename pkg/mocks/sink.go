package mocks

import (
	"sync"

	"github.com/user/ffplayer/pkg/ports"
)

// SnapshotSink is a mock implementation of ports.SnapshotSink.
type SnapshotSink struct {
	mu sync.RWMutex

	enabled bool

	Frames map[[2]int]ports.DecodedFrame
	Report []byte
}

// NewSnapshotSink creates a new mock SnapshotSink.
func NewSnapshotSink(enabled bool) *SnapshotSink {
	return &SnapshotSink{
		enabled: enabled,
		Frames:  make(map[[2]int]ports.DecodedFrame),
	}
}

func (m *SnapshotSink) Enabled() bool {
	return m.enabled
}

func (m *SnapshotSink) SaveFrame(cycle int, index int, frame ports.DecodedFrame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Frames[[2]int{cycle, index}] = frame
	return nil
}

func (m *SnapshotSink) SaveReport(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Report = data
	return nil
}

// FrameCount returns the number of saved frames.
func (m *SnapshotSink) FrameCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.Frames)
}

var _ ports.SnapshotSink = (*SnapshotSink)(nil)
