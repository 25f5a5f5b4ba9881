// Package nullsink provides a no-op snapshot sink implementation.
package nullsink

import (
	"github.com/user/ffplayer/pkg/ports"
)

// Sink is a no-op implementation of ports.SnapshotSink.
// It discards all frames and reports.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveFrame does nothing.
func (s *Sink) SaveFrame(cycle int, index int, frame ports.DecodedFrame) error {
	return nil
}

// SaveReport does nothing.
func (s *Sink) SaveReport(data []byte) error {
	return nil
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
