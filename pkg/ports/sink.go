package ports

// SnapshotSink abstracts saving selected decoded frames for inspection.
type SnapshotSink interface {
	// Enabled returns true if snapshots are written anywhere.
	Enabled() bool

	// SaveFrame stores frame number index of the current open cycle.
	SaveFrame(cycle int, index int, frame DecodedFrame) error

	// SaveReport stores the playback report.
	SaveReport(data []byte) error
}
