// Package summarizer builds playback reports for a finished session.
package summarizer

import (
	"time"

	"github.com/user/ffplayer/pkg/session"
)

// Summary contains all data collected during a playback session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Source information
	Source SourceInfo

	// Stream geometry and timing
	Stream StreamInfo

	// Playback counters
	Playback PlaybackInfo

	// Session settings
	Settings Settings

	// Snapshot output
	Snapshots SnapshotInfo
}

// SourceInfo identifies what was played.
type SourceInfo struct {
	URL     string
	Backend string
}

// StreamInfo contains the video stream properties.
type StreamInfo struct {
	Width     int
	Height    int
	FrameRate float64
	// DurationSec is the source length, or 0 when unknown (live).
	DurationSec float64
	Live        bool
}

// PlaybackInfo contains what happened while playing.
type PlaybackInfo struct {
	Cycles       int
	Reconnects   int
	Frames       int
	DecodeErrors int
	LastExit     string

	// WallTimeMs is the time between Open and Close.
	WallTimeMs int
	// FirstFrameMs is the time from the first "opened" to the first frame.
	FirstFrameMs int
	// LastPosition is the presentation time of the last frame in seconds.
	LastPosition float64
	// MeanDelayMs is the average display delay of delivered frames.
	MeanDelayMs float64
}

// Settings contains the session configuration.
type Settings struct {
	AutoReconnect    bool
	OpenTimeoutMs    int
	ReadTimeoutMs    int
	ReconnectDelayMs int
	RTSPTransport    string
}

// SnapshotInfo describes the frames written to disk.
type SnapshotInfo struct {
	Dir   string
	Count int
	Bytes int64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSource sets source information.
func (b *Builder) WithSource(url, backend string) *Builder {
	b.summary.Source = SourceInfo{
		URL:     url,
		Backend: backend,
	}
	return b
}

// WithStream sets stream geometry. duration is in seconds and may be
// ports.UnboundedDuration for live sources.
func (b *Builder) WithStream(width, height int, fps, duration float64) *Builder {
	info := StreamInfo{
		Width:     width,
		Height:    height,
		FrameRate: fps,
	}
	if isUnbounded(duration) {
		info.Live = true
	} else {
		info.DurationSec = duration
	}
	b.summary.Stream = info
	return b
}

// WithStats copies the session counters.
func (b *Builder) WithStats(stats session.Stats) *Builder {
	p := &b.summary.Playback
	p.Cycles = stats.Cycles
	p.Reconnects = stats.Reconnects
	p.Frames = stats.Frames
	p.DecodeErrors = stats.DecodeErrors
	p.LastExit = stats.LastExit.String()
	return b
}

// WithWallTime sets how long the session ran.
func (b *Builder) WithWallTime(d time.Duration) *Builder {
	b.summary.Playback.WallTimeMs = int(d / time.Millisecond)
	return b
}

// WithSettings sets session settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithSnapshots sets snapshot output information.
func (b *Builder) WithSnapshots(snapshots SnapshotInfo) *Builder {
	b.summary.Snapshots = snapshots
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
