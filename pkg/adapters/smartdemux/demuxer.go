// Package smartdemux routes a URL to the demuxer best suited for it.
package smartdemux

import (
	"errors"

	"github.com/user/ffplayer/pkg/adapters/mp4demux"
	"github.com/user/ffplayer/pkg/ports"
)

// Backend names the demuxer that served a URL.
type Backend string

const (
	// BackendMP4 is the native MP4 reader.
	BackendMP4 Backend = "mp4"
	// BackendFFmpeg is the ffmpeg subprocess reader.
	BackendFFmpeg Backend = "ffmpeg"
)

// Demuxer opens local MP4 files natively and everything else through ffmpeg.
// A local MP4 the native reader cannot parse is retried with ffmpeg.
type Demuxer struct {
	mp4    ports.Demuxer
	ffmpeg ports.Demuxer
	logger ports.Logger
}

// New creates a routing demuxer. ffmpeg may be nil when ffmpeg is unavailable.
func New(mp4 ports.Demuxer, ffmpeg ports.Demuxer, logger ports.Logger) *Demuxer {
	return &Demuxer{mp4: mp4, ffmpeg: ffmpeg, logger: logger.WithComponent("smartdemux")}
}

// Select returns the backend that will be tried first for url.
func Select(url string) Backend {
	if mp4demux.Accepts(url) {
		return BackendMP4
	}
	return BackendFFmpeg
}

// ErrNoBackend is returned when no demuxer can open a URL.
var ErrNoBackend = errors.New("smartdemux: no demuxer available")

func (d *Demuxer) Open(url string, interrupt ports.InterruptFunc) (ports.Container, error) {
	if Select(url) == BackendMP4 && d.mp4 != nil {
		c, err := d.mp4.Open(url, interrupt)
		if err == nil || d.ffmpeg == nil || errors.Is(err, ports.ErrInterrupted) {
			return c, err
		}
		d.logger.Debug("Native MP4 reader failed on %s, falling back to ffmpeg: %v", url, err)
	}

	if d.ffmpeg == nil {
		return nil, ErrNoBackend
	}
	return d.ffmpeg.Open(url, interrupt)
}

var _ ports.Demuxer = (*Demuxer)(nil)
