// Package mp4demux reads video packets from local MP4 files (progressive and
// fragmented) with mp4ff.
package mp4demux

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/ffplayer/pkg/ports"
)

// ErrClosed is returned when reading from a closed container.
var ErrClosed = errors.New("mp4demux: container closed")

// Demuxer opens MP4 files through a ports.FileSystem.
type Demuxer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new MP4 demuxer.
func New(fs ports.FileSystem, logger ports.Logger) *Demuxer {
	return &Demuxer{fs: fs, logger: logger.WithComponent("mp4demux")}
}

// Accepts reports whether url names a local MP4 file.
func Accepts(url string) bool {
	if strings.Contains(url, "://") && !strings.HasPrefix(url, "file://") {
		return false
	}
	switch strings.ToLower(filepath.Ext(url)) {
	case ".mp4", ".m4v", ".mov":
		return true
	}
	return false
}

// LocalPath strips a file:// scheme from url.
func LocalPath(url string) string {
	return strings.TrimPrefix(url, "file://")
}

// Open parses the MP4 file at url and indexes its first video track.
func (d *Demuxer) Open(url string, interrupt ports.InterruptFunc) (ports.Container, error) {
	if interrupt != nil && interrupt() {
		return nil, fmt.Errorf("open %s: %w", url, ports.ErrInterrupted)
	}

	path := LocalPath(url)
	f, err := d.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	fragmented := mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil
	if fragmented {
		moov = mp4File.Init.Moov
	}

	trak := findVideoTrack(moov)
	if trak == nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", url, ports.ErrNoVideoStream)
	}

	var t *track
	if fragmented {
		t, err = indexFragmented(mp4File, trak)
	} else {
		t, err = indexProgressive(trak)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("index %s: %w", url, err)
	}

	if interrupt != nil && interrupt() {
		f.Close()
		return nil, fmt.Errorf("open %s: %w", url, ports.ErrInterrupted)
	}

	ticks, tps := int64(t.totalDuration()), int64(t.timescale)
	if moov.Mvhd != nil && moov.Mvhd.Duration > 0 && moov.Mvhd.Timescale > 0 {
		ticks, tps = int64(moov.Mvhd.Duration), int64(moov.Mvhd.Timescale)
	}

	d.logger.Debug("Indexed %d samples of %s track in %s", len(t.samples), t.codec, path)

	return &Container{
		url:       url,
		reader:    f,
		track:     t,
		stream:    streamInfo(t),
		ticks:     ticks,
		tps:       tps,
		interrupt: interrupt,
	}, nil
}

func streamInfo(t *track) ports.StreamInfo {
	fps := t.frameRate()
	info := ports.StreamInfo{
		Index:          0,
		Codec:          t.codec,
		Width:          t.width,
		Height:         t.height,
		FrameRate:      fps,
		PacketTimeBase: 1 / float64(t.timescale),
	}
	if fps > 0 {
		// H.264 counts fields, so one frame spans two codec ticks.
		if t.codec == ports.CodecH264 {
			info.TimeBase = 1 / (2 * fps)
			info.TicksPerFrame = 2
		} else {
			info.TimeBase = 1 / fps
			info.TicksPerFrame = 1
		}
	}
	return info
}

var _ ports.Demuxer = (*Demuxer)(nil)
