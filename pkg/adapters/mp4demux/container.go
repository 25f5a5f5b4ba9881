package mp4demux

import (
	"fmt"
	"io"
	"sync"

	"github.com/user/ffplayer/pkg/ports"
)

// Container is an open MP4 file positioned on its video track.
type Container struct {
	url       string
	track     *track
	stream    ports.StreamInfo
	ticks     int64
	tps       int64
	interrupt ports.InterruptFunc

	mu     sync.Mutex
	reader io.ReadSeekCloser
	pos    int
	closed bool
}

func (c *Container) URL() string { return c.url }

func (c *Container) Streams() []ports.StreamInfo {
	return []ports.StreamInfo{c.stream}
}

func (c *Container) VideoStream() (ports.StreamInfo, bool) {
	return c.stream, true
}

func (c *Container) Duration() (int64, int64) {
	return c.ticks, c.tps
}

// ReadPacket returns the next sample. H.264 samples are converted to Annex B
// and keyframes carry the SPS/PPS in front.
func (c *Container) ReadPacket() (ports.Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ports.Packet{}, ErrClosed
	}
	if c.interrupt != nil && c.interrupt() {
		return ports.Packet{}, ports.ErrInterrupted
	}
	if c.pos >= len(c.track.samples) {
		return ports.Packet{}, io.EOF
	}

	s := c.track.samples[c.pos]
	c.pos++

	data := s.data
	if data == nil {
		var err error
		data, err = c.readSample(s)
		if err != nil {
			return ports.Packet{}, fmt.Errorf("read sample %d: %w", c.pos, err)
		}
	}

	if c.track.codec == ports.CodecH264 {
		annexB := avccToAnnexB(data)
		if s.keyframe && len(c.track.paramSets) > 0 {
			data = make([]byte, 0, len(c.track.paramSets)+len(annexB))
			data = append(data, c.track.paramSets...)
			data = append(data, annexB...)
		} else {
			data = annexB
		}
	}

	dts := int64(s.decodeTime)
	return ports.Packet{
		StreamIndex: c.stream.Index,
		Data:        data,
		DTS:         dts,
		PTS:         dts + int64(s.cto),
		Duration:    int64(s.dur),
		Keyframe:    s.keyframe,
	}, nil
}

func (c *Container) readSample(s sample) ([]byte, error) {
	if _, err := c.reader.Seek(int64(s.offset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek: %w", err)
	}
	data := make([]byte, s.size)
	if _, err := io.ReadFull(c.reader, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Close releases the file. Further calls are no-ops.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.reader.Close()
}

var _ ports.Container = (*Container)(nil)
