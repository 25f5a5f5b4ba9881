package mocks

import (
	"errors"
	"image"
	"io"
	"sync"
	"time"

	"github.com/user/ffplayer/pkg/ports"
)

// ErrNoContainer is returned by Demuxer.Open when its queue is empty.
var ErrNoContainer = errors.New("mocks: no container queued")

// Demuxer is a mock implementation of ports.Demuxer.
// Open hands out queued containers in order.
type Demuxer struct {
	mu     sync.Mutex
	queue  []*Container
	opened []string

	OpenFunc func(url string, interrupt ports.InterruptFunc) (ports.Container, error)
}

// NewDemuxer creates a mock Demuxer serving containers in order.
func NewDemuxer(containers ...*Container) *Demuxer {
	return &Demuxer{queue: containers}
}

// Enqueue adds containers served by later Open calls.
func (m *Demuxer) Enqueue(containers ...*Container) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, containers...)
}

func (m *Demuxer) Open(url string, interrupt ports.InterruptFunc) (ports.Container, error) {
	m.mu.Lock()
	m.opened = append(m.opened, url)
	fn := m.OpenFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(url, interrupt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, ErrNoContainer
	}
	c := m.queue[0]
	m.queue = m.queue[1:]
	c.attach(url, interrupt)
	return c, nil
}

// OpenCount returns how many times Open was called.
func (m *Demuxer) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.opened)
}

var _ ports.Demuxer = (*Demuxer)(nil)

// Container is a mock implementation of ports.Container that replays packets.
// When the packets run out it returns EndErr (io.EOF when nil), or blocks
// polling its interrupt hook when Block is set.
type Container struct {
	mu         sync.Mutex
	url        string
	interrupt  ports.InterruptFunc
	pos        int
	closeCount int

	StreamList     []ports.StreamInfo
	DurationTicks  int64
	TicksPerSecond int64
	Packets        []ports.Packet
	EndErr         error
	Block          bool

	ReadPacketFunc func() (ports.Packet, error)
}

// NewContainer creates a container with a single video stream at index 0.
func NewContainer(width, height int, fps float64, packets ...ports.Packet) *Container {
	return &Container{
		StreamList: []ports.StreamInfo{{
			Index:          0,
			Codec:          ports.CodecH264,
			Width:          width,
			Height:         height,
			TimeBase:       1 / (2 * fps),
			TicksPerFrame:  2,
			FrameRate:      fps,
			PacketTimeBase: 1 / fps,
		}},
		DurationTicks:  int64(len(packets)) * 1_000_000 / int64(fps),
		TicksPerSecond: 1_000_000,
		Packets:        packets,
	}
}

func (m *Container) attach(url string, interrupt ports.InterruptFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.url = url
	m.interrupt = interrupt
}

func (m *Container) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

func (m *Container) Streams() []ports.StreamInfo {
	return m.StreamList
}

func (m *Container) VideoStream() (ports.StreamInfo, bool) {
	for _, s := range m.StreamList {
		if s.Codec != ports.CodecUnknown {
			return s, true
		}
	}
	return ports.StreamInfo{}, false
}

func (m *Container) Duration() (int64, int64) {
	return m.DurationTicks, m.TicksPerSecond
}

func (m *Container) ReadPacket() (ports.Packet, error) {
	if m.ReadPacketFunc != nil {
		return m.ReadPacketFunc()
	}

	m.mu.Lock()
	if m.pos < len(m.Packets) {
		pkt := m.Packets[m.pos]
		m.pos++
		m.mu.Unlock()
		return pkt, nil
	}
	interrupt := m.interrupt
	m.mu.Unlock()

	if m.Block {
		for interrupt == nil || !interrupt() {
			time.Sleep(time.Millisecond)
		}
		return ports.Packet{}, ports.ErrInterrupted
	}
	if m.EndErr != nil {
		return ports.Packet{}, m.EndErr
	}
	return ports.Packet{}, io.EOF
}

func (m *Container) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
	return nil
}

// CloseCount returns how many times Close was called.
func (m *Container) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

var _ ports.Container = (*Container)(nil)

// Decoder is a mock implementation of ports.Decoder. By default every packet
// yields one frame of the packet's stream.
type Decoder struct {
	mu         sync.Mutex
	width      int
	height     int
	closeCount int

	DecodeFunc func(pkt ports.Packet) ([]ports.DecodedFrame, error)

	// FlushFrames is returned by Flush.
	FlushFrames []ports.DecodedFrame
	flushCount  int
}

// NewDecoder creates a mock decoder producing frames of the given size.
func NewDecoder(width, height int) *Decoder {
	return &Decoder{width: width, height: height}
}

func (m *Decoder) Decode(pkt ports.Packet) ([]ports.DecodedFrame, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(pkt)
	}
	return []ports.DecodedFrame{{
		StreamIndex: pkt.StreamIndex,
		Width:       m.width,
		Height:      m.height,
		Image:       image.NewRGBA(image.Rect(0, 0, m.width, m.height)),
		Position:    float64(pkt.PTS),
	}}, nil
}

func (m *Decoder) FrameWidth() int  { return m.width }
func (m *Decoder) FrameHeight() int { return m.height }

func (m *Decoder) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCount++
}

func (m *Decoder) Flush() ([]ports.DecodedFrame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCount++
	return m.FlushFrames, nil
}

// FlushCount returns how many times Flush was called.
func (m *Decoder) FlushCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCount
}

// CloseCount returns how many times Close was called.
func (m *Decoder) CloseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCount
}

var (
	_ ports.Decoder = (*Decoder)(nil)
	_ ports.Flusher = (*Decoder)(nil)
)

// DecoderFactory is a mock implementation of ports.DecoderFactory.
type DecoderFactory struct {
	Width  int
	Height int
	Err    error

	OpenForStreamFunc func(c ports.Container) (ports.Decoder, error)
}

func (m *DecoderFactory) OpenForStream(c ports.Container) (ports.Decoder, error) {
	if m.OpenForStreamFunc != nil {
		return m.OpenForStreamFunc(c)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return NewDecoder(m.Width, m.Height), nil
}

var _ ports.DecoderFactory = (*DecoderFactory)(nil)
