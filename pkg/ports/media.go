package ports

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrInterrupted is returned by a blocking container call that was cut
	// short because its InterruptFunc reported true.
	ErrInterrupted = errors.New("ports: operation interrupted")

	// ErrNoVideoStream is returned when a container holds no decodable video stream.
	ErrNoVideoStream = errors.New("ports: no video stream")
)

// NoDuration marks a source whose duration is unknown (live streams).
const NoDuration int64 = math.MinInt64

// UnboundedDuration is reported in seconds when the source duration is unknown.
const UnboundedDuration = math.MaxFloat32

// InterruptFunc is polled by the demux layer while a blocking call is in progress.
// Returning true makes the call give up promptly with ErrInterrupted.
type InterruptFunc func() bool

// Codec identifies the compressed format of a stream.
type Codec string

const (
	CodecH264     Codec = "h264"
	CodecHEVC     Codec = "hevc"
	CodecAV1      Codec = "av1"
	CodecRawVideo Codec = "rawvideo"
	CodecUnknown  Codec = "unknown"
)

// StreamInfo describes one elementary stream of an open container.
type StreamInfo struct {
	Index int
	Codec Codec

	Width  int
	Height int

	// TimeBase is the codec time base in seconds per tick.
	TimeBase float64
	// TicksPerFrame is the number of codec ticks covered by one frame.
	TicksPerFrame int
	// FrameRate is the average frame rate, or 1/TimeBase when the container has none.
	FrameRate float64

	// PacketTimeBase converts packet PTS/DTS values to seconds.
	PacketTimeBase float64
}

// Packet is one compressed unit read from a container.
type Packet struct {
	StreamIndex int
	Data        []byte
	PTS         int64
	DTS         int64
	Duration    int64
	Keyframe    bool
}

// Container is an open demux context. It belongs to a single open cycle and
// must be closed exactly once.
type Container interface {
	// URL returns the address the container was opened from.
	URL() string

	// Streams returns every stream found while reading stream info.
	Streams() []StreamInfo

	// VideoStream returns the best video stream.
	VideoStream() (StreamInfo, bool)

	// Duration returns the container duration as ticks and ticks per second.
	// ticks is NoDuration when the source does not know its length.
	Duration() (ticks int64, ticksPerSecond int64)

	// ReadPacket returns the next packet. It returns io.EOF at end of stream and
	// ErrInterrupted when the interrupt hook fired during the read.
	ReadPacket() (Packet, error)

	// Close tears the container down. The interrupt hook still bounds the call.
	Close() error
}

// Demuxer opens containers.
type Demuxer interface {
	// Open opens url and reads its stream info. interrupt is kept by the
	// container and polled during every blocking call it makes.
	Open(url string, interrupt InterruptFunc) (Container, error)
}

// DecodedFrame is a display-ready video frame.
type DecodedFrame struct {
	StreamIndex int
	Width       int
	Height      int

	// Image owns its pixel buffer; it is not shared with the decoder.
	Image *image.RGBA

	// Position is the presentation timestamp in seconds.
	Position float64
	// Duration is the stream duration in seconds, or UnboundedDuration.
	Duration float64
	// FPS is the stream frame rate.
	FPS float64
	// RepeatPict is the codec repeat flag (extra half-frame periods).
	RepeatPict int
	// DelayMs is how long the frame stays visible before the next one.
	DelayMs float64
}

// Decoder turns packets of one selected stream into frames.
type Decoder interface {
	// Decode decodes one packet. Packets of other streams yield no frames.
	Decode(pkt Packet) ([]DecodedFrame, error)

	// FrameWidth returns the width of decoded frames.
	FrameWidth() int

	// FrameHeight returns the height of decoded frames.
	FrameHeight() int

	// Close releases decoder resources.
	Close()
}

// DecoderFactory opens a decoder for the best video stream of a container.
type DecoderFactory interface {
	OpenForStream(c Container) (Decoder, error)
}

// Flusher is implemented by decoders that buffer frames internally. Flush
// signals end of input and returns the frames still held back.
type Flusher interface {
	Flush() ([]DecodedFrame, error)
}
