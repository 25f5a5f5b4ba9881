// Package rawdecoder turns packets that already hold RGBA pixels into frames.
package rawdecoder

import (
	"errors"
	"fmt"
	"image"

	"github.com/user/ffplayer/pkg/ports"
)

// ErrFrameSize is returned when a packet does not hold exactly one frame.
var ErrFrameSize = errors.New("rawdecoder: packet size does not match frame size")

// Decoder wraps raw RGBA packets of one stream.
type Decoder struct {
	stream ports.StreamInfo
}

// New creates a decoder for a rawvideo stream.
func New(stream ports.StreamInfo) *Decoder {
	return &Decoder{stream: stream}
}

// Decode copies the packet payload into a new image.
func (d *Decoder) Decode(pkt ports.Packet) ([]ports.DecodedFrame, error) {
	if pkt.StreamIndex != d.stream.Index {
		return nil, nil
	}

	w, h := d.stream.Width, d.stream.Height
	if len(pkt.Data) != w*h*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrFrameSize, len(pkt.Data), w, h)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, pkt.Data)

	return []ports.DecodedFrame{{
		StreamIndex: d.stream.Index,
		Width:       w,
		Height:      h,
		Image:       img,
		Position:    float64(pkt.PTS) * d.stream.PacketTimeBase,
		FPS:         d.stream.FrameRate,
	}}, nil
}

func (d *Decoder) FrameWidth() int  { return d.stream.Width }
func (d *Decoder) FrameHeight() int { return d.stream.Height }

// Close does nothing.
func (d *Decoder) Close() {}

var _ ports.Decoder = (*Decoder)(nil)
