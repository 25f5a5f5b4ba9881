// Package smartdecoder selects a decoder for the video stream of a container
// based on its codec.
package smartdecoder

import (
	"errors"
	"fmt"

	"github.com/user/ffplayer/pkg/adapters/av1decoder"
	"github.com/user/ffplayer/pkg/adapters/h264decoder"
	"github.com/user/ffplayer/pkg/adapters/rawdecoder"
	"github.com/user/ffplayer/pkg/ports"
)

// Backend represents the decoding backend used.
type Backend string

const (
	// BackendFFmpeg represents FFmpeg-based decoding.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendLibaom represents libaom for AV1 decoding.
	BackendLibaom Backend = "libaom"
	// BackendPassthrough represents frames that are already decoded.
	BackendPassthrough Backend = "passthrough"
)

// Info contains information about the selected decoder.
type Info struct {
	// Codec is the stream codec.
	Codec ports.Codec
	// Backend is the decoding backend being used.
	Backend Backend
}

// Options configures the smart decoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

var (
	// ErrUnsupportedCodec is returned when the codec is not supported.
	ErrUnsupportedCodec = errors.New("smartdecoder: unsupported codec")
	// ErrNoDecoderAvailable is returned when no decoder is available for the codec.
	ErrNoDecoderAvailable = errors.New("smartdecoder: no decoder available")
)

// Factory implements ports.DecoderFactory.
type Factory struct {
	opts   Options
	logger ports.Logger
}

// NewFactory creates a decoder factory.
func NewFactory(opts Options, logger ports.Logger) *Factory {
	return &Factory{opts: opts, logger: logger.WithComponent("smartdecoder")}
}

// OpenForStream opens a decoder for the best video stream of c.
func (f *Factory) OpenForStream(c ports.Container) (ports.Decoder, error) {
	stream, ok := c.VideoStream()
	if !ok {
		return nil, ports.ErrNoVideoStream
	}

	dec, info, err := NewForStream(stream, f.opts)
	if err != nil {
		return nil, fmt.Errorf("%s stream: %w", stream.Codec, err)
	}
	f.logger.Debug("Decoding %s with %s backend", info.Codec, info.Backend)
	return dec, nil
}

// NewForStream creates a decoder for a specific stream.
//
// The selection flow:
//   - rawvideo: pass frames through
//   - H.264: FFmpeg decoder
//   - AV1: libaom decoder
func NewForStream(stream ports.StreamInfo, opts Options) (ports.Decoder, Info, error) {
	info := Info{Codec: stream.Codec}

	switch stream.Codec {
	case ports.CodecRawVideo:
		info.Backend = BackendPassthrough
		return rawdecoder.New(stream), info, nil

	case ports.CodecH264:
		if opts.FFmpegPath == "" && !h264decoder.IsAvailable() {
			return nil, Info{}, ErrNoDecoderAvailable
		}
		dec, err := h264decoder.New(stream, h264decoder.Options{FFmpegPath: opts.FFmpegPath})
		if err != nil {
			return nil, Info{}, err
		}
		info.Backend = BackendFFmpeg
		return dec, info, nil

	case ports.CodecAV1:
		dec, err := av1decoder.New(stream)
		if err != nil {
			return nil, Info{}, err
		}
		info.Backend = BackendLibaom
		return dec, info, nil

	default:
		return nil, Info{}, ErrUnsupportedCodec
	}
}

// Support pairs a decodable codec with the backend that handles it.
type Support struct {
	Codec   ports.Codec
	Backend Backend
}

// Supported lists the codecs NewForStream can decode with opts, in a fixed
// order. libaom is linked at build time; H.264 needs an ffmpeg binary.
func Supported(opts Options) []Support {
	var out []Support
	if opts.FFmpegPath != "" || h264decoder.IsAvailable() {
		out = append(out, Support{ports.CodecH264, BackendFFmpeg})
	}
	return append(out,
		Support{ports.CodecAV1, BackendLibaom},
		Support{ports.CodecRawVideo, BackendPassthrough},
	)
}

var _ ports.DecoderFactory = (*Factory)(nil)
