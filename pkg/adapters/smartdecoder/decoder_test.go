package smartdecoder

import (
	"errors"
	"testing"

	"github.com/user/ffplayer/pkg/adapters/h264decoder"
	"github.com/user/ffplayer/pkg/mocks"
	"github.com/user/ffplayer/pkg/ports"
)

func stream(codec ports.Codec) ports.StreamInfo {
	return ports.StreamInfo{
		Codec:          codec,
		Width:          64,
		Height:         48,
		TimeBase:       1.0 / 25,
		TicksPerFrame:  1,
		FrameRate:      25,
		PacketTimeBase: 1.0 / 25,
	}
}

func TestNewForStreamRaw(t *testing.T) {
	decoder, info, err := NewForStream(stream(ports.CodecRawVideo), Options{})
	if err != nil {
		t.Fatalf("failed to create raw decoder: %v", err)
	}
	defer decoder.Close()

	if info.Backend != BackendPassthrough {
		t.Errorf("expected passthrough backend, got %s", info.Backend)
	}
}

func TestNewForStreamAV1(t *testing.T) {
	decoder, info, err := NewForStream(stream(ports.CodecAV1), Options{})
	if err != nil {
		t.Fatalf("failed to create AV1 decoder: %v", err)
	}
	if decoder == nil {
		t.Fatal("decoder is nil")
	}
	defer decoder.Close()

	if info.Codec != ports.CodecAV1 {
		t.Errorf("expected codec AV1, got %s", info.Codec)
	}
	if info.Backend != BackendLibaom {
		t.Errorf("expected backend libaom, got %s", info.Backend)
	}
}

func TestNewForStreamH264(t *testing.T) {
	if !h264decoder.IsAvailable() {
		t.Skip("H.264 decoder not available")
	}

	decoder, info, err := NewForStream(stream(ports.CodecH264), Options{})
	if err != nil {
		t.Fatalf("failed to create H.264 decoder: %v", err)
	}
	defer decoder.Close()

	if info.Backend != BackendFFmpeg {
		t.Errorf("expected ffmpeg backend, got %s", info.Backend)
	}
}

func TestNewForStreamUnsupported(t *testing.T) {
	for _, codec := range []ports.Codec{ports.CodecHEVC, ports.CodecUnknown} {
		_, _, err := NewForStream(stream(codec), Options{})
		if !errors.Is(err, ErrUnsupportedCodec) {
			t.Errorf("%s: expected ErrUnsupportedCodec, got %v", codec, err)
		}
	}
}

func TestFactoryOpenForStream(t *testing.T) {
	container := mocks.NewContainer(64, 48, 25)
	container.StreamList[0].Codec = ports.CodecRawVideo

	f := NewFactory(Options{}, mocks.NewLogger())
	decoder, err := f.OpenForStream(container)
	if err != nil {
		t.Fatalf("OpenForStream failed: %v", err)
	}
	defer decoder.Close()

	if decoder.FrameWidth() != 64 || decoder.FrameHeight() != 48 {
		t.Errorf("unexpected geometry %dx%d", decoder.FrameWidth(), decoder.FrameHeight())
	}
}

func TestFactoryNoVideoStream(t *testing.T) {
	container := mocks.NewContainer(64, 48, 25)
	container.StreamList = nil

	_, err := NewFactory(Options{}, mocks.NewLogger()).OpenForStream(container)
	if !errors.Is(err, ports.ErrNoVideoStream) {
		t.Errorf("expected ErrNoVideoStream, got %v", err)
	}
}

func TestSupported(t *testing.T) {
	got := Supported(Options{FFmpegPath: "/opt/ffmpeg/bin/ffmpeg"})
	want := []Support{
		{ports.CodecH264, BackendFFmpeg},
		{ports.CodecAV1, BackendLibaom},
		{ports.CodecRawVideo, BackendPassthrough},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	for _, s := range Supported(Options{}) {
		if s.Codec == ports.CodecH264 && !h264decoder.IsAvailable() {
			t.Error("H.264 listed without an ffmpeg binary")
		}
	}
}
