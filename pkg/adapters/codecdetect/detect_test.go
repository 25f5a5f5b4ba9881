package codecdetect

import (
	"testing"

	"github.com/user/ffplayer/pkg/adapters/osfilesystem"
	"github.com/user/ffplayer/pkg/mocks"
	"github.com/user/ffplayer/pkg/ports"
)

func fixture(t *testing.T, entry string) []byte {
	t.Helper()
	data, err := mocks.FragmentedMP4(entry, 64, 48, 1000, []mocks.MP4Sample{
		{Data: mocks.AVCCSample([]byte{0x65, 0x88}), Dur: 40, Keyframe: true},
	})
	if err != nil {
		t.Fatalf("failed to build fixture: %v", err)
	}
	return data
}

func TestDetectFromBytes(t *testing.T) {
	tests := []struct {
		entry string
		want  ports.Codec
	}{
		{"avc1", ports.CodecH264},
		{"avc3", ports.CodecH264},
		{"hvc1", ports.CodecHEVC},
		{"av01", ports.CodecAV1},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			codec, err := DetectFromBytes(fixture(t, tt.entry))
			if err != nil {
				t.Fatalf("DetectFromBytes failed: %v", err)
			}
			if codec != tt.want {
				t.Errorf("expected %s, got %s", tt.want, codec)
			}
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	fs := osfilesystem.NewMemory()
	if err := fs.WriteFile("/media/clip.mp4", fixture(t, "avc1")); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	codec, err := DetectFromFile(fs, "/media/clip.mp4")
	if err != nil {
		t.Fatalf("DetectFromFile failed: %v", err)
	}
	if codec != ports.CodecH264 {
		t.Errorf("expected h264, got %s", codec)
	}
}

func TestDetectFromFileMissing(t *testing.T) {
	_, err := DetectFromFile(osfilesystem.NewMemory(), "/missing.mp4")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDetectFromBytesGarbage(t *testing.T) {
	_, err := DetectFromBytes([]byte("not an mp4 file"))
	if err == nil {
		t.Error("expected error for invalid data")
	}
}
