package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/ffplayer/pkg/ports"
)

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Source: SourceInfo{
			URL:     "https://example.com/clip.mp4",
			Backend: "mp4",
		},
		Stream: StreamInfo{
			Width:       1280,
			Height:      720,
			FrameRate:   25,
			DurationSec: 2.5,
		},
		Playback: PlaybackInfo{
			Cycles:       1,
			Frames:       62,
			LastExit:     "end-of-stream",
			WallTimeMs:   2600,
			FirstFrameMs: 35,
			LastPosition: 2.44,
			MeanDelayMs:  40,
		},
		Settings: Settings{
			OpenTimeoutMs:    300000,
			ReadTimeoutMs:    10000,
			ReconnectDelayMs: 1000,
			RTSPTransport:    "tcp",
		},
		Snapshots: SnapshotInfo{
			Dir:   "shots",
			Count: 3,
			Bytes: 1024 * 1024,
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Playback Report",
		"https://example.com/clip.mp4",
		"1280x720",
		"25.00 fps",
		"2.50 s",
		"| Frames | 62 |",
		"end-of-stream",
		"2600 ms",
		"35 ms",
		"40.0 ms",
		"300000 ms",
		"tcp",
		"1.00 MB",
		"2024-01-15T10:30:00Z",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_Live(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := NewBuilder().
		WithSource("rtsp://camera/live", "ffmpeg").
		WithStream(640, 480, 30, ports.UnboundedDuration).
		Build()

	result := formatter.Format(summary)

	if !strings.Contains(result, "| Duration | Live |") {
		t.Error("expected live duration")
	}
}

func TestMarkdownFormatter_Format_NoGeometry(t *testing.T) {
	formatter := NewMarkdownFormatter()

	result := formatter.Format(NewBuilder().WithSource("missing.mp4", "").Build())

	if !strings.Contains(result, "N/A") {
		t.Error("expected N/A frame size when nothing was opened")
	}
	if strings.Contains(result, "Backend") {
		t.Error("expected no backend row when backend is unknown")
	}
	if strings.Contains(result, "First Frame") {
		t.Error("expected no frame timing without frames")
	}
	if strings.Contains(result, "## Snapshots") {
		t.Error("expected no snapshot section without snapshots")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Playback Report": "再生レポート",
			"Frame Size":      "フレームサイズ",
			"Live":            "ライブ",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))

	summary := NewBuilder().
		WithSource("rtsp://camera/live", "ffmpeg").
		WithStream(640, 480, 30, ports.UnboundedDuration).
		Build()

	result := formatter.Format(summary)

	for _, want := range []string{"再生レポート", "フレームサイズ", "ライブ"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithVersion("v1.2.0"))

	result := formatter.Format(NewSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
