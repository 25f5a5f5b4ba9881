package ffmpegdemux

import (
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/ffplayer/pkg/adapters/logger"
	"github.com/user/ffplayer/pkg/ports"
)

func TestParseRational(t *testing.T) {
	assert.InDelta(t, 29.97, parseRational("30000/1001"), 0.001)
	assert.Equal(t, 25.0, parseRational("25/1"))
	assert.Equal(t, 12.5, parseRational("12.5"))
	assert.Equal(t, 0.0, parseRational("0/0"))
	assert.Equal(t, 0.0, parseRational("abc"))
	assert.Equal(t, 0.0, parseRational(""))
}

func TestParseProbe(t *testing.T) {
	out := []byte(`{
		"streams": [
			{"index": 0, "codec_name": "aac", "codec_type": "audio"},
			{"index": 1, "codec_name": "h264", "codec_type": "video", "width": 1280, "height": 720,
			 "avg_frame_rate": "0/0", "r_frame_rate": "30/1", "time_base": "1/90000"}
		],
		"format": {"duration": "12.500000"}
	}`)

	probe, err := parseProbe(out)
	require.NoError(t, err)

	vs, ok := probe.videoStream()
	require.True(t, ok)
	assert.Equal(t, 1, vs.Index)
	assert.Equal(t, 1280, vs.Width)
	assert.Equal(t, 30.0, vs.frameRate())

	us, ok := probe.durationMicros()
	require.True(t, ok)
	assert.Equal(t, int64(12_500_000), us)
}

func TestParseProbeLiveSource(t *testing.T) {
	probe, err := parseProbe([]byte(`{"streams":[{"index":0,"width":640,"height":480,"time_base":"1/15"}],"format":{"duration":"N/A"}}`))
	require.NoError(t, err)

	_, ok := probe.durationMicros()
	assert.False(t, ok)

	vs, _ := probe.videoStream()
	assert.InDelta(t, 15.0, vs.frameRate(), 1e-9)
}

func TestParseProbeNoVideo(t *testing.T) {
	probe, err := parseProbe([]byte(`{"streams":[{"index":0,"codec_type":"audio"}],"format":{}}`))
	require.NoError(t, err)
	_, ok := probe.videoStream()
	assert.False(t, ok)
}

func TestScaledSize(t *testing.T) {
	w, h := scaledSize(1920, 1080, 0)
	assert.Equal(t, []int{1920, 1080}, []int{w, h})

	w, h = scaledSize(1920, 1080, 640)
	assert.Equal(t, []int{640, 360}, []int{w, h})

	w, h = scaledSize(1000, 334, 500)
	assert.Equal(t, []int{500, 168}, []int{w, h}, "heights are rounded up to even")

	w, h = scaledSize(320, 240, 640)
	assert.Equal(t, []int{320, 240}, []int{w, h})
}

func TestInputArgs(t *testing.T) {
	d := New(Options{}, logger.NewNoop())
	assert.Equal(t, []string{"-rtsp_transport", "tcp"}, d.inputArgs("rtsp://camera/stream"))
	assert.Nil(t, d.inputArgs("https://example.com/live.m3u8"))

	d = New(Options{RTSPTransport: "udp"}, logger.NewNoop())
	assert.Equal(t, []string{"-rtsp_transport", "udp"}, d.inputArgs("RTSP://camera/stream"))
}

func TestRunInterruptibleKillsProcess(t *testing.T) {
	sleep, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	var fired atomic.Bool
	go func() {
		time.Sleep(50 * time.Millisecond)
		fired.Store(true)
	}()

	start := time.Now()
	_, err = runInterruptible(exec.Command(sleep, "10"), fired.Load)
	assert.ErrorIs(t, err, ports.ErrInterrupted)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func tools(t *testing.T) (string, string) {
	t.Helper()
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not available")
	}
	ffprobe, err := exec.LookPath("ffprobe")
	if err != nil {
		t.Skip("ffprobe not available")
	}
	return ffmpeg, ffprobe
}

func testClip(t *testing.T, ffmpeg string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mkv")
	cmd := exec.Command(ffmpeg, "-y", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate=10",
		"-frames:v", "5", "-c:v", "ffv1", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("ffmpeg cannot write test clip: %v: %s", err, out)
	}
	return path
}

func TestOpenAndReadFrames(t *testing.T) {
	ffmpeg, ffprobe := tools(t)
	path := testClip(t, ffmpeg)

	d := New(Options{FFmpegPath: ffmpeg, FFprobePath: ffprobe}, logger.NewNoop())
	c, err := d.Open(path, nil)
	require.NoError(t, err)
	defer c.Close()

	stream, ok := c.VideoStream()
	require.True(t, ok)
	assert.Equal(t, ports.CodecRawVideo, stream.Codec)
	assert.Equal(t, 64, stream.Width)
	assert.Equal(t, 48, stream.Height)
	assert.InDelta(t, 10.0, stream.FrameRate, 0.01)

	ticks, tps := c.Duration()
	assert.Equal(t, int64(1_000_000), tps)
	assert.InDelta(t, 500_000, ticks, 1_000)

	count := 0
	for {
		pkt, err := c.ReadPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Len(t, pkt.Data, 64*48*4)
		assert.Equal(t, int64(count), pkt.PTS)
		count++
	}
	assert.Equal(t, 5, count)

	assert.NoError(t, c.Close())
	_, err = c.ReadPacket()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReadPacketInterrupted(t *testing.T) {
	ffmpeg, ffprobe := tools(t)
	path := testClip(t, ffmpeg)

	var interrupted atomic.Bool
	d := New(Options{FFmpegPath: ffmpeg, FFprobePath: ffprobe}, logger.NewNoop())
	c, err := d.Open(path, interrupted.Load)
	require.NoError(t, err)
	defer c.Close()

	interrupted.Store(true)
	_, err = c.ReadPacket()
	assert.ErrorIs(t, err, ports.ErrInterrupted)
}

func TestOpenMissingSource(t *testing.T) {
	ffmpeg, ffprobe := tools(t)

	d := New(Options{FFmpegPath: ffmpeg, FFprobePath: ffprobe}, logger.NewNoop())
	_, err := d.Open(filepath.Join(t.TempDir(), "missing.mkv"), nil)
	assert.Error(t, err)
}
