// Package ffmpegdemux opens any source ffmpeg understands (RTSP, RTMP, HTTP,
// files) and reads it as raw RGBA frames from an ffmpeg subprocess.
package ffmpegdemux

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/user/ffplayer/pkg/avlib"
	"github.com/user/ffplayer/pkg/ports"
)

// DefaultRTSPTransport is the RTSP lower transport used unless overridden.
const DefaultRTSPTransport = "tcp"

// Options configures the demuxer.
type Options struct {
	// FFmpegPath and FFprobePath override the binaries located by avlib.
	FFmpegPath  string
	FFprobePath string
	// RTSPTransport is passed as -rtsp_transport for rtsp:// sources.
	RTSPTransport string
	// MaxWidth downscales wider sources, keeping the aspect ratio. 0 keeps the source size.
	MaxWidth int
}

// Demuxer opens sources through ffprobe and ffmpeg.
type Demuxer struct {
	opts   Options
	logger ports.Logger
}

// New creates a new ffmpeg demuxer.
func New(opts Options, logger ports.Logger) *Demuxer {
	if opts.RTSPTransport == "" {
		opts.RTSPTransport = DefaultRTSPTransport
	}
	return &Demuxer{opts: opts, logger: logger.WithComponent("ffmpegdemux")}
}

func (d *Demuxer) binaries() (ffmpeg, ffprobe string, err error) {
	ffmpeg = d.opts.FFmpegPath
	if ffmpeg == "" {
		if ffmpeg, err = avlib.FFmpegPath(); err != nil {
			return "", "", err
		}
	}
	ffprobe = d.opts.FFprobePath
	if ffprobe == "" {
		if ffprobe, err = avlib.FFprobePath(); err != nil {
			return "", "", err
		}
	}
	return ffmpeg, ffprobe, nil
}

// inputArgs returns the options that must precede -i for url.
func (d *Demuxer) inputArgs(url string) []string {
	if strings.HasPrefix(strings.ToLower(url), "rtsp://") {
		return []string{"-rtsp_transport", d.opts.RTSPTransport}
	}
	return nil
}

// Open probes url and starts an ffmpeg process decoding its best video stream.
func (d *Demuxer) Open(url string, interrupt ports.InterruptFunc) (ports.Container, error) {
	ffmpeg, ffprobe, err := d.binaries()
	if err != nil {
		return nil, err
	}

	args := lo.Flatten([][]string{
		{"-v", "error"},
		d.inputArgs(url),
		{
			"-select_streams", "v:0",
			"-show_entries", "stream=index,codec_name,codec_type,width,height,avg_frame_rate,r_frame_rate,time_base:format=duration",
			"-of", "json",
			url,
		},
	})
	out, err := runInterruptible(exec.Command(ffprobe, args...), interrupt)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", url, err)
	}

	probe, err := parseProbe(out)
	if err != nil {
		return nil, err
	}
	vs, ok := probe.videoStream()
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, ports.ErrNoVideoStream)
	}

	fps := vs.frameRate()
	if fps <= 0 {
		fps = 25
	}
	width, height := scaledSize(vs.Width, vs.Height, d.opts.MaxWidth)
	stream := ports.StreamInfo{
		Index:          0,
		Codec:          ports.CodecRawVideo,
		Width:          width,
		Height:         height,
		TimeBase:       1 / fps,
		TicksPerFrame:  1,
		FrameRate:      fps,
		PacketTimeBase: 1 / fps,
	}

	ticks, tps := ports.NoDuration, int64(1_000_000)
	if us, ok := probe.durationMicros(); ok {
		ticks = us
	}

	d.logger.Debug("Probed %s: %s %dx%d at %.2f fps", url, vs.CodecName, vs.Width, vs.Height, fps)

	decodeArgs := lo.Flatten([][]string{
		{"-hide_banner", "-loglevel", avlib.LogLevel(), "-nostdin"},
		d.inputArgs(url),
		{
			"-i", url,
			"-map", "0:v:0",
			"-vf", "scale=" + strconv.Itoa(width) + ":" + strconv.Itoa(height),
			"-f", "rawvideo",
			"-pix_fmt", "rgba",
			"pipe:1",
		},
	})
	c, err := startContainer(exec.Command(ffmpeg, decodeArgs...), url, stream, ticks, tps, interrupt)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	return c, nil
}

// scaledSize fits width into maxWidth keeping the aspect ratio and even sizes.
func scaledSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	h := height * maxWidth / width
	if h%2 == 1 {
		h++
	}
	return maxWidth, lo.Max([]int{h, 2})
}

var _ ports.Demuxer = (*Demuxer)(nil)
