// Package h264decoder decodes H.264 Annex B packets by streaming them through
// a long-running ffmpeg process that emits raw RGBA frames.
package h264decoder

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os/exec"
	"sort"
	"strconv"
	"sync"

	"github.com/user/ffplayer/pkg/avlib"
	"github.com/user/ffplayer/pkg/ports"
)

var (
	// ErrNotInitialized is returned when decoding on a closed decoder.
	ErrNotInitialized = errors.New("h264decoder: decoder not initialized")

	// ErrDecodeFailed is returned when a packet cannot be handed to ffmpeg.
	ErrDecodeFailed = errors.New("h264decoder: decode failed")

	// ErrEmptyPacket is returned for packets without payload.
	ErrEmptyPacket = errors.New("h264decoder: empty packet")

	// ErrUnknownGeometry is returned when the stream has no frame size.
	ErrUnknownGeometry = errors.New("h264decoder: unknown frame size")
)

// Options configures a Decoder.
type Options struct {
	// FFmpegPath overrides the binary located by avlib.
	FFmpegPath string
	// LogLevel is passed to ffmpeg's -loglevel. Defaults to avlib.LogLevel().
	LogLevel string
}

// Decoder decodes one H.264 stream.
type Decoder struct {
	stream ports.StreamInfo

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr syncBuffer
	done   chan struct{}

	mu      sync.Mutex
	frames  []*image.RGBA
	pending []int64
	readErr error
	closed  bool
}

// IsAvailable reports whether an ffmpeg binary can be found.
func IsAvailable() bool {
	if _, err := avlib.FFmpegPath(); err == nil {
		return true
	}
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

func resolveFFmpeg(custom string) (string, error) {
	if custom != "" {
		return custom, nil
	}
	if path, err := avlib.FFmpegPath(); err == nil {
		return path, nil
	}
	return exec.LookPath("ffmpeg")
}

// New starts a decoder for stream. Frames are scaled to the stream's size.
func New(stream ports.StreamInfo, opts Options) (*Decoder, error) {
	if stream.Width <= 0 || stream.Height <= 0 {
		return nil, ErrUnknownGeometry
	}

	ffmpegPath, err := resolveFFmpeg(opts.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("find ffmpeg: %w", err)
	}
	logLevel := opts.LogLevel
	if logLevel == "" {
		logLevel = avlib.LogLevel()
	}

	d := &Decoder{
		stream: stream,
		done:   make(chan struct{}),
	}

	d.cmd = exec.Command(ffmpegPath,
		"-hide_banner",
		"-loglevel", logLevel,
		"-probesize", "32",
		"-analyzeduration", "0",
		"-fflags", "nobuffer",
		"-flags", "low_delay",
		"-f", "h264",
		"-i", "pipe:0",
		"-vf", "scale="+strconv.Itoa(stream.Width)+":"+strconv.Itoa(stream.Height),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
	d.cmd.Stderr = &d.stderr

	d.stdin, err = d.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := d.cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := d.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	go d.readFrames(stdout)
	return d, nil
}

// readFrames collects every frame ffmpeg writes until its output ends.
func (d *Decoder) readFrames(r io.Reader) {
	defer close(d.done)

	w, h := d.stream.Width, d.stream.Height
	for {
		buf := make([]byte, w*h*4)
		if _, err := io.ReadFull(r, buf); err != nil {
			if !errors.Is(err, io.EOF) {
				d.mu.Lock()
				d.readErr = err
				d.mu.Unlock()
			}
			return
		}
		img := &image.RGBA{Pix: buf, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}

		d.mu.Lock()
		d.frames = append(d.frames, img)
		d.mu.Unlock()
	}
}

// Decode feeds one packet to ffmpeg and returns the frames finished so far.
// ffmpeg holds a few frames back, so early packets usually yield nothing.
func (d *Decoder) Decode(pkt ports.Packet) ([]ports.DecodedFrame, error) {
	if pkt.StreamIndex != d.stream.Index {
		return nil, nil
	}
	if len(pkt.Data) == 0 {
		return nil, ErrEmptyPacket
	}

	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return nil, ErrNotInitialized
	}

	if _, err := d.stdin.Write(pkt.Data); err != nil {
		return nil, fmt.Errorf("%w: %v: %s", ErrDecodeFailed, err, d.stderr.String())
	}

	d.mu.Lock()
	i := sort.Search(len(d.pending), func(i int) bool { return d.pending[i] >= pkt.PTS })
	d.pending = append(d.pending, 0)
	copy(d.pending[i+1:], d.pending[i:])
	d.pending[i] = pkt.PTS
	d.mu.Unlock()

	return d.drain(), nil
}

// Flush ends the input and waits for ffmpeg to emit its remaining frames.
func (d *Decoder) Flush() ([]ports.DecodedFrame, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrNotInitialized
	}
	d.closed = true
	d.mu.Unlock()

	d.stdin.Close()
	<-d.done
	err := d.cmd.Wait()

	frames := d.drain()
	d.mu.Lock()
	readErr := d.readErr
	d.mu.Unlock()
	if readErr != nil {
		return frames, fmt.Errorf("%w: %v", ErrDecodeFailed, readErr)
	}
	if err != nil && len(frames) == 0 {
		return nil, fmt.Errorf("%w: %v: %s", ErrDecodeFailed, err, d.stderr.String())
	}
	return frames, nil
}

// drain converts queued images to frames. Output is in presentation order,
// so each image takes the smallest pending timestamp.
func (d *Decoder) drain() []ports.DecodedFrame {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.frames) == 0 {
		return nil
	}
	out := make([]ports.DecodedFrame, 0, len(d.frames))
	for _, img := range d.frames {
		var pts int64
		if len(d.pending) > 0 {
			pts = d.pending[0]
			d.pending = d.pending[1:]
		}
		out = append(out, ports.DecodedFrame{
			StreamIndex: d.stream.Index,
			Width:       d.stream.Width,
			Height:      d.stream.Height,
			Image:       img,
			Position:    float64(pts) * d.stream.PacketTimeBase,
			FPS:         d.stream.FrameRate,
		})
	}
	d.frames = nil
	return out
}

func (d *Decoder) FrameWidth() int  { return d.stream.Width }
func (d *Decoder) FrameHeight() int { return d.stream.Height }

// Close stops ffmpeg. Frames not yet returned are dropped.
func (d *Decoder) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.stdin.Close()
	if d.cmd.Process != nil {
		d.cmd.Process.Kill()
	}
	<-d.done
	d.cmd.Wait()
}

// syncBuffer collects ffmpeg's stderr while Decode may read it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var (
	_ ports.Decoder = (*Decoder)(nil)
	_ ports.Flusher = (*Decoder)(nil)
)
