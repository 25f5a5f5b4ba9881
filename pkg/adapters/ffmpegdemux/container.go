package ffmpegdemux

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/user/ffplayer/pkg/ports"
)

// ErrClosed is returned when reading from a closed container.
var ErrClosed = errors.New("ffmpegdemux: container closed")

type readResult struct {
	data []byte
	err  error
}

// Container streams raw frames from a running ffmpeg process.
type Container struct {
	url       string
	stream    ports.StreamInfo
	ticks     int64
	tps       int64
	interrupt ports.InterruptFunc

	cmd     *exec.Cmd
	results chan readResult
	quit    chan struct{}
	done    chan struct{}

	mu        sync.Mutex
	pts       int64
	closed    bool
	closeOnce sync.Once
}

func startContainer(cmd *exec.Cmd, url string, stream ports.StreamInfo, ticks, tps int64, interrupt ports.InterruptFunc) (*Container, error) {
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	c := &Container{
		url:       url,
		stream:    stream,
		ticks:     ticks,
		tps:       tps,
		interrupt: interrupt,
		cmd:       cmd,
		results:   make(chan readResult),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go c.readFrames(stdout)
	return c, nil
}

// readFrames reads whole frames from r until the process output ends.
func (c *Container) readFrames(r io.Reader) {
	defer close(c.done)
	defer close(c.results)

	size := c.stream.Width * c.stream.Height * 4
	for {
		buf := make([]byte, size)
		_, err := io.ReadFull(r, buf)
		res := readResult{data: buf}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return
			}
			res = readResult{err: err}
		}

		select {
		case c.results <- res:
		case <-c.quit:
			return
		}
		if res.err != nil {
			return
		}
	}
}

func (c *Container) URL() string { return c.url }

func (c *Container) Streams() []ports.StreamInfo {
	return []ports.StreamInfo{c.stream}
}

func (c *Container) VideoStream() (ports.StreamInfo, bool) {
	return c.stream, true
}

func (c *Container) Duration() (int64, int64) {
	return c.ticks, c.tps
}

// ReadPacket waits for the next frame, polling the interrupt hook meanwhile.
func (c *Container) ReadPacket() (ports.Packet, error) {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ports.Packet{}, ErrClosed
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		if c.interrupt != nil && c.interrupt() {
			return ports.Packet{}, ports.ErrInterrupted
		}
		select {
		case res, ok := <-c.results:
			if !ok {
				return ports.Packet{}, io.EOF
			}
			if res.err != nil {
				return ports.Packet{}, fmt.Errorf("read frame: %w", res.err)
			}
			c.mu.Lock()
			pts := c.pts
			c.pts++
			c.mu.Unlock()
			return ports.Packet{
				StreamIndex: c.stream.Index,
				Data:        res.data,
				PTS:         pts,
				DTS:         pts,
				Duration:    1,
				Keyframe:    true,
			}, nil
		case <-ticker.C:
		}
	}
}

// Close stops ffmpeg and waits for the reader to exit.
func (c *Container) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		close(c.quit)
		if c.cmd.Process != nil {
			c.cmd.Process.Kill()
		}
		<-c.done
		if werr := c.cmd.Wait(); werr != nil && !isKilled(werr) {
			err = werr
		}
	})
	return err
}

// isKilled reports whether err only says the process was killed by Close.
func isKilled(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}

var _ ports.Container = (*Container)(nil)
