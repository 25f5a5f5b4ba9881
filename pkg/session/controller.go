package session

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/user/ffplayer/pkg/ports"
)

// Controller runs open cycles for one source on a background goroutine and
// exposes the play/pause/close surface to the consumer.
type Controller struct {
	demuxer  ports.Demuxer
	decoders ports.DecoderFactory
	listener Listener
	logger   ports.Logger
	opts     Options

	state     sessionState
	interrupt *InterruptPolicy

	mediaMu sync.Mutex
	media   mediaInfo

	statsMu sync.Mutex
	stats   Stats

	runMu   sync.Mutex
	current *run
}

type mediaInfo struct {
	open     bool
	width    int
	height   int
	duration float64
	fps      float64
}

// run is one background goroutine serving one Open call, reconnects included.
type run struct {
	url   string
	abort chan struct{}
	done  chan struct{}
	once  sync.Once
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

func newRun(url string) *run {
	return &run{
		url:   url,
		abort: make(chan struct{}),
		done:  make(chan struct{}),
	}
}

func (r *run) stop() {
	r.once.Do(func() { close(r.abort) })
}

// wait sleeps for d and reports false if the run was stopped meanwhile.
func (r *run) wait(d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-r.abort:
		return false
	}
}

// NewController creates a controller. listener and logger must not be nil.
func NewController(demuxer ports.Demuxer, decoders ports.DecoderFactory, listener Listener, logger ports.Logger, opts Options) *Controller {
	opts.normalize()
	c := &Controller{
		demuxer:   demuxer,
		decoders:  decoders,
		listener:  listener,
		logger:    logger,
		opts:      opts,
		interrupt: NewInterruptPolicy(opts.Now),
	}
	c.state.setAutoReconnect(opts.AutoReconnect)
	return c
}

// Open starts playing url in the background. The source opens paused.
// It is ignored while a previous Open is still running.
func (c *Controller) Open(url string) {
	c.runMu.Lock()
	if c.current != nil {
		c.runMu.Unlock()
		c.logger.Warn("Session already open, ignoring %s", url)
		return
	}
	r := newRun(url)
	c.current = r
	c.state.setAborted(false)
	c.runMu.Unlock()

	go c.loop(r)
}

// Close stops the background run and waits for it to finish.
// It returns immediately when nothing is running.
func (c *Controller) Close() {
	c.runMu.Lock()
	r := c.current
	if r != nil {
		c.state.setAborted(true)
		r.stop()
	}
	c.runMu.Unlock()

	if r == nil {
		return
	}
	<-r.done
}

// Done returns a channel that is closed when the current run ends, either
// because Close was called or because the source finished without a
// reconnect. It is already closed when nothing is running.
func (c *Controller) Done() <-chan struct{} {
	c.runMu.Lock()
	defer c.runMu.Unlock()
	if c.current == nil {
		return closedChan
	}
	return c.current.done
}

// Play starts or resumes reading. It has no effect unless an open cycle is
// live, so a Play issued while opening or during a reconnect backoff is dropped.
func (c *Controller) Play() {
	if c.state.play() {
		c.listener.OnStateChanged(StatePlaying)
	}
}

// Pause stops reading without closing the source.
func (c *Controller) Pause() {
	if c.state.pause() {
		c.listener.OnStateChanged(StatePaused)
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	return c.state.get()
}

// FrameWidth returns the decoded frame width, or 0 when nothing is open.
func (c *Controller) FrameWidth() int {
	c.mediaMu.Lock()
	defer c.mediaMu.Unlock()
	return c.media.width
}

// FrameHeight returns the decoded frame height, or 0 when nothing is open.
func (c *Controller) FrameHeight() int {
	c.mediaMu.Lock()
	defer c.mediaMu.Unlock()
	return c.media.height
}

// Duration returns the source duration in seconds. It is 0 when nothing is
// open and ports.UnboundedDuration for live sources.
func (c *Controller) Duration() float64 {
	c.mediaMu.Lock()
	defer c.mediaMu.Unlock()
	return c.media.duration
}

// FrameRate returns the video stream frame rate, or 0 when nothing is open.
func (c *Controller) FrameRate() float64 {
	c.mediaMu.Lock()
	defer c.mediaMu.Unlock()
	return c.media.fps
}

// SetAutoReconnect enables or disables reopening the source after a stall.
func (c *Controller) SetAutoReconnect(enabled bool) {
	c.state.setAutoReconnect(enabled)
}

// AutoReconnect reports whether automatic reconnect is enabled.
func (c *Controller) AutoReconnect() bool {
	return c.state.autoReconnectEnabled()
}

// Stats returns a snapshot of the session counters.
func (c *Controller) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

func (c *Controller) openState() {
	if c.state.open() {
		c.listener.OnStateChanged(StatePaused)
	}
}

func (c *Controller) shutState() {
	if c.state.shut() {
		c.listener.OnStateChanged(StateClosed)
	}
}

func (c *Controller) setMedia(m mediaInfo) {
	c.mediaMu.Lock()
	defer c.mediaMu.Unlock()
	c.media = m
}

func (c *Controller) updateStats(fn func(s *Stats)) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	fn(&c.stats)
}

func (c *Controller) loop(r *run) {
	defer func() {
		c.shutState()
		c.runMu.Lock()
		if c.current == r {
			c.current = nil
		}
		c.runMu.Unlock()
		close(r.done)
	}()

	for {
		reason := c.cycle(r)
		c.updateStats(func(s *Stats) { s.LastExit = reason })

		if !c.state.shouldReconnect() {
			c.logger.Debug("Session finished: %s", reason)
			return
		}
		c.logger.Info("Reconnecting to %s in %s", r.url, c.opts.ReconnectDelay)
		c.updateStats(func(s *Stats) { s.Reconnects++ })
		if !r.wait(c.opts.ReconnectDelay) {
			return
		}
	}
}

// cycle opens the source once, plays it until it ends, and tears it down.
func (c *Controller) cycle(r *run) ExitReason {
	log := c.logger.WithComponent("session").WithField("cycle", uuid.NewString()[:8])

	c.interrupt.Clear()
	c.updateStats(func(s *Stats) { s.Cycles++ })
	hook := c.interrupt.Hook(c.state.isAborted)

	c.interrupt.Reset(c.opts.OpenTimeout)
	log.Debug("Opening %s", r.url)
	container, err := c.demuxer.Open(r.url, hook)
	if err != nil {
		reason := c.classifyOpenError(err)
		log.Warn("Failed to open %s: %v", r.url, err)
		c.shutState()
		c.state.markExit(reason == ExitStall)
		return reason
	}

	decoder, err := c.decoders.OpenForStream(container)
	if err != nil {
		log.Warn("No decodable video stream in %s: %v", r.url, err)
		c.interrupt.Reset(c.opts.OpenTimeout)
		if cerr := container.Close(); cerr != nil {
			log.Debug("Failed to close %s: %v", r.url, cerr)
		}
		c.shutState()
		c.state.markExit(false)
		return ExitStreamInfoFailure
	}

	stream, _ := container.VideoStream()
	duration := DurationSeconds(container.Duration())
	c.setMedia(mediaInfo{
		open:     true,
		width:    decoder.FrameWidth(),
		height:   decoder.FrameHeight(),
		duration: duration,
		fps:      stream.FrameRate,
	})
	c.openState()
	log.Info("Opened %s: %dx%d, %.2f fps", r.url, decoder.FrameWidth(), decoder.FrameHeight(), stream.FrameRate)
	c.listener.OnOpened()

	reason := c.decodeLoop(r, log, container, decoder, stream, duration)

	c.interrupt.Reset(c.opts.OpenTimeout)
	decoder.Close()
	if err := container.Close(); err != nil {
		log.Debug("Failed to close %s: %v", r.url, err)
	}
	c.setMedia(mediaInfo{})
	c.shutState()
	log.Info("Closed %s (%s)", r.url, reason)
	c.listener.OnClosed()

	c.state.markExit(reason == ExitStall)
	return reason
}

func (c *Controller) classifyOpenError(err error) ExitReason {
	switch {
	case c.state.isAborted():
		return ExitAbort
	case c.interrupt.Stalled(), errors.Is(err, ports.ErrInterrupted):
		return ExitStall
	case errors.Is(err, ports.ErrNoVideoStream):
		return ExitStreamInfoFailure
	default:
		return ExitOpenFailure
	}
}

func (c *Controller) decodeLoop(r *run, log ports.Logger, container ports.Container, decoder ports.Decoder, stream ports.StreamInfo, duration float64) ExitReason {
	for {
		if c.state.isAborted() {
			return ExitAbort
		}
		if c.interrupt.Stalled() {
			log.Warn("Read stalled on %s", r.url)
			return ExitStall
		}
		if c.state.get() != StatePlaying {
			if !r.wait(c.opts.IdlePoll) {
				return ExitAbort
			}
			continue
		}

		c.interrupt.Reset(c.opts.ReadTimeout)
		pkt, err := container.ReadPacket()
		if err != nil {
			switch {
			case c.state.isAborted():
				return ExitAbort
			case errors.Is(err, io.EOF):
				log.Debug("End of stream %s", r.url)
				c.flush(log, decoder, stream, duration)
				return ExitEndOfStream
			case c.interrupt.Stalled(), errors.Is(err, ports.ErrInterrupted):
				log.Warn("Read stalled on %s", r.url)
				return ExitStall
			default:
				log.Warn("Failed to read %s: %v", r.url, err)
				return ExitEndOfStream
			}
		}

		frames, err := decoder.Decode(pkt)
		if err != nil {
			c.updateStats(func(s *Stats) { s.DecodeErrors++ })
			log.Debug("Skipping packet: %v", err)
			continue
		}

		c.emit(frames, stream, duration)
	}
}

// flush hands over frames a buffering decoder still holds at end of stream.
func (c *Controller) flush(log ports.Logger, decoder ports.Decoder, stream ports.StreamInfo, duration float64) {
	f, ok := decoder.(ports.Flusher)
	if !ok {
		return
	}
	frames, err := f.Flush()
	if err != nil {
		log.Debug("Failed to flush decoder: %v", err)
	}
	c.emit(frames, stream, duration)
}

// emit delivers the video-stream frames in decode order with their timing.
func (c *Controller) emit(frames []ports.DecodedFrame, stream ports.StreamInfo, duration float64) {
	video := lo.Filter(frames, func(f ports.DecodedFrame, _ int) bool {
		return f.StreamIndex == stream.Index
	})
	for _, f := range video {
		f.DelayMs = DisplayDelay(stream.TimeBase, stream.TicksPerFrame, f.RepeatPict)
		f.Duration = duration
		if f.FPS == 0 {
			f.FPS = stream.FrameRate
		}
		c.updateStats(func(s *Stats) { s.Frames++ })
		c.listener.OnFrame(f)
	}
}
