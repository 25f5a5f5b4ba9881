package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/ffplayer/pkg/adapters/filesink"
	"github.com/user/ffplayer/pkg/adapters/ggrenderer"
	"github.com/user/ffplayer/pkg/adapters/nullsink"
	"github.com/user/ffplayer/pkg/adapters/smartdemux"
	"github.com/user/ffplayer/pkg/config"
	"github.com/user/ffplayer/pkg/ports"
	"github.com/user/ffplayer/pkg/session"
	"github.com/user/ffplayer/pkg/summarizer"
)

// playback is the session listener of the play command. It logs state
// changes, forwards frames to the snapshot sink and feeds the report collector.
type playback struct {
	log       ports.Logger
	sink      ports.SnapshotSink
	collector *summarizer.Collector

	mu       sync.Mutex
	autoplay func()
	cycle    int
	index    int
}

func newPlayback(log ports.Logger, sink ports.SnapshotSink, collector *summarizer.Collector) *playback {
	return &playback{log: log, sink: sink, collector: collector}
}

func (p *playback) OnFrame(frame ports.DecodedFrame) {
	p.collector.OnFrame(frame)

	p.mu.Lock()
	cycle, index := p.cycle, p.index
	p.index++
	p.mu.Unlock()

	if p.sink.Enabled() {
		if err := p.sink.SaveFrame(cycle, index, frame); err != nil {
			p.log.Warn("Failed to save snapshot: %v", err)
		}
	}
}

func (p *playback) OnStateChanged(state session.State) {
	p.collector.OnStateChanged(state)
	p.log.Info("State: %s", state)
}

func (p *playback) OnOpened() {
	p.collector.OnOpened()

	p.mu.Lock()
	p.cycle++
	p.index = 0
	play := p.autoplay
	p.mu.Unlock()

	if play != nil {
		play()
	}
}

func (p *playback) OnClosed() {
	p.collector.OnClosed()
}

func (p *playback) setAutoplay(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoplay = fn
}

func runPlay(c *cli.Context) error {
	url, err := sourceURL(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	log := newLogger(cfg, c.Bool("quiet"))
	env, shutdown := newEnvironment(cfg, log)
	defer shutdown()

	// Create snapshot sink
	var sink ports.SnapshotSink = nullsink.New()
	var files *filesink.Sink
	if cfg.Snapshot.Dir != "" {
		if err := env.fs.MkdirAll(cfg.Snapshot.Dir); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
		files = filesink.New(cfg.Snapshot.Dir, env.fs, ggrenderer.New(), cfg.ToSinkOptions())
		sink = files
	}

	collector := summarizer.NewCollector()
	listener := newPlayback(log, sink, collector)
	player := session.New(env.demuxer, env.decoders, listener, log, cfg.ToSessionOptions()...)
	if cfg.Autoplay {
		listener.setAutoplay(player.Play)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limit <-chan time.Time
	if d := c.Duration("duration"); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		limit = timer.C
	}

	log.Info("Playing %s", url)
	start := time.Now()
	player.Open(url)

	select {
	case <-player.Done():
	case <-ctx.Done():
		log.Warn("Interrupted, shutting down...")
	case <-limit:
		log.Info("Stopping after %s", c.Duration("duration"))
	}
	player.Close()
	wall := time.Since(start)

	stats := player.Stats()
	log.Info("Playback finished: %d frames, %d cycles", stats.Frames, stats.Cycles)

	// Build the report
	builder := summarizer.NewBuilder().
		WithSource(url, string(smartdemux.Select(url))).
		WithStats(stats).
		WithWallTime(wall).
		WithSettings(reportSettings(cfg))
	if files != nil {
		n, size := files.Written()
		builder.WithSnapshots(summarizer.SnapshotInfo{Dir: files.Dir(), Count: n, Bytes: size})
		log.Info("Snapshots saved to %s", files.Dir())
	}
	summary := collector.Apply(builder).Build()

	writer := summarizer.NewWriter(
		summarizer.NewMarkdownFormatter(summarizer.WithTranslator(l10n.T), summarizer.WithVersion(version)),
		env.fs,
	)
	if sink.Enabled() {
		if err := sink.SaveReport(writer.Render(summary)); err != nil {
			log.Warn("Failed to write report: %v", err)
		}
	}
	if cfg.Report != "" {
		if err := writer.Write(cfg.Report, summary); err != nil {
			log.Error("Failed to write report: %v", err)
		} else {
			log.Info("Report saved to %s", cfg.Report)
		}
	}

	if stats.Frames == 0 && stats.LastExit != session.ExitAbort {
		return cli.Exit(l10n.F("No frames decoded from %s (%s)", url, stats.LastExit), 1)
	}
	return nil
}

func reportSettings(cfg config.Config) summarizer.Settings {
	return summarizer.Settings{
		AutoReconnect:    cfg.AutoReconnect,
		OpenTimeoutMs:    cfg.OpenTimeoutMs,
		ReadTimeoutMs:    cfg.ReadTimeoutMs,
		ReconnectDelayMs: cfg.ReconnectDelayMs,
		RTSPTransport:    cfg.RTSPTransport,
	}
}
