// Package main provides the CLI entry point for ffplayer.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/user/ffplayer/pkg/adapters/ffmpegdemux"
	"github.com/user/ffplayer/pkg/adapters/logger"
	"github.com/user/ffplayer/pkg/adapters/mp4demux"
	"github.com/user/ffplayer/pkg/adapters/osfilesystem"
	"github.com/user/ffplayer/pkg/adapters/smartdecoder"
	"github.com/user/ffplayer/pkg/adapters/smartdemux"
	"github.com/user/ffplayer/pkg/avlib"
	"github.com/user/ffplayer/pkg/config"
	"github.com/user/ffplayer/pkg/ports"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "ffplayer",
		Usage:   l10n.T("Play video files and network streams"),
		Version: version,
		Description: l10n.T("ffplayer opens a local file or an RTSP/RTMP/HTTP stream, decodes its video " +
			"and reports playback, optionally saving frame snapshots."),
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     l10n.T("Play a source until it ends or is interrupted"),
				ArgsUsage: "<url>",
				Flags:     append(commonFlags(), playFlags()...),
				Action:    runPlay,
			},
			{
				Name:      "probe",
				Usage:     l10n.T("Open a source and print its video properties"),
				ArgsUsage: "<url>",
				Flags:     commonFlags(),
				Action:    runProbe,
			},
			{
				Name:  "version",
				Usage: l10n.T("Show version information"),
				Action: runVersion,
			},
		},
	}
}

func commonFlags() []cli.Flag {
	configCat := l10n.T("Configuration")
	sourceCat := l10n.T("Source")
	logCat := l10n.T("Logging")

	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: configCat},

		&cli.DurationFlag{Name: "open-timeout", Usage: l10n.T("Time allowed to open or close a source"), Category: sourceCat},
		&cli.DurationFlag{Name: "read-timeout", Usage: l10n.T("Time allowed to read one packet before the stream counts as stalled"), Category: sourceCat},
		&cli.StringFlag{Name: "rtsp-transport", Usage: l10n.T("RTSP transport (tcp, udp, http)"), Category: sourceCat},
		&cli.IntFlag{Name: "max-width", Usage: l10n.T("Downscale network sources wider than this (0 = source size)"), Category: sourceCat},
		&cli.StringFlag{Name: "ffmpeg-path", Usage: l10n.T("Path to ffmpeg executable"), Category: sourceCat},
		&cli.StringFlag{Name: "ffprobe-path", Usage: l10n.T("Path to ffprobe executable"), Category: sourceCat},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: logCat},
		&cli.StringFlag{Name: "log-format", Usage: l10n.T("Log format (text, logfmt, json)"), Category: logCat},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output"), Category: logCat},
	}
}

func playFlags() []cli.Flag {
	playCat := l10n.T("Playback")
	outCat := l10n.T("Output")

	return []cli.Flag{
		&cli.BoolFlag{Name: "auto-reconnect", Usage: l10n.T("Reopen the source after a stall"), Category: playCat},
		&cli.DurationFlag{Name: "reconnect-delay", Usage: l10n.T("Pause before reconnecting"), Category: playCat},
		&cli.DurationFlag{Name: "duration", Aliases: []string{"t"}, Usage: l10n.T("Stop after this long (0 = until the end)"), Category: playCat},
		&cli.BoolFlag{Name: "paused", Usage: l10n.T("Open without starting playback"), Category: playCat},

		&cli.StringFlag{Name: "snapshot-dir", Aliases: []string{"s"}, Usage: l10n.T("Directory for frame snapshots"), Category: outCat},
		&cli.IntFlag{Name: "snapshot-every", Usage: l10n.T("Keep one snapshot every N frames"), Category: outCat},
		&cli.IntFlag{Name: "snapshot-width", Usage: l10n.T("Maximum snapshot width"), Category: outCat},
		&cli.BoolFlag{Name: "no-overlay", Usage: l10n.T("Do not draw frame captions on snapshots"), Category: outCat},
		&cli.StringFlag{Name: "report", Aliases: []string{"o"}, Usage: l10n.T("Output playback report to file (Markdown format)"), Category: outCat},
	}
}

func runVersion(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, l10n.F("ffplayer version %s", version))
	codecs := lo.Map(smartdecoder.Supported(smartdecoder.Options{}), func(s smartdecoder.Support, _ int) string {
		return fmt.Sprintf("%s (%s)", s.Codec, s.Backend)
	})
	fmt.Fprintln(c.App.Writer, l10n.F("Decoders: %s", strings.Join(codecs, ", ")))
	return nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if c.IsSet("open-timeout") {
		cfg.OpenTimeoutMs = int(c.Duration("open-timeout").Milliseconds())
	}
	if c.IsSet("read-timeout") {
		cfg.ReadTimeoutMs = int(c.Duration("read-timeout").Milliseconds())
	}
	if c.IsSet("reconnect-delay") {
		cfg.ReconnectDelayMs = int(c.Duration("reconnect-delay").Milliseconds())
	}
	if c.IsSet("auto-reconnect") {
		cfg.AutoReconnect = c.Bool("auto-reconnect")
	}
	if c.IsSet("paused") {
		cfg.Autoplay = !c.Bool("paused")
	}
	if c.IsSet("rtsp-transport") {
		cfg.RTSPTransport = c.String("rtsp-transport")
	}
	if c.IsSet("max-width") {
		cfg.MaxDecodeWidth = c.Int("max-width")
	}
	if c.IsSet("ffmpeg-path") {
		cfg.FFmpegPath = c.String("ffmpeg-path")
	}
	if c.IsSet("ffprobe-path") {
		cfg.FFprobePath = c.String("ffprobe-path")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = c.String("log-format")
	}
	if c.IsSet("snapshot-dir") {
		cfg.Snapshot.Dir = c.String("snapshot-dir")
	}
	if c.IsSet("snapshot-every") {
		cfg.Snapshot.Every = c.Int("snapshot-every")
	}
	if c.IsSet("snapshot-width") {
		cfg.Snapshot.MaxWidth = c.Int("snapshot-width")
	}
	if c.IsSet("no-overlay") {
		cfg.Snapshot.Overlay = !c.Bool("no-overlay")
	}
	if c.IsSet("report") {
		cfg.Report = c.String("report")
	}

	return cfg, cfg.Validate()
}

// newLogger creates the logger selected by the config.
func newLogger(cfg config.Config, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	level := ports.ParseLogLevel(cfg.LogLevel)
	switch cfg.LogFormat {
	case "json":
		return logger.NewLogrus(level, logger.FormatJSON)
	case "logfmt":
		return logger.NewLogrus(level, logger.FormatText)
	default:
		return logger.NewConsole(level)
	}
}

// environment holds the adapters shared by every command.
type environment struct {
	fs       ports.FileSystem
	demuxer  ports.Demuxer
	decoders ports.DecoderFactory
}

// newEnvironment initializes the FFmpeg tool chain and wires the adapters.
// Without FFmpeg only sources the native readers and decoders handle remain playable.
func newEnvironment(cfg config.Config, log ports.Logger) (*environment, func()) {
	fs := osfilesystem.New()

	var network ports.Demuxer
	err := avlib.Initialize(avlib.Options{
		FFmpegPath:  cfg.FFmpegPath,
		FFprobePath: cfg.FFprobePath,
		Verbose:     ports.ParseLogLevel(cfg.LogLevel) == ports.LevelDebug,
	})
	if err != nil {
		log.Warn("FFmpeg not available: %v", err)
	} else {
		network = ffmpegdemux.New(ffmpegdemux.Options{
			RTSPTransport: cfg.RTSPTransport,
			MaxWidth:      cfg.MaxDecodeWidth,
		}, log)
	}

	env := &environment{
		fs:       fs,
		demuxer:  smartdemux.New(mp4demux.New(fs, log), network, log),
		decoders: smartdecoder.NewFactory(smartdecoder.Options{FFmpegPath: cfg.FFmpegPath}, log),
	}
	return env, avlib.Shutdown
}

// sourceURL returns the single positional argument.
func sourceURL(c *cli.Context) (string, error) {
	if c.NArg() != 1 {
		return "", cli.Exit(l10n.T("URL argument is required"), 2)
	}
	return c.Args().First(), nil
}
