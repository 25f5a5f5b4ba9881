// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/user/ffplayer/pkg/adapters/filesink"
	"github.com/user/ffplayer/pkg/ports"
	"github.com/user/ffplayer/pkg/session"
)

// Config represents the full configuration for ffplayer.
type Config struct {
	// Session
	AutoReconnect    bool `yaml:"auto_reconnect"`
	Autoplay         bool `yaml:"autoplay"`
	OpenTimeoutMs    int  `yaml:"open_timeout_ms"`
	ReadTimeoutMs    int  `yaml:"read_timeout_ms"`
	ReconnectDelayMs int  `yaml:"reconnect_delay_ms"`
	IdlePollMs       int  `yaml:"idle_poll_ms"`

	// Sources
	RTSPTransport  string `yaml:"rtsp_transport"`
	MaxDecodeWidth int    `yaml:"max_decode_width"`
	FFmpegPath     string `yaml:"ffmpeg_path"`
	FFprobePath    string `yaml:"ffprobe_path"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Output
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Report   string         `yaml:"report"`
}

// SnapshotConfig controls which decoded frames are written to disk.
type SnapshotConfig struct {
	Dir      string `yaml:"dir"`
	Every    int    `yaml:"every"`
	MaxWidth int    `yaml:"max_width"`
	Overlay  bool   `yaml:"overlay"`
	Quality  int    `yaml:"quality"`

	FontPath        string  `yaml:"font_path"`
	FontSize        float64 `yaml:"font_size"`
	TextColor       string  `yaml:"text_color"`
	BackgroundColor string  `yaml:"background_color"`
}

var (
	// ErrInvalidTransport is returned for an rtsp_transport other than tcp, udp or http.
	ErrInvalidTransport = errors.New("config: rtsp_transport must be tcp, udp or http")
	// ErrInvalidTimeout is returned for a negative timeout.
	ErrInvalidTimeout = errors.New("config: timeouts must not be negative")
)

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Session
		AutoReconnect:    false,
		Autoplay:         true,
		OpenTimeoutMs:    int(session.DefaultOpenTimeout / time.Millisecond),
		ReadTimeoutMs:    int(session.DefaultReadTimeout / time.Millisecond),
		ReconnectDelayMs: int(session.DefaultReconnectDelay / time.Millisecond),
		IdlePollMs:       int(session.DefaultIdlePoll / time.Millisecond),

		// Sources
		RTSPTransport: "tcp",

		// Logging
		LogLevel:  "info",
		LogFormat: "text",

		// Output
		Snapshot: SnapshotConfig{
			Every:           25,
			MaxWidth:        640,
			Overlay:         true,
			Quality:         filesink.DefaultQuality,
			FontSize:        13,
			TextColor:       "#ffffff",
			BackgroundColor: "#000000",
		},
	}
}

// LoadFromFile loads configuration from a YAML file on disk.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	return Parse(data)
}

// Load loads configuration from a YAML file on fs.
func Load(fs ports.FileSystem, path string) (Config, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return Defaults(), err
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks value ranges that the YAML decoder cannot.
func (c Config) Validate() error {
	switch c.RTSPTransport {
	case "tcp", "udp", "http":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTransport, c.RTSPTransport)
	}
	if c.OpenTimeoutMs < 0 || c.ReadTimeoutMs < 0 || c.ReconnectDelayMs < 0 || c.IdlePollMs < 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// ToSessionOptions converts Config to session options.
func (c Config) ToSessionOptions() []session.Option {
	return []session.Option{
		session.WithOpenTimeout(millis(c.OpenTimeoutMs)),
		session.WithReadTimeout(millis(c.ReadTimeoutMs)),
		session.WithReconnectDelay(millis(c.ReconnectDelayMs)),
		session.WithIdlePoll(millis(c.IdlePollMs)),
		session.WithAutoReconnect(c.AutoReconnect),
	}
}

// ToSinkOptions converts the snapshot section to filesink options.
func (c Config) ToSinkOptions() filesink.Options {
	s := c.Snapshot
	return filesink.Options{
		Every:    s.Every,
		MaxWidth: s.MaxWidth,
		Overlay:  s.Overlay,
		Quality:  s.Quality,
		Caption: ports.TextStyle{
			FontPath:   s.FontPath,
			FontSize:   s.FontSize,
			Color:      ParseColor(s.TextColor),
			Background: withAlpha(ParseColor(s.BackgroundColor), 160),
			Align:      ports.AlignLeft,
		},
	}
}

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	r := hexValue(hex[0])<<4 | hexValue(hex[1])
	g := hexValue(hex[2])<<4 | hexValue(hex[3])
	b := hexValue(hex[4])<<4 | hexValue(hex[5])

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}
