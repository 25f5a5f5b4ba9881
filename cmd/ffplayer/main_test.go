package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/ffplayer/pkg/config"
)

// captureConfig runs a throwaway command with the play flags and returns the
// config loadConfig builds from args.
func captureConfig(t *testing.T, args ...string) config.Config {
	t.Helper()

	var cfg config.Config
	var loadErr error
	app := &cli.App{
		Name: "ffplayer",
		Commands: []*cli.Command{{
			Name:  "play",
			Flags: append(commonFlags(), playFlags()...),
			Action: func(c *cli.Context) error {
				cfg, loadErr = loadConfig(c)
				return nil
			},
		}},
	}

	if err := app.Run(append([]string{"ffplayer", "play"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	if loadErr != nil {
		t.Fatalf("loadConfig failed: %v", loadErr)
	}
	return cfg
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	if err := app.Run([]string{"ffplayer", "version"}); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, version) {
		t.Errorf("expected version in output, got %q", out)
	}
	for _, want := range []string{"av1 (libaom)", "rawvideo (passthrough)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := captureConfig(t, "clip.mp4")
	want := config.Defaults()

	if cfg.ReadTimeoutMs != want.ReadTimeoutMs || cfg.AutoReconnect != want.AutoReconnect || !cfg.Autoplay {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	cfg := captureConfig(t,
		"--read-timeout", "2s",
		"--auto-reconnect",
		"--paused",
		"--rtsp-transport", "udp",
		"--snapshot-dir", "shots",
		"--snapshot-every", "3",
		"--no-overlay",
		"--log-format", "json",
		"rtsp://camera/live",
	)

	if cfg.ReadTimeoutMs != 2000 {
		t.Errorf("expected 2000 ms read timeout, got %d", cfg.ReadTimeoutMs)
	}
	if !cfg.AutoReconnect {
		t.Error("expected auto reconnect")
	}
	if cfg.Autoplay {
		t.Error("expected --paused to disable autoplay")
	}
	if cfg.RTSPTransport != "udp" {
		t.Errorf("expected udp, got %q", cfg.RTSPTransport)
	}
	if cfg.Snapshot.Dir != "shots" || cfg.Snapshot.Every != 3 || cfg.Snapshot.Overlay {
		t.Errorf("unexpected snapshot config: %+v", cfg.Snapshot)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %q", cfg.LogFormat)
	}
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffplayer.yaml")
	if err := os.WriteFile(path, []byte("auto_reconnect: true\nread_timeout_ms: 4000\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := captureConfig(t, "--config", path, "--read-timeout", "1s", "clip.mp4")

	if !cfg.AutoReconnect {
		t.Error("expected auto_reconnect from file")
	}
	if cfg.ReadTimeoutMs != 1000 {
		t.Errorf("expected flag to override file, got %d", cfg.ReadTimeoutMs)
	}
}

// TestPlayCommand plays a generated clip end to end and checks the report
// and snapshots it leaves behind.
func TestPlayCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping end-to-end test in short mode")
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		t.Skip("ffprobe not installed")
	}

	dir := t.TempDir()
	clip := filepath.Join(dir, "clip.mp4")
	gen := exec.Command(ffmpeg, "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=size=320x240:rate=25", "-t", "1",
		"-c:v", "libx264", "-pix_fmt", "yuv420p", "-g", "10", clip)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("cannot generate H.264 clip: %v\n%s", err, out)
	}

	shots := filepath.Join(dir, "shots")
	report := filepath.Join(dir, "report.md")

	err = newApp().Run([]string{
		"ffplayer", "play",
		"--quiet",
		"--snapshot-dir", shots,
		"--snapshot-every", "5",
		"--report", report,
		clip,
	})
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}

	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "320x240") {
		t.Errorf("expected frame size in report:\n%s", data)
	}

	if _, err := os.Stat(filepath.Join(shots, "frames", "cycle-01", "frame-00000.jpg")); err != nil {
		t.Errorf("expected first snapshot: %v", err)
	}
	if _, err := os.Stat(filepath.Join(shots, "report.md")); err != nil {
		t.Errorf("expected report copy in snapshot dir: %v", err)
	}
}
