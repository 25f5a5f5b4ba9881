// Package avlib performs the process-wide setup of the FFmpeg tool chain used
// by the demux and decode adapters.
package avlib

import (
	"sync"
)

// Options configures Initialize.
type Options struct {
	// FFmpegPath overrides ffmpeg discovery.
	FFmpegPath string
	// FFprobePath overrides ffprobe discovery.
	FFprobePath string
	// Verbose passes FFmpeg's own diagnostics through instead of errors only.
	Verbose bool
}

type toolchain struct {
	ffmpeg  string
	ffprobe string
	verbose bool
}

var (
	mu      sync.RWMutex
	current *toolchain
)

// Initialize locates ffmpeg and ffprobe. Calling it again after a successful
// call is a no-op until Shutdown.
func Initialize(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return nil
	}

	ffmpeg, err := findBinary("ffmpeg", opts.FFmpegPath, "FFMPEG_PATH", ErrFFmpegNotFound)
	if err != nil {
		return err
	}
	ffprobe, err := findBinary("ffprobe", opts.FFprobePath, "FFPROBE_PATH", ErrFFprobeNotFound)
	if err != nil {
		return err
	}

	current = &toolchain{ffmpeg: ffmpeg, ffprobe: ffprobe, verbose: opts.Verbose}
	return nil
}

// Shutdown forgets the located tools. It is safe to call without Initialize.
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	current = nil
}

// Initialized reports whether Initialize succeeded.
func Initialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current != nil
}

// FFmpegPath returns the ffmpeg binary located by Initialize.
func FFmpegPath() (string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return "", ErrNotInitialized
	}
	return current.ffmpeg, nil
}

// FFprobePath returns the ffprobe binary located by Initialize.
func FFprobePath() (string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return "", ErrNotInitialized
	}
	return current.ffprobe, nil
}

// LogLevel returns the value for FFmpeg's -loglevel flag.
func LogLevel() string {
	mu.RLock()
	defer mu.RUnlock()
	if current != nil && current.verbose {
		return "info"
	}
	return "error"
}
