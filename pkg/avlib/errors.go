package avlib

import "errors"

var (
	// ErrNotInitialized is returned when a binary path is requested before Initialize.
	ErrNotInitialized = errors.New("avlib: not initialized")

	// ErrFFmpegNotFound is returned when ffmpeg cannot be located.
	ErrFFmpegNotFound = errors.New("avlib: ffmpeg not found")

	// ErrFFprobeNotFound is returned when ffprobe cannot be located.
	ErrFFprobeNotFound = errors.New("avlib: ffprobe not found")
)
