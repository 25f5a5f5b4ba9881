// Package filesink provides a file-based snapshot sink implementation.
package filesink

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"sync"

	"github.com/user/ffplayer/pkg/ports"
)

// DefaultQuality is the JPEG quality used when Options.Quality is zero.
const DefaultQuality = 85

// Options controls which frames are kept and how they are rendered.
type Options struct {
	// Every keeps one frame out of Every. Zero or one keeps all of them.
	Every int
	// MaxWidth scales wider frames down, preserving the aspect ratio. Zero disables scaling.
	MaxWidth int
	// Overlay draws a caption with the frame number, position and rate.
	Overlay bool
	// Quality is the JPEG quality (1-100).
	Quality int
	// Caption is the text style for the overlay.
	Caption ports.TextStyle
}

// DefaultCaption is the overlay style used when Options.Caption is empty.
var DefaultCaption = ports.TextStyle{
	FontSize:   13,
	Color:      color.White,
	Background: color.RGBA{A: 160},
	Align:      ports.AlignLeft,
}

// Sink saves snapshots and the playback report to files.
//
// Layout under baseDir:
//
//	frames/cycle-01/frame-00000.jpg
//	report.md
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
	opts     Options

	mu    sync.Mutex
	files int
	bytes int64
}

// New creates a new file Sink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer, opts Options) *Sink {
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultQuality
	}
	if opts.Caption.Color == nil && opts.Caption.Background == nil {
		opts.Caption = DefaultCaption
	}
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
		opts:     opts,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// FramePath returns the file a frame is written to.
func (s *Sink) FramePath(cycle, index int) string {
	return filepath.Join(s.baseDir, "frames", fmt.Sprintf("cycle-%02d", cycle), fmt.Sprintf("frame-%05d.jpg", index))
}

// SaveFrame writes the frame as a JPEG when index falls on the sampling interval.
func (s *Sink) SaveFrame(cycle int, index int, frame ports.DecodedFrame) error {
	if index%s.opts.Every != 0 {
		return nil
	}
	if frame.Image == nil {
		return fmt.Errorf("frame %d: no image", index)
	}

	var img image.Image = frame.Image
	if w, h, ok := fitWidth(frame.Image.Bounds().Dx(), frame.Image.Bounds().Dy(), s.opts.MaxWidth); ok {
		img = s.renderer.ResizeImage(img, w, h)
	}
	if s.opts.Overlay {
		img = s.renderer.Annotate(img, Caption(index, frame), s.opts.Caption)
	}

	data, err := s.renderer.EncodeImage(img, ports.FormatJPEG, s.opts.Quality)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}

	path := s.FramePath(cycle, index)
	if err := s.fs.MkdirAll(filepath.Dir(path)); err != nil {
		return err
	}
	if err := s.fs.WriteFile(path, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.files++
	s.bytes += int64(len(data))
	s.mu.Unlock()
	return nil
}

// Written returns the number of frame files and bytes saved so far.
func (s *Sink) Written() (files int, bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.files, s.bytes
}

// Dir returns the base directory.
func (s *Sink) Dir() string {
	return s.baseDir
}

// SaveReport saves the playback report as markdown.
func (s *Sink) SaveReport(data []byte) error {
	path := filepath.Join(s.baseDir, "report.md")
	return s.fs.WriteFile(path, data)
}

// Caption formats the overlay text for a frame.
func Caption(index int, frame ports.DecodedFrame) string {
	return fmt.Sprintf("#%d  %.3fs  %.2f fps  %.0f ms", index, frame.Position, frame.FPS, frame.DelayMs)
}

// fitWidth scales (w, h) down to maxWidth, keeping both sides even for encoders.
func fitWidth(w, h, maxWidth int) (int, int, bool) {
	if maxWidth <= 0 || w <= maxWidth || w == 0 {
		return w, h, false
	}
	nh := h * maxWidth / w
	if nh%2 != 0 {
		nh++
	}
	if nh < 2 {
		nh = 2
	}
	nw := maxWidth &^ 1
	return nw, nh, true
}

// Ensure Sink implements ports.SnapshotSink
var _ ports.SnapshotSink = (*Sink)(nil)
