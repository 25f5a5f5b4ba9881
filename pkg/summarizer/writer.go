package summarizer

import (
	"fmt"

	"github.com/user/ffplayer/pkg/ports"
)

// Formatter renders a playback Summary as a report document.
type Formatter interface {
	Format(summary *Summary) string
}

// FormatFunc lets a plain function render reports.
type FormatFunc func(summary *Summary) string

func (f FormatFunc) Format(summary *Summary) string { return f(summary) }

// Writer writes formatted summaries through a ports.FileSystem.
type Writer struct {
	formatter Formatter
	fs        ports.FileSystem
}

// NewWriter creates a new Writer with the given Formatter.
func NewWriter(formatter Formatter, fs ports.FileSystem) *Writer {
	return &Writer{
		formatter: formatter,
		fs:        fs,
	}
}

// Render formats the summary.
func (w *Writer) Render(summary *Summary) []byte {
	return []byte(w.formatter.Format(summary))
}

// Write formats the summary and writes it to the specified path.
// The file system creates parent directories as needed.
func (w *Writer) Write(path string, summary *Summary) error {
	if err := w.fs.WriteFile(path, w.Render(summary)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
