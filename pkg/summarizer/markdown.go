package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownFormatter renders a Summary as a markdown report.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.translate = t }
}

// WithVersion adds the program version to the footer.
func WithVersion(v string) MarkdownOption {
	return func(f *MarkdownFormatter) { f.version = v }
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: func(s string) string { return s }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to markdown.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder
	t := f.translate

	fmt.Fprintf(&b, "# %s\n\n", t("Playback Report"))

	// Source
	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	f.header(&b)
	f.row(&b, t("URL"), s.Source.URL)
	if s.Source.Backend != "" {
		f.row(&b, t("Backend"), s.Source.Backend)
	}
	b.WriteString("\n")

	// Stream
	fmt.Fprintf(&b, "## %s\n\n", t("Stream"))
	f.header(&b)
	if s.Stream.Width > 0 && s.Stream.Height > 0 {
		f.row(&b, t("Frame Size"), fmt.Sprintf("%dx%d", s.Stream.Width, s.Stream.Height))
	} else {
		f.row(&b, t("Frame Size"), "N/A")
	}
	if s.Stream.FrameRate > 0 {
		f.row(&b, t("Frame Rate"), fmt.Sprintf("%.2f fps", s.Stream.FrameRate))
	}
	if s.Stream.Live {
		f.row(&b, t("Duration"), t("Live"))
	} else {
		f.row(&b, t("Duration"), fmt.Sprintf("%.2f s", s.Stream.DurationSec))
	}
	b.WriteString("\n")

	// Playback
	fmt.Fprintf(&b, "## %s\n\n", t("Playback"))
	f.header(&b)
	f.row(&b, t("Frames"), fmt.Sprintf("%d", s.Playback.Frames))
	f.row(&b, t("Open Cycles"), fmt.Sprintf("%d", s.Playback.Cycles))
	f.row(&b, t("Reconnects"), fmt.Sprintf("%d", s.Playback.Reconnects))
	f.row(&b, t("Skipped Packets"), fmt.Sprintf("%d", s.Playback.DecodeErrors))
	if s.Playback.LastExit != "" {
		f.row(&b, t("Last Exit"), t(s.Playback.LastExit))
	}
	f.row(&b, t("Wall Time"), fmt.Sprintf("%d ms", s.Playback.WallTimeMs))
	if s.Playback.Frames > 0 {
		f.row(&b, t("First Frame"), fmt.Sprintf("%d ms", s.Playback.FirstFrameMs))
		f.row(&b, t("Last Position"), fmt.Sprintf("%.3f s", s.Playback.LastPosition))
		f.row(&b, t("Mean Display Delay"), fmt.Sprintf("%.1f ms", s.Playback.MeanDelayMs))
	}
	b.WriteString("\n")

	// Settings
	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	f.header(&b)
	f.row(&b, t("Auto Reconnect"), yesNo(t, s.Settings.AutoReconnect))
	f.row(&b, t("Open Timeout"), fmt.Sprintf("%d ms", s.Settings.OpenTimeoutMs))
	f.row(&b, t("Read Timeout"), fmt.Sprintf("%d ms", s.Settings.ReadTimeoutMs))
	f.row(&b, t("Reconnect Delay"), fmt.Sprintf("%d ms", s.Settings.ReconnectDelayMs))
	if s.Settings.RTSPTransport != "" {
		f.row(&b, t("RTSP Transport"), s.Settings.RTSPTransport)
	}
	b.WriteString("\n")

	// Snapshots
	if s.Snapshots.Count > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Snapshots"))
		f.header(&b)
		f.row(&b, t("Directory"), s.Snapshots.Dir)
		f.row(&b, t("Files"), fmt.Sprintf("%d", s.Snapshots.Count))
		f.row(&b, t("Size"), formatBytes(s.Snapshots.Bytes))
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += fmt.Sprintf(" (ffplayer %s)", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func (f *MarkdownFormatter) header(b *strings.Builder) {
	fmt.Fprintf(b, "| %s | %s |\n|---|---|\n", f.translate("Item"), f.translate("Value"))
}

func (f *MarkdownFormatter) row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func yesNo(t func(string) string, v bool) string {
	if v {
		return t("Yes")
	}
	return t("No")
}

// formatBytes formats a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
