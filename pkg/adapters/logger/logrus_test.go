package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/user/ffplayer/pkg/ports"
)

func TestLogrusLogger_JSONCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusWithOutput(&buf, ports.LevelInfo, FormatJSON).WithComponent("session")

	log.Info("Opened %s: %dx%d, %.2f fps", "clip.mp4", 640, 360, 25.0)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if record["component"] != "session" {
		t.Errorf("expected component field, got %v", record["component"])
	}
	if record["level"] != "info" {
		t.Errorf("expected level info, got %v", record["level"])
	}
	if msg, _ := record["msg"].(string); !strings.Contains(msg, "640x360") {
		t.Errorf("expected formatted message, got %q", msg)
	}
}

func TestLogrusLogger_CycleIsSeparateField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusWithOutput(&buf, ports.LevelInfo, FormatJSON).
		WithComponent("session").
		WithField("cycle", "1a2b3c4d")

	log.Info("Closed %s (%s)", "clip.mp4", "end-of-stream")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if record["component"] != "session" {
		t.Errorf("expected component session, got %v", record["component"])
	}
	if record["cycle"] != "1a2b3c4d" {
		t.Errorf("expected cycle field, got %v", record["cycle"])
	}
}

func TestLogrusLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusWithOutput(&buf, ports.LevelWarn, FormatText)

	log.Debug("Opening %s", "a")
	log.Info("Opening %s", "b")
	if buf.Len() != 0 {
		t.Fatalf("expected debug and info to be filtered, got %q", buf.String())
	}

	log.Warn("Read stalled on %s", "rtsp://cam")
	if !strings.Contains(buf.String(), "rtsp://cam") {
		t.Errorf("expected warning in output, got %q", buf.String())
	}
}

func TestLogrusLogger_Quiet(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogrusWithOutput(&buf, ports.LevelQuiet, FormatText)

	log.Error("Failed to open %s: %v", "x", "boom")
	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("expected json")
	}
	if ParseFormat("text") != FormatText || ParseFormat("") != FormatText {
		t.Error("expected text fallback")
	}
}
