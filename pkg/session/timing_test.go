package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/user/ffplayer/pkg/ports"
)

func TestDisplayDelay(t *testing.T) {
	tests := []struct {
		name          string
		timeBase      float64
		ticksPerFrame int
		repeat        int
		want          float64
	}{
		{"25 fps codec base", 1.0 / 25, 2, 0, 80},
		{"h264 half-frame base", 1.0 / 50, 2, 0, 40},
		{"one tick per frame", 1.0 / 30, 1, 0, 33.333},
		{"repeat adds half a frame", 1.0 / 50, 2, 1, 60},
		{"double repeat", 1.0 / 50, 2, 2, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DisplayDelay(tt.timeBase, tt.ticksPerFrame, tt.repeat), 0.001)
		})
	}
}

func TestDurationSeconds(t *testing.T) {
	assert.InDelta(t, 2.5, DurationSeconds(2_500_000, 1_000_000), 1e-9)
	assert.InDelta(t, 10.0, DurationSeconds(900_000, 90_000), 1e-9)
	assert.Equal(t, float64(ports.UnboundedDuration), DurationSeconds(ports.NoDuration, 1_000_000))
	assert.Equal(t, float64(ports.UnboundedDuration), DurationSeconds(100, 0))
}
