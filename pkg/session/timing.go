package session

import "github.com/user/ffplayer/pkg/ports"

// DisplayDelay returns how many milliseconds a frame stays on screen.
// timeBase is the codec time base in seconds, ticksPerFrame the codec ticks per
// frame and repeat the frame's repeat flag (each unit adds half a frame period).
func DisplayDelay(timeBase float64, ticksPerFrame int, repeat int) float64 {
	delay := timeBase * float64(ticksPerFrame)
	delay += float64(repeat) * (delay * 0.5)
	return delay * 1000.0
}

// DurationSeconds converts a container duration to seconds.
// Unknown durations yield ports.UnboundedDuration.
func DurationSeconds(ticks, ticksPerSecond int64) float64 {
	if ticks == ports.NoDuration || ticks < 0 || ticksPerSecond <= 0 {
		return ports.UnboundedDuration
	}
	return float64(ticks) / float64(ticksPerSecond)
}
