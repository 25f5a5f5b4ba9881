package ffmpegdemux

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// probeResult is the subset of ffprobe's JSON output the demuxer reads.
type probeResult struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	Index        int    `json:"index"`
	CodecName    string `json:"codec_name"`
	CodecType    string `json:"codec_type"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	AvgFrameRate string `json:"avg_frame_rate"`
	RFrameRate   string `json:"r_frame_rate"`
	TimeBase     string `json:"time_base"`
}

func parseProbe(data []byte) (*probeResult, error) {
	var res probeResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return &res, nil
}

// videoStream returns the first video stream with a usable size.
func (r *probeResult) videoStream() (probeStream, bool) {
	for _, s := range r.Streams {
		if (s.CodecType == "" || s.CodecType == "video") && s.Width > 0 && s.Height > 0 {
			return s, true
		}
	}
	return probeStream{}, false
}

// frameRate prefers the average frame rate and falls back to the real base
// rate, then to the inverse time base.
func (s probeStream) frameRate() float64 {
	if fps := parseRational(s.AvgFrameRate); fps > 0 {
		return fps
	}
	if fps := parseRational(s.RFrameRate); fps > 0 {
		return fps
	}
	if tb := parseRational(s.TimeBase); tb > 0 {
		return 1 / tb
	}
	return 0
}

// durationMicros returns the container duration in microseconds and false
// when ffprobe reports none.
func (r *probeResult) durationMicros() (int64, bool) {
	d := strings.TrimSpace(r.Format.Duration)
	if d == "" || d == "N/A" {
		return 0, false
	}
	secs, err := strconv.ParseFloat(d, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return int64(secs * 1e6), true
}

// parseRational parses "num/den" or a plain number. It returns 0 when the
// value is malformed or has a zero denominator.
func parseRational(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}
