// Package codecdetect detects the video codec of MP4 files.
package codecdetect

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/ffplayer/pkg/ports"
)

// ErrNoVideoTrack is returned when an MP4 file has no video track.
var ErrNoVideoTrack = errors.New("codecdetect: no video track found")

// DetectFromFile detects the video codec of an MP4 file on fs.
func DetectFromFile(fs ports.FileSystem, path string) (ports.Codec, error) {
	f, err := fs.Open(path)
	if err != nil {
		return ports.CodecUnknown, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return DetectFromReader(f)
}

// DetectFromReader detects the video codec from an io.ReadSeeker and rewinds it.
func DetectFromReader(reader io.ReadSeeker) (ports.Codec, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return ports.CodecUnknown, fmt.Errorf("decode mp4: %w", err)
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return ports.CodecUnknown, fmt.Errorf("seek: %w", err)
	}

	return FromFile(mp4File)
}

// DetectFromBytes detects the video codec from MP4 data bytes.
func DetectFromBytes(data []byte) (ports.Codec, error) {
	return DetectFromReader(bytes.NewReader(data))
}

// FromFile returns the codec of the first video track of a decoded MP4 file.
func FromFile(mp4File *mp4.File) (ports.Codec, error) {
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		for _, trak := range mp4File.Init.Moov.Traks {
			if IsVideoTrack(trak) {
				return FromTrack(trak), nil
			}
		}
	}

	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			if IsVideoTrack(trak) {
				return FromTrack(trak), nil
			}
		}
	}

	return ports.CodecUnknown, ErrNoVideoTrack
}

// IsVideoTrack reports whether trak carries video.
func IsVideoTrack(trak *mp4.TrakBox) bool {
	return trak != nil && trak.Mdia != nil && trak.Mdia.Hdlr != nil && trak.Mdia.Hdlr.HandlerType == "vide"
}

// FromTrack maps the sample entry of a video track to a codec.
func FromTrack(trak *mp4.TrakBox) ports.Codec {
	if !IsVideoTrack(trak) {
		return ports.CodecUnknown
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ports.CodecUnknown
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		switch child.Type() {
		case "avc1", "avc3":
			return ports.CodecH264
		case "hvc1", "hev1":
			return ports.CodecHEVC
		case "av01":
			return ports.CodecAV1
		}
	}

	return ports.CodecUnknown
}
