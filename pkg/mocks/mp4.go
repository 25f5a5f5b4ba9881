package mocks

import (
	"bytes"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
)

// MP4Sample is one sample of a generated MP4 fixture. Data is stored as-is,
// so H.264 payloads must already be length-prefixed.
type MP4Sample struct {
	Data     []byte
	Dur      uint32
	Keyframe bool
	CTO      int32
}

// FragmentedMP4 builds a single-track fragmented MP4 file. sampleEntry is the
// four-character sample entry type such as "avc1" or "av01". The sample entry
// carries no decoder configuration.
func FragmentedMP4(sampleEntry string, width, height int, timescale uint32, samples []MP4Sample) ([]byte, error) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	entry := mp4.CreateVisualSampleEntryBox(sampleEntry, uint16(width), uint16(height), nil)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)
	trak.Tkhd.Width = mp4.Fixed32(width << 16)
	trak.Tkhd.Height = mp4.Fixed32(height << 16)

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	if err != nil {
		return nil, fmt.Errorf("create fragment: %w", err)
	}

	var decodeTime uint64
	for _, s := range samples {
		flags := mp4.NonSyncSampleFlags
		if s.Keyframe {
			flags = mp4.SyncSampleFlags
		}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags:                 flags,
				Size:                  uint32(len(s.Data)),
				Dur:                   s.Dur,
				CompositionTimeOffset: s.CTO,
			},
			DecodeTime: decodeTime,
			Data:       s.Data,
		})
		decodeTime += uint64(s.Dur)
	}

	var buf bytes.Buffer
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", sampleEntry, "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}
	if err := frag.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode fragment: %w", err)
	}
	return buf.Bytes(), nil
}

// AVCCSample wraps NAL units into a length-prefixed H.264 sample.
func AVCCSample(nalus ...[]byte) []byte {
	var out []byte
	for _, n := range nalus {
		l := len(n)
		out = append(out, byte(l>>24), byte(l>>16), byte(l>>8), byte(l))
		out = append(out, n...)
	}
	return out
}
