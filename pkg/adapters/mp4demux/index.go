package mp4demux

import (
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"
	"github.com/user/ffplayer/pkg/adapters/codecdetect"
	"github.com/user/ffplayer/pkg/ports"
)

// sample locates one video sample. Progressive files keep an offset into the
// file; fragmented files already hold the payload.
type sample struct {
	offset     uint64
	size       uint32
	data       []byte
	decodeTime uint64
	dur        uint32
	cto        int32
	keyframe   bool
}

// track is the indexed video track of a file.
type track struct {
	id        uint32
	codec     ports.Codec
	width     int
	height    int
	timescale uint32
	paramSets []byte
	samples   []sample
}

// findVideoTrack returns the first video track of moov.
func findVideoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	if moov == nil {
		return nil
	}
	for _, trak := range moov.Traks {
		if codecdetect.IsVideoTrack(trak) {
			return trak
		}
	}
	return nil
}

func newTrack(trak *mp4.TrakBox) *track {
	t := &track{
		id:        trak.Tkhd.TrackID,
		codec:     codecdetect.FromTrack(trak),
		timescale: 1000,
	}
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		t.timescale = trak.Mdia.Mdhd.Timescale
	}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsd != nil {
		for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
			if entry, ok := child.(*mp4.VisualSampleEntryBox); ok {
				t.width = int(entry.Width)
				t.height = int(entry.Height)
				if entry.AvcC != nil {
					t.paramSets = annexBParamSets(entry.AvcC)
				}
				break
			}
		}
	}
	if t.width == 0 || t.height == 0 {
		t.width = int(trak.Tkhd.Width >> 16)
		t.height = int(trak.Tkhd.Height >> 16)
	}
	return t
}

// indexProgressive builds the sample list from the sample tables of trak.
func indexProgressive(trak *mp4.TrakBox) (*track, error) {
	t := newTrack(trak)

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil, fmt.Errorf("no sample table found")
	}
	stbl := trak.Mdia.Minf.Stbl
	if stbl.Stsz == nil || stbl.Stsc == nil {
		return nil, fmt.Errorf("missing stsz or stsc box")
	}
	if stbl.Stco == nil && stbl.Co64 == nil {
		return nil, fmt.Errorf("no stco or co64 box")
	}

	syncSamples := make(map[uint32]bool)
	if stbl.Stss != nil {
		for _, nr := range stbl.Stss.SampleNumber {
			syncSamples[nr] = true
		}
	}

	count := stbl.Stsz.SampleNumber
	t.samples = make([]sample, 0, count)
	for nr := uint32(1); nr <= count; nr++ {
		offset, err := sampleOffset(stbl, nr)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", nr, err)
		}

		s := sample{
			offset:   offset,
			size:     stbl.Stsz.GetSampleSize(int(nr)),
			keyframe: stbl.Stss == nil || syncSamples[nr],
		}
		if stbl.Stts != nil {
			s.decodeTime, s.dur = stbl.Stts.GetDecodeTime(nr)
		}
		if stbl.Ctts != nil {
			s.cto = stbl.Ctts.GetCompositionTimeOffset(nr)
		}
		t.samples = append(t.samples, s)
	}
	return t, nil
}

// sampleOffset returns the file offset of sample nr (one-based).
func sampleOffset(stbl *mp4.StblBox, nr uint32) (uint64, error) {
	chunkNr, firstSampleInChunk, err := stbl.Stsc.ChunkNrFromSampleNr(int(nr))
	if err != nil {
		return 0, fmt.Errorf("get chunk nr: %w", err)
	}

	var offset uint64
	if stbl.Stco != nil {
		offset, err = stbl.Stco.GetOffset(chunkNr)
		if err != nil {
			return 0, fmt.Errorf("get chunk offset: %w", err)
		}
	} else {
		if chunkNr < 1 || chunkNr > len(stbl.Co64.ChunkOffset) {
			return 0, fmt.Errorf("chunk nr out of range")
		}
		offset = stbl.Co64.ChunkOffset[chunkNr-1]
	}

	for s := uint32(firstSampleInChunk); s < nr; s++ {
		offset += uint64(stbl.Stsz.GetSampleSize(int(s)))
	}
	return offset, nil
}

// indexFragmented collects the samples of trak from every fragment of f.
func indexFragmented(f *mp4.File, trak *mp4.TrakBox) (*track, error) {
	t := newTrack(trak)

	var trex *mp4.TrexBox
	if f.Init.Moov.Mvex != nil {
		for _, tr := range f.Init.Moov.Mvex.Trexs {
			if tr.TrackID == t.id {
				trex = tr
				break
			}
		}
	}

	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != t.id {
					continue
				}
				full, err := frag.GetFullSamples(trex)
				if err != nil {
					return nil, fmt.Errorf("get samples: %w", err)
				}
				for _, fs := range full {
					t.samples = append(t.samples, sample{
						size:       uint32(len(fs.Data)),
						data:       fs.Data,
						decodeTime: fs.DecodeTime,
						dur:        fs.Dur,
						cto:        fs.CompositionTimeOffset,
						keyframe:   fs.Flags == mp4.SyncSampleFlags,
					})
				}
			}
		}
	}
	return t, nil
}

// totalDuration sums the sample durations in track timescale units.
func (t *track) totalDuration() uint64 {
	var d uint64
	for _, s := range t.samples {
		d += uint64(s.dur)
	}
	return d
}

// frameRate is the average sample rate of the track.
func (t *track) frameRate() float64 {
	d := t.totalDuration()
	if d == 0 || len(t.samples) == 0 {
		return 0
	}
	return float64(len(t.samples)) * float64(t.timescale) / float64(d)
}
