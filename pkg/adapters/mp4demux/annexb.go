package mp4demux

import "github.com/Eyevinn/mp4ff/mp4"

var startCode = []byte{0, 0, 0, 1}

// annexBParamSets renders the SPS and PPS of avcC with start codes.
func annexBParamSets(avcC *mp4.AvcCBox) []byte {
	var out []byte
	for _, sps := range avcC.SPSnalus {
		out = append(out, startCode...)
		out = append(out, sps...)
	}
	for _, pps := range avcC.PPSnalus {
		out = append(out, startCode...)
		out = append(out, pps...)
	}
	return out
}

// avccToAnnexB converts length-prefixed NAL units to start-code-prefixed ones.
func avccToAnnexB(data []byte) []byte {
	result := make([]byte, 0, len(data))
	offset := 0

	for offset+4 <= len(data) {
		naluLen := int(data[offset])<<24 | int(data[offset+1])<<16 |
			int(data[offset+2])<<8 | int(data[offset+3])
		offset += 4

		if offset+naluLen > len(data) {
			break
		}

		result = append(result, startCode...)
		result = append(result, data[offset:offset+naluLen]...)
		offset += naluLen
	}

	return result
}
