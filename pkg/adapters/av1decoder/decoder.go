// Package av1decoder decodes AV1 packets with libaom.
package av1decoder

/*
#cgo pkg-config: aom
#include <aom/aom_decoder.h>
#include <aom/aomdx.h>
#include <stdlib.h>
#include <string.h>

static aom_codec_iface_t* get_av1_decoder_interface() {
    return aom_codec_av1_dx();
}

// Wrapper for aom_codec_dec_init
static aom_codec_err_t init_decoder(aom_codec_ctx_t *ctx, aom_codec_iface_t *iface) {
    return aom_codec_dec_init(ctx, iface, NULL, 0);
}

// Get image plane data
static unsigned char* get_plane(aom_image_t *img, int plane) {
    return img->planes[plane];
}

static int get_stride(aom_image_t *img, int plane) {
    return img->stride[plane];
}

static unsigned int get_width(aom_image_t *img) {
    return img->d_w;
}

static unsigned int get_height(aom_image_t *img) {
    return img->d_h;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/user/ffplayer/pkg/ports"
)

var (
	// ErrNotInitialized is returned when decoding on a closed decoder.
	ErrNotInitialized = errors.New("av1decoder: decoder not initialized")

	// ErrEmptyPacket is returned for packets without payload.
	ErrEmptyPacket = errors.New("av1decoder: empty packet")

	// ErrDecodeFailed is returned when libaom rejects a packet.
	ErrDecodeFailed = errors.New("av1decoder: decode failed")
)

// Decoder decodes one AV1 stream of MP4 samples with libaom.
type Decoder struct {
	stream ports.StreamInfo
	codec  *C.aom_codec_ctx_t
}

// New initializes a libaom decoder for stream.
func New(stream ports.StreamInfo) (*Decoder, error) {
	d := &Decoder{stream: stream}

	d.codec = (*C.aom_codec_ctx_t)(C.malloc(C.sizeof_aom_codec_ctx_t))
	if d.codec == nil {
		return nil, fmt.Errorf("failed to allocate decoder context")
	}
	C.memset(unsafe.Pointer(d.codec), 0, C.sizeof_aom_codec_ctx_t)

	iface := C.get_av1_decoder_interface()
	if res := C.init_decoder(d.codec, iface); res != C.AOM_CODEC_OK {
		C.free(unsafe.Pointer(d.codec))
		d.codec = nil
		return nil, fmt.Errorf("failed to initialize decoder: %d", res)
	}

	return d, nil
}

// Decode decodes one temporal unit and returns every frame libaom produced.
func (d *Decoder) Decode(pkt ports.Packet) ([]ports.DecodedFrame, error) {
	if pkt.StreamIndex != d.stream.Index {
		return nil, nil
	}
	if d.codec == nil {
		return nil, ErrNotInitialized
	}
	if len(pkt.Data) == 0 {
		return nil, ErrEmptyPacket
	}

	res := C.aom_codec_decode(
		d.codec,
		(*C.uint8_t)(unsafe.Pointer(&pkt.Data[0])),
		C.size_t(len(pkt.Data)),
		nil,
	)
	if res != C.AOM_CODEC_OK {
		return nil, fmt.Errorf("%w: %d", ErrDecodeFailed, res)
	}

	var frames []ports.DecodedFrame
	var iter C.aom_codec_iter_t
	for {
		img := C.aom_codec_get_frame(d.codec, &iter)
		if img == nil {
			break
		}
		rgba := d.yuvToRGBA(img)
		frames = append(frames, ports.DecodedFrame{
			StreamIndex: d.stream.Index,
			Width:       rgba.Rect.Dx(),
			Height:      rgba.Rect.Dy(),
			Image:       rgba,
			Position:    float64(pkt.PTS) * d.stream.PacketTimeBase,
			FPS:         d.stream.FrameRate,
		})
	}
	return frames, nil
}

func (d *Decoder) FrameWidth() int  { return d.stream.Width }
func (d *Decoder) FrameHeight() int { return d.stream.Height }

// Close releases decoder resources.
func (d *Decoder) Close() {
	if d.codec != nil {
		C.aom_codec_destroy(d.codec)
		C.free(unsafe.Pointer(d.codec))
		d.codec = nil
	}
}

// yuvToRGBA converts YUV420 image to RGBA.
func (d *Decoder) yuvToRGBA(img *C.aom_image_t) *image.RGBA {
	width := int(C.get_width(img))
	height := int(C.get_height(img))

	yPlane := C.get_plane(img, 0)
	uPlane := C.get_plane(img, 1)
	vPlane := C.get_plane(img, 2)

	yStride := int(C.get_stride(img, 0))
	uStride := int(C.get_stride(img, 1))
	vStride := int(C.get_stride(img, 2))

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			yIdx := y*yStride + x
			uIdx := (y/2)*uStride + (x / 2)
			vIdx := (y/2)*vStride + (x / 2)

			yVal := int(*(*C.uchar)(unsafe.Pointer(uintptr(unsafe.Pointer(yPlane)) + uintptr(yIdx))))
			uVal := int(*(*C.uchar)(unsafe.Pointer(uintptr(unsafe.Pointer(uPlane)) + uintptr(uIdx))))
			vVal := int(*(*C.uchar)(unsafe.Pointer(uintptr(unsafe.Pointer(vPlane)) + uintptr(vIdx))))

			// YUV to RGB conversion
			c := yVal - 16
			d := uVal - 128
			e := vVal - 128

			r := clamp((298*c + 409*e + 128) >> 8)
			g := clamp((298*c - 100*d - 208*e + 128) >> 8)
			b := clamp((298*c + 516*d + 128) >> 8)

			idx := y*rgba.Stride + x*4
			rgba.Pix[idx] = uint8(r)
			rgba.Pix[idx+1] = uint8(g)
			rgba.Pix[idx+2] = uint8(b)
			rgba.Pix[idx+3] = 255
		}
	}

	return rgba
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

var _ ports.Decoder = (*Decoder)(nil)
