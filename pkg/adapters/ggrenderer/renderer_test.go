package ggrenderer

import (
	"image"
	"image/color"
	"testing"

	"github.com/user/ffplayer/pkg/ports"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestRenderer_EncodeDecodeJPEG(t *testing.T) {
	r := New()

	img := solid(50, 50, color.RGBA{R: 255, A: 255})

	data, err := r.EncodeImage(img, ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("expected non-empty data")
	}

	decoded, err := r.DecodeImage(data, ports.FormatJPEG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeDecodePNG(t *testing.T) {
	r := New()

	img := image.NewRGBA(image.Rect(0, 0, 30, 30))

	data, err := r.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := r.DecodeImage(data, ports.FormatPNG)
	if err != nil {
		t.Fatalf("DecodeImage failed: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != 30 || bounds.Dy() != 30 {
		t.Errorf("expected 30x30, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderer_EncodeUnsupportedFormat(t *testing.T) {
	r := New()

	_, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 4, 4)), ports.ImageFormat(99), 0)
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()

	img := solid(640, 360, color.RGBA{G: 200, A: 255})

	resized := r.ResizeImage(img, 320, 180)

	bounds := resized.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 180 {
		t.Errorf("expected 320x180, got %dx%d", bounds.Dx(), bounds.Dy())
	}

	_, g, _, _ := resized.At(160, 90).RGBA()
	if g>>8 < 190 {
		t.Errorf("expected green to survive resize, got %d", g>>8)
	}
}

func TestRenderer_AnnotateDrawsBarOnCopy(t *testing.T) {
	r := New()

	src := solid(200, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	out := r.Annotate(src, "#12 0.480s", ports.TextStyle{
		Color:      color.White,
		Background: color.RGBA{A: 255},
	})

	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 100 {
		t.Fatalf("expected 200x100, got %v", out.Bounds())
	}

	// The bar covers the bottom rows with the background color.
	rr, _, _, _ := out.At(199, 99).RGBA()
	if rr>>8 > 10 {
		t.Errorf("expected dark caption bar, got red=%d", rr>>8)
	}

	// The top of the frame is untouched.
	rr, _, _, _ = out.At(100, 5).RGBA()
	if rr>>8 != 255 {
		t.Errorf("expected untouched top row, got red=%d", rr>>8)
	}

	// The source image is not modified.
	if c := src.RGBAAt(199, 99); c.R != 255 {
		t.Errorf("expected source unchanged, got %v", c)
	}
}

func TestRenderer_AnnotateMissingFontFallsBack(t *testing.T) {
	r := New()

	src := solid(120, 60, color.RGBA{B: 255, A: 255})

	out := r.Annotate(src, "caption", ports.TextStyle{
		FontPath: "/nonexistent/font.ttf",
		FontSize: 24,
		Align:    ports.AlignCenter,
	})

	if out.Bounds().Dx() != 120 || out.Bounds().Dy() != 60 {
		t.Errorf("expected 120x60, got %v", out.Bounds())
	}
}

func TestRenderer_AnnotateTinyImage(t *testing.T) {
	r := New()

	src := solid(8, 8, color.RGBA{A: 255})

	out := r.Annotate(src, "x", ports.TextStyle{
		Background: color.RGBA{R: 255, A: 255},
		Align:      ports.AlignRight,
	})

	rr, _, _, _ := out.At(0, 0).RGBA()
	if rr>>8 != 255 {
		t.Errorf("expected bar clamped to image height, got red=%d", rr>>8)
	}
}
