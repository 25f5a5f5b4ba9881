// Package ggrenderer provides snapshot image processing using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/ffplayer/pkg/ports"
)

const (
	captionPadding = 6.0
	// basicfont.Face7x13 line height, used when no font file is given.
	defaultLineHeight = 13.0
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// DecodeImage decodes image data into an image.Image.
func (r *Renderer) DecodeImage(data []byte, format ports.ImageFormat) (image.Image, error) {
	reader := bytes.NewReader(data)

	switch format {
	case ports.FormatJPEG:
		return jpeg.Decode(reader)
	case ports.FormatPNG:
		return png.Decode(reader)
	default:
		img, _, err := image.Decode(reader)
		return img, err
	}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// Annotate draws a caption bar along the bottom edge of a copy of img.
// The source image is left untouched.
func (r *Renderer) Annotate(img image.Image, text string, style ports.TextStyle) image.Image {
	dc := gg.NewContextForImage(img)
	w := float64(dc.Width())
	h := float64(dc.Height())

	lineHeight := defaultLineHeight
	if style.FontPath != "" && style.FontSize > 0 {
		// Keep the built-in face when the font cannot be loaded.
		if err := dc.LoadFontFace(style.FontPath, style.FontSize); err == nil {
			lineHeight = style.FontSize
		}
	}

	barHeight := lineHeight + 2*captionPadding
	if barHeight > h {
		barHeight = h
	}

	if style.Background != nil {
		dc.SetColor(style.Background)
		dc.DrawRectangle(0, h-barHeight, w, barHeight)
		dc.Fill()
	}

	fg := style.Color
	if fg == nil {
		fg = color.White
	}
	dc.SetColor(fg)

	x, ax := captionPadding, 0.0
	switch style.Align {
	case ports.AlignCenter:
		x, ax = w/2, 0.5
	case ports.AlignRight:
		x, ax = w-captionPadding, 1.0
	}

	dc.DrawStringAnchored(text, x, h-barHeight/2, ax, 0.5)
	return dc.Image()
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)
