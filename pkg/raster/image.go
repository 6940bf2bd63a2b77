// Package raster provides the pixel buffers that concatenation reads from and
// writes into.
//
// An [Image] is a tightly packed, row-major grid of fixed-size pixels: row y
// starts at byte y*Stride() and the stride is always Width()*BytesPerPixel.
// The packing matters to the loader, which decodes a full-width image straight
// into a contiguous byte range of a taller canvas.
//
// Image implements [image.Image] so it can be handed to any standard encoder.
package raster

import (
	"errors"
	"image"
	"image/color"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is negative.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("raster: invalid format")

	// ErrDataSize is returned when a raw buffer does not match width*height*bpp.
	ErrDataSize = errors.New("raster: data size does not match dimensions")

	// ErrTooLarge is returned when the pixel storage would exceed MaxBytes.
	ErrTooLarge = errors.New("raster: image too large")
)

// MaxBytes bounds the pixel storage of a single Image.
const MaxBytes int64 = 1 << 32

// CheckSize reports whether a width x height image in format f can be
// allocated: dimensions must be non-negative and the pixel storage must not
// exceed MaxBytes. The product is computed without overflow.
func CheckSize(width, height int, f Format) error {
	if width < 0 || height < 0 {
		return ErrInvalidDimensions
	}
	if !f.IsValid() {
		return ErrInvalidFormat
	}
	if width == 0 || height == 0 {
		return nil
	}
	bpp := int64(f.BytesPerPixel())
	if int64(width) > MaxBytes/bpp || int64(width)*bpp > MaxBytes/int64(height) {
		return ErrTooLarge
	}
	return nil
}

// Image is a width x height pixel buffer in a single [Format].
// Width or height may be zero, in which case Pix is empty.
type Image struct {
	width  int
	height int
	format Format
	pix    []byte
}

// New allocates a zero-filled image. Zero bytes are black (and transparent for RGBA8).
// It fails with ErrTooLarge instead of attempting an allocation beyond MaxBytes.
func New(width, height int, format Format) (*Image, error) {
	if err := CheckSize(width, height, format); err != nil {
		return nil, err
	}
	return &Image{
		width:  width,
		height: height,
		format: format,
		pix:    make([]byte, format.RowBytes(width)*height),
	}, nil
}

// FromRaw wraps existing pixel data without copying.
// The caller must not retain data for writing while the image is in use.
func FromRaw(data []byte, width, height int, format Format) (*Image, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if len(data) != format.RowBytes(width)*height {
		return nil, ErrDataSize
	}
	return &Image{width: width, height: height, format: format, pix: data}, nil
}

// Width returns the width in pixels.
func (m *Image) Width() int { return m.width }

// Height returns the height in pixels.
func (m *Image) Height() int { return m.height }

// Format returns the pixel format.
func (m *Image) Format() Format { return m.format }

// Stride returns the number of bytes per row.
func (m *Image) Stride() int { return m.format.RowBytes(m.width) }

// Pix returns the backing pixel storage.
func (m *Image) Pix() []byte { return m.pix }

// Empty reports whether the image has no pixels.
func (m *Image) Empty() bool { return m.width == 0 || m.height == 0 }

// Row returns the bytes of row y, or nil if y is out of range.
func (m *Image) Row(y int) []byte {
	if y < 0 || y >= m.height {
		return nil
	}
	s := m.Stride()
	return m.pix[y*s : (y+1)*s]
}

// Rows returns the contiguous bytes of rows [y0, y1).
// Writes through the returned slice modify the image.
func (m *Image) Rows(y0, y1 int) []byte {
	s := m.Stride()
	return m.pix[y0*s : y1*s]
}

// Region copies out the w x h rectangle whose top-left corner is (x, y).
// It returns false if the rectangle is not fully inside the image.
func (m *Image) Region(x, y, w, h int) (*Image, bool) {
	if x < 0 || y < 0 || w < 0 || h < 0 || x+w > m.width || y+h > m.height {
		return nil, false
	}
	out, _ := New(w, h, m.format)
	bpp := m.format.BytesPerPixel()
	for row := 0; row < h; row++ {
		src := m.Row(y + row)[x*bpp : (x+w)*bpp]
		copy(out.Row(row), src)
	}
	return out, true
}

// Fill sets every pixel to c, converted to the image's format.
func (m *Image) Fill(c color.Color) {
	px := make([]byte, m.format.BytesPerPixel())
	putPixel(px, m.format, c)
	for i := 0; i < len(m.pix); i += len(px) {
		copy(m.pix[i:], px)
	}
}

// Clone returns a deep copy.
func (m *Image) Clone() *Image {
	pix := make([]byte, len(m.pix))
	copy(pix, m.pix)
	return &Image{width: m.width, height: m.height, format: m.format, pix: pix}
}

// Equal reports whether two images have identical dimensions, format, and pixels.
func (m *Image) Equal(o *Image) bool {
	if m.width != o.width || m.height != o.height || m.format != o.format {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Bounds implements the image.Image interface.
func (m *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// ColorModel implements the image.Image interface.
func (m *Image) ColorModel() color.Model {
	switch m.format {
	case RGBA8:
		return color.NRGBAModel
	case Gray8:
		return color.GrayModel
	default:
		return color.RGBAModel
	}
}

// At implements the image.Image interface.
func (m *Image) At(x, y int) color.Color {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return color.RGBA{}
	}
	bpp := m.format.BytesPerPixel()
	p := m.pix[y*m.Stride()+x*bpp:]
	switch m.format {
	case RGBA8:
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
	case Gray8:
		return color.Gray{Y: p[0]}
	default:
		return color.RGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	}
}
