package raster

import "fmt"

// Format identifies a fixed-size pixel layout. Every pixel of an [Image]
// occupies exactly BytesPerPixel consecutive bytes.
type Format uint8

const (
	// RGB8 is 24-bit RGB, 3 bytes per pixel, no alpha. This is the default.
	RGB8 Format = iota

	// RGBA8 is 32-bit non-premultiplied RGBA, 4 bytes per pixel.
	RGBA8

	// Gray8 is 8-bit grayscale, 1 byte per pixel.
	Gray8

	formatCount
)

var formatNames = [formatCount]string{
	RGB8:  "rgb8",
	RGBA8: "rgba8",
	Gray8: "gray8",
}

var formatBytes = [formatCount]int{
	RGB8:  3,
	RGBA8: 4,
	Gray8: 1,
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool { return f < formatCount }

// BytesPerPixel returns the storage size of a single pixel.
// It returns 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return formatBytes[f]
}

// RowBytes returns the number of bytes used by a tightly packed row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns the lowercase name used on the command line and in job files.
func (f Format) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("format(%d)", uint8(f))
	}
	return formatNames[f]
}

// ParseFormat parses a pixel format name ("rgb8", "rgba8", "gray8").
// The empty string selects [RGB8].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return RGB8, nil
	}
	for f, name := range formatNames {
		if name == s {
			return Format(f), nil
		}
	}
	return 0, fmt.Errorf("unknown pixel format %q (must be 'rgb8', 'rgba8', or 'gray8')", s)
}
