// Package compose copies decoded images into a shared canvas.
//
// A [Blit] says "put this image with its top-left corner at (X, Y)". The
// compositor allocates the canvas once and copies each source row by row,
// byte for byte: there is no colour conversion, resampling, or blending.
//
// Blits are applied in order. When two rectangles overlap, the later blit
// overwrites the earlier one in the shared region. Callers that want an
// arbitrary arrangement (including deliberate overlap) rely on this.
package compose

import (
	"image/color"

	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Blit places Src on the canvas with its top-left corner at (X, Y).
// Src is borrowed: it must stay unchanged until the compositing call returns,
// and the canvas never keeps a reference to it.
type Blit struct {
	Src  *raster.Image
	X, Y int
}

// Size returns the size of the source image.
func (b Blit) Size() layout.Size {
	return layout.Size{Width: b.Src.Width(), Height: b.Src.Height()}
}

// Options configures canvas allocation.
type Options struct {
	// Background fills the canvas before any blit is applied.
	// Nil leaves the canvas zeroed (black).
	Background color.Color

	// Format is used for an empty blit list, which has no source to take the
	// pixel format from. It defaults to raster.RGB8.
	Format raster.Format
}

// Composite allocates a width x height canvas and applies blits in order.
//
// It fails with OUT_OF_BOUNDS if any blit rectangle does not fit inside the
// canvas, and with INVALID_ARGUMENT if a blit has no source or the sources do
// not share one pixel format. Nothing is returned on failure.
func Composite(width, height int, blits []Blit, opts Options) (*raster.Image, error) {
	for i, b := range blits {
		if b.Src == nil {
			return nil, errors.InvalidArgument("blit #%d has no source image", i)
		}
	}
	format, err := commonFormat(blits, opts.Format)
	if err != nil {
		return nil, err
	}
	for i, b := range blits {
		if b.X < 0 || b.Y < 0 || b.X+b.Src.Width() > width || b.Y+b.Src.Height() > height {
			return nil, errors.OutOfBounds("blit #%d at (%d,%d) size %s exceeds canvas %dx%d",
				i, b.X, b.Y, b.Size(), width, height)
		}
	}

	canvas, err := raster.New(width, height, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "allocate %dx%d canvas", width, height)
	}
	if opts.Background != nil {
		canvas.Fill(opts.Background)
	}
	for _, b := range blits {
		copyRows(canvas, b)
	}
	return canvas, nil
}

// Place composites blits onto a canvas sized to the smallest rectangle
// anchored at the origin that contains them all. The bounds check cannot
// fail for such a canvas.
func Place(blits []Blit, opts Options) (*raster.Image, error) {
	w, h := Bounds(blits)
	return Composite(w, h, blits, opts)
}

// Bounds returns max(X+width) and max(Y+height) over all blits. Blits
// without a source are ignored.
func Bounds(blits []Blit) (width, height int) {
	for _, b := range blits {
		if b.Src == nil {
			continue
		}
		width = max(width, b.X+b.Src.Width())
		height = max(height, b.Y+b.Src.Height())
	}
	return width, height
}

// copyRows writes every row of b.Src into canvas at b's offset.
// The caller has already checked that the rectangle fits.
func copyRows(canvas *raster.Image, b Blit) {
	if b.Src.Empty() {
		return
	}
	bpp := canvas.Format().BytesPerPixel()
	x0 := b.X * bpp
	x1 := x0 + b.Src.Stride()
	for y := 0; y < b.Src.Height(); y++ {
		copy(canvas.Row(b.Y + y)[x0:x1], b.Src.Row(y))
	}
}

func commonFormat(blits []Blit, fallback raster.Format) (raster.Format, error) {
	if len(blits) == 0 {
		return fallback, nil
	}
	f := blits[0].Src.Format()
	for i, b := range blits[1:] {
		if b.Src.Format() != f {
			return 0, errors.InvalidArgument("blit #%d has pixel format %s, want %s", i+1, b.Src.Format(), f)
		}
	}
	return f, nil
}
