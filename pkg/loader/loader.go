package loader

import (
	stderrors "errors"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/compose"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Loader decodes image files into concatenated canvases.
// A Loader holds no per-call state and may be shared between goroutines.
type Loader struct {
	codec      codec.Codec
	format     raster.Format
	background color.Color
	workers    int
	fastPath   bool
	logger     *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithCodec replaces the file-system codec.
func WithCodec(c codec.Codec) Option {
	return func(l *Loader) { l.codec = c }
}

// WithFormat sets the canvas pixel format. The default is raster.RGB8.
func WithFormat(f raster.Format) Option {
	return func(l *Loader) { l.format = f }
}

// WithBackground sets the fill colour for canvas areas no image covers.
func WithBackground(c color.Color) Option {
	return func(l *Loader) { l.background = c }
}

// WithWorkers bounds the number of images decoded concurrently.
// Values below 2 decode sequentially.
func WithWorkers(n int) Option {
	return func(l *Loader) { l.workers = n }
}

// WithoutFastPath forces the decode-then-copy path even for uniform widths.
func WithoutFastPath() Option {
	return func(l *Loader) { l.fastPath = false }
}

// WithLogger sets the logger for debug output. Nil discards it.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New creates a Loader using the default codec and RGB8 canvases.
func New(opts ...Option) *Loader {
	l := &Loader{
		codec:    codec.Default(),
		format:   raster.RGB8,
		workers:  1,
		fastPath: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Format returns the canvas pixel format.
func (l *Loader) Format() raster.Format { return l.format }

// LoadVertical stacks the images at paths top to bottom.
// The canvas is as wide as the widest image and as tall as all images
// together. An empty path list yields a 0x0 canvas.
func (l *Loader) LoadVertical(paths []string) (*raster.Image, error) {
	return l.loadVertical(paths, 0)
}

// LoadHorizontal stacks the images at paths left to right. Strides never
// line up side by side, so every image is decoded into its own buffer and
// copied row by row.
func (l *Loader) LoadHorizontal(paths []string) (*raster.Image, error) {
	images, err := l.LoadImages(paths)
	if err != nil {
		return nil, err
	}
	return compose.Stack(images, layout.Horizontal, l.composeOptions())
}

// LoadColumns arranges the images at paths in columns vertical stacks,
// read top to bottom and then left to right.
func (l *Loader) LoadColumns(paths []string, columns int) (*raster.Image, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	ranges, err := layout.ColumnRanges(len(paths), columns)
	if err != nil {
		return nil, err
	}

	canvases := make([]*raster.Image, 0, len(ranges))
	for i, r := range ranges {
		canvas, err := l.loadVertical(paths[r.Start:r.End], r.Start)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("column loaded", "column", i, "images", r.Len(),
			"width", canvas.Width(), "height", canvas.Height())
		canvases = append(canvases, canvas)
	}
	return compose.Stack(canvases, layout.Horizontal, l.composeOptions())
}

// LoadImages decodes every path into an owned image, in order.
func (l *Loader) LoadImages(paths []string) ([]*raster.Image, error) {
	images := make([]*raster.Image, len(paths))
	err := l.each(len(paths), func(i int) error {
		img, err := l.codec.Decode(paths[i], l.format)
		if err != nil {
			return decodeFailure(i, paths[i], err)
		}
		images[i] = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Peek returns the declared size of every path without decoding pixels.
func (l *Loader) Peek(paths []string) ([]layout.Size, error) {
	sizes := make([]layout.Size, len(paths))
	for i, p := range paths {
		size, err := codec.Peek(l.codec, p)
		if err != nil {
			return nil, decodeFailure(i, p, err)
		}
		sizes[i] = size
	}
	return sizes, nil
}

// loadVertical stacks paths; base is the index of paths[0] in the caller's
// input and offsets the index reported in a DecodeError.
func (l *Loader) loadVertical(paths []string, base int) (*raster.Image, error) {
	handles, err := l.openAll(paths, base)
	if err != nil {
		return nil, err
	}
	defer closeAll(handles)

	sizes := make([]layout.Size, len(handles))
	for i, h := range handles {
		size := h.Size()
		if err := raster.CheckSize(size.Width, size.Height, l.format); err != nil {
			return nil, decodeFailure(base+i, h.Path(), err)
		}
		sizes[i] = size
	}
	plan := layout.PlanStack(sizes, layout.Vertical)
	if err := raster.CheckSize(plan.Width, plan.Height, l.format); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "canvas %dx%d", plan.Width, plan.Height)
	}

	if l.fastPath && uniformWidth(sizes, plan.Width) {
		l.logger.Debug("decoding into canvas", "images", len(paths),
			"width", plan.Width, "height", plan.Height)
		return l.decodeIntoCanvas(handles, plan, base)
	}
	l.logger.Debug("decoding with row copy", "images", len(paths),
		"width", plan.Width, "height", plan.Height)
	return l.decodeAndCopy(handles, plan, base)
}

// decodeIntoCanvas allocates the canvas once and decodes each image into its
// own disjoint row range.
func (l *Loader) decodeIntoCanvas(handles []codec.Handle, plan layout.Plan, base int) (*raster.Image, error) {
	canvas, err := raster.New(plan.Width, plan.Height, l.format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "allocate %dx%d canvas", plan.Width, plan.Height)
	}

	err = l.each(len(handles), func(i int) error {
		h := handles[i]
		p := plan.Placements[i]
		dst := canvas.Rows(p.Y, p.Bottom())
		if len(dst) != h.RawLen(l.format) {
			return errors.New(errors.ErrCodeInternal, "image #%d needs %d bytes, row range holds %d",
				base+i, h.RawLen(l.format), len(dst))
		}
		if err := h.DecodeInto(dst, l.format); err != nil {
			return decodeFailure(base+i, h.Path(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canvas, nil
}

// decodeAndCopy decodes each image into an owned buffer and composites the
// buffers. Used when widths differ and strides would not line up.
func (l *Loader) decodeAndCopy(handles []codec.Handle, plan layout.Plan, base int) (*raster.Image, error) {
	images := make([]*raster.Image, len(handles))
	err := l.each(len(handles), func(i int) error {
		h := handles[i]
		size := h.Size()
		img, err := raster.New(size.Width, size.Height, l.format)
		if err != nil {
			return decodeFailure(base+i, h.Path(), err)
		}
		if err := h.DecodeInto(img.Pix(), l.format); err != nil {
			return decodeFailure(base+i, h.Path(), err)
		}
		images[i] = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return compose.Composite(plan.Width, plan.Height, compose.FromPlan(plan, images), l.composeOptions())
}

// openAll opens every path in order. On failure the handles opened so far
// are closed again.
func (l *Loader) openAll(paths []string, base int) ([]codec.Handle, error) {
	handles := make([]codec.Handle, 0, len(paths))
	for i, p := range paths {
		h, err := l.codec.Open(p)
		if err != nil {
			closeAll(handles)
			return nil, decodeFailure(base+i, p, err)
		}
		handles = append(handles, h)
	}
	return handles, nil
}

// each runs fn for 0..n-1, concurrently when workers > 1. When several calls
// fail, the error of the lowest index is returned so the result does not
// depend on scheduling.
func (l *Loader) each(n int, fn func(i int) error) error {
	if l.workers < 2 || n < 2 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	errs := make([]error, n)
	var g errgroup.Group
	g.SetLimit(l.workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			errs[i] = fn(i)
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) composeOptions() compose.Options {
	return compose.Options{Background: l.background, Format: l.format}
}

// uniformWidth reports whether every image can be written as a contiguous
// row range of a canvas of the given width. Images without rows write
// nothing and do not constrain the stride.
func uniformWidth(sizes []layout.Size, width int) bool {
	for _, s := range sizes {
		if s.Height > 0 && s.Width != width {
			return false
		}
	}
	return true
}

// decodeFailure keeps path and typed errors intact and turns anything else
// into a DecodeError for image index.
func decodeFailure(index int, path string, err error) error {
	var perr *errors.PathOpenError
	if stderrors.As(err, &perr) {
		return err
	}
	var derr *errors.DecodeError
	if stderrors.As(err, &derr) {
		return err
	}
	if errors.GetCode(err) == errors.ErrCodeInternal {
		return err
	}
	return &errors.DecodeError{Index: index, Path: path, Cause: err}
}

func closeAll(handles []codec.Handle) {
	for _, h := range handles {
		_ = h.Close()
	}
}
