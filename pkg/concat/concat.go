// Package concat is the public entry point for image concatenation.
//
// Four operations cover the common cases:
//
//	StackPaths(paths, layout.Vertical)   // decode files and stack them
//	ColumnPaths(paths, 3)                // decode files into 3 columns
//	StackImages(images, layout.Horizontal)
//	ColumnImages(images, 2)
//
// The path variants use the fast-path loader for vertical stacks and columns:
// pixels are decoded straight into the output canvas when every image in a
// column has the same width. The image variants copy already decoded images
// row by row.
//
// Every call either returns a complete canvas or an error; no partial canvas
// is ever returned. Inputs are read-only and may be reused between calls.
package concat

import (
	"github.com/matzehuels/concatimg/pkg/compose"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/loader"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// StackPaths decodes the images at paths and stacks them along dir.
func StackPaths(paths []string, dir layout.Direction, opts ...loader.Option) (*raster.Image, error) {
	l := loader.New(opts...)
	if dir == layout.Horizontal {
		return l.LoadHorizontal(paths)
	}
	return l.LoadVertical(paths)
}

// ColumnPaths decodes the images at paths into columns vertical stacks.
// columns must be at least 1; this is checked before any file is opened.
func ColumnPaths(paths []string, columns int, opts ...loader.Option) (*raster.Image, error) {
	return loader.New(opts...).LoadColumns(paths, columns)
}

// StackImages stacks decoded images along dir.
func StackImages(images []*raster.Image, dir layout.Direction) (*raster.Image, error) {
	if err := checkImages(images); err != nil {
		return nil, err
	}
	return compose.Stack(images, dir, compose.Options{})
}

// ColumnImages arranges decoded images into columns vertical stacks.
func ColumnImages(images []*raster.Image, columns int) (*raster.Image, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	if err := checkImages(images); err != nil {
		return nil, err
	}
	return compose.Columns(images, columns, compose.Options{})
}

// Run dispatches to StackPaths or ColumnPaths according to policy.
func Run(paths []string, policy layout.Policy, opts ...loader.Option) (*raster.Image, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	switch policy.Kind {
	case layout.KindColumns:
		return ColumnPaths(paths, policy.Columns, opts...)
	case layout.KindHorizontal:
		return StackPaths(paths, layout.Horizontal, opts...)
	default:
		return StackPaths(paths, layout.Vertical, opts...)
	}
}

// RunImages applies policy to decoded images.
func RunImages(images []*raster.Image, policy layout.Policy) (*raster.Image, error) {
	if err := checkImages(images); err != nil {
		return nil, err
	}
	return compose.Apply(images, policy, compose.Options{})
}

func checkImages(images []*raster.Image) error {
	for i, img := range images {
		if img == nil {
			return errors.InvalidArgument("image #%d is nil", i)
		}
	}
	return nil
}
