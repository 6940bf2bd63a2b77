// Package pipeline runs a complete concatenation: load, encode, save.
//
// Both the CLI commands and job files go through the same [Runner], which
// adds what the library entry points in package concat leave out: output
// caching, timing statistics, observability hooks, and logging.
//
// # Stages
//
//  1. Key: hash every input file and the output options
//  2. Load: decode and composite the inputs (skipped on a cache hit)
//  3. Encode: produce the output file bytes (skipped on a cache hit)
//  4. Save: atomically write the bytes to the output path
//
// A run either writes a complete output file or leaves the output path
// untouched.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Inputs: []string{"a.png", "b.png"},
//	    Policy: layout.ColumnsPolicy(2),
//	    Output: "sheet.png",
//	})
package pipeline

import (
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/concatimg/pkg/cache"
	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the output format when neither the flag nor the output
	// extension names one.
	DefaultFormat = codec.FormatPNG

	// DefaultWorkers decodes one image at a time.
	DefaultWorkers = 1
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one run.
type Options struct {
	// Inputs are the image files in concatenation order.
	Inputs []string

	// Policy selects the arrangement.
	Policy layout.Policy

	// Output is the destination path. Format defaults from its extension.
	Output  string
	Format  string
	Quality int

	// Pixel is the canvas pixel format name ("rgb8", "rgba8", "gray8").
	Pixel string

	// Background is the fill for uncovered canvas areas ("" leaves black).
	Background string

	// Workers bounds concurrent decodes.
	Workers int

	// NoCache skips both cache lookup and cache write.
	NoCache bool

	// Refresh skips the cache lookup but stores the fresh result.
	Refresh bool

	// Runtime options
	Logger *log.Logger

	pixel      raster.Format
	background color.Color
	validated  bool
}

// Result describes a finished run.
type Result struct {
	// RunID identifies the run in log output.
	RunID string

	// Output is the path written.
	Output string

	// Format is the encoded output format.
	Format string

	// Width and Height are the canvas size; zero on a cache hit.
	Width, Height int

	// Bytes is the size of the written file.
	Bytes int

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the output came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Images     int
	HashTime   time.Duration
	LoadTime   time.Duration
	EncodeTime time.Duration
	SaveTime   time.Duration
}

// Total returns the summed stage time.
func (s Stats) Total() time.Duration {
	return s.HashTime + s.LoadTime + s.EncodeTime + s.SaveTime
}

// CacheInfo tracks cache use for a run.
type CacheInfo struct {
	Key string // Empty when caching is disabled
	Hit bool   // Whether the encoded output came from cache
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every option and applies defaults.
// It performs no file I/O. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.Policy.Validate(); err != nil {
		return err
	}
	for _, in := range o.Inputs {
		if err := errors.ValidateInputPath(in); err != nil {
			return err
		}
	}
	if err := errors.ValidateOutputPath(o.Output, o.Inputs); err != nil {
		return err
	}

	if o.Format == "" {
		o.Format = codec.FormatFromPath(o.Output)
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := codec.ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Quality < 0 || o.Quality > 100 {
		return errors.InvalidArgument("quality must be 0-100, got %d", o.Quality)
	}

	pixel, err := raster.ParseFormat(o.Pixel)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "pixel format")
	}
	o.pixel = pixel
	o.Pixel = pixel.String()

	bg, err := raster.ParseColor(o.Background)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "background")
	}
	o.background = bg

	if o.Workers <= 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// OutputKeyOpts returns cache key options for the encoded output.
func (o *Options) OutputKeyOpts() cache.OutputKeyOpts {
	return cache.OutputKeyOpts{
		Policy:     o.Policy.String(),
		Format:     o.Format,
		Quality:    o.Quality,
		Pixel:      o.Pixel,
		Background: o.Background,
	}
}
