// Package job reads concatenation jobs from TOML files.
//
// A job file names the inputs, the layout, and the output in one place so a
// concatenation can be repeated with `concatimg run job.toml`:
//
//	[input]
//	paths = ["header.png"]
//	glob  = "frames/*.png"
//
//	[layout]
//	policy  = "columns"
//	columns = 3
//
//	[output]
//	path    = "sheet.png"
//	format  = "png"
//
//	[options]
//	workers    = 4
//	background = "#ffffff"
//	pixel      = "rgb8"
//
// Relative paths are resolved against the directory of the job file.
// Explicit paths come first, followed by glob matches in lexical order.
package job

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Job is a parsed job file.
type Job struct {
	Input   Input   `toml:"input"`
	Layout  Layout  `toml:"layout"`
	Output  Output  `toml:"output"`
	Options Options `toml:"options"`

	// Dir is the directory relative paths are resolved against.
	Dir string `toml:"-"`
}

// Input lists the images to concatenate.
type Input struct {
	Paths []string `toml:"paths"`
	Glob  string   `toml:"glob"`
}

// Layout selects the arrangement.
type Layout struct {
	Policy  string `toml:"policy"`
	Columns int    `toml:"columns"`
}

// Output describes the result file.
type Output struct {
	Path    string `toml:"path"`
	Format  string `toml:"format"`
	Quality int    `toml:"quality"`
}

// Options holds tuning knobs.
type Options struct {
	Workers    int    `toml:"workers"`
	Background string `toml:"background"`
	Pixel      string `toml:"pixel"`
}

// Load reads and validates the job file at path.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJob, err, "read job %s", path)
	}
	j, err := Parse(data)
	if err != nil {
		return nil, err
	}
	j.Dir = filepath.Dir(path)
	return j, nil
}

// Parse decodes and validates a job document. Unknown keys are rejected so
// a typo does not silently fall back to a default.
func Parse(data []byte) (*Job, error) {
	var j Job
	md, err := toml.Decode(string(data), &j)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJob, err, "parse job")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidJob, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return &j, nil
}

// Validate checks every field that can be checked without touching the
// file system.
func (j *Job) Validate() error {
	if len(j.Input.Paths) == 0 && j.Input.Glob == "" {
		return errors.New(errors.ErrCodeInvalidJob, "input: need paths or glob")
	}
	for _, p := range j.Input.Paths {
		if err := errors.ValidateInputPath(p); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidJob, err, "input")
		}
	}
	if _, err := j.Policy(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidJob, err, "layout")
	}
	if j.Output.Path == "" {
		return errors.New(errors.ErrCodeInvalidJob, "output: path is required")
	}
	if _, err := j.Format(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidJob, err, "output")
	}
	if j.Output.Quality < 0 || j.Output.Quality > 100 {
		return errors.New(errors.ErrCodeInvalidJob, "output: quality must be 0-100, got %d", j.Output.Quality)
	}
	if j.Options.Workers < 0 {
		return errors.New(errors.ErrCodeInvalidJob, "options: workers must be >= 0, got %d", j.Options.Workers)
	}
	if _, err := raster.ParseColor(j.Options.Background); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidJob, err, "options")
	}
	if _, err := raster.ParseFormat(j.Options.Pixel); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidJob, err, "options")
	}
	return nil
}

// Policy returns the layout policy.
func (j *Job) Policy() (layout.Policy, error) {
	return layout.ParsePolicy(j.Layout.Policy, j.Layout.Columns)
}

// Format returns the output format. When not set explicitly it is inferred
// from the output extension, and an unknown extension selects PNG.
func (j *Job) Format() (string, error) {
	format := strings.ToLower(j.Output.Format)
	if format == "" {
		format = codec.FormatFromPath(j.Output.Path)
	}
	if format == "" {
		format = codec.FormatPNG
	}
	if format == "jpg" {
		format = codec.FormatJPEG
	}
	if err := codec.ValidateFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// OutputPath returns the output path resolved against the job directory.
func (j *Job) OutputPath() string {
	return j.resolve(j.Output.Path)
}

// Inputs returns the input paths: explicit paths in order, then glob matches
// sorted lexically. A glob that matches nothing is an error.
func (j *Job) Inputs() ([]string, error) {
	paths := make([]string, 0, len(j.Input.Paths))
	for _, p := range j.Input.Paths {
		paths = append(paths, j.resolve(p))
	}
	if j.Input.Glob == "" {
		return paths, nil
	}

	matches, err := filepath.Glob(j.resolve(j.Input.Glob))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidJob, err, "input: glob %q", j.Input.Glob)
	}
	if len(matches) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidJob, "input: glob %q matches no files", j.Input.Glob)
	}
	sort.Strings(matches)
	return append(paths, matches...), nil
}

func (j *Job) resolve(p string) string {
	if filepath.IsAbs(p) || j.Dir == "" {
		return p
	}
	return filepath.Join(j.Dir, p)
}
