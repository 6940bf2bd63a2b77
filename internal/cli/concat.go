package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/pipeline"
)

// defaultOutputBase names the output when --output is not given; the
// extension follows the format.
const defaultOutputBase = "concat"

// concatOpts holds the flags shared by the stack and columns commands.
type concatOpts struct {
	output     string // output file path
	format     string // output format: png (default), jpeg, bmp, tiff
	quality    int    // JPEG quality, 0 means default
	workers    int    // concurrent decodes
	noCache    bool   // neither read nor write the output cache
	refresh    bool   // skip the cache lookup but store the result
	reorder    bool   // reorder inputs interactively before running
	background string // canvas fill for uncovered areas
	pixel      string // canvas pixel format: rgb8 (default), rgba8, gray8
}

// register adds the shared flags to cmd.
func (o *concatOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default concat.<format>)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: png (default), jpeg, bmp, tiff")
	cmd.Flags().IntVar(&o.quality, "quality", 0, "JPEG quality 1-100 (default 95)")
	cmd.Flags().IntVar(&o.workers, "workers", pipeline.DefaultWorkers, "number of images decoded concurrently")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the output cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "ignore cached output and recompute")
	cmd.Flags().BoolVar(&o.reorder, "reorder", false, "reorder inputs interactively before concatenating")
	cmd.Flags().StringVar(&o.background, "background", "", "fill colour for uncovered areas (#rrggbb, black, white, transparent)")
	cmd.Flags().StringVar(&o.pixel, "pixel", "", "canvas pixel format: rgb8 (default), rgba8, gray8")
}

// outputPath returns the --output flag or a default name for the format.
func (o *concatOpts) outputPath() string {
	if o.output != "" {
		return o.output
	}
	format := normalizeFormat(o.format)
	if format == "" {
		format = pipeline.DefaultFormat
	}
	return defaultOutputBase + codec.Extension(format)
}

// pipelineOptions converts the flags into runner options.
func (o *concatOpts) pipelineOptions(inputs []string, policy layout.Policy) pipeline.Options {
	return pipeline.Options{
		Inputs:     inputs,
		Policy:     policy,
		Output:     o.outputPath(),
		Format:     normalizeFormat(o.format),
		Quality:    o.quality,
		Pixel:      o.pixel,
		Background: o.background,
		Workers:    o.workers,
		NoCache:    o.noCache,
		Refresh:    o.refresh,
	}
}

// normalizeFormat lower-cases a format name and maps the jpg alias.
func normalizeFormat(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "jpg" {
		return codec.FormatJPEG
	}
	return s
}

// runConcat executes one concatenation and prints its outcome.
func (c *CLI) runConcat(ctx context.Context, inputs []string, policy layout.Policy, o *concatOpts) error {
	logger := loggerFromContext(ctx)

	if len(inputs) == 0 {
		return errors.InvalidArgument("no input images")
	}
	if o.reorder {
		ordered, err := reorderInputs(inputs)
		if err != nil {
			return err
		}
		if ordered == nil {
			printWarning("Aborted")
			return nil
		}
		inputs = ordered
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	opts := o.pipelineOptions(inputs, policy)
	opts.Logger = logger
	logger.Debug("running", "policy", policy, "inputs", len(inputs), "output", opts.Output)

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Concatenating %d images...", len(inputs)))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %s", result.Output))

	printSuccess("Concatenated %d images (%s)", len(inputs), policy)
	printFile(result.Output)
	printRunStats(result)
	return nil
}

// expandInputs expands shell-style glob patterns that the shell left alone
// (for example on Windows). Arguments without glob characters, and patterns
// that match nothing, are kept as given so the error names them.
func expandInputs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, errors.InvalidArgument("invalid pattern %q: %v", arg, err)
		}
		if len(matches) == 0 {
			out = append(out, arg)
			continue
		}
		out = append(out, matches...)
	}
	return out, nil
}
