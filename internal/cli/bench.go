package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/concat"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/loader"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// benchStrategy is one way of producing a vertical stack from files.
type benchStrategy struct {
	name string
	run  func(paths []string) (*raster.Image, error)
}

// benchResult is the timing of one strategy.
type benchResult struct {
	name       string
	iterations int
	total      time.Duration
	size       layout.Size
}

// average returns the mean time per iteration.
func (r benchResult) average() time.Duration {
	if r.iterations == 0 {
		return 0
	}
	return r.total / time.Duration(r.iterations)
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var iterations, workers int

	cmd := &cobra.Command{
		Use:   "bench [images...]",
		Short: "Time the vertical fast path against decode-then-copy",
		Long: `Stack the images vertically several times with each loading strategy and
report total and average time:

  fast         decode straight into the output canvas
  copy         decode into per-image buffers, then copy rows
  decode+stack decode every image, then stack the decoded images

The fast path only applies when every image has the same width; otherwise
it falls back to copying and the fast and copy timings should be close.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if iterations <= 0 {
				return errors.InvalidArgument("iterations must be positive, got %d", iterations)
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			logger := loggerFromContext(ctx)

			sizes, err := loader.New().Peek(inputs)
			if err != nil {
				return err
			}
			if !sameWidth(sizes) {
				printWarning("Input widths differ; the fast path will fall back to copying")
			}

			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Benchmarking %d images x %d...", len(inputs), iterations))
			spinner.Start()
			results, err := runBench(ctx, benchStrategies(workers), inputs, iterations)
			if err != nil {
				spinner.Stop()
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Benchmarked %d images", len(inputs)))
			for _, r := range results {
				logger.Debug("bench", "strategy", r.name, "total", r.total, "avg", r.average())
			}
			return writeBenchTable(c.Out, results)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", defaultBenchIterations, "iterations per strategy")
	cmd.Flags().IntVar(&workers, "workers", 1, "number of images decoded concurrently")

	return cmd
}

// benchStrategies returns the strategies compared by bench.
func benchStrategies(workers int, extra ...loader.Option) []benchStrategy {
	with := func(opts ...loader.Option) *loader.Loader {
		all := append([]loader.Option{loader.WithWorkers(workers)}, extra...)
		return loader.New(append(all, opts...)...)
	}
	fast := with()
	copying := with(loader.WithoutFastPath())
	decoding := with()

	return []benchStrategy{
		{name: "fast", run: fast.LoadVertical},
		{name: "copy", run: copying.LoadVertical},
		{name: "decode+stack", run: func(paths []string) (*raster.Image, error) {
			images, err := decoding.LoadImages(paths)
			if err != nil {
				return nil, err
			}
			return concat.StackImages(images, layout.Vertical)
		}},
	}
}

// runBench runs every strategy iterations times. Cancellation is checked
// between iterations.
func runBench(ctx context.Context, strategies []benchStrategy, paths []string, iterations int) ([]benchResult, error) {
	results := make([]benchResult, 0, len(strategies))
	for _, s := range strategies {
		r := benchResult{name: s.name}
		for range iterations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			img, err := s.run(paths)
			r.total += time.Since(start)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.name, err)
			}
			r.size = layout.Size{Width: img.Width(), Height: img.Height()}
			r.iterations++
		}
		results = append(results, r)
	}
	return results, nil
}

func sameWidth(sizes []layout.Size) bool {
	for _, s := range sizes {
		if s.Width != sizes[0].Width {
			return false
		}
	}
	return true
}

func writeBenchTable(w io.Writer, results []benchResult) error {
	rows := make([][]string, len(results))
	for i, r := range results {
		rows[i] = []string{
			r.name,
			strconv.Itoa(r.iterations),
			r.total.Round(time.Microsecond).String(),
			r.average().Round(time.Microsecond).String(),
			r.size.String(),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Strategy", "Runs", "Total", "Average", "Canvas").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Padding(0, 1).Foreground(colorCyan)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
