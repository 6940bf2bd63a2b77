package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/loader"
	"github.com/matzehuels/concatimg/pkg/render/plandot"
)

const (
	planFormatTable = "table"
	planFormatDOT   = "dot"
	planFormatSVG   = "svg"
)

// planOpts holds the command-line flags for the plan command.
type planOpts struct {
	layout  string // vertical, horizontal, columns, or columns:N
	columns int    // column count for the columns layout
	format  string // table (default), dot, svg
	output  string // file for dot/svg output; stdout if empty
}

// planCommand creates the plan command. It reads only image headers, so it
// is cheap even for large inputs.
func (c *CLI) planCommand() *cobra.Command {
	opts := planOpts{layout: "vertical", columns: defaultColumns, format: planFormatTable}

	cmd := &cobra.Command{
		Use:   "plan [images...]",
		Short: "Show where each image would be placed",
		Example: `  concatimg plan a.png b.png c.png
  concatimg plan -l columns -c 3 shots/*.png -f svg -o plan.svg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := layout.ParsePolicy(opts.layout, opts.columns)
			if err != nil {
				return err
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			logger := loggerFromContext(withLogger(cmd.Context(), c.Logger))

			prog := newProgress(logger)
			sizes, err := loader.New(loader.WithLogger(logger)).Peek(inputs)
			if err != nil {
				return err
			}
			plan, err := policy.Plan(sizes)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Planned %d images", len(inputs)))

			return c.writePlan(plan, policy, inputs, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.layout, "layout", "l", opts.layout, "layout: vertical, horizontal, columns, columns:N")
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", opts.columns, "number of columns for the columns layout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: table (default), dot, svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write dot/svg output to a file")

	return cmd
}

// writePlan prints or saves plan in the requested format.
func (c *CLI) writePlan(plan layout.Plan, policy layout.Policy, inputs []string, opts *planOpts) error {
	dir := layout.Vertical
	if policy.Kind == layout.KindHorizontal {
		dir = layout.Horizontal
	}
	dotOpts := plandot.Options{Labels: inputs, Direction: dir}

	var data []byte
	switch opts.format {
	case planFormatTable:
		if err := writePlanTable(c.Out, plan, policy, inputs); err != nil {
			return err
		}
		printNextStep("Diagram", appName+" plan <images> -f svg -o plan.svg")
		return nil
	case planFormatDOT:
		data = []byte(plandot.ToDOT(plan, dotOpts))
	case planFormatSVG:
		svg, err := plandot.RenderSVG(plandot.ToDOT(plan, dotOpts))
		if err != nil {
			return errors.Wrap(errors.ErrCodeEncode, err, "render plan")
		}
		data = svg
	default:
		return errors.New(errors.ErrCodeUnsupported,
			"invalid format: %s (must be 'table', 'dot', or 'svg')", opts.format)
	}

	if opts.output == "" {
		_, err := c.Out.Write(data)
		return err
	}
	if err := codec.WriteFile(opts.output, data); err != nil {
		return err
	}
	printSuccess("Plan written")
	printFile(opts.output)
	return nil
}

// planRows converts placements into table rows in input order.
func planRows(plan layout.Plan, inputs []string) [][]string {
	rows := make([][]string, len(plan.Placements))
	for i, p := range plan.Placements {
		name := ""
		if p.Index < len(inputs) {
			name = filepath.Base(inputs[p.Index])
		}
		rows[i] = []string{
			strconv.Itoa(p.Index),
			name,
			strconv.Itoa(p.Column),
			strconv.Itoa(p.X),
			strconv.Itoa(p.Y),
			p.Size.String(),
		}
	}
	return rows
}

// writePlanTable renders the placements as a lipgloss table followed by the
// canvas size.
func writePlanTable(w io.Writer, plan layout.Plan, policy layout.Policy, inputs []string) error {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Image", "Col", "X", "Y", "Size").
		Rows(planRows(plan, inputs)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 1 {
				return cellStyle.Foreground(colorWhite)
			}
			return cellStyle.Foreground(colorGray)
		})

	_, err := fmt.Fprintf(w, "%s\n%s %s %s\n",
		t.Render(),
		StyleDim.Render("canvas"),
		StyleNumber.Render(plan.Size().String()),
		StyleDim.Render(fmt.Sprintf("(%s, %d columns)", policy, plan.Columns())))
	return err
}
