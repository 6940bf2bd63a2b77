package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/layout"
)

const defaultColumns = 2

// columnsCommand creates the columns command.
func (c *CLI) columnsCommand() *cobra.Command {
	var opts concatOpts
	var columns int

	cmd := &cobra.Command{
		Use:   "columns [images...]",
		Short: "Arrange images into near-equal vertical columns",
		Long: `Split the images into contiguous runs, stack each run vertically, and
place the runs side by side. When the count does not divide evenly, the
leftmost columns get one extra image each.`,
		Example: `  concatimg columns -c 3 shots/*.png -o sheet.png`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			policy := layout.ColumnsPolicy(columns)
			if err := policy.Validate(); err != nil {
				return err
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runConcat(ctx, inputs, policy, &opts)
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", defaultColumns, "number of columns")
	opts.register(cmd)

	return cmd
}
