package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/layout"
)

// stackCommand creates the stack command, which joins images along one axis.
func (c *CLI) stackCommand() *cobra.Command {
	var opts concatOpts
	var direction string

	cmd := &cobra.Command{
		Use:   "stack [images...]",
		Short: "Concatenate images vertically or horizontally",
		Long: `Concatenate images in argument order along one axis.

Vertical stacks are as wide as the widest image; narrower images are
left-aligned. Horizontal stacks are as tall as the tallest image.`,
		Example: `  concatimg stack a.png b.png c.png -o out.png
  concatimg stack -d horizontal frames/*.png -o strip.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := layout.ParseDirection(direction)
			if err != nil {
				return err
			}
			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			policy := layout.VerticalPolicy()
			if dir == layout.Horizontal {
				policy = layout.HorizontalPolicy()
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runConcat(ctx, inputs, policy, &opts)
		},
	}

	cmd.Flags().StringVarP(&direction, "direction", "d", "vertical", "stacking direction: vertical, horizontal")
	opts.register(cmd)

	return cmd
}
