package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/job"
	"github.com/matzehuels/concatimg/pkg/loader"
)

// runCommand creates the run command, which executes a TOML job file.
func (c *CLI) runCommand() *cobra.Command {
	var noCache, refresh, dryRun bool

	cmd := &cobra.Command{
		Use:   "run [job.toml]",
		Short: "Run a concatenation described by a job file",
		Long: `Run a concatenation described by a TOML job file.

Relative paths in the job are resolved against the job file's directory.
With --dry-run the placements are printed and nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			logger := loggerFromContext(ctx)

			j, err := job.Load(args[0])
			if err != nil {
				return err
			}
			inputs, err := j.Inputs()
			if err != nil {
				return err
			}
			policy, err := j.Policy()
			if err != nil {
				return err
			}
			format, err := j.Format()
			if err != nil {
				return err
			}
			logger.Debug("loaded job", "path", args[0], "inputs", len(inputs), "policy", policy)

			if dryRun {
				sizes, err := loader.New(loader.WithLogger(logger)).Peek(inputs)
				if err != nil {
					return err
				}
				plan, err := policy.Plan(sizes)
				if err != nil {
					return err
				}
				printKeyValue("Job", args[0])
				printKeyValue("Output", j.OutputPath())
				printKeyValue("Format", format)
				printKeyValue("Workers", strconv.Itoa(max(j.Options.Workers, 1)))
				return writePlanTable(c.Out, plan, policy, inputs)
			}

			opts := &concatOpts{
				output:     j.OutputPath(),
				format:     format,
				quality:    j.Output.Quality,
				workers:    j.Options.Workers,
				noCache:    noCache,
				refresh:    refresh,
				background: j.Options.Background,
				pixel:      j.Options.Pixel,
			}
			return c.runConcat(ctx, inputs, policy, opts)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the output cache")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached output and recompute")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the plan without writing output")

	return cmd
}
