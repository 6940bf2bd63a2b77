// Package cli implements the concatimg command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/concatimg/pkg/buildinfo"
	"github.com/matzehuels/concatimg/pkg/cache"
	"github.com/matzehuels/concatimg/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "concatimg"

	// defaultBenchIterations is how often bench repeats each strategy.
	defaultBenchIterations = 10
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "concatimg joins images into one",
		Long: `concatimg concatenates images vertically, horizontally, or into a grid of
near-equal columns, writing a single output image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.stackCommand())
	root.AddCommand(c.columnsCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. Cache keys are scoped to
// the running build so an upgrade never serves output from an older encoder.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/concatimg/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
