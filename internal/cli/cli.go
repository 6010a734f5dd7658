// Package cli implements the pixelforge command-line interface.
//
// # Commands
//
//   - build: render every asset and write the target's artifacts
//   - validate: report problems in the project without rendering
//   - order: print the build order, wave by wave
//   - graph: draw the asset dependency graph as DOT or SVG
//   - palette: print the resolved colours of a palette, or sample the
//     colours of a PNG with palette extract
//   - list: print a table of every asset
//   - serve: build and serve the artifacts over HTTP for previewing
//   - completion: generate shell completion scripts
//
// Every command takes project files or directories as arguments; directories
// are searched for *.toml files.
//
// # Configuration
//
// Flags default to environment variables (see [Config]), so the precedence is
// flag, then environment, then target profile, then builtin default.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log; --verbose (-v) or
// PIXELFORGE_VERBOSE=true enables debug output.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/pipeline"
	"github.com/matzehuels/pixelforge/pkg/project"
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
	Config Config
}

// New creates a CLI logging to w at the given level.
func New(w io.Writer, level log.Level, cfg Config) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadProject loads the project files named on the command line.
func (c *CLI) loadProject(ctx context.Context, paths []string) (*asset.Registry, error) {
	logger := c.logger(ctx)
	prog := newProgress(logger)
	reg, err := project.Load(paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded project", "paths", paths)
	prog.done("Loaded project", "assets", reg.Len())
	return reg, nil
}

// logger returns the logger attached to ctx, falling back to c.Logger.
func (c *CLI) logger(ctx context.Context) *log.Logger {
	if ctx != nil && ctx.Value(loggerKey) != nil {
		return loggerFromContext(ctx)
	}
	return c.Logger
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(workers int) *pipeline.Runner {
	if workers < 1 {
		workers = c.Config.workers()
	}
	return pipeline.NewRunner(c.Logger, workers)
}

// projectArgs requires at least one project path.
var projectArgs = cobra.MinimumNArgs(1)
