// Package cli implements the vellum command-line interface.
//
// The commands operate on model files (.json or .vmod):
//   - inspect: list the elements of a model
//   - validate: check the model's structural invariants
//   - export: convert a model between the JSON and msgpack codecs
//   - render: rasterize a diagram to SVG, PNG, or DOT
//
// All commands support --verbose (-v) for debug-level logging via the
// charmbracelet/log logger carried on the CLI struct.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"vellum/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "vellum"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Vellum inspects and renders diagram models",
		Long:         `Vellum is the model core of a diagram editor: a typed element/relationship graph with schema-driven persistence and Graphviz rendering.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.renderCommand())

	return root
}

// timed logs msg with the elapsed duration since start, rounded to the
// nearest millisecond.
func (c *CLI) timed(start time.Time, msg string) {
	c.Logger.Debugf("%s (%s)", msg, time.Since(start).Round(time.Millisecond))
}
