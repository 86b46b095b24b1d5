// Package cli implements the graphcheck command-line interface.
//
// # Commands
//
//   - check: check documents once and exit non-zero if any is unsafe
//   - watch: re-check documents whenever they change
//   - serve: serve checks over HTTP
//   - completion: generate shell completions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context so commands and the runner log through the
// same charmbracelet/log instance.
package cli

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphcheck/pkg/buildinfo"
	"github.com/matzehuels/graphcheck/pkg/config"
	"github.com/matzehuels/graphcheck/pkg/runner"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "graphcheck"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrUnsafe is returned when at least one checked document failed. The
// failures have already been printed.
var ErrUnsafe = errors.New("unsafe documents found")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
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
		Short: "graphcheck finds reference cycles and unencodable values",
		Long: `graphcheck walks JSON, YAML and TOML documents (or Go values, as a library)
and reports reference cycles and values that cannot be encoded as JSON, with
the path at which each problem was found.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "policy", cfg.Policy)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a runner from the loaded config after applying the
// command's flag overrides.
func (c *CLI) newRunner(cmd *cobra.Command, flags *checkFlags) (*runner.Runner, config.Config, error) {
	cfg := c.cfg
	flags.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	r, err := runner.New(cfg, c.Logger)
	if err != nil {
		return nil, cfg, err
	}
	return r, cfg, nil
}
