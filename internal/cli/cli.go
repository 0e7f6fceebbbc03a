// Package cli implements ct_admin, the operator command line for the tracker.
// It talks to the record store directly and bypasses the HTTP surface.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/SscSPs/closing_tracker/internal/middleware"
	"github.com/SscSPs/closing_tracker/internal/platform/app"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
	"github.com/spf13/cobra"
)

// Exit codes returned by Execute.
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitInternal   = 4
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// RuntimeBuilder opens the backend for a command.
type RuntimeBuilder func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Runtime, error)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config
	logger  *slog.Logger
	out     io.Writer
	errOut  io.Writer

	loadConfig   func() (*config.Config, error)
	buildRuntime RuntimeBuilder

	// Global flags
	actor   string
	backend string
	quiet   bool
	debug   bool
}

// Option customises a CLI, mostly for tests.
type Option func(*CLI)

// WithOutput redirects normal and error output.
func WithOutput(out, errOut io.Writer) Option {
	return func(c *CLI) {
		c.out = out
		c.errOut = errOut
	}
}

// WithConfigLoader replaces config.LoadConfig.
func WithConfigLoader(load func() (*config.Config, error)) Option {
	return func(c *CLI) { c.loadConfig = load }
}

// WithRuntimeBuilder replaces the default backend wiring.
func WithRuntimeBuilder(build RuntimeBuilder) Option {
	return func(c *CLI) { c.buildRuntime = build }
}

// New creates a new CLI instance.
func New(opts ...Option) *CLI {
	c := &CLI{
		out:        os.Stdout,
		errOut:     os.Stderr,
		loadConfig: config.LoadConfig,
		buildRuntime: func(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app.Runtime, error) {
			return app.Build(ctx, cfg, logger, app.Options{})
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.rootCmd = c.newRootCmd()
	return c
}

// Execute runs the CLI with os.Args.
func (c *CLI) Execute() int {
	return c.ExecuteArgs(os.Args[1:])
}

// ExecuteArgs runs the CLI with explicit arguments.
func (c *CLI) ExecuteArgs(args []string) int {
	c.rootCmd.SetArgs(args)
	if err := c.rootCmd.Execute(); err != nil {
		c.errorf("Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			return ExitValidation
		}
		return ExitInternal
	}
	return ExitSuccess
}

// usageError marks failures caused by bad input rather than the backend.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ct_admin",
		Short: "Transaction Completion Tracker administration",
		Long: `ct_admin runs maintenance tasks against the tracker's record store.

It applies migrations, runs the overdue payment sweep on demand,
loads fixture transactions, prints a transaction dashboard and
mints API tokens.`,
		Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}
	cmd.SetOut(c.out)
	cmd.SetErr(c.errOut)

	cmd.PersistentFlags().StringVar(&c.actor, "actor", "admin", "user id recorded on changes made by this command")
	cmd.PersistentFlags().StringVar(&c.backend, "backend", "", "override STORAGE_BACKEND (postgres or memory)")
	cmd.PersistentFlags().BoolVar(&c.quiet, "quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().BoolVar(&c.debug, "debug", false, "verbose debug logs")

	cmd.AddCommand(c.newMigrateCmd())
	cmd.AddCommand(c.newSweepCmd())
	cmd.AddCommand(c.newSeedCmd())
	cmd.AddCommand(c.newDashboardCmd())
	cmd.AddCommand(c.newTokenCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if c.backend != "" {
		if c.backend != "postgres" && c.backend != "memory" {
			return usageError{fmt.Errorf("unknown backend %q", c.backend)}
		}
		cfg.StorageBackend = c.backend
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if c.debug {
		level = "debug"
	}
	c.logger = slog.New(slog.NewJSONHandler(c.errOut, &slog.HandlerOptions{Level: app.ParseLevel(level)}))
	return nil
}

// adminContext carries the logger and an administrator identity into the services.
func (c *CLI) adminContext(ctx context.Context) context.Context {
	ctx = middleware.WithLogger(ctx, c.logger)
	return middleware.WithUser(ctx, c.actor, true)
}

func (c *CLI) openRuntime(ctx context.Context) (*app.Runtime, error) {
	return c.buildRuntime(ctx, c.cfg, c.logger)
}

// Helper functions for output

func (c *CLI) printf(format string, args ...any) {
	if !c.quiet {
		fmt.Fprintf(c.out, format, args...)
	}
}

func (c *CLI) errorf(format string, args ...any) {
	fmt.Fprintf(c.errOut, format, args...)
}

func (c *CLI) outputJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
