// Package commands provides the agentchat CLI.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/diogo/agentchat/internal/config"
	"github.com/diogo/agentchat/internal/render"
	"github.com/diogo/agentchat/internal/tui"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// globalOptions holds the persistent flags
type globalOptions struct {
	endpoint   string
	configPath string
	logLevel   string
}

// app is the state every command runs with, prepared in PersistentPreRunE
type app struct {
	deps   *Dependencies
	global globalOptions
	cfg    config.Config
	logger *slog.Logger
	closer io.Closer
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	a := &app{deps: deps}
	var q queryOptions

	cmd := &cobra.Command{
		Use:   "agentchat [message]",
		Short: "Chat with an agent behind a single HTTP endpoint",
		Long: `agentchat talks to a chat backend exposing POST /api/chat.

It can send one message and print the reply, open an interactive chat
view, or run the backend itself.

Examples:
  agentchat "Which pizzas do you have?"   Send a single message
  agentchat -f order.md                   Read the message from a file
  echo "hi" | agentchat                   Read the message from stdin
  agentchat chat                          Start the interactive chat
  agentchat serve --provider echo         Run the backend locally
  agentchat health                        Check the backend`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(deps.Stdout, "agentchat %s (built %s)\n", Version, BuildTime)
				return nil
			}

			message, ok, err := readInput(deps, q.file, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}
			return a.runQuery(cmd.Context(), message, q)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.PersistentFlags().StringVarP(&a.global.endpoint, "endpoint", "e", "", "Backend base URL (default from config, http://localhost:5000)")
	cmd.PersistentFlags().StringVar(&a.global.configPath, "config", "", "Path to the config file (default ~/.agentchat/config.json)")
	cmd.PersistentFlags().StringVar(&a.global.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.Flags().StringVarP(&q.file, "file", "f", "", "Read the message from a file")
	cmd.Flags().BoolVar(&q.raw, "raw", false, "Print the reply text without formatting")
	cmd.Flags().BoolVarP(&q.copy, "copy", "c", false, "Copy the reply to the clipboard")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newHealthCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	deps := NewDependencies()
	err := NewRootCmd(deps).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(deps.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}

// setup loads .env and the config file, applies flag overrides and starts
// logging. The serve command also logs to stderr; everything else logs to
// the file only so the terminal stays clean.
func (a *app) setup(cmd *cobra.Command) error {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(a.deps.Stderr, "Warning: %v\n", err)
	}

	config.SetConfigPath(a.global.configPath)
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(a.deps.Stderr, "Warning: %v (using defaults)\n", err)
	}
	if a.global.endpoint != "" {
		cfg.Endpoint = a.global.endpoint
	}
	if a.global.logLevel != "" {
		cfg.Log.Level = a.global.logLevel
	}
	a.cfg = cfg

	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		tui.UpdateTheme()
	}

	var extra []io.Writer
	if cmd.Name() == "serve" {
		extra = append(extra, a.deps.Stderr)
	}
	logger, closer, err := a.deps.InitLogging(cfg.Log, extra...)
	if err != nil {
		fmt.Fprintf(a.deps.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	a.logger = logger
	a.closer = closer

	a.logger.Debug("command_start", "command", cmd.CommandPath(), "endpoint", cfg.Endpoint)
	return nil
}

func (a *app) teardown() {
	if a.closer != nil {
		_ = a.closer.Close()
		a.closer = nil
	}
}
