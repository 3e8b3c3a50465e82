package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/diogo/agentchat/internal/agent"
	"github.com/diogo/agentchat/internal/api"
	"github.com/diogo/agentchat/internal/config"
	"github.com/diogo/agentchat/internal/logging"
	"github.com/diogo/agentchat/internal/server"
	"github.com/diogo/agentchat/internal/tui"
)

// ChatService is the client surface the commands use
type ChatService interface {
	api.ChatClient
	api.HealthClient
	Close()
}

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunChat(ctx context.Context, client api.ChatClient, opts tui.ModelOptions) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	NewClient   func(endpoint string, logger *slog.Logger) (ChatService, error)
	NewAgent    func(provider string, settings agent.Settings) (agent.Agent, error)
	Serve       func(ctx context.Context, srv *server.Server, addr string) error
	InitLogging func(cfg config.LogConfig, extra ...io.Writer) (*slog.Logger, io.Closer, error)
	TUI         TUIInterface

	Clipboard     func(text string) error
	IsTTY         func() bool
	TerminalWidth func() int
	StdinIsPipe   func() bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunChat(ctx context.Context, client api.ChatClient, opts tui.ModelOptions) error {
	return tui.RunChat(ctx, client, opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient: func(endpoint string, logger *slog.Logger) (ChatService, error) {
			client, err := api.NewClient(endpoint, api.WithLogger(logger))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		NewAgent: agent.New,
		Serve: func(ctx context.Context, srv *server.Server, addr string) error {
			return srv.Run(ctx, addr)
		},
		InitLogging:   logging.Init,
		TUI:           &DefaultTUI{},
		Clipboard:     clipboard.WriteAll,
		IsTTY:         isStdoutTTY,
		TerminalWidth: getTerminalWidth,
		StdinIsPipe:   stdinIsPipe,
		Stdin:         os.Stdin,
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
	}
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// stdinIsPipe reports whether stdin carries redirected input
func stdinIsPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
