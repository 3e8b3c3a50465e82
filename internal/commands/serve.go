package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/agentchat/internal/agent"
	"github.com/diogo/agentchat/internal/server"
)

type serveOptions struct {
	addr         string
	provider     string
	model        string
	instructions string
	origin       string
}

func newServeCmd(a *app) *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the chat backend",
		Long: `Run the HTTP backend that answers POST /api/chat and GET /api/health.

Every request is added to a single shared thread, so all clients talk to the
same conversation. The thread lives in memory and is lost on exit.

Providers:
  openai   Chat completions (OPENAI_API_KEY, optional OPENAI_BASE_URL)
  google   Gemini (GEMINI_API_KEY)
  echo     Replies with the last user message, no network needed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg.Server
			if opts.addr != "" {
				cfg.Addr = opts.addr
			}
			if opts.provider != "" {
				cfg.Provider = opts.provider
			}
			if opts.model != "" {
				cfg.Model = opts.model
			}
			if opts.instructions != "" {
				cfg.InstructionsFile = opts.instructions
			}
			if opts.origin != "" {
				cfg.AllowedOrigin = opts.origin
			}

			instructions, found, err := agent.LoadInstructions(cfg.InstructionsFile)
			if err != nil {
				return err
			}
			if !found {
				a.logger.Warn("instructions_missing", "path", cfg.InstructionsFile)
			}

			ag, err := a.deps.NewAgent(cfg.Provider, agent.SettingsFromConfig(cfg, instructions))
			if err != nil {
				return err
			}

			srv := server.New(ag,
				server.WithLogger(a.logger),
				server.WithAllowedOrigin(cfg.AllowedOrigin))

			a.logger.Info("serve_start",
				"addr", cfg.Addr,
				"provider", cfg.Provider,
				"agent", ag.Name(),
				"thread_id", srv.Thread().ID())
			fmt.Fprintf(a.deps.Stderr, "Serving %s (%s) on %s\n", ag.Name(), cfg.Provider, cfg.Addr)

			return a.deps.Serve(cmd.Context(), srv, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default from config, 0.0.0.0:5000)")
	cmd.Flags().StringVarP(&opts.provider, "provider", "p", "",
		fmt.Sprintf("Agent provider: %s", strings.Join(agent.Providers(), ", ")))
	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Model name (default depends on the provider)")
	cmd.Flags().StringVar(&opts.instructions, "instructions", "", "Path to the system instructions file")
	cmd.Flags().StringVar(&opts.origin, "allowed-origin", "", "Value of Access-Control-Allow-Origin")

	return cmd
}
