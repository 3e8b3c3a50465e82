package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/agentchat/internal/render"
	"github.com/diogo/agentchat/internal/tui"
)

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat with the agent behind the configured endpoint.

Press Enter to send, Ctrl+C or Esc to leave. The conversation is not saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.deps.NewClient(a.cfg.Endpoint, a.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			a.logger.Info("chat_start", "endpoint", a.cfg.Endpoint)
			return a.deps.TUI.RunChat(cmd.Context(), client, tui.ModelOptions{
				Greeting: a.cfg.Greeting,
				Endpoint: a.cfg.Endpoint,
				Markdown: render.OptionsFromConfig(a.cfg.Markdown),
				Logger:   a.logger,
			})
		},
	}
}
