package commands

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/diogo/agentchat/internal/render"
)

func newHealthCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.deps.NewClient(a.cfg.Endpoint, a.logger)
			if err != nil {
				return err
			}
			defer client.Close()

			health, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(health, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode health: %w", err)
				}
				fmt.Fprintln(a.deps.Stdout, string(data))
				return nil
			}

			theme := render.GetTUITheme()
			key := lipgloss.NewStyle().Foreground(theme.Muted)
			ok := lipgloss.NewStyle().Foreground(theme.Agent).Bold(true)

			fmt.Fprintf(a.deps.Stdout, "%s %s\n", key.Render("Status:  "), ok.Render(health.Status))
			fmt.Fprintf(a.deps.Stdout, "%s %s\n", key.Render("Agent:   "), health.Agent)
			fmt.Fprintf(a.deps.Stdout, "%s %s\n", key.Render("Thread:  "), health.ThreadID)
			fmt.Fprintf(a.deps.Stdout, "%s %s\n", key.Render("Endpoint:"), a.cfg.Endpoint)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw health document")
	return cmd
}
