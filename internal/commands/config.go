package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/agentchat/internal/config"
	"github.com/diogo/agentchat/internal/render"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.showConfig()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.deps.Stdout, path)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(a.deps.Stdout, "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List the markdown styles and chat themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.deps.Stdout, "Markdown styles (markdown.style):")
			for _, s := range render.AvailableStyles() {
				fmt.Fprintf(a.deps.Stdout, "  %-12s %s\n", s.Name, s.Description)
			}
			fmt.Fprintln(a.deps.Stdout, "\nChat themes (tui_theme):")
			for _, name := range render.TUIThemeNames() {
				theme, _ := render.GetTUIThemeByName(name)
				fmt.Fprintf(a.deps.Stdout, "  %-12s %s\n", name, theme.Description)
			}
			return nil
		},
	})

	return cmd
}

// showConfig prints the effective configuration and whether it validates.
// API keys are never part of the JSON form.
func (a *app) showConfig() error {
	data, err := json.MarshalIndent(a.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	fmt.Fprintln(a.deps.Stdout, string(data))

	if err := a.cfg.Validate(); err != nil {
		fmt.Fprintf(a.deps.Stderr, "Warning: %v\n", err)
	}
	return nil
}
