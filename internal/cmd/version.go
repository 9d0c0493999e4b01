package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/xmenu/internal/config"
	"github.com/harrison/xmenu/internal/menu"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show xmenu and menu tool versions",
		Long: `Show the xmenu version and, when the configured menu tool is installed,
its own version string (obtained by running it with -v).`,
		Args: cobra.NoArgs,
		RunE: runVersion,
	}

	cmd.Flags().String("config", "", "Path to config file (default: ~/.config/xmenu/xmenu.yaml)")
	cmd.Flags().String("menu", "", "Menu executable to query instead of the configured one")

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "xmenu %s\n", Version)

	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	m := menu.New()
	if cfg.Menu.Executable != "" {
		m.Set("dmenu", cfg.Menu.Executable)
	}

	exe, _ := cmd.Flags().GetString("menu")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	toolVersion, err := m.Version(ctx, exe)
	if err != nil {
		// Not fatal: xmenu itself is fine without the tool installed.
		fmt.Fprintf(cmd.OutOrStdout(), "menu tool: unavailable (%v)\n", err)
		return nil
	}
	if toolVersion == "" {
		toolVersion = "(no version output)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "menu tool: %s\n", toolVersion)
	return nil
}
