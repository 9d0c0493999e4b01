// Package cmd wires the xmenu CLI: a thin cobra front-end over the menu
// wrapper, configuration, and selection history.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for xmenu
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xmenu",
		Short: "Configurable wrapper around dmenu-style selectors",
		Long: `xmenu drives an external dmenu-compatible selector: it reads candidate
lines, hands them to the menu tool with the configured options, and prints
the line(s) the user picked.

Candidates come from stdin by default, or from a markdown document whose
headings and list items become pickable lines. Past selections can be
recorded so frequent picks float to the top of later menus.

Configuration is loaded from ~/.config/xmenu/xmenu.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewPickCommand())
	cmd.AddCommand(NewVersionCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
