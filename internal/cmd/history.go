package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/xmenu/internal/config"
	"github.com/harrison/xmenu/internal/history"
)

// NewHistoryCommand creates the history command group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and manage the selection history",
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: ~/.config/xmenu/xmenu.yaml)")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())
	cmd.AddCommand(newHistoryPruneCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List recent selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return withStore(cmd, func(ctx context.Context, store *history.Store) error {
				selections, err := store.Recent(ctx, limit)
				if err != nil {
					return err
				}
				if len(selections) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no selections recorded")
					return nil
				}
				for _, sel := range selections {
					prompt := sel.Prompt
					if prompt == "" {
						prompt = "-"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %-12s  %s\n",
						sel.PickedAt.Format("2006-01-02 15:04"), prompt, sel.Choice)
				}
				return nil
			})
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of selections to list")
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded selections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd, func(ctx context.Context, store *history.Store) error {
				if err := store.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})
		},
	}
}

func newHistoryPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete selections older than the retention window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			keepDays, _ := cmd.Flags().GetInt("keep-days")
			return withStore(cmd, func(ctx context.Context, store *history.Store) error {
				if !cmd.Flags().Changed("keep-days") {
					cfg, err := loadHistoryConfig(cmd)
					if err != nil {
						return err
					}
					keepDays = cfg.History.KeepDays
				}
				deleted, err := store.Prune(ctx, keepDays)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "pruned %d selection(s)\n", deleted)
				return nil
			})
		},
	}
	cmd.Flags().Int("keep-days", 0, "Retention window in days (default: from config)")
	return cmd
}

func loadHistoryConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// withStore opens the configured history database, runs fn, and closes it.
func withStore(cmd *cobra.Command, fn func(context.Context, *history.Store) error) error {
	cfg, err := loadHistoryConfig(cmd)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, store)
}
