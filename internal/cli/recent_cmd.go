package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recent documents list",
	}
	cmd.AddCommand(newRecentListCmd())
	cmd.AddCommand(newRecentPruneCmd())
	return cmd
}

func newRecentListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recently opened documents, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			entries, err := app.Recent.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recent documents.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					e.LastOpened.Format("2006-01-02 15:04"), e.DisplayName, e.Path)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum entries to show (0 = built-in default)")
	return cmd
}

func newRecentPruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Drop recent entries whose files no longer exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := app.Recent.Prune(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pruned missing files from the recent list.")
			return nil
		},
	}
}
