package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/veldrane/inkmark/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var out string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config.toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = config.DefaultConfigPath()
			}
			if err := os.MkdirAll(filepath.Dir(out), 0o700); err != nil {
				return err
			}
			if _, err := os.Stat(out); err == nil && !overwrite {
				return fmt.Errorf("config already exists at %s; use --overwrite to replace it", out)
			} else if err == nil {
				backup := out + ".bak." + time.Now().Format("20060102-150405")
				if data, rerr := os.ReadFile(out); rerr == nil {
					if werr := os.WriteFile(backup, data, 0o600); werr != nil {
						return werr
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Backed up existing config to %s\n", backup)
				}
			}
			if err := os.WriteFile(out, []byte(config.RenderDefaultTOML()), 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing config (creates a backup)")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			keys := app.Cfg.AllKeys()
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", k, app.Cfg.Get(k))
			}
			return nil
		},
	}
}
