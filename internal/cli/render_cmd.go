package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veldrane/inkmark/internal/document"
	"github.com/veldrane/inkmark/internal/render"
)

// newRenderCmd is the one-shot renderer: read a markdown file, print
// the styled output, exit. Works in pipes, where the editor refuses
// to run.
func newRenderCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a markdown file to the terminal and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if err := document.CheckSupported(args[0]); err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			w := width
			if w <= 0 {
				w = 80
				if term.IsTerminal(int(os.Stdout.Fd())) {
					if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
						w = tw
					}
				}
			}
			if maxW := app.Cfg.GetInt("preview.max_width"); maxW > 0 && w > maxW {
				w = maxW
			}
			r := render.NewGlamour(app.Cfg.GetString("theme"))
			fmt.Fprint(cmd.OutOrStdout(), r.Render(string(data), w))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "render width (default: terminal width)")
	return cmd
}
