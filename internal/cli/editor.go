package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/veldrane/inkmark/internal/document"
	"github.com/veldrane/inkmark/internal/host"
	"github.com/veldrane/inkmark/internal/msgbus"
	"github.com/veldrane/inkmark/internal/render"
	"github.com/veldrane/inkmark/internal/session"
	"github.com/veldrane/inkmark/internal/singleinst"
	"github.com/veldrane/inkmark/internal/tui"
)

// runEditor starts the interactive editor: the host controller runs on
// its own goroutine and the Bubble Tea program owns the terminal; the
// two talk only through the message bus.
func runEditor(cmd *cobra.Command, args []string) error {
	app := getApp(cmd)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("inkmark needs an interactive terminal; use 'inkmark render' for piped output")
	}

	var filePath string
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		if err := document.CheckSupported(abs); err != nil {
			return err
		}
		filePath = abs
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Second launches hand their file to the running instance and exit.
	var sock string
	if app.Cfg.GetBool("single_instance") {
		s, err := singleinst.SocketPath()
		if err != nil {
			app.Log.Printf("single instance disabled: %v", err)
		} else {
			sock = s
			if filePath != "" && singleinst.Forward(ctx, sock, filePath) {
				fmt.Fprintf(cmd.OutOrStdout(), "Opened %s in the running inkmark instance\n", filePath)
				return nil
			}
		}
	}

	bus := msgbus.New()
	sess := session.New()
	bridge := &tui.Bridge{}
	ctl := host.New(bus, bridge, bridge, app.Recent, app.Log)

	model := tui.NewModel(tui.Options{
		Session:         sess,
		Bus:             bus,
		Host:            ctl,
		Renderer:        render.NewGlamour(app.Cfg.GetString("theme")),
		Recent:          app.Recent,
		WinState:        app.WinState,
		Logger:          app.Log,
		InitialPath:     filePath,
		DefaultView:     parseViewMode(app.Cfg.GetString("editor.default_view")),
		MaxPreviewWidth: app.Cfg.GetInt("preview.max_width"),
		RecentLimit:     app.Cfg.GetInt("recent.limit"),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	bridge.SetProgram(p)

	go ctl.Run(ctx)

	if sock != "" {
		go func() {
			err := singleinst.Serve(ctx, sock, app.Log, func(m singleinst.Message) singleinst.Response {
				if m.Name != singleinst.OpenPath || m.Path == "" {
					return singleinst.Response{OK: false, Msg: "unknown request"}
				}
				if err := document.CheckSupported(m.Path); err != nil {
					return singleinst.Response{OK: false, Msg: err.Error()}
				}
				ctl.RequestOpenPath(m.Path)
				return singleinst.Response{OK: true}
			})
			if err != nil {
				app.Log.Printf("single instance listener: %v", err)
			}
		}()
	}

	_, err := p.Run()
	return err
}

func parseViewMode(s string) session.ViewMode {
	switch s {
	case "preview":
		return session.ModePreview
	case "split":
		return session.ModeSplit
	default:
		return session.ModeEdit
	}
}
