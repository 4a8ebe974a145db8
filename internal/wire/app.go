package wire

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/veldrane/inkmark/internal/config"
	"github.com/veldrane/inkmark/internal/recent"
	"github.com/veldrane/inkmark/internal/winstate"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg      *viper.Viper
	Log      *log.Logger
	Recent   *recent.Store
	WinState *winstate.Store

	logFile io.Closer
}

// BuildApp wires dependencies with the provided config. The logger
// writes to a file under data_dir because the TUI owns the terminal.
func BuildApp(ctx context.Context, v *viper.Viper) (*App, error) {
	logPath := config.ResolveLogPath(v)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}
	var logger *log.Logger
	var logSink io.Closer
	if logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err != nil {
		// Logging is an affordance; run without it rather than refuse to start.
		logger = log.New(io.Discard, "", 0)
	} else {
		logger = log.New(logFile, "inkmark ", log.LstdFlags)
		logSink = logFile
	}

	store, err := recent.Open(ctx, config.ResolveRecentDBPath(v))
	if err != nil {
		if logSink != nil {
			_ = logSink.Close()
		}
		return nil, fmt.Errorf("open recent store: %w", err)
	}

	return &App{
		Cfg:      v,
		Log:      logger,
		Recent:   store,
		WinState: winstate.New(config.ResolveWindowStatePath(v)),
		logFile:  logSink,
	}, nil
}

// Close releases the store and log file.
func (a *App) Close() error {
	err := a.Recent.Close()
	if a.logFile != nil {
		_ = a.logFile.Close()
	}
	return err
}
