// Package cli provides CLI commands for invoicer.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/invoicer/internal/config"
	"github.com/example/invoicer/internal/ctxutil"
	"github.com/example/invoicer/internal/logger"
	"github.com/example/invoicer/internal/wire"
)

var (
	// homeDir is the --home flag; empty means config.DefaultDir().
	homeDir string
	verbose bool

	globalActorID string
	logCloser     io.Closer
)

// RegisterGlobalFlags attaches the flags every command understands.
func RegisterGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&homeDir, "home", "", "invoicer home directory (default $INVOICER_HOME or ~/.invoicer)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Bootstrap loads the configuration, sets up logging and hands the
// configuration to the service wiring. Runs as the root PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	dir, err := resolveHome()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return err
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	logCfg.Output = cfg.Log.Output
	if verbose {
		logCfg.Level = "debug"
	}
	if logCloser, err = logger.Setup(logCfg); err != nil {
		return err
	}

	log := logger.WithComponent("cli")
	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("home", dir).
		Str("db", cfg.DBPath).
		Msg("bootstrap")

	globalActorID = ctxutil.DefaultActor()
	wire.Configure(cfg)
	return nil
}

// Shutdown releases the database and the log file. Runs as the root
// PersistentPostRunE.
func Shutdown(cmd *cobra.Command, args []string) error {
	if err := wire.Close(); err != nil {
		return err
	}
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

// NewContext creates a context.Background() with the current actor ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() context.Context {
	ctx := context.Background()
	if globalActorID != "" {
		return ctxutil.WithActorID(ctx, globalActorID)
	}
	return ctx
}

func resolveHome() (string, error) {
	if homeDir != "" {
		return homeDir, nil
	}
	return config.DefaultDir()
}
