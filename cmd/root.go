// Package cmd implements the soundfetch command line.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/zjrosen/soundfetch/internal/config"
	"github.com/zjrosen/soundfetch/internal/fetch"
	"github.com/zjrosen/soundfetch/internal/log"
	"github.com/zjrosen/soundfetch/internal/session"
	"github.com/zjrosen/soundfetch/internal/source"
	"github.com/zjrosen/soundfetch/internal/tracing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags "-X github.com/zjrosen/soundfetch/cmd.Version=X.Y.Z".
var Version = "dev"

// skipConfigAnnotation marks commands that run without loading config.
const skipConfigAnnotation = "soundfetch/skip-config"

// app holds state shared by the command tree for one invocation.
type app struct {
	cfgFile  string
	logLevel string

	cfg     config.Config
	cfgUsed string

	closers []func(context.Context) error
}

// newRootCmd builds the command tree around a.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soundfetch",
		Short: "Fetch ambient sound files into the local sounds directory",
		Long: `Fetch the ambient sound files (rain, ocean, forest, ...) used by the
Mindshift front-end into the local sounds directory.

Run without arguments to print setup instructions, check for files that are
already present and download every sound with a configured source. No source
is configured by default, so a fresh run only prints instructions.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		Version:           Version,
		PersistentPreRunE: a.setup,
		RunE:              a.runSession,
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./.soundfetch.yaml or user config dir)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn, error")

	rootCmd.AddCommand(newSoundsCmd(a))
	rootCmd.AddCommand(newURLCmd())
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// Execute runs the root command and releases logging and tracing
// resources afterwards.
func Execute(ctx context.Context) error {
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	a.teardown()
	return err
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipConfigAnnotation] == "true" {
		return nil
	}

	cfg, used, err := config.Load(viper.New(), a.cfgFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if _, err := log.ParseLevel(a.logLevel); err != nil {
			return err
		}
		cfg.Log.Level = a.logLevel
	}
	a.cfg, a.cfgUsed = cfg, used

	closeLog, err := log.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func(context.Context) error { return closeLog() })

	shutdown, err := tracing.Setup(cmd.Context(), cfg.Tracing, Version)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, shutdown)

	log.Debug(log.CatConfig, "Configuration ready", "config", used, "sounds_dir", cfg.SoundsDir)
	return nil
}

// teardown flushes tracing first so span export errors still reach the log.
func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "Shutdown failed", err)
		}
	}
	a.closers = nil
}

func (a *app) runSession(cmd *cobra.Command, args []string) error {
	cat, err := a.cfg.Catalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sess := session.New(session.Options{
		SoundsDir: a.cfg.SoundsDir,
		FolderID:  a.cfg.Drive.FolderID,
		Catalog:   cat,
		Resolver:  a.resolver(),
		Fetcher:   a.fetcher(out),
		Renderer:  a.renderer(),
		In:        cmd.InOrStdin(),
		Out:       out,
	})

	if _, err := sess.Run(cmd.Context()); err != nil {
		return fmt.Errorf("preparing sounds directory: %w", err)
	}
	return nil
}

func (a *app) resolver() source.Resolver {
	return source.Resolver{
		SupabaseBaseURL: a.cfg.Supabase.URL,
		SupabaseBucket:  a.cfg.Supabase.Bucket,
		Fallbacks:       a.cfg.Fallbacks,
	}
}

func (a *app) fetcher(out io.Writer) *fetch.Fetcher {
	return fetch.New(fetch.Options{
		Timeout:   a.cfg.Timeout,
		ChunkSize: a.cfg.ChunkSize,
		Out:       out,
	})
}

func (a *app) renderer() session.Renderer {
	r, err := session.NewRenderer(a.cfg.UI.Style)
	if err != nil {
		log.Warn(log.CatSession, "Falling back to plain instructions", "style", a.cfg.UI.Style, "error", err)
		return session.PlainRenderer{}
	}
	return r
}
