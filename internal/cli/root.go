// Package cli holds the cobra commands: the default command opens the window,
// run downloads a list headless in the terminal.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ytget/songbatch/internal/config"
	"github.com/ytget/songbatch/internal/download"
	"github.com/ytget/songbatch/internal/logging"
	"github.com/ytget/songbatch/internal/observability"
	"github.com/ytget/songbatch/internal/platform"
	"github.com/ytget/songbatch/internal/tracklist"
	"github.com/ytget/songbatch/internal/ui"
)

// Version is set during build via -ldflags "-X github.com/ytget/songbatch/internal/cli.Version=X.Y.Z"
var Version = "dev"

// runtime wires the services shared by every command
type runtime struct {
	env     *config.Env
	fetcher download.Fetcher
	metrics *observability.Metrics
	loader  *tracklist.Loader
	service *download.Service
	closer  io.Closer
}

// NewRootCmd builds the command tree. A nil fetcher selects yt-dlp.
func NewRootCmd(env *config.Env, fetcher download.Fetcher) *cobra.Command {
	rt := &runtime{env: env, fetcher: fetcher}

	cmd := &cobra.Command{
		Use:          "songbatch",
		Short:        "Download a list of songs from YouTube as audio or video",
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup(cmd.Context(), cmd.Name() == runCmdName)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.Run(cmd.Context(), rt.service, rt.loader, Version)
		},
	}

	cmd.PersistentFlags().StringVar(&env.Log.Level, "log-level", env.Log.Level, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&env.Log.File, "log-file", env.Log.File, "Append-only log file")
	cmd.PersistentFlags().StringVar(&env.Metrics.Addr, "metrics-addr", env.Metrics.Addr, "Serve Prometheus metrics on this address")

	cmd.AddCommand(newRunCmd(rt), newVersionCmd())
	return cmd
}

// Execute runs the command tree with the process context
func Execute(ctx context.Context, env *config.Env) error {
	return NewRootCmd(env, nil).ExecuteContext(ctx)
}

// setup initializes logging, metrics and the download service
func (rt *runtime) setup(ctx context.Context, console bool) error {
	closer, err := logging.Init(logging.Options{
		File:    rt.env.Log.File,
		Level:   rt.env.Log.Level,
		Console: console,
	})
	rt.closer = closer
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log := logging.GetLogger("cli")

	rt.metrics = observability.New()
	if addr := rt.env.Metrics.Addr; addr != "" {
		go func() {
			if err := rt.metrics.Serve(ctx, addr); err != nil {
				log.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
			}
		}()
		log.Info().Str("addr", addr).Msg("Serving metrics")
	}

	if rt.fetcher == nil {
		if rt.env.Job.InstallYTDLP {
			path, err := platform.EnsureYTDLP(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("yt-dlp or ffmpeg is not available, downloads will fail")
			} else {
				log.Info().Str("path", path).Msg("Using yt-dlp")
			}
		}
		rt.fetcher = download.NewYTDLPFetcher(rt.env.Job)
	}

	rt.loader = tracklist.NewLoader(rt.env.Source, platform.NewPlaylistService())
	rt.service = download.NewService(rt.fetcher, rt.loader, rt.metrics, rt.env.Job.SpeedPollInterval)
	return nil
}

func (rt *runtime) close() error {
	if rt.closer == nil {
		return nil
	}
	return rt.closer.Close()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// No services are needed to print the version
		PersistentPreRunE:  func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "songbatch %s\n", Version)
		},
	}
}
