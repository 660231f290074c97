package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/poseview/internal/app"
)

var versionString = "dev"

// NewRootCmd builds the poseview command tree. Without a subcommand it runs
// the viewer.
func NewRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "poseview",
		Short: "Live 3D viewer for labelled pose streams",
		Long: `poseview connects to a websocket or redis stream of pose samples and
draws every label as trails, point history, a pose gizmo and fading
direction cones in the terminal.

Labels seen for the first time get a toggle but stay off until enabled;
enabling one replays everything received for it so far.`,
		Version: versionString,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := root.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/poseview/config.toml)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "prefs file (default ~/.config/poseview/prefs.toml)")
	flags.StringVar(&opts.Source, "source", "", "transport: websocket or redis")
	flags.StringVar(&opts.URL, "url", "", "websocket URL")
	flags.StringVar(&opts.RedisAddr, "redis-addr", "", "redis host:port")
	flags.StringVar(&opts.RedisStream, "stream", "", "redis stream key")
	flags.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve /metrics on this address")
	flags.StringVar(&opts.LogFile, "log-file", "", "log file path")

	root.AddCommand(
		newServeDummyCmd(),
		newGenCmd(),
		newFeedCmd(),
		newDumpCmd(),
	)
	return root
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// SetVersionInfo sets the version reported by --version.
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}
