// Package cmd wires the cobra command tree: the interactive browser on the
// root command plus headless list, search and upload commands.
package cmd

import (
	"os"

	"github.com/atomicstack/gallery-tui/internal/app"
	"github.com/atomicstack/gallery-tui/internal/config"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// StartHook observes the resolved configuration before a command runs.
type StartHook func(cfg config.Config)

// NewRootCmd builds the command tree. onStart may be nil.
func NewRootCmd(onStart StartHook) *cobra.Command {
	rt := &rootState{}
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Browse, search and upload images on a caption search backend",
		Long: `gallery is a terminal client for an image catalog served by a caption
search backend. Run without a subcommand to open the interactive browser.`,
		Example: `  # Open the browser against a tunnelled backend
  gallery --backend-url https://abc.ngrok.app

  # Print the three best matches for a caption
  gallery search --limit 3 sunset over the sea`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return rt.resolve(cmd, onStart)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), rt.cfg.App)
		},
	}
	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newListCmd(rt),
		newSearchCmd(rt),
		newUploadCmd(rt),
	)
	return cmd
}

// rootState carries the configuration resolved by the persistent pre-run to
// whichever command executes.
type rootState struct {
	cfg config.Config
}

func (rt *rootState) resolve(cmd *cobra.Command, onStart StartHook) error {
	cfg, err := config.Resolve(cmd.Flags(), os.Environ())
	if err != nil {
		return err
	}
	cfg.Args = append([]string(nil), os.Args[1:]...)
	if err := config.Validate(cfg); err != nil {
		return err
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if onStart != nil {
		onStart(cfg)
	}
	rt.cfg = cfg
	return nil
}
