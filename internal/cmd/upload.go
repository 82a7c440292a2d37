package cmd

import (
	"fmt"

	"github.com/atomicstack/gallery-tui/internal/app"
	"github.com/atomicstack/gallery-tui/internal/backend"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/state"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newUploadCmd(rt *rootState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <file|glob>...",
		Short: "Upload images in a single request",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := backend.CollectFiles(args)
			if err != nil {
				return err
			}
			client, err := app.NewClient(rt.cfg.App)
			if err != nil {
				return err
			}
			names := make([]string, len(files))
			for i, f := range files {
				names[i] = f.Name
			}
			var job uistate.UploadJob
			if !job.Start(names, backend.TotalSize(files)) {
				events.Upload.Ignored("no files")
				return backend.ErrNoFiles
			}
			events.Upload.Start(len(files), job.Bytes)
			fmt.Fprintf(cmd.ErrOrStderr(), "Uploading %d %s (%s)…\n", len(files), plural(len(files), "file", "files"), humanize.Bytes(uint64(job.Bytes)))

			err = client.Upload(cmd.Context(), files)
			if !job.Finish(err) {
				events.Upload.Failed(err)
				logging.Error(err)
				return err
			}
			events.Upload.Done(len(files))

			catalog := state.NewCatalogStore()
			events.Catalog.LoadStart(catalog.BeginLoad())
			images, err := client.AllImages(cmd.Context())
			if !catalog.FinishLoad(images, err) {
				events.Catalog.Failed(err)
				logging.Error(err)
				return fmt.Errorf("uploaded %d %s but could not reload the catalog: %w", len(files), plural(len(files), "file", "files"), err)
			}
			events.Catalog.Loaded(catalog.Len(), false)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d %s; catalog now has %d %s\n",
				len(files), plural(len(files), "file", "files"),
				catalog.Len(), plural(catalog.Len(), "image", "images"))
			return err
		},
	}
	return cmd
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
