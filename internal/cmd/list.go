package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/app"
	"github.com/atomicstack/gallery-tui/internal/gallery"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	"github.com/atomicstack/gallery-tui/internal/state"
	"github.com/noborus/ov/oviewer"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newListCmd(rt *rootState) *cobra.Command {
	var (
		match  string
		output string
		pager  bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the image catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			client, err := app.NewClient(rt.cfg.App)
			if err != nil {
				return err
			}
			catalog := state.NewCatalogStore()
			events.Catalog.LoadStart(catalog.BeginLoad())
			images, err := client.AllImages(cmd.Context())
			catalog.FinishLoad(images, err)
			if err := catalog.LastError(); err != nil {
				events.Catalog.Failed(err)
				logging.Error(err)
				return err
			}
			events.Catalog.Loaded(catalog.Len(), false)

			listed := gallery.Match(catalog.Images(), match)
			if len(listed) == 0 && output == OutputTable {
				return writeString(cmd.ErrOrStderr(), emptyCatalogText(catalog.Len(), match)+"\n")
			}
			text, err := renderImages(listed, output)
			if err != nil {
				return err
			}
			if pager && output == OutputTable && stdoutIsTerminal(cmd.OutOrStdout()) {
				return page(text)
			}
			return writeString(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().StringVarP(&match, "match", "m", "", "fuzzy-filter images by filename")
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&pager, "pager", false, "page the table through ov when stdout is a terminal")
	return cmd
}

func emptyCatalogText(total int, match string) string {
	if total == 0 {
		return "No images yet"
	}
	return fmt.Sprintf("No images match %q", strings.TrimSpace(match))
}

func stdoutIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// page hands text to the ov pager, which owns the terminal until it exits.
func page(text string) error {
	root, err := oviewer.NewRoot(strings.NewReader(text))
	if err != nil {
		return fmt.Errorf("start pager: %w", err)
	}
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)
	return root.Run()
}
