package cmd

import (
	"errors"
	"strings"

	"github.com/atomicstack/gallery-tui/internal/app"
	"github.com/atomicstack/gallery-tui/internal/logging"
	"github.com/atomicstack/gallery-tui/internal/logging/events"
	uistate "github.com/atomicstack/gallery-tui/internal/ui/state"
	"github.com/spf13/cobra"
)

func newSearchCmd(rt *rootState) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "search <caption...>",
		Short: "Find the images closest to a caption",
		Long: `Submit one caption search and print the ranked results in backend order.
A failed search prints no results and still exits successfully; the
failure is written to the log.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			client, err := app.NewClient(rt.cfg.App)
			if err != nil {
				return err
			}
			session := uistate.NewSearchSession()
			req, ok := session.Submit(strings.Join(args, " "), rt.cfg.App.Limit)
			if !ok {
				events.Search.Rejected(strings.Join(args, " "))
				return errors.New("search query is empty")
			}
			events.Search.Submit(req.Token, req.Query, req.Limit)
			results, err := client.SimilarImages(cmd.Context(), req.Query, req.Limit)
			switch session.Resolve(req.Token, results, err) {
			case uistate.OutcomeFailed:
				events.Search.Failed(req.Token, err)
				logging.Error(err)
			case uistate.OutcomeActive:
				events.Search.Applied(req.Token, len(results))
			}

			active, _ := session.Searching()
			if err := writeString(cmd.ErrOrStderr(), active.StatusLine()+"\n"); err != nil {
				return err
			}
			if len(active.Results) == 0 && output == OutputTable {
				return nil
			}
			text, err := renderResults(active.Results, output)
			if err != nil {
				return err
			}
			return writeString(cmd.OutOrStdout(), text)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", OutputTable, "output format: table, json or yaml")
	return cmd
}
