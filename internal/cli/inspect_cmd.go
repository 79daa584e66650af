package cli

import (
	"fmt"

	"github.com/alexanderramin/rcpsp/internal/cli/formatter"
	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/spf13/cobra"
)

func newInspectCmd(app *App) *cobra.Command {
	var layout layoutFlag
	var jobs bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the dataset tables of a file without solving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowLayout, err := layout.resolve(app.config())
			if err != nil {
				return err
			}

			loaded, err := app.Datasets.Load(cmd.Context(), args[0], service.LoadOptions{Layout: rowLayout})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ds := loaded.Dataset
			fmt.Fprint(out, formatter.FormatDataset(ds))
			if jobs {
				for _, p := range ds.Projects {
					fmt.Fprint(out, formatter.FormatJobs(p, ds.Resources))
				}
			}
			return nil
		},
	}

	layout.register(cmd.Flags())
	cmd.Flags().BoolVar(&jobs, "jobs", false, "Also print each project's job table")

	return cmd
}
