package cli

import (
	"fmt"

	"github.com/alexanderramin/rcpsp/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded solve runs",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Runs == nil {
				return ErrStoreDisabled
			}
			return nil
		},
	}

	cmd.AddCommand(
		newRunsListCmd(app),
		newRunsShowCmd(app),
		newRunsBrowseCmd(app),
		newRunsDeleteCmd(app),
	)

	return cmd
}

func newRunsListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Runs.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRuns(runs, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show, 0 for all")

	return cmd
}

func newRunsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Show a run and its ranked solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			run, err := app.Runs.Get(ctx, args[0])
			if err != nil {
				return err
			}
			solutions, err := app.Runs.Solutions(ctx, run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatRun(run, app.now()))
			fmt.Fprint(out, formatter.FormatRankedSolutions(solutions))
			if len(solutions) > 0 {
				fmt.Fprint(out, formatter.Header("Best Schedule")+"\n")
				fmt.Fprint(out, formatter.FormatGantt(solutions[0].Solution))
			}
			return nil
		},
	}
}

func newRunsBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse RUN_ID",
		Short: "Page through a run's ranked solutions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			run, err := app.Runs.Get(ctx, args[0])
			if err != nil {
				return err
			}
			solutions, err := app.Runs.Solutions(ctx, run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			browser := newSolutionBrowser(run, solutions)
			if !app.interactive() {
				// Without a terminal, print every page one after another.
				for i := range solutions {
					browser.current = i
					fmt.Fprintln(out, browser.header())
					fmt.Fprintln(out, browser.body())
				}
				if len(solutions) == 0 {
					fmt.Fprintln(out, browser.body())
				}
				return nil
			}

			p := tea.NewProgram(browser, tea.WithAltScreen(), tea.WithMouseCellMotion(),
				tea.WithContext(ctx), tea.WithOutput(out))
			_, err = p.Run()
			return err
		},
	}
}

func newRunsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete RUN_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a recorded run",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Runs.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", id)
			return nil
		},
	}
}
