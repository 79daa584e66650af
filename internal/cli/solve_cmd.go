package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/chart"
	"github.com/alexanderramin/rcpsp/internal/cli/formatter"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/fsutil"
	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/spf13/cobra"
)

type solveFlags struct {
	save    bool
	saveDir string
	chart   string
	noStore bool
	pick    bool
	layout  layoutFlag
	solver  solverFlags
}

// solveJob carries the resolved options of one solve invocation.
type solveJob struct {
	app     *App
	out     io.Writer
	errOut  io.Writer
	load    service.LoadOptions
	solve   service.SolveOptions
	chart   string
	batch   bool
	details map[string]string
}

func newSolveCmd(app *App) *cobra.Command {
	var f solveFlags

	cmd := &cobra.Command{
		Use:   "solve PATH",
		Short: "Schedule a dataset file, or every .txt dataset under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()

			layout, err := f.layout.resolve(cfg)
			if err != nil {
				return err
			}
			params, err := f.solver.params(cmd, cfg)
			if err != nil {
				return err
			}

			root := args[0]
			paths, err := fsutil.ResolveDatasets(root)
			if err != nil {
				return err
			}
			info, err := os.Stat(root)
			if err != nil {
				return err
			}
			batch := info.IsDir()

			if batch && f.pick && app.interactive() {
				paths, err = pickDatasets(root, paths)
				if err != nil {
					return err
				}
			}
			if len(paths) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No datasets to solve."))
				return nil
			}

			job := &solveJob{
				app:    app,
				out:    cmd.OutOrStdout(),
				errOut: cmd.ErrOrStderr(),
				load: service.LoadOptions{
					Layout:  layout,
					Save:    f.save,
					SaveDir: domain.Coalesce(f.saveDir, cfg.Dataset.SaveDir),
				},
				solve: service.SolveOptions{
					Params: params,
					Store:  cfg.Store.Enabled && !f.noStore,
					Layout: layout,
				},
				chart:   f.chart,
				batch:   batch,
				details: make(map[string]string),
			}

			if !batch {
				return job.run(cmd.Context(), paths[0])
			}

			items := app.batch().Run(cmd.Context(), paths, job.run)
			fmt.Fprint(job.out, formatter.FormatBatchSummary(root, items, job.details))
			if failed := service.Failed(items); failed > 0 {
				return fmt.Errorf("%d of %d datasets failed", failed, len(items))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&f.save, "save", false, "Save the parsed sections of each dataset as JSON")
	fs.StringVar(&f.saveDir, "save-dir", "", "Directory for --save output (default: next to the dataset)")
	fs.StringVar(&f.chart, "chart", "", "Write an HTML chart of the best schedule to this file")
	fs.BoolVar(&f.noStore, "no-store", false, "Do not record the run in the history database")
	fs.BoolVar(&f.pick, "pick", false, "Choose which datasets of a directory to solve")
	f.layout.register(fs)
	f.solver.register(fs)

	return cmd
}

// run loads, solves and prints one dataset.
func (j *solveJob) run(ctx context.Context, path string) error {
	if j.batch {
		fmt.Fprintf(j.out, "%s %s\n\n", formatter.Bold("Dataset:"), path)
	}

	loaded, err := j.app.Datasets.Load(ctx, path, j.load)
	if err != nil {
		return err
	}
	if loaded.SavedTo != "" {
		fmt.Fprintf(j.out, "Data saved to %s\n\n", loaded.SavedTo)
	}
	ds := loaded.Dataset
	fmt.Fprint(j.out, formatter.FormatDataset(ds))

	opts := j.solve
	opts.SourcePath = path
	stop := func() {}
	if j.app.interactive() {
		stop = formatter.StartSpinner(j.errOut, "Solving "+ds.Name+"...")
	}
	outcome, err := j.app.Solver.Solve(ctx, ds, opts)
	stop()
	if err != nil {
		return err
	}

	res := outcome.Result
	fmt.Fprint(j.out, formatter.FormatMakespans(res.Solutions))
	fmt.Fprint(j.out, formatter.FormatSolveSummary(res))
	if outcome.Report != nil {
		fmt.Fprint(j.out, formatter.FormatReport(outcome.Report))
		fmt.Fprint(j.out, formatter.FormatPeakLoad(outcome.Report, ds.Resources))
	}

	if j.chart != "" && outcome.Report != nil {
		target := chartPath(j.chart, path, j.batch)
		if err := chart.WriteFile(target, ds.Name, outcome.Report); err != nil {
			return err
		}
		fmt.Fprintf(j.out, "Chart written to %s\n", target)
	}
	if outcome.Stored {
		fmt.Fprintf(j.out, "Run %s recorded.\n", formatter.Bold(outcome.Run.ShortID()))
	}
	fmt.Fprintln(j.out)

	j.details[path] = detailFor(res.Status, res.ObjectiveValue)
	return nil
}

// chartPath returns target for a single dataset. In a batch each dataset
// gets target's name with the dataset's base name appended.
func chartPath(target, dataset string, batch bool) string {
	if !batch {
		return target
	}
	ext := filepath.Ext(target)
	if ext == "" {
		ext = ".html"
	}
	base := strings.TrimSuffix(filepath.Base(dataset), filepath.Ext(dataset))
	return strings.TrimSuffix(target, filepath.Ext(target)) + "-" + base + ext
}

func detailFor(status domain.SolveStatus, objective int) string {
	if status.HasSolution() {
		return fmt.Sprintf("%s, makespan %d", status, objective)
	}
	return string(status)
}
