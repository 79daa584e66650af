package cli

import (
	"errors"
	"time"

	"github.com/alexanderramin/rcpsp/internal/config"
	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/spf13/cobra"
)

// ErrStoreDisabled is returned by run history commands when no run store is
// wired.
var ErrStoreDisabled = errors.New("run history is disabled (store.enabled is false)")

// App holds references to the services and settings used by CLI commands.
type App struct {
	Datasets service.DatasetService
	Solver   service.SolveService
	// Runs is nil when the run store is disabled.
	Runs   service.RunService
	Batch  *service.BatchRunner
	Config *config.Config

	// IsInteractive reports whether the process is attached to a terminal.
	// When nil the CLI assumes it is not.
	IsInteractive func() bool
	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) batch() *service.BatchRunner {
	if a.Batch == nil {
		return service.NewBatchRunner()
	}
	return a.Batch
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		return config.Default()
	}
	return a.Config
}

// NewRootCmd creates the top-level "rcpsp" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rcpsp",
		Short:         "Multi-project resource-constrained project scheduler",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Read by main before the command tree is built; declared here so
	// cobra accepts it and lists it in help.
	root.PersistentFlags().String(ConfigFlag, "", "Path to a YAML or JSON config file")

	root.AddCommand(
		newSolveCmd(app),
		newParseCmd(app),
		newInspectCmd(app),
		newRunsCmd(app),
	)

	return root
}

// ConfigFlag is the name of the persistent config file flag.
const ConfigFlag = "config"
