package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/rcpsp/internal/config"
	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// layoutFlag is shared by every command that builds a dataset.
type layoutFlag struct {
	value string
}

func (f *layoutFlag) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.value, "layout", "", "Row layout of the shared tables: stride or sequential (default from config)")
}

// resolve prefers the flag, then the config, then stride.
func (f *layoutFlag) resolve(cfg *config.Config) (domain.RowLayout, error) {
	layout := domain.Coalesce(f.value, cfg.Dataset.RowLayout, string(domain.LayoutStride))
	if !domain.ValidRowLayouts[layout] {
		return "", fmt.Errorf("invalid --layout %q: want stride or sequential", layout)
	}
	return domain.RowLayout(layout), nil
}

// solverFlags overrides the configured search limits.
type solverFlags struct {
	maxNodes  int64
	timeLimit time.Duration
	ties      bool
}

func (f *solverFlags) register(fs *pflag.FlagSet) {
	fs.Int64Var(&f.maxNodes, "max-nodes", 0, "Cap on search nodes, 0 for no cap (default from config)")
	fs.DurationVar(&f.timeLimit, "time-limit", 0, "Wall time limit such as 30s, 0 for none (default from config)")
	fs.BoolVar(&f.ties, "ties", true, "Report every solution tied with the best makespan")
}

// params applies the flags the user set on top of the configured values.
func (f *solverFlags) params(cmd *cobra.Command, cfg *config.Config) (cpsat.Params, error) {
	p := cfg.Solver.Params()
	flags := cmd.Flags()
	if flags.Changed("max-nodes") {
		if f.maxNodes < 0 {
			return p, fmt.Errorf("--max-nodes must be >= 0, got %d", f.maxNodes)
		}
		p.MaxNodes = f.maxNodes
	}
	if flags.Changed("time-limit") {
		if f.timeLimit < 0 {
			return p, fmt.Errorf("--time-limit must be >= 0, got %s", f.timeLimit)
		}
		p.TimeLimit = f.timeLimit
	}
	var ties *bool
	if flags.Changed("ties") {
		ties = &f.ties
	}
	p.ReportTies = domain.ValueOr(p.ReportTies, ties)
	return p, nil
}
