package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alexanderramin/rcpsp/internal/cpsat"
	"github.com/alexanderramin/rcpsp/internal/domain"
	"github.com/alexanderramin/rcpsp/internal/logging"
)

const (
	// EnvPrefix scopes environment overrides: RCPSP_SOLVER__MAX_NODES sets
	// solver.max_nodes.
	EnvPrefix = "RCPSP_"
	// EnvConfigPath names a config file when --config is not given.
	EnvConfigPath = "RCPSP_CONFIG"
)

type Config struct {
	DB      DBConfig      `json:"db"`
	Log     LogConfig     `json:"log"`
	Solver  SolverConfig  `json:"solver"`
	Dataset DatasetConfig `json:"dataset"`
	Store   StoreConfig   `json:"store"`
}

type DBConfig struct {
	Path string `json:"path"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type SolverConfig struct {
	MaxNodes         int64 `json:"max_nodes"`
	TimeLimitMS      int   `json:"time_limit_ms"`
	ReportTies       bool  `json:"report_ties"`
	MaxTiedSolutions int   `json:"max_tied_solutions"`
}

// Params converts the solver section into engine parameters.
func (s SolverConfig) Params() cpsat.Params {
	return cpsat.Params{
		MaxNodes:         s.MaxNodes,
		TimeLimit:        time.Duration(s.TimeLimitMS) * time.Millisecond,
		ReportTies:       s.ReportTies,
		MaxTiedSolutions: s.MaxTiedSolutions,
	}
}

type DatasetConfig struct {
	RowLayout string `json:"row_layout"`
	// SaveDir receives parsed-section JSON files; empty means next to the
	// source file.
	SaveDir string `json:"save_dir"`
}

type StoreConfig struct {
	Enabled bool `json:"enabled"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	engine := cpsat.DefaultParams()
	return &Config{
		Log: LogConfig{Level: "info", Format: logging.FormatText},
		Solver: SolverConfig{
			MaxNodes:         engine.MaxNodes,
			ReportTies:       engine.ReportTies,
			MaxTiedSolutions: engine.MaxTiedSolutions,
		},
		Dataset: DatasetConfig{RowLayout: string(domain.LayoutStride)},
		Store:   StoreConfig{Enabled: true},
	}
}

// DefaultDBPath returns ~/.rcpsp/rcpsp.db.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".rcpsp", "rcpsp.db"), nil
}

// Load layers defaults, the optional config file at path (or the file named
// by RCPSP_CONFIG) and RCPSP_ environment overrides, then validates.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	k := koanf.New(".")
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.DB.Path == "" {
		p, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DB.Path = p
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
	}
}

// envKey maps RCPSP_SOLVER__MAX_NODES to solver.max_nodes. RCPSP_CONFIG is
// the file pointer, not a key.
func envKey(s string) string {
	if s == EnvConfigPath {
		return ""
	}
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Log.Format) {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format: must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format))
	}
	if c.Solver.MaxNodes < 0 {
		errs = append(errs, fmt.Errorf("solver.max_nodes: must be >= 0, got %d", c.Solver.MaxNodes))
	}
	if c.Solver.TimeLimitMS < 0 {
		errs = append(errs, fmt.Errorf("solver.time_limit_ms: must be >= 0, got %d", c.Solver.TimeLimitMS))
	}
	if c.Solver.ReportTies && c.Solver.MaxTiedSolutions < 1 {
		errs = append(errs, fmt.Errorf("solver.max_tied_solutions: must be >= 1 when ties are reported, got %d", c.Solver.MaxTiedSolutions))
	}
	if !domain.ValidRowLayouts[c.Dataset.RowLayout] {
		errs = append(errs, fmt.Errorf("dataset.row_layout: unknown layout %q", c.Dataset.RowLayout))
	}
	if c.Store.Enabled && c.DB.Path == "" {
		errs = append(errs, errors.New("db.path: required when store.enabled is true"))
	}
	return errors.Join(errs...)
}
