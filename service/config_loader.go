package service

import (
	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/config"
)

// Flag names consulted when merging command line values over configuration
const (
	FlagFormat    = "format"
	FlagJSON      = "json"
	FlagYAML      = "yaml"
	FlagCSV       = "csv"
	FlagNotation  = "notation"
	FlagStats     = "stats"
	FlagSimplify  = "simplify"
	FlagStrict    = "strict"
	FlagSet       = "set"
	FlagRecursive = "recursive"
	FlagInclude   = "include"
	FlagExclude   = "exclude"
	FlagWorkers   = "workers"
	FlagTimeout   = "timeout"
)

// ExpressionConfigLoaderImpl implements the ExpressionConfigLoader interface.
// Only flags recorded in its tracker override configuration values.
type ExpressionConfigLoaderImpl struct {
	flagTracker *config.FlagTracker
}

// NewExpressionConfigLoader creates a loader; explicitFlags names the
// command line flags the user set
func NewExpressionConfigLoader(explicitFlags map[string]bool) *ExpressionConfigLoaderImpl {
	return &ExpressionConfigLoaderImpl{
		flagTracker: config.NewFlagTrackerWithFlags(explicitFlags),
	}
}

// LoadConfig loads configuration from the specified path. An empty path
// runs configuration discovery.
func (c *ExpressionConfigLoaderImpl) LoadConfig(path string) (*domain.ExpressionRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return ConfigToRequest(cfg), nil
}

// LoadDefaultConfig returns the built-in defaults
func (c *ExpressionConfigLoaderImpl) LoadDefaultConfig() *domain.ExpressionRequest {
	return ConfigToRequest(config.DefaultConfig())
}

// MergeConfig merges CLI flags with configuration file
func (c *ExpressionConfigLoaderImpl) MergeConfig(base *domain.ExpressionRequest, override *domain.ExpressionRequest) *domain.ExpressionRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	ft := c.flagTracker

	// inputs and destinations always come from the command
	merged.Expressions = override.Expressions
	merged.Paths = override.Paths
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	if ft.WasSet(FlagFormat) || ft.WasSet(FlagJSON) || ft.WasSet(FlagYAML) || ft.WasSet(FlagCSV) {
		merged.OutputFormat = override.OutputFormat
	}
	merged.Notation = domain.Notation(ft.MergeString(string(base.Notation), string(override.Notation), FlagNotation))
	merged.ShowStats = ft.MergeBool(base.ShowStats, override.ShowStats, FlagStats)

	merged.SimplifyMode = domain.SimplifyMode(ft.MergeString(string(base.SimplifyMode), string(override.SimplifyMode), FlagSimplify))
	merged.Strict = ft.MergeBool(base.Strict, override.Strict, FlagStrict)
	merged.Bindings = ft.MergeBindings(base.Bindings, override.Bindings, FlagSet)

	merged.Recursive = ft.MergeBool(base.Recursive, override.Recursive, FlagRecursive)
	merged.IncludePatterns = ft.MergeStringSlice(base.IncludePatterns, override.IncludePatterns, FlagInclude)
	merged.ExcludePatterns = ft.MergeStringSlice(base.ExcludePatterns, override.ExcludePatterns, FlagExclude)

	merged.MaxWorkers = ft.MergeInt(base.MaxWorkers, override.MaxWorkers, FlagWorkers)
	merged.TimeoutSeconds = ft.MergeInt(base.TimeoutSeconds, override.TimeoutSeconds, FlagTimeout)

	return &merged
}

// ConfigToRequest converts internal config to a domain request
func ConfigToRequest(cfg *config.Config) *domain.ExpressionRequest {
	bindings := make(map[string]int, len(cfg.Variables))
	for name, value := range cfg.Variables {
		bindings[name] = value
	}

	return &domain.ExpressionRequest{
		OutputFormat:    domain.OutputFormat(cfg.Output.Format),
		Notation:        domain.Notation(cfg.Output.Notation),
		ShowStats:       cfg.Output.ShowStats,
		SimplifyMode:    domain.SimplifyMode(cfg.Simplify.Mode),
		Strict:          cfg.Parse.Strict,
		Bindings:        bindings,
		Recursive:       cfg.Input.Recursive,
		IncludePatterns: cfg.Input.IncludePatterns,
		ExcludePatterns: cfg.Input.ExcludePatterns,
		MaxWorkers:      cfg.Performance.MaxWorkers,
		TimeoutSeconds:  cfg.Performance.TimeoutSeconds,
	}
}

var _ domain.ExpressionConfigLoader = (*ExpressionConfigLoaderImpl)(nil)
