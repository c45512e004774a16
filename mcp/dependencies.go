package mcp

import (
	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/config"
	"github.com/ludo-technologies/prexpr/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	service    domain.ExpressionService
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set. A nil cfg is loaded from
// configPath, falling back to discovery and then to defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			loaded = config.DefaultConfig()
		}
		cfg = loaded
	}

	return &Dependencies{
		service:    service.NewExpressionService(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Service returns the expression pipeline shared by all handlers.
func (d *Dependencies) Service() domain.ExpressionService {
	return d.service
}

// BaseRequest builds a single-expression request from the configuration.
// Tool arguments are layered on top by the handlers.
func (d *Dependencies) BaseRequest() domain.ExpressionRequest {
	cfg := d.config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	bindings := make(map[string]int, len(cfg.Variables))
	for k, v := range cfg.Variables {
		bindings[k] = v
	}

	return domain.ExpressionRequest{
		Notation:     domain.NotationBoth,
		SimplifyMode: domain.SimplifyMode(cfg.Simplify.Mode),
		Strict:       cfg.Parse.Strict,
		Bindings:     bindings,
		ShowStats:    cfg.Output.ShowStats,
		MaxWorkers:   1,
	}
}
