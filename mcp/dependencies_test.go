package mcp

import (
	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/config"
)

func NewTestDependencies(svc domain.ExpressionService, cfg *config.Config, path string) *Dependencies {
	return &Dependencies{
		service:    svc,
		config:     cfg,
		configPath: path,
	}
}
