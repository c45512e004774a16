package service

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionConfigLoader_LoadDefaultConfig(t *testing.T) {
	req := NewExpressionConfigLoader(nil).LoadDefaultConfig()
	require.NotNil(t, req)

	assert.Equal(t, domain.SimplifyFancy, req.SimplifyMode)
	assert.Equal(t, domain.NotationBoth, req.Notation)
	assert.True(t, req.Strict)
	assert.Equal(t, domain.DefaultMaxWorkers, req.MaxWorkers)
	assert.Empty(t, req.Bindings)
}

func TestExpressionConfigLoader_LoadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ".prexpr.toml")
	require.NoError(t, os.WriteFile(configPath, []byte(`[simplify]
mode = "basic"

[variables]
Rate = 4
`), 0644))

	req, err := NewExpressionConfigLoader(nil).LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, domain.SimplifyBasic, req.SimplifyMode)
	assert.Equal(t, map[string]int{"Rate": 4}, req.Bindings)
}

func TestExpressionConfigLoader_LoadConfigError(t *testing.T) {
	_, err := NewExpressionConfigLoader(nil).LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeConfigError, de.Code)
}

func TestExpressionConfigLoader_MergeConfig(t *testing.T) {
	base := domain.DefaultExpressionRequest()
	base.SimplifyMode = domain.SimplifyBasic
	base.Bindings = map[string]int{"x": 1, "y": 2}
	base.MaxWorkers = 8

	var out bytes.Buffer
	override := &domain.ExpressionRequest{
		Expressions:  []string{"+ x y"},
		Paths:        []string{"exprs"},
		OutputWriter: &out,
		OutputFormat: domain.OutputFormatJSON,
		SimplifyMode: domain.SimplifyNone,
		Notation:     domain.NotationPrefix,
		Bindings:     map[string]int{"y": 7},
		MaxWorkers:   1,
	}

	t.Run("unset flags keep configuration", func(t *testing.T) {
		merged := NewExpressionConfigLoader(nil).MergeConfig(base, override)

		assert.Equal(t, []string{"+ x y"}, merged.Expressions)
		assert.Equal(t, []string{"exprs"}, merged.Paths)
		assert.Equal(t, &out, merged.OutputWriter)
		assert.Equal(t, domain.OutputFormatText, merged.OutputFormat)
		assert.Equal(t, domain.SimplifyBasic, merged.SimplifyMode)
		assert.Equal(t, domain.NotationBoth, merged.Notation)
		assert.Equal(t, map[string]int{"x": 1, "y": 2}, merged.Bindings)
		assert.Equal(t, 8, merged.MaxWorkers)
	})

	t.Run("explicit flags win", func(t *testing.T) {
		loader := NewExpressionConfigLoader(map[string]bool{
			FlagJSON: true, FlagSimplify: true, FlagNotation: true, FlagSet: true, FlagWorkers: true,
		})
		merged := loader.MergeConfig(base, override)

		assert.Equal(t, domain.OutputFormatJSON, merged.OutputFormat)
		assert.Equal(t, domain.SimplifyNone, merged.SimplifyMode)
		assert.Equal(t, domain.NotationPrefix, merged.Notation)
		assert.Equal(t, map[string]int{"x": 1, "y": 7}, merged.Bindings)
		assert.Equal(t, 1, merged.MaxWorkers)
		assert.Equal(t, map[string]int{"x": 1, "y": 2}, base.Bindings)
	})

	t.Run("nil sides", func(t *testing.T) {
		loader := NewExpressionConfigLoader(nil)
		assert.Equal(t, override, loader.MergeConfig(nil, override))
		assert.Equal(t, base, loader.MergeConfig(base, nil))
	})
}
