package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// TomlConfigFileName is the dedicated configuration file searched for
const TomlConfigFileName = ".prexpr.toml"

// PrexprTomlConfig represents the structure of .prexpr.toml. Pointer fields
// tell an absent key apart from a zero value.
type PrexprTomlConfig struct {
	Parse       PrexprTomlParseConfig       `toml:"parse"`
	Simplify    PrexprTomlSimplifyConfig    `toml:"simplify"`
	Output      PrexprTomlOutputConfig      `toml:"output"`
	Variables   map[string]int              `toml:"variables"`
	Input       PrexprTomlInputConfig       `toml:"input"`
	Performance PrexprTomlPerformanceConfig `toml:"performance"`
}

type PrexprTomlParseConfig struct {
	Strict *bool `toml:"strict"`
}

type PrexprTomlSimplifyConfig struct {
	Mode string `toml:"mode"`
}

type PrexprTomlOutputConfig struct {
	Format    string `toml:"format"`
	Notation  string `toml:"notation"`
	ShowStats *bool  `toml:"show_stats"`
}

type PrexprTomlInputConfig struct {
	Recursive       *bool    `toml:"recursive"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type PrexprTomlPerformanceConfig struct {
	MaxWorkers     int  `toml:"max_workers"`
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

// TomlConfigLoader handles TOML-only configuration loading
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig looks for .prexpr.toml in startDir and its parents. Defaults
// are returned when none exists.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, error) {
	configPath, err := findPrexprToml(startDir)
	if err != nil {
		return DefaultConfig(), nil
	}
	return l.LoadFile(configPath)
}

// LoadFile reads one TOML file and merges it into the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config, err := l.parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse toml config %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

func (l *TomlConfigLoader) parse(data []byte) (*Config, error) {
	var tomlConfig PrexprTomlConfig
	if err := toml.Unmarshal(data, &tomlConfig); err != nil {
		return nil, err
	}

	defaults := DefaultConfig()
	l.mergeTomlConfig(defaults, &tomlConfig)
	return defaults, nil
}

// findPrexprToml walks up the directory tree to find .prexpr.toml
func findPrexprToml(startDir string) (string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, TomlConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

// mergeTomlConfig merges .prexpr.toml values into defaults
func (l *TomlConfigLoader) mergeTomlConfig(defaults *Config, tc *PrexprTomlConfig) {
	if tc.Parse.Strict != nil {
		defaults.Parse.Strict = *tc.Parse.Strict
	}

	if tc.Simplify.Mode != "" {
		defaults.Simplify.Mode = tc.Simplify.Mode
	}

	if tc.Output.Format != "" {
		defaults.Output.Format = tc.Output.Format
	}
	if tc.Output.Notation != "" {
		defaults.Output.Notation = tc.Output.Notation
	}
	if tc.Output.ShowStats != nil {
		defaults.Output.ShowStats = *tc.Output.ShowStats
	}

	for name, value := range tc.Variables {
		defaults.Variables[name] = value
	}

	if tc.Input.Recursive != nil {
		defaults.Input.Recursive = *tc.Input.Recursive
	}
	if len(tc.Input.IncludePatterns) > 0 {
		defaults.Input.IncludePatterns = tc.Input.IncludePatterns
	}
	if len(tc.Input.ExcludePatterns) > 0 {
		defaults.Input.ExcludePatterns = tc.Input.ExcludePatterns
	}

	if tc.Performance.MaxWorkers != 0 {
		defaults.Performance.MaxWorkers = tc.Performance.MaxWorkers
	}
	if tc.Performance.TimeoutSeconds != nil {
		defaults.Performance.TimeoutSeconds = *tc.Performance.TimeoutSeconds
	}
}

// GetSupportedConfigFiles returns every configuration file name in order of
// precedence
func (l *TomlConfigLoader) GetSupportedConfigFiles() []string {
	return append([]string{TomlConfigFileName}, ConfigFileCandidates...)
}
