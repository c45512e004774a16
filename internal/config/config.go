package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/expr"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	// Parse holds parser options
	Parse ParseConfig `mapstructure:"parse" yaml:"parse"`

	// Simplify holds simplification options
	Simplify SimplifyConfig `mapstructure:"simplify" yaml:"simplify"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Variables are bound before simplification
	Variables map[string]int `mapstructure:"variables" yaml:"variables"`

	// Input holds file discovery configuration
	Input InputConfig `mapstructure:"input" yaml:"input"`

	// Performance bounds a processing run
	Performance PerformanceConfig `mapstructure:"performance" yaml:"performance"`
}

// ParseConfig holds parser options
type ParseConfig struct {
	// Strict rejects input with tokens left over after a complete expression
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// SimplifyConfig holds simplification options
type SimplifyConfig struct {
	// Mode is one of none, basic, fancy
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" yaml:"format"`

	// Notation is one of prefix, infix, both
	Notation string `mapstructure:"notation" yaml:"notation"`

	// ShowStats adds tree size metrics to every result
	ShowStats bool `mapstructure:"show_stats" yaml:"show_stats"`
}

// InputConfig holds file discovery configuration
type InputConfig struct {
	// IncludePatterns specifies file patterns to include
	IncludePatterns []string `mapstructure:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns specifies file patterns to exclude
	ExcludePatterns []string `mapstructure:"exclude_patterns" yaml:"exclude_patterns"`

	// Recursive controls whether directories are walked recursively
	Recursive bool `mapstructure:"recursive" yaml:"recursive"`
}

// PerformanceConfig bounds a processing run
type PerformanceConfig struct {
	// MaxWorkers bounds how many chunks of expressions run at once
	MaxWorkers int `mapstructure:"max_workers" yaml:"max_workers"`

	// TimeoutSeconds bounds a whole run; 0 disables the limit
	TimeoutSeconds int `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict: true,
		},
		Simplify: SimplifyConfig{
			Mode: string(domain.SimplifyFancy),
		},
		Output: OutputConfig{
			Format:   string(domain.OutputFormatText),
			Notation: string(domain.NotationBoth),
		},
		Variables: map[string]int{},
		Input: InputConfig{
			IncludePatterns: domain.DefaultIncludePatterns(),
			ExcludePatterns: []string{},
			Recursive:       true,
		},
		Performance: PerformanceConfig{
			MaxWorkers:     domain.DefaultMaxWorkers,
			TimeoutSeconds: domain.DefaultTimeoutSeconds,
		},
	}
}

// LoadConfig loads configuration from file or returns default config. An
// empty path searches for .prexpr.toml upwards from the working directory,
// then for YAML or JSON files in the working and home directories.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		cwd, err := os.Getwd()
		if err == nil {
			if tomlPath, err := findPrexprToml(cwd); err == nil {
				configPath = tomlPath
			}
		}
	}
	if configPath == "" {
		configPath = findDefaultConfig()
	}
	if configPath == "" {
		return DefaultConfig(), nil
	}

	if strings.EqualFold(filepath.Ext(configPath), ".toml") {
		return NewTomlConfigLoader().LoadFile(configPath)
	}
	return loadViperConfig(configPath)
}

func loadViperConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// viper folds keys to lower case; variable names are case sensitive
	variables, err := readVariables(configPath)
	if err != nil {
		return nil, err
	}
	if variables != nil {
		config.Variables = variables
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// readVariables decodes only the variables section, keeping key case. YAML
// is a superset of JSON so both file kinds go through yaml.v3.
func readVariables(configPath string) (map[string]int, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var section struct {
		Variables map[string]int `yaml:"variables"`
	}
	if err := yaml.Unmarshal(data, &section); err != nil {
		return nil, fmt.Errorf("failed to decode variables in %s: %w", configPath, err)
	}
	return section.Variables, nil
}

// ConfigFileCandidates lists the YAML and JSON file names searched for
var ConfigFileCandidates = []string{
	".prexpr.yaml",
	".prexpr.yml",
	"prexpr.yaml",
	"prexpr.yml",
	".prexpr.json",
	"prexpr.json",
}

// findDefaultConfig looks for default configuration files in common locations
func findDefaultConfig() string {
	for _, candidate := range ConfigFileCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		for _, candidate := range ConfigFileCandidates {
			path := filepath.Join(home, candidate)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if !domain.SimplifyMode(c.Simplify.Mode).IsValid() {
		return fmt.Errorf("invalid simplify.mode '%s', must be one of: none, basic, fancy", c.Simplify.Mode)
	}

	if !domain.OutputFormat(c.Output.Format).IsValid() {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml, csv", c.Output.Format)
	}

	if !domain.Notation(c.Output.Notation).IsValid() {
		return fmt.Errorf("invalid output.notation '%s', must be one of: prefix, infix, both", c.Output.Notation)
	}

	if len(c.Input.IncludePatterns) == 0 {
		return fmt.Errorf("input.include_patterns cannot be empty")
	}

	if c.Performance.MaxWorkers < 1 {
		return fmt.Errorf("performance.max_workers must be >= 1, got %d", c.Performance.MaxWorkers)
	}

	if c.Performance.TimeoutSeconds < 0 {
		return fmt.Errorf("performance.timeout_seconds must be >= 0, got %d", c.Performance.TimeoutSeconds)
	}

	for name := range c.Variables {
		if err := ValidateVariableName(name); err != nil {
			return fmt.Errorf("variables: %w", err)
		}
	}

	return nil
}

// ValidateVariableName rejects names that could never match a single
// variable token: empty names, names containing whitespace, operators and
// integer literals.
func ValidateVariableName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("variable name cannot be empty")
	case strings.ContainsAny(name, " \t\r\n"):
		return fmt.Errorf("variable name %q contains whitespace", name)
	case expr.IsOperator(name):
		return fmt.Errorf("variable name %q is an operator", name)
	case expr.IsNumeric(name):
		return fmt.Errorf("variable name %q is an integer literal", name)
	}
	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("parse", config.Parse)
	v.Set("simplify", config.Simplify)
	v.Set("output", config.Output)
	v.Set("input", config.Input)
	v.Set("performance", config.Performance)

	if err := v.WriteConfig(); err != nil {
		return err
	}
	if len(config.Variables) == 0 {
		return nil
	}
	return appendVariables(path, config.Variables)
}

// appendVariables writes the variables section with yaml.v3 so their case
// survives
func appendVariables(path string, variables map[string]int) error {
	data, err := yaml.Marshal(map[string]map[string]int{"variables": variables})
	if err != nil {
		return fmt.Errorf("failed to encode variables: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
