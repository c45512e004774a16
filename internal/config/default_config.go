package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/ludo-technologies/prexpr/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config
// template. They come from the domain package.
type DefaultConfigValues struct {
	Strict          bool
	SimplifyMode    string
	Format          string
	Notation        string
	IncludePatterns []string
	MaxWorkers      int
	TimeoutSeconds  int
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		Strict:          true,
		SimplifyMode:    string(domain.SimplifyFancy),
		Format:          string(domain.OutputFormatText),
		Notation:        string(domain.NotationBoth),
		IncludePatterns: domain.DefaultIncludePatterns(),
		MaxWorkers:      domain.DefaultMaxWorkers,
		TimeoutSeconds:  domain.DefaultTimeoutSeconds,
	}
}

// GenerateDefaultConfigTOML renders the default config template with domain
// values and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return NewTomlConfigLoader().parse([]byte(configTOML))
}
