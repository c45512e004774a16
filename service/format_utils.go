package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/prexpr/domain"
	"gopkg.in/yaml.v3"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data) + "\n", nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	var b strings.Builder
	if err := WriteYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	if err := enc.Close(); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 20
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
	ColorCyan   = "\x1b[36m"
	ColorBold   = "\x1b[1m"
)

// Stat is one labelled value in a summary section
type Stat struct {
	Label string
	Value interface{}
}

// FormatUtils provides shared text formatting helpers
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates formatting helpers; color enables ANSI codes
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{color: color}
}

// FormatMainHeader creates a title underlined with '='
func (f *FormatUtils) FormatMainHeader(title string) string {
	return title + "\n" + strings.Repeat("=", HeaderWidth) + "\n\n"
}

// FormatSectionHeader creates an upper-cased title underlined with '-'
func (f *FormatUtils) FormatSectionHeader(title string) string {
	return strings.ToUpper(title) + "\n" + strings.Repeat("-", len(title)) + "\n"
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabel right-aligns label to LabelWidth
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	padding := LabelWidth - len(label)
	if padding < 0 {
		padding = 0
	}
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", padding), label, value)
}

// FormatLabelWithIndent formats "label: value" after indent spaces
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatSummaryStats renders stats in the order given
func (f *FormatUtils) FormatSummaryStats(stats []Stat) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("Summary"))
	for _, s := range stats {
		builder.WriteString(f.FormatLabel(s.Label, s.Value))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection renders warnings; empty input renders nothing
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("Warnings"))
	for _, warning := range warnings {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, f.Colorize(ColorYellow, "warning"), warning))
	}
	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatPercentage formats a percentage value consistently
func (f *FormatUtils) FormatPercentage(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// Colorize wraps s in color when color output is enabled
func (f *FormatUtils) Colorize(color, s string) string {
	if !f.color {
		return s
	}
	return color + s + ColorReset
}
