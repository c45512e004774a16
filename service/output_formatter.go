package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ludo-technologies/prexpr/domain"
)

// OutputFormatterImpl implements the ExpressionFormatter interface
type OutputFormatterImpl struct {
	color bool
}

// NewOutputFormatter creates a new output formatter service
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WithColor enables ANSI colors in text output
func (f *OutputFormatterImpl) WithColor(color bool) *OutputFormatterImpl {
	f.color = color
	return f
}

// Format formats the response according to the specified format
func (f *OutputFormatterImpl) Format(response *domain.ExpressionResponse, format domain.OutputFormat) (string, error) {
	if response == nil {
		return "", domain.NewOutputError("no response to format", nil)
	}
	switch format {
	case domain.OutputFormatText:
		return f.formatText(response), nil
	case domain.OutputFormatJSON:
		return EncodeJSON(response)
	case domain.OutputFormatYAML:
		return EncodeYAML(response)
	case domain.OutputFormatCSV:
		return f.formatCSV(response)
	default:
		return "", domain.NewUnsupportedFormatError(string(format))
	}
}

// Write writes the formatted output to the writer
func (f *OutputFormatterImpl) Write(response *domain.ExpressionResponse, format domain.OutputFormat, writer io.Writer) error {
	output, err := f.Format(response, format)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(writer, output); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// formatText formats the response as human-readable text
func (f *OutputFormatterImpl) formatText(response *domain.ExpressionResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.color)

	builder.WriteString(utils.FormatMainHeader("Expression Report"))

	if len(response.Results) > 0 {
		builder.WriteString(utils.FormatSectionHeader("Results"))
		for _, r := range response.Results {
			f.writeTextResult(&builder, utils, r)
		}
		builder.WriteString(utils.FormatSectionSeparator())
	}

	s := response.Summary
	stats := []Stat{
		{"Expressions", s.Total},
		{"Valid", s.Valid},
		{"Invalid", s.Invalid},
	}
	if s.Failed > 0 {
		stats = append(stats, Stat{"Failed", s.Failed})
	}
	stats = append(stats, Stat{"Simplified", s.Changed}, Stat{"Evaluated", s.Evaluated})
	if s.FilesProcessed > 0 {
		stats = append(stats, Stat{"Files", s.FilesProcessed})
	}
	builder.WriteString(utils.FormatSummaryStats(stats))

	builder.WriteString(utils.FormatWarningsSection(response.Warnings))

	if parsedTime, err := time.Parse(time.RFC3339, response.GeneratedAt); err == nil {
		builder.WriteString(utils.FormatSectionHeader("Metadata"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Generated at", parsedTime.Format(time.RFC3339)))
		if response.Version != "" {
			builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Version", response.Version))
		}
	}

	return builder.String()
}

func (f *OutputFormatterImpl) writeTextResult(b *strings.Builder, utils *FormatUtils, r domain.ExpressionResult) {
	status := utils.Colorize(ColorGreen, "ok")
	if r.Error != "" {
		status = utils.Colorize(ColorRed, "error")
	}
	fmt.Fprintf(b, "[%s] %s  %s\n", status, r.Label, r.Source)

	if r.Prefix != "" {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "prefix", r.Prefix))
	}
	if r.Infix != "" {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "infix", r.Infix))
	}
	if r.SimplifiedPrefix != "" {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "simplified", r.SimplifiedPrefix))
	}
	if r.SimplifiedInfix != "" {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "simplified infix", r.SimplifiedInfix))
	}
	if r.Value != nil {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "value", utils.Colorize(ColorCyan, strconv.Itoa(*r.Value))))
	}
	if len(r.FreeVariables) > 0 {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "free variables", strings.Join(r.FreeVariables, ", ")))
	}
	if r.Stats != nil {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "stats", fmt.Sprintf(
			"nodes=%d height=%d operators=%d constants=%d variables=%d",
			r.Stats.Nodes, r.Stats.Height, r.Stats.Operators, r.Stats.Constants, r.Stats.Variables)))
	}
	if r.Error != "" {
		b.WriteString(utils.FormatLabelWithIndent(ItemPadding, "error", r.Error))
	}
}

// CSVHeader lists the columns written by the CSV format
var CSVHeader = []string{
	"label", "source", "valid", "prefix", "infix",
	"simplified_prefix", "simplified_infix", "value", "free_variables",
	"nodes", "height", "error_code", "error",
}

// formatCSV writes one row per result
func (f *OutputFormatterImpl) formatCSV(response *domain.ExpressionResponse) (string, error) {
	var builder strings.Builder
	writer := csv.NewWriter(&builder)

	if err := writer.Write(CSVHeader); err != nil {
		return "", domain.NewOutputError("failed to write CSV header", err)
	}

	for _, r := range response.Results {
		value := ""
		if r.Value != nil {
			value = strconv.Itoa(*r.Value)
		}
		nodes, height := "", ""
		if r.Stats != nil {
			nodes = strconv.Itoa(r.Stats.Nodes)
			height = strconv.Itoa(r.Stats.Height)
		}
		row := []string{
			r.Label,
			r.Source,
			strconv.FormatBool(r.Valid),
			r.Prefix,
			r.Infix,
			r.SimplifiedPrefix,
			r.SimplifiedInfix,
			value,
			strings.Join(r.FreeVariables, " "),
			nodes,
			height,
			r.ErrorCode,
			r.Error,
		}
		if err := writer.Write(row); err != nil {
			return "", domain.NewOutputError("failed to write CSV row", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", domain.NewOutputError("CSV writer error", err)
	}

	return builder.String(), nil
}
