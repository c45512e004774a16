package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func intValue(v int) *int {
	return &v
}

func createTestExpressionResponse() *domain.ExpressionResponse {
	return &domain.ExpressionResponse{
		Results: []domain.ExpressionResult{
			{
				Label:            "exprs.prefix:1",
				Source:           "+ 2 * 3 4",
				Valid:            true,
				Prefix:           "+ 2 * 3 4",
				Infix:            "(2+(3*4))",
				SimplifiedPrefix: "14",
				SimplifiedInfix:  "14",
				Changed:          true,
				Value:            intValue(14),
				Stats:            &domain.ExpressionStats{Nodes: 1},
			},
			{
				Label:            "exprs.prefix:2",
				Source:           "+ - 2 2 c",
				Valid:            true,
				Prefix:           "+ - 2 2 c",
				Infix:            "((2-2)+c)",
				SimplifiedPrefix: "c",
				SimplifiedInfix:  "c",
				Changed:          true,
				FreeVariables:    []string{"c"},
			},
			{
				Label:     "exprs.prefix:3",
				Source:    "+ 1",
				ErrorCode: domain.ErrCodeMalformedExpression,
				Error:     "parse: malformed expression: operator \"+\" is missing its right operand",
			},
		},
		Summary: domain.ExpressionSummary{
			Total: 3, Valid: 2, Invalid: 1, Changed: 2, Evaluated: 1, FilesProcessed: 1,
		},
		Warnings:    []string{"no expressions found in empty.prefix"},
		Errors:      []string{"[exprs.prefix:3] malformed"},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Format(time.RFC3339),
		Version:     "1.0.0",
		Config:      map[string]interface{}{"simplify_mode": "fancy"},
	}
}

func TestOutputFormatter_Text(t *testing.T) {
	out, err := NewOutputFormatter().Format(createTestExpressionResponse(), domain.OutputFormatText)
	require.NoError(t, err)

	assert.Contains(t, out, "Expression Report")
	assert.Contains(t, out, "[ok] exprs.prefix:1  + 2 * 3 4")
	assert.Contains(t, out, "infix: (2+(3*4))")
	assert.Contains(t, out, "simplified: 14")
	assert.Contains(t, out, "value: 14")
	assert.Contains(t, out, "free variables: c")
	assert.Contains(t, out, "stats: nodes=1 height=0")
	assert.Contains(t, out, "[error] exprs.prefix:3  + 1")
	assert.Contains(t, out, "Expressions: 3")
	assert.Contains(t, out, "no expressions found in empty.prefix")
	assert.Contains(t, out, "Generated at: 2026-01-02T03:04:05Z")
	assert.NotContains(t, out, ColorReset)
}

func TestOutputFormatter_TextColor(t *testing.T) {
	out, err := NewOutputFormatter().WithColor(true).Format(createTestExpressionResponse(), domain.OutputFormatText)
	require.NoError(t, err)
	assert.Contains(t, out, ColorGreen+"ok"+ColorReset)
	assert.Contains(t, out, ColorRed+"error"+ColorReset)
}

func TestOutputFormatter_JSON(t *testing.T) {
	out, err := NewOutputFormatter().Format(createTestExpressionResponse(), domain.OutputFormatJSON)
	require.NoError(t, err)

	var decoded domain.ExpressionResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, "14", decoded.Results[0].SimplifiedPrefix)
	require.NotNil(t, decoded.Results[0].Value)
	assert.Equal(t, 14, *decoded.Results[0].Value)
	assert.Equal(t, 3, decoded.Summary.Total)

	// absent values are omitted
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	second := raw["results"].([]interface{})[1].(map[string]interface{})
	assert.NotContains(t, second, "value")
}

func TestOutputFormatter_YAML(t *testing.T) {
	out, err := NewOutputFormatter().Format(createTestExpressionResponse(), domain.OutputFormatYAML)
	require.NoError(t, err)

	var decoded domain.ExpressionResponse
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Results, 3)
	assert.Equal(t, domain.ErrCodeMalformedExpression, decoded.Results[2].ErrorCode)
	assert.Equal(t, 1, decoded.Summary.FilesProcessed)
}

func TestOutputFormatter_CSV(t *testing.T) {
	out, err := NewOutputFormatter().Format(createTestExpressionResponse(), domain.OutputFormatCSV)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, CSVHeader, records[0])

	assert.Equal(t, "exprs.prefix:1", records[1][0])
	assert.Equal(t, "true", records[1][2])
	assert.Equal(t, "14", records[1][7])
	assert.Equal(t, "1", records[1][9])
	assert.Equal(t, "c", records[2][8])
	assert.Equal(t, "false", records[3][2])
	assert.Equal(t, domain.ErrCodeMalformedExpression, records[3][11])
}

func TestOutputFormatter_Unsupported(t *testing.T) {
	_, err := NewOutputFormatter().Format(createTestExpressionResponse(), domain.OutputFormat("html"))
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, de.Code)

	_, err = NewOutputFormatter().Format(nil, domain.OutputFormatText)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOutputFormatter_Write(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewOutputFormatter().Write(createTestExpressionResponse(), domain.OutputFormatJSON, &buf))
	assert.True(t, json.Valid(buf.Bytes()))

	err := NewOutputFormatter().Write(createTestExpressionResponse(), domain.OutputFormatText, failingWriter{})
	var de domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeOutputError, de.Code)
}

func TestFormatUtils(t *testing.T) {
	utils := NewFormatUtils(false)

	assert.Equal(t, "Title\n"+strings.Repeat("=", HeaderWidth)+"\n\n", utils.FormatMainHeader("Title"))
	assert.Equal(t, "RESULTS\n-------\n", utils.FormatSectionHeader("Results"))
	assert.Equal(t, "  key: 1\n", utils.FormatLabelWithIndent(2, "key", 1))
	assert.Equal(t, strings.Repeat(" ", LabelWidth-3)+"abc: x\n", utils.FormatLabel("abc", "x"))
	assert.Equal(t, "12.5%", utils.FormatPercentage(12.5))
	assert.Empty(t, utils.FormatWarningsSection(nil))

	summary := utils.FormatSummaryStats([]Stat{{"B", 2}, {"A", 1}})
	assert.Less(t, strings.Index(summary, "B: 2"), strings.Index(summary, "A: 1"))

	assert.Equal(t, "x", utils.Colorize(ColorRed, "x"))
	assert.Equal(t, ColorRed+"x"+ColorReset, NewFormatUtils(true).Colorize(ColorRed, "x"))
}

func TestEncodeHelpers(t *testing.T) {
	out, err := EncodeJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, out)

	_, err = EncodeJSON(func() {})
	assert.Error(t, err)

	y, err := EncodeYAML(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", y)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, []string{"x"}))
	assert.Equal(t, "- x\n", buf.String())
}
