package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/ludo-technologies/prexpr/internal/config"
	"github.com/ludo-technologies/prexpr/mcp"
	"github.com/ludo-technologies/prexpr/service"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFunc func(*mcp.HandlerSet, context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error)

type want struct {
	isError      bool
	expectPrefix string
	check        func(t *testing.T, result map[string]interface{})
}

func runToolTest(t *testing.T, arguments interface{}, handler handlerFunc) *mcplib.CallToolResult {
	t.Helper()
	deps := mcp.NewTestDependencies(service.NewExpressionService(), config.DefaultConfig(), "")
	h := mcp.NewHandlerSet(deps)

	req := mcplib.CallToolRequest{
		Params: mcplib.CallToolParams{
			Arguments: arguments,
		},
	}

	res, err := handler(h, context.Background(), req)
	require.NoError(t, err)
	return res
}

func runToolTable(t *testing.T, handler handlerFunc, tests map[string]struct {
	arguments interface{}
	want      want
}) {
	t.Helper()
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			res := runToolTest(t, tt.arguments, handler)
			require.NotNil(t, res)
			require.Greater(t, len(res.Content), 0)
			tc, ok := mcplib.AsTextContent(res.Content[0])
			require.True(t, ok, "expected text content, got %T", res.Content[0])
			text := tc.Text

			assert.Equal(t, tt.want.isError, res.IsError, text)
			if tt.want.expectPrefix != "" {
				assert.Contains(t, text, tt.want.expectPrefix)
			}
			if tt.want.check != nil {
				var result map[string]interface{}
				require.NoError(t, json.Unmarshal([]byte(text), &result))
				tt.want.check(t, result)
			}
		})
	}
}

func TestHandleParseExpression(t *testing.T) {
	runToolTable(t, (*mcp.HandlerSet).HandleParseExpression, map[string]struct {
		arguments interface{}
		want      want
	}{
		"invalid_arguments_format": {
			arguments: "not-a-map",
			want:      want{isError: true, expectPrefix: "invalid arguments format"},
		},
		"expression_missing": {
			arguments: map[string]interface{}{},
			want:      want{isError: true, expectPrefix: "expression parameter is required"},
		},
		"malformed": {
			arguments: map[string]interface{}{"expression": "+ 1"},
			want:      want{isError: true, expectPrefix: "parse failed"},
		},
		"trailing_tokens_strict": {
			arguments: map[string]interface{}{"expression": "1 2"},
			want:      want{isError: true, expectPrefix: "parse failed"},
		},
		"trailing_tokens_lenient": {
			arguments: map[string]interface{}{"expression": "1 2", "strict": false},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "1", result["prefix"])
			}},
		},
		"success": {
			arguments: map[string]interface{}{"expression": "+ 2 * 3 x"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, true, result["valid"])
				assert.Equal(t, "+ 2 * 3 x", result["prefix"])
				assert.Equal(t, "(2+(3*x))", result["infix"])
				assert.Equal(t, []interface{}{"x"}, result["variables"])
				stats := result["stats"].(map[string]interface{})
				assert.Equal(t, float64(5), stats["nodes"])
			}},
		},
	})
}

func TestHandleSimplifyExpression(t *testing.T) {
	runToolTable(t, (*mcp.HandlerSet).HandleSimplifyExpression, map[string]struct {
		arguments interface{}
		want      want
	}{
		"invalid_arguments_format": {
			arguments: []string{"+ 1 2"},
			want:      want{isError: true, expectPrefix: "invalid arguments format"},
		},
		"invalid_mode": {
			arguments: map[string]interface{}{"expression": "+ 1 2", "mode": "none"},
			want:      want{isError: true, expectPrefix: "invalid mode 'none'"},
		},
		"malformed": {
			arguments: map[string]interface{}{"expression": "* 3"},
			want:      want{isError: true, expectPrefix: "simplify failed"},
		},
		"constant_folding": {
			arguments: map[string]interface{}{"expression": "+ 2 * 3 4"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "14", result["simplified_prefix"])
				assert.Equal(t, float64(14), result["value"])
				assert.Equal(t, true, result["changed"])
			}},
		},
		"basic_keeps_identities": {
			arguments: map[string]interface{}{"expression": "* 1 x", "mode": "basic"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "* 1 x", result["simplified_prefix"])
				assert.Equal(t, false, result["changed"])
			}},
		},
		"fancy_applies_identities": {
			arguments: map[string]interface{}{"expression": "* 1 x", "mode": "fancy"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "x", result["simplified_prefix"])
				assert.Equal(t, []interface{}{"x"}, result["free_variables"])
			}},
		},
		"bindings": {
			arguments: map[string]interface{}{
				"expression": "+ x 0",
				"bindings":   map[string]interface{}{"x": float64(2)},
			},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "2", result["simplified_prefix"])
				assert.Equal(t, float64(2), result["value"])
			}},
		},
		"fractional_binding": {
			arguments: map[string]interface{}{
				"expression": "+ x 0",
				"bindings":   map[string]interface{}{"x": 1.5},
			},
			want: want{isError: true, expectPrefix: "must be an integer"},
		},
	})
}

func TestHandleSubstituteExpression(t *testing.T) {
	runToolTable(t, (*mcp.HandlerSet).HandleSubstituteExpression, map[string]struct {
		arguments interface{}
		want      want
	}{
		"bindings_missing": {
			arguments: map[string]interface{}{"expression": "+ x 1"},
			want:      want{isError: true, expectPrefix: "bindings parameter is required"},
		},
		"bindings_not_object": {
			arguments: map[string]interface{}{"expression": "+ x 1", "bindings": "x=1"},
			want:      want{isError: true, expectPrefix: "must be an object"},
		},
		"operator_name": {
			arguments: map[string]interface{}{
				"expression": "+ x 1",
				"bindings":   map[string]interface{}{"+": float64(1)},
			},
			want: want{isError: true, expectPrefix: "is an operator"},
		},
		"partial": {
			arguments: map[string]interface{}{
				"expression": "+ x y",
				"bindings":   map[string]interface{}{"x": float64(1)},
			},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "+ 1 y", result["prefix"])
				assert.Equal(t, "(1+y)", result["infix"])
				assert.Equal(t, []interface{}{"y"}, result["free_variables"])
				assert.NotContains(t, result, "value")
			}},
		},
		"unknown_variable_is_ignored": {
			arguments: map[string]interface{}{
				"expression": "+ x 1",
				"bindings":   map[string]interface{}{"z": float64(9)},
			},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "+ x 1", result["prefix"])
			}},
		},
		"substitute_and_simplify": {
			arguments: map[string]interface{}{
				"expression": "+ x y",
				"bindings":   map[string]interface{}{"x": float64(1), "y": float64(-3)},
				"simplify":   true,
			},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "-2", result["prefix"])
				assert.Equal(t, float64(-2), result["value"])
				assert.Equal(t, true, result["simplified"])
			}},
		},
	})
}

func TestHandleEvaluateExpression(t *testing.T) {
	runToolTable(t, (*mcp.HandlerSet).HandleEvaluateExpression, map[string]struct {
		arguments interface{}
		want      want
	}{
		"expression_missing": {
			arguments: map[string]interface{}{"expression": 3},
			want:      want{isError: true, expectPrefix: "expression parameter is required"},
		},
		"unbound": {
			arguments: map[string]interface{}{"expression": "- x 3"},
			want:      want{isError: true, expectPrefix: "evaluation failed"},
		},
		"ground": {
			arguments: map[string]interface{}{"expression": "* + 1 2 4"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, float64(12), result["value"])
			}},
		},
		"bound": {
			arguments: map[string]interface{}{
				"expression": "- x 3",
				"bindings":   map[string]interface{}{"x": float64(10)},
			},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, "- x 3", result["expression"])
				assert.Equal(t, float64(7), result["value"])
			}},
		},
	})
}

func TestHandleCompareExpressions(t *testing.T) {
	runToolTable(t, (*mcp.HandlerSet).HandleCompareExpressions, map[string]struct {
		arguments interface{}
		want      want
	}{
		"right_missing": {
			arguments: map[string]interface{}{"left": "+ 1 2"},
			want:      want{isError: true, expectPrefix: "right parameter is required"},
		},
		"left_malformed": {
			arguments: map[string]interface{}{"left": "+", "right": "3"},
			want:      want{isError: true, expectPrefix: "left: parse failed"},
		},
		"equal": {
			arguments: map[string]interface{}{"left": "+ 1 x", "right": "+ 1 x"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, true, result["equal"])
			}},
		},
		"not_commutative": {
			arguments: map[string]interface{}{"left": "+ 1 x", "right": "+ x 1"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, false, result["equal"])
			}},
		},
		"equal_after_simplify": {
			arguments: map[string]interface{}{"left": "+ 1 2", "right": "* 3 1", "simplify": true},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, true, result["equal"])
				assert.Equal(t, "3", result["left"])
				assert.Equal(t, "3", result["right"])
			}},
		},
		"different_without_simplify": {
			arguments: map[string]interface{}{"left": "+ 1 2", "right": "3"},
			want: want{check: func(t *testing.T, result map[string]interface{}) {
				assert.Equal(t, false, result["equal"])
			}},
		},
	})
}

func TestToolNames(t *testing.T) {
	assert.Equal(t, []string{
		"parse_expression",
		"simplify_expression",
		"substitute_expression",
		"evaluate_expression",
		"compare_expressions",
	}, mcp.ToolNames)
}
