package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/ludo-technologies/prexpr/domain"
	"github.com/ludo-technologies/prexpr/internal/config"
	"github.com/ludo-technologies/prexpr/internal/expr"
	"github.com/ludo-technologies/prexpr/internal/tree"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps *Dependencies
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "")
	}
	return &HandlerSet{deps: deps}
}

// HandleParseExpression handles the parse_expression tool
func (h *HandlerSet) HandleParseExpression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	expression, ok := args["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression parameter is required and must be a string"), nil
	}

	req := h.deps.BaseRequest()
	if strict, ok := args["strict"].(bool); ok {
		req.Strict = strict
	}

	t, err := parse(expression, req.Strict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	prefix, infix, err := render(t)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	st := expr.Collect(t)
	return jsonResult(map[string]interface{}{
		"valid":     true,
		"prefix":    prefix,
		"infix":     infix,
		"variables": expr.Variables(t),
		"stats": domain.ExpressionStats{
			Nodes:     st.Nodes,
			Height:    st.Height,
			Operators: st.Operators,
			Constants: st.Constants,
			Variables: st.Variables,
		},
	})
}

// HandleSimplifyExpression handles the simplify_expression tool. It runs
// the same pipeline as the eval command.
func (h *HandlerSet) HandleSimplifyExpression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	expression, ok := args["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression parameter is required and must be a string"), nil
	}

	req := h.deps.BaseRequest()
	if mode, ok := args["mode"].(string); ok {
		m := domain.SimplifyMode(mode)
		if m != domain.SimplifyBasic && m != domain.SimplifyFancy {
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode '%s', must be one of: basic, fancy", mode)), nil
		}
		req.SimplifyMode = m
	}
	if req.SimplifyMode == domain.SimplifyNone {
		req.SimplifyMode = domain.SimplifyFancy
	}

	bindings, err := bindingsArg(args, "bindings")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for k, v := range bindings {
		req.Bindings[k] = v
	}

	result := h.deps.Service().ProcessOne(req, domain.ExpressionSource{Label: "mcp", Text: expression})
	if result.Error != "" {
		return mcp.NewToolResultError(fmt.Sprintf("simplify failed: %s", result.Error)), nil
	}
	if !result.Changed {
		result.SimplifiedPrefix = result.Prefix
		result.SimplifiedInfix = result.Infix
	}

	return jsonResult(result)
}

// HandleSubstituteExpression handles the substitute_expression tool
func (h *HandlerSet) HandleSubstituteExpression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	expression, ok := args["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression parameter is required and must be a string"), nil
	}
	if _, ok := args["bindings"]; !ok {
		return mcp.NewToolResultError("bindings parameter is required"), nil
	}

	bindings, err := bindingsArg(args, "bindings")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	simplify, _ := args["simplify"].(bool)

	t, err := parse(expression, h.deps.BaseRequest().Strict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	if _, err := expr.SubstituteAll(t, bindings.Pointers()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("substitution failed: %v", err)), nil
	}
	if simplify {
		if _, err := expr.SimplifyFancy(t); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("simplify failed: %v", err)), nil
		}
	}

	prefix, infix, err := render(t)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}

	responseData := map[string]interface{}{
		"prefix":     prefix,
		"infix":      infix,
		"simplified": simplify,
	}
	if expr.IsGround(t) {
		value, err := expr.Evaluate(t, nil)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
		}
		responseData["value"] = value
	} else {
		responseData["free_variables"] = expr.Variables(t)
	}

	return jsonResult(responseData)
}

// HandleEvaluateExpression handles the evaluate_expression tool. Bindings
// given in the call override the configured variables.
func (h *HandlerSet) HandleEvaluateExpression(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	expression, ok := args["expression"].(string)
	if !ok {
		return mcp.NewToolResultError("expression parameter is required and must be a string"), nil
	}

	req := h.deps.BaseRequest()
	bindings, err := bindingsArg(args, "bindings")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for k, v := range bindings {
		req.Bindings[k] = v
	}

	t, err := parse(expression, req.Strict)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	value, err := expr.Evaluate(t, expr.Bindings(req.Bindings))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"expression": expression,
		"value":      value,
	})
}

// HandleCompareExpressions handles the compare_expressions tool
func (h *HandlerSet) HandleCompareExpressions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	left, ok := args["left"].(string)
	if !ok {
		return mcp.NewToolResultError("left parameter is required and must be a string"), nil
	}
	right, ok := args["right"].(string)
	if !ok {
		return mcp.NewToolResultError("right parameter is required and must be a string"), nil
	}
	simplify, _ := args["simplify"].(bool)
	strict := h.deps.BaseRequest().Strict

	sides := make([]*tree.Tree, 0, 2)
	for _, side := range []struct{ name, text string }{{"left", left}, {"right", right}} {
		t, err := parse(side.text, strict)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: parse failed: %v", side.name, err)), nil
		}
		if simplify {
			if _, err := expr.SimplifyFancy(t); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("%s: simplify failed: %v", side.name, err)), nil
			}
		}
		sides = append(sides, t)
	}

	leftPrefix, _ := expr.ToPrefix(sides[0])
	rightPrefix, _ := expr.ToPrefix(sides[1])

	return jsonResult(map[string]interface{}{
		"equal":      expr.Equal(sides[0], sides[1]),
		"left":       leftPrefix,
		"right":      rightPrefix,
		"simplified": simplify,
	})
}

func parse(expression string, strict bool) (*tree.Tree, error) {
	if strict {
		return expr.ParseStrict(expression)
	}
	return expr.Parse(expression)
}

func render(t *tree.Tree) (prefix, infix string, err error) {
	if prefix, err = expr.ToPrefix(t); err != nil {
		return "", "", err
	}
	if infix, err = expr.ToInfix(t); err != nil {
		return "", "", err
	}
	return prefix, infix, nil
}

// bindingsArg reads an object of integer values. JSON numbers arrive as
// float64, so fractional or out of range values are rejected. A missing
// key yields an empty set.
func bindingsArg(args map[string]interface{}, key string) (expr.Bindings, error) {
	raw, present := args[key]
	if !present || raw == nil {
		return expr.Bindings{}, nil
	}

	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%s parameter must be an object of integer values", key)
	}

	bindings := make(expr.Bindings, len(obj))
	for name, v := range obj {
		if err := config.ValidateVariableName(name); err != nil {
			return nil, fmt.Errorf("%s: %v", key, err)
		}
		n, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: value for %q %v", key, name, err)
		}
		bindings[name] = n
	}
	return bindings, nil
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || n >= math.MaxInt64 || n < math.MinInt64 {
			return 0, fmt.Errorf("must be an integer, got %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %s", n)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("must be an integer, got %T", v)
	}
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
