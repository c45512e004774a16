package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolNames lists the registered tools in registration order
var ToolNames = []string{
	"parse_expression",
	"simplify_expression",
	"substitute_expression",
	"evaluate_expression",
	"compare_expressions",
}

// RegisterTools registers all prexpr MCP tools with the server
func RegisterTools(s *server.MCPServer, h *HandlerSet) {
	if h == nil {
		h = NewHandlerSet(nil)
	}

	// Tool 1: parse_expression - Parse and render
	s.AddTool(mcp.NewTool("parse_expression",
		mcp.WithDescription("Parse a prefix expression such as \"+ 2 * 3 x\" and render it in prefix and fully parenthesized infix"),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Space separated prefix expression")),
		mcp.WithBoolean("strict",
			mcp.Description("Reject tokens left over after a complete expression (default: from config, true)")),
	), h.HandleParseExpression)

	// Tool 2: simplify_expression - Constant folding and identities
	s.AddTool(mcp.NewTool("simplify_expression",
		mcp.WithDescription("Simplify a prefix expression by folding constant subtrees and, in fancy mode, applying algebraic identities"),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Space separated prefix expression")),
		mcp.WithString("mode",
			mcp.Enum("basic", "fancy"),
			mcp.Description("Simplification mode: basic, fancy (default: from config, fancy)")),
		mcp.WithObject("bindings",
			mcp.Description("Integer values to substitute before simplifying, e.g. {\"x\": 2}")),
	), h.HandleSimplifyExpression)

	// Tool 3: substitute_expression - Variable substitution
	s.AddTool(mcp.NewTool("substitute_expression",
		mcp.WithDescription("Replace variables in a prefix expression with integer values"),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Space separated prefix expression")),
		mcp.WithObject("bindings",
			mcp.Required(),
			mcp.Description("Integer value per variable name, e.g. {\"x\": 2, \"y\": -1}")),
		mcp.WithBoolean("simplify",
			mcp.Description("Simplify the result in fancy mode (default: false)")),
	), h.HandleSubstituteExpression)

	// Tool 4: evaluate_expression - Integer evaluation
	s.AddTool(mcp.NewTool("evaluate_expression",
		mcp.WithDescription("Compute the integer value of a prefix expression; every variable needs a binding"),
		mcp.WithString("expression",
			mcp.Required(),
			mcp.Description("Space separated prefix expression")),
		mcp.WithObject("bindings",
			mcp.Description("Integer value per variable name; config variables apply when omitted")),
	), h.HandleEvaluateExpression)

	// Tool 5: compare_expressions - Structural equality
	s.AddTool(mcp.NewTool("compare_expressions",
		mcp.WithDescription("Report whether two prefix expressions have the same tree shape and tokens"),
		mcp.WithString("left",
			mcp.Required(),
			mcp.Description("First prefix expression")),
		mcp.WithString("right",
			mcp.Required(),
			mcp.Description("Second prefix expression")),
		mcp.WithBoolean("simplify",
			mcp.Description("Simplify both sides in fancy mode before comparing (default: false)")),
	), h.HandleCompareExpressions)
}
